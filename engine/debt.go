package engine

import (
	"math"

	"propcalc/domain"
)

// Payment is the fixed annuity payment for principal over periods at the
// given periodic rate.
func Payment(principal, periodicRate float64, periods int) float64 {
	principal = finite(principal)
	periodicRate = finite(periodicRate)
	if principal <= 0 || periods <= 0 {
		return 0
	}
	if periodicRate == 0 {
		return principal / float64(periods)
	}
	return finite(principal * periodicRate / (1 - math.Pow(1+periodicRate, -float64(periods))))
}

// ComputeDebtService prices a mortgage under the semi-annual compounding
// convention and runs it for the contractual term.
func ComputeDebtService(in domain.MortgageInputs) domain.DebtServiceResult {
	return ComputeDebtServiceWith(in, SemiAnnualCompounding{})
}

// ComputeDebtServiceWith is ComputeDebtService with an explicit convention.
func ComputeDebtServiceWith(in domain.MortgageInputs, conv RateConvention) domain.DebtServiceResult {
	payment, periodicRate, ppy := periodicPayment(in, conv)
	res := domain.DebtServiceResult{
		PeriodsPerYear: ppy,
		PeriodicRate:   periodicRate,
	}

	principal := finite(in.Principal)
	if principal <= 0 {
		return res
	}

	interest, balance := amortize(principal, periodicRate, payment, periodsFor(in.TermYears, ppy), nil)
	res.PeriodicPayment = payment
	res.AnnualPayment = finite(payment * float64(ppy))
	res.TotalInterestOverTerm = interest
	res.BalanceAtTermEnd = balance
	return res
}

// AmortizationSchedule returns one row per payment over the term, stopping
// early once the loan is paid off.
func AmortizationSchedule(in domain.MortgageInputs, conv RateConvention) []domain.AmortizationPeriod {
	payment, periodicRate, ppy := periodicPayment(in, conv)
	principal := finite(in.Principal)
	if principal <= 0 {
		return []domain.AmortizationPeriod{}
	}

	periods := periodsFor(in.TermYears, ppy)
	rows := make([]domain.AmortizationPeriod, 0, periods)
	amortize(principal, periodicRate, payment, periods, func(p domain.AmortizationPeriod) {
		rows = append(rows, p)
	})
	return rows
}

// periodicPayment resolves the payment, periodic rate and periods per year
// for the declared frequency. Accelerated frequencies pay a half or a
// quarter of the monthly payment on the faster cadence.
func periodicPayment(in domain.MortgageInputs, conv RateConvention) (payment, periodicRate float64, ppy int) {
	ppy = in.PaymentFrequency.PeriodsPerYear()
	periodicRate = conv.PeriodicRate(in.AnnualRatePercent, ppy)

	if in.PaymentFrequency.Accelerated() {
		monthly := Payment(in.Principal, conv.PeriodicRate(in.AnnualRatePercent, 12), periodsFor(in.AmortizationYears, 12))
		switch in.PaymentFrequency {
		case domain.FrequencyAcceleratedBiWeekly:
			return monthly / 2, periodicRate, ppy
		default:
			return monthly / 4, periodicRate, ppy
		}
	}

	return Payment(in.Principal, periodicRate, periodsFor(in.AmortizationYears, ppy)), periodicRate, ppy
}

// amortize applies up to periods payments to balance and returns the
// interest paid and the ending balance. visit, when set, sees each period.
func amortize(balance, periodicRate, payment float64, periods int, visit func(domain.AmortizationPeriod)) (totalInterest, remaining float64) {
	balance = math.Max(0, finite(balance))
	for i := 1; i <= periods && balance > 0; i++ {
		interest := finite(balance * periodicRate)
		principalPaid := math.Max(0, payment-interest)
		if principalPaid > balance {
			principalPaid = balance
		}
		balance = math.Max(0, balance-principalPaid)
		if balance < balanceTolerance {
			balance = 0
		}
		totalInterest = finite(totalInterest + interest)

		if visit != nil {
			visit(domain.AmortizationPeriod{
				Period:    i,
				Payment:   interest + principalPaid,
				Interest:  interest,
				Principal: principalPaid,
				Balance:   balance,
			})
		}
	}
	return totalInterest, balance
}

// yearlyBalances runs a monthly-convention mortgage and returns the balance
// at the start of each simulated year together with the annual debt
// service.
func yearlyBalances(principal, annualRatePercent, amortizationYears float64, years int) ([]float64, float64) {
	periodicRate := SimpleMonthly{}.PeriodicRate(annualRatePercent, 12)
	payment := Payment(principal, periodicRate, periodsFor(amortizationYears, 12))

	balances := make([]float64, years)
	balance := math.Max(0, finite(principal))
	for y := range balances {
		balances[y] = balance
		_, balance = amortize(balance, periodicRate, payment, 12, nil)
	}
	return balances, finite(payment * 12)
}
