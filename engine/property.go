package engine

import (
	"math"

	"propcalc/domain"
)

// ComputeCurrentMetrics evaluates the property held today. Its debt
// service is taken as given; cash invested is the equity that a sale would
// free up.
func ComputeCurrentMetrics(in domain.CurrentPropertyInputs) domain.PropertyMetrics {
	value := finite(in.Value)
	m := operate(in.MonthlyRent, in.OtherMonthlyIncome, in.VacancyPercent, in.Expenses)
	m.CapRate = ratio(m.NOIAnnual, value)
	m.CashInvested = netSaleProceeds(in)
	return withDebtService(m, finite(in.MonthlyDebtService))
}

// ComputeCandidateMetrics evaluates a prospective purchase financed with
// the post-down-payment loan.
func ComputeCandidateMetrics(in domain.NewPropertyInputs) domain.PropertyMetrics {
	price := finite(in.PurchasePrice)
	_, payment := candidateFinancing(in)

	m := operate(in.MonthlyRent, in.OtherMonthlyIncome, in.VacancyPercent, in.Expenses)
	m.CapRate = ratio(m.NOIAnnual, price)

	closing := finite(rate(in.ClosingCostsPercent) * price)
	if in.ClosingCosts != nil {
		closing = finite(*in.ClosingCosts)
	}
	m.CashInvested = finite(price*rate(in.DownPaymentPercent) + closing + finite(in.RehabBudget))
	return withDebtService(m, payment)
}

// ComputeComparison evaluates both properties and the capital that moves
// between them.
func ComputeComparison(current domain.CurrentPropertyInputs, candidate domain.NewPropertyInputs) domain.ComparisonMetrics {
	cur := ComputeCurrentMetrics(current)
	cand := ComputeCandidateMetrics(candidate)
	loan, payment := candidateFinancing(candidate)
	proceeds := netSaleProceeds(current)

	return domain.ComparisonMetrics{
		Current:                 cur,
		Candidate:               cand,
		NetSaleProceeds:         proceeds,
		CandidateLoanAmount:     loan,
		CandidateMonthlyPayment: payment,
		MonthlyCashFlowDelta:    finite(cand.MonthlyCashFlow - cur.MonthlyCashFlow),
		CapRateDelta:            cand.CapRate - cur.CapRate,
		AdditionalCashRequired:  math.Max(0, finite(cand.CashInvested-proceeds)),
	}
}

// operate fills the income, expense and NOI lines shared by both property
// kinds. Maintenance percent is rent-based, management percent is based on
// gross income.
func operate(rent, other, vacancyPercent float64, e domain.ExpenseInputs) domain.PropertyMetrics {
	rent = finite(rent)
	gross := finite(rent + finite(other))
	vacancy := finite(rate(vacancyPercent) * gross)
	effective := finite(gross - vacancy)

	opex := finite(finite(e.PropertyTax) +
		finite(e.Insurance) +
		finite(e.Utilities) +
		finite(e.HOA) +
		finite(e.Reserves) +
		finite(e.Maintenance) + rate(e.MaintenancePercent)*rent +
		rate(e.ManagementPercent)*gross)

	noi := finite(effective - opex)
	return domain.PropertyMetrics{
		GrossMonthlyIncome:     gross,
		VacancyLoss:            vacancy,
		EffectiveMonthlyIncome: effective,
		OperatingExpenses:      opex,
		NOIMonthly:             noi,
		NOIAnnual:              finite(noi * 12),
	}
}

func withDebtService(m domain.PropertyMetrics, monthlyDebt float64) domain.PropertyMetrics {
	m.MonthlyDebtService = monthlyDebt
	m.MonthlyCashFlow = finite(m.NOIMonthly - monthlyDebt)
	m.AnnualCashFlow = finite(m.MonthlyCashFlow * 12)
	m.DSCR = ratio(m.NOIAnnual, monthlyDebt*12)
	m.CashOnCash = ratio(m.AnnualCashFlow, m.CashInvested)
	return m
}

// netSaleProceeds is the equity left after selling costs and paying off
// the existing loan.
func netSaleProceeds(in domain.CurrentPropertyInputs) float64 {
	value := finite(in.Value)
	sellingCosts := finite(rate(in.SellingCostsPercent) * value)
	return math.Max(0, finite(value-sellingCosts-finite(in.LoanBalance)))
}

// candidateFinancing sizes the loan and its monthly payment under the
// simple monthly convention.
func candidateFinancing(in domain.NewPropertyInputs) (loan, payment float64) {
	price := finite(in.PurchasePrice)
	loan = math.Max(0, finite(price*(1-rate(in.DownPaymentPercent))))
	periodicRate := SimpleMonthly{}.PeriodicRate(in.InterestRatePercent, 12)
	payment = Payment(loan, periodicRate, periodsFor(in.AmortizationYears, 12))
	return loan, payment
}
