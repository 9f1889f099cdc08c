package engine

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"propcalc/domain"
)

// MaxHorizonYears caps the simulated span between the client's age and
// the planning age.
const MaxHorizonYears = 200

// strategy is one side of the keep-vs-sell simulation.
type strategy struct {
	value     float64
	growth    float64
	capRate   float64
	balances  []float64
	debt      float64
	taxOnSale bool
}

// assumptions shared by both strategies.
type assumptions struct {
	clientAge      int
	years          int
	marginal       float64
	inclusion      float64
	acb            float64
	loanRate       float64
	afterTaxGrowth float64
}

// ComputeDecision simulates keeping the current property against selling
// it and buying a replacement, year by year from the client's age to the
// planning age inclusive, and recommends selling (YES) when the sell
// strategy beats the keep strategy by the decision margin at the planning
// age.
func ComputeDecision(in domain.DecisionInputs) domain.DecisionResult {
	planningAge := planningHorizon(in.ClientAge, in.PlanningAge)

	a := assumptions{
		clientAge: in.ClientAge,
		years:     planningAge - in.ClientAge + 1,
		marginal:  rate(in.MarginalTaxPercent),
		inclusion: rate(in.InclusionPercent),
		acb:       finite(in.AdjustedCostBase),
		loanRate:  rate(in.LoanRatePercent),
	}
	a.afterTaxGrowth = finite(rate(in.InvestmentROIPercent) * (1 - a.marginal))

	value := finite(in.CurrentPropertyValue)
	mortgage := finite(in.CurrentMortgage)

	keepBalances, keepDebt := yearlyBalances(mortgage, in.LoanRatePercent, in.AmortizationYears, a.years)
	keep := strategy{
		value:     value,
		growth:    rate(in.CurrentGrowthPercent),
		capRate:   rate(in.CurrentCapRatePercent),
		balances:  keepBalances,
		debt:      keepDebt,
		taxOnSale: true,
	}

	saleTax := a.capitalGainsTax(value)
	saleCosts := finite((rate(in.RealtorFeePercent) + rate(in.TransferTaxPercent)) * value)
	proceeds := math.Max(0, finite(value-mortgage-saleTax-saleCosts))

	newValue, newMortgage := sizeReplacement(proceeds, rate(in.NewLTVPercent))
	sellBalances, sellDebt := yearlyBalances(newMortgage, in.LoanRatePercent, in.AmortizationYears, a.years)
	sell := strategy{
		value:    newValue,
		growth:   rate(in.NewGrowthPercent),
		capRate:  rate(in.NewCapRatePercent),
		balances: sellBalances,
		debt:     sellDebt,
	}

	res := domain.DecisionResult{
		MarginPercent:       finite(in.DecisionMarginPercent),
		PlanningAge:         planningAge,
		SaleCapitalGainsTax: saleTax,
		NetSaleProceeds:     proceeds,
		NewPropertyValue:    newValue,
		NewMortgage:         newMortgage,
		CurrentSeries:       a.simulate(keep),
		NewSeries:           a.simulate(sell),
	}

	res.Series = make([]domain.SeriesPoint, a.years)
	for i := range res.Series {
		cur := res.CurrentSeries[i].StrategyValue
		next := res.NewSeries[i].StrategyValue
		res.Series[i] = domain.SeriesPoint{
			Age:          res.CurrentSeries[i].Age,
			CurrentValue: cur,
			NewValue:     next,
			Delta:        finite(next - cur),
		}
	}

	last := res.Series[len(res.Series)-1]
	res.CurrentAtPlanning = last.CurrentValue
	res.NewAtPlanning = last.NewValue

	threshold := finite(last.CurrentValue * (1 + rate(in.DecisionMarginPercent)))
	if last.NewValue >= threshold {
		res.Decision = domain.DecisionYes
	} else {
		res.Decision = domain.DecisionNo
	}
	res.DecisionReason = decisionReason(res.Decision, last.Delta, planningAge, res.MarginPercent)

	res.BreakEvenAge, res.PeakDeltaAge, res.PeakDeltaValue = analyzeSeries(res.Series)
	return res
}

// planningHorizon clamps the planning age to [clientAge, clientAge +
// MaxHorizonYears]. The span is measured in unsigned arithmetic so ages at
// the ends of the int range cannot wrap.
func planningHorizon(clientAge, planningAge int) int {
	if planningAge < clientAge {
		return clientAge
	}
	if uint(planningAge)-uint(clientAge) > MaxHorizonYears {
		return clientAge + MaxHorizonYears
	}
	return planningAge
}

// simulate folds one strategy over the planning horizon. Figures that
// overflow float64 degrade to 0 like any other non-finite input.
func (a assumptions) simulate(s strategy) []domain.YearlySnapshot {
	out := make([]domain.YearlySnapshot, a.years)
	investment := 0.0
	for t := range out {
		value := finite(s.value * math.Pow(1+s.growth, float64(t)))
		balance := s.balances[t]

		netIncome := finite(s.capRate * value)
		tax := finite((netIncome - balance*a.loanRate) * a.marginal)
		cashFlow := finite(netIncome - tax - s.debt)
		investment = finite(investment*(1+a.afterTaxGrowth) + cashFlow)

		gainsTax := 0.0
		if s.taxOnSale {
			gainsTax = a.capitalGainsTax(value)
		}

		out[t] = domain.YearlySnapshot{
			Age:               a.clientAge + t,
			PropertyValue:     value,
			MortgageBalance:   balance,
			NetIncome:         netIncome,
			TaxPayable:        tax,
			CashFlow:          cashFlow,
			InvestmentAccount: investment,
			StrategyValue:     finite(value - balance - gainsTax + investment),
			CapitalGainsTax:   gainsTax,
		}
	}
	return out
}

// capitalGainsTax is the tax due if the property sold at value. Losses
// produce no tax.
func (a assumptions) capitalGainsTax(value float64) float64 {
	gain := math.Max(0, finite(value-a.acb))
	return finite(gain * a.inclusion * a.marginal)
}

// sizeReplacement buys as much property as the proceeds support at the
// target loan-to-value. An LTV of 100% or more buys nothing.
func sizeReplacement(proceeds, ltv float64) (value, mortgage float64) {
	ltv = math.Max(0, ltv)
	if ltv >= 1 {
		return 0, 0
	}
	value = finite(proceeds / (1 - ltv))
	return value, finite(value * ltv)
}

// analyzeSeries finds the first age the sell strategy is not behind and the
// age and size of its largest advantage. Ties keep the earliest age.
func analyzeSeries(series []domain.SeriesPoint) (breakEven, peakAge *int, peakValue float64) {
	for i := range series {
		p := series[i]
		if breakEven == nil && p.Delta >= 0 {
			age := p.Age
			breakEven = &age
		}
		if peakAge == nil || p.Delta > peakValue {
			age := p.Age
			peakAge = &age
			peakValue = p.Delta
		}
	}
	return breakEven, peakAge, peakValue
}

func decisionReason(d domain.Decision, delta float64, age int, marginPercent float64) string {
	amount := decimal.NewFromFloat(finite(delta)).Round(0)
	signed := amount.String()
	if amount.IsPositive() {
		signed = "+" + signed
	}
	margin := decimal.NewFromFloat(finite(marginPercent)).Round(2).String()

	if d == domain.DecisionYes {
		return fmt.Sprintf("Selling changes the estate by %s at age %d, clearing the %s%% margin", signed, age, margin)
	}
	return fmt.Sprintf("Keeping is preferred: selling changes the estate by %s at age %d, short of the %s%% margin", signed, age, margin)
}
