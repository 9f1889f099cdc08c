package engine

import "propcalc/domain"

// Screening check names, in report order.
const (
	CheckCapRate         = "cap_rate"
	CheckCashOnCash      = "cash_on_cash"
	CheckDSCR            = "dscr"
	CheckMonthlyCashFlow = "monthly_cash_flow"
)

// ScreenCandidate compares candidate metrics against investment-quality
// minimums. Ratios are reported in percent to match the thresholds.
func ScreenCandidate(m domain.PropertyMetrics, t domain.ScreeningThresholds) domain.ScreeningResult {
	checks := []domain.ThresholdCheck{
		check(CheckCapRate, m.CapRate*100, t.MinCapRatePercent),
		check(CheckCashOnCash, m.CashOnCash*100, t.MinCashOnCashPercent),
		check(CheckDSCR, m.DSCR, t.MinDSCR),
		check(CheckMonthlyCashFlow, m.MonthlyCashFlow, t.MinMonthlyCashFlow),
	}

	passes := true
	for _, c := range checks {
		passes = passes && c.Passed
	}
	return domain.ScreeningResult{Passes: passes, Checks: checks, Metrics: m}
}

func check(name string, actual, required float64) domain.ThresholdCheck {
	actual = finite(actual)
	required = finite(required)
	return domain.ThresholdCheck{
		Name:     name,
		Actual:   actual,
		Required: required,
		Passed:   actual >= required,
	}
}
