package domain

// PaymentFrequency is how often a mortgage payment is made.
type PaymentFrequency string

const (
	FrequencyMonthly             PaymentFrequency = "monthly"
	FrequencySemiMonthly         PaymentFrequency = "semi-monthly"
	FrequencyBiWeekly            PaymentFrequency = "bi-weekly"
	FrequencyWeekly              PaymentFrequency = "weekly"
	FrequencyAcceleratedBiWeekly PaymentFrequency = "accelerated-bi-weekly"
	FrequencyAcceleratedWeekly   PaymentFrequency = "accelerated-weekly"
)

// PeriodsPerYear returns the number of payments per year. Unknown values
// count as monthly.
func (f PaymentFrequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly, FrequencyAcceleratedWeekly:
		return 52
	case FrequencyBiWeekly, FrequencyAcceleratedBiWeekly:
		return 26
	case FrequencySemiMonthly:
		return 24
	default:
		return 12
	}
}

// Accelerated reports whether the payment is derived from the monthly
// payment instead of the frequency's own annuity.
func (f PaymentFrequency) Accelerated() bool {
	return f == FrequencyAcceleratedBiWeekly || f == FrequencyAcceleratedWeekly
}

type MortgageInputs struct {
	Principal         float64          `json:"principal" yaml:"principal"`
	AnnualRatePercent float64          `json:"annualRatePercent" yaml:"annualRatePercent"`
	AmortizationYears float64          `json:"amortizationYears" yaml:"amortizationYears"`
	PaymentFrequency  PaymentFrequency `json:"paymentFrequency" yaml:"paymentFrequency"`
	TermYears         float64          `json:"termYears" yaml:"termYears"`
}

type DebtServiceResult struct {
	PeriodicPayment       float64 `json:"periodicPayment"`
	TotalInterestOverTerm float64 `json:"totalInterestOverTerm"`
	BalanceAtTermEnd      float64 `json:"balanceAtTermEnd"`
	PeriodsPerYear        int     `json:"periodsPerYear"`
	PeriodicRate          float64 `json:"periodicRate"`
	AnnualPayment         float64 `json:"annualPayment"`
}

// AmortizationPeriod is one row of a full schedule.
type AmortizationPeriod struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}
