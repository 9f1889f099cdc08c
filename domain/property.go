package domain

// CurrentPropertyInputs describes the property the owner holds today.
// Fixed costs are monthly amounts; percentages use 0-100 semantics.
type CurrentPropertyInputs struct {
	Value              float64 `json:"value" yaml:"value"`
	MonthlyRent        float64 `json:"monthlyRent" yaml:"monthlyRent"`
	OtherMonthlyIncome float64 `json:"otherMonthlyIncome" yaml:"otherMonthlyIncome"`
	VacancyPercent     float64 `json:"vacancyPercent" yaml:"vacancyPercent"`

	Expenses ExpenseInputs `json:"expenses" yaml:"expenses"`

	MonthlyDebtService  float64 `json:"monthlyDebtService" yaml:"monthlyDebtService"`
	LoanBalance         float64 `json:"loanBalance" yaml:"loanBalance"`
	SellingCostsPercent float64 `json:"sellingCostsPercent" yaml:"sellingCostsPercent"`
}

// NewPropertyInputs describes a candidate purchase.
type NewPropertyInputs struct {
	PurchasePrice      float64 `json:"purchasePrice" yaml:"purchasePrice"`
	MonthlyRent        float64 `json:"monthlyRent" yaml:"monthlyRent"`
	OtherMonthlyIncome float64 `json:"otherMonthlyIncome" yaml:"otherMonthlyIncome"`
	VacancyPercent     float64 `json:"vacancyPercent" yaml:"vacancyPercent"`

	Expenses ExpenseInputs `json:"expenses" yaml:"expenses"`

	DownPaymentPercent  float64 `json:"downPaymentPercent" yaml:"downPaymentPercent"`
	InterestRatePercent float64 `json:"interestRatePercent" yaml:"interestRatePercent"`
	AmortizationYears   float64 `json:"amortizationYears" yaml:"amortizationYears"`

	// ClosingCosts, when set, takes precedence over ClosingCostsPercent.
	ClosingCosts        *float64 `json:"closingCosts,omitempty" yaml:"closingCosts,omitempty"`
	ClosingCostsPercent float64  `json:"closingCostsPercent" yaml:"closingCostsPercent"`
	RehabBudget         float64  `json:"rehabBudget" yaml:"rehabBudget"`
}

// ExpenseInputs holds monthly fixed costs and percentage-of-income costs.
// MaintenancePercent applies to rent, ManagementPercent to gross income.
type ExpenseInputs struct {
	PropertyTax        float64 `json:"propertyTax" yaml:"propertyTax"`
	Insurance          float64 `json:"insurance" yaml:"insurance"`
	Utilities          float64 `json:"utilities" yaml:"utilities"`
	HOA                float64 `json:"hoa" yaml:"hoa"`
	Reserves           float64 `json:"reserves" yaml:"reserves"`
	Maintenance        float64 `json:"maintenance" yaml:"maintenance"`
	MaintenancePercent float64 `json:"maintenancePercent" yaml:"maintenancePercent"`
	ManagementPercent  float64 `json:"managementPercent" yaml:"managementPercent"`
}

type PropertyMetrics struct {
	GrossMonthlyIncome     float64 `json:"grossMonthlyIncome"`
	VacancyLoss            float64 `json:"vacancyLoss"`
	EffectiveMonthlyIncome float64 `json:"effectiveMonthlyIncome"`
	OperatingExpenses      float64 `json:"operatingExpenses"`
	NOIMonthly             float64 `json:"noiMonthly"`
	NOIAnnual              float64 `json:"noiAnnual"`
	MonthlyDebtService     float64 `json:"monthlyDebtService"`
	MonthlyCashFlow        float64 `json:"monthlyCashFlow"`
	AnnualCashFlow         float64 `json:"annualCashFlow"`
	CapRate                float64 `json:"capRate"`
	DSCR                   float64 `json:"dscr"`
	CashInvested           float64 `json:"cashInvested"`
	CashOnCash             float64 `json:"cashOnCash"`
}

type ComparisonMetrics struct {
	Current   PropertyMetrics `json:"current"`
	Candidate PropertyMetrics `json:"candidate"`

	NetSaleProceeds         float64 `json:"netSaleProceeds"`
	CandidateLoanAmount     float64 `json:"candidateLoanAmount"`
	CandidateMonthlyPayment float64 `json:"candidateMonthlyPayment"`

	MonthlyCashFlowDelta   float64 `json:"monthlyCashFlowDelta"`
	CapRateDelta           float64 `json:"capRateDelta"`
	AdditionalCashRequired float64 `json:"additionalCashRequired"`
}

// ScreeningThresholds are the minimums a candidate must meet. Percentages
// use 0-100 semantics.
type ScreeningThresholds struct {
	MinCapRatePercent    float64 `json:"minCapRatePercent" yaml:"minCapRatePercent"`
	MinCashOnCashPercent float64 `json:"minCashOnCashPercent" yaml:"minCashOnCashPercent"`
	MinDSCR              float64 `json:"minDSCR" yaml:"minDSCR"`
	MinMonthlyCashFlow   float64 `json:"minMonthlyCashFlow" yaml:"minMonthlyCashFlow"`
}

type ThresholdCheck struct {
	Name     string  `json:"name"`
	Actual   float64 `json:"actual"`
	Required float64 `json:"required"`
	Passed   bool    `json:"passed"`
}

type ScreeningResult struct {
	Passes  bool             `json:"passes"`
	Checks  []ThresholdCheck `json:"checks"`
	Metrics PropertyMetrics  `json:"metrics"`
}
