package domain

type Decision string

const (
	DecisionYes Decision = "YES"
	DecisionNo  Decision = "NO"
)

// DecisionInputs feeds the keep-vs-sell simulation. Rates are percentages
// (5 means 5%).
type DecisionInputs struct {
	CurrentPropertyValue  float64 `json:"currentPropertyValue" yaml:"currentPropertyValue"`
	AdjustedCostBase      float64 `json:"adjustedCostBase" yaml:"adjustedCostBase"`
	CurrentMortgage       float64 `json:"currentMortgageBalance" yaml:"currentMortgageBalance"`
	CurrentCapRatePercent float64 `json:"currentCapRate" yaml:"currentCapRate"`
	CurrentGrowthPercent  float64 `json:"currentGrowthRate" yaml:"currentGrowthRate"`

	NewCapRatePercent float64 `json:"newCapRate" yaml:"newCapRate"`
	NewGrowthPercent  float64 `json:"newGrowthRate" yaml:"newGrowthRate"`

	MarginalTaxPercent float64 `json:"marginalTaxRate" yaml:"marginalTaxRate"`
	InclusionPercent   float64 `json:"inclusionRate" yaml:"inclusionRate"`

	RealtorFeePercent  float64 `json:"realtorFees" yaml:"realtorFees"`
	TransferTaxPercent float64 `json:"transferTax" yaml:"transferTax"`

	InvestmentROIPercent float64 `json:"investmentROI" yaml:"investmentROI"`

	LoanRatePercent   float64 `json:"loanRate" yaml:"loanRate"`
	AmortizationYears float64 `json:"amortizationYears" yaml:"amortizationYears"`

	ClientAge   int `json:"clientAge" yaml:"clientAge"`
	PlanningAge int `json:"planningAge" yaml:"planningAge"`

	NewLTVPercent         float64 `json:"newLTV" yaml:"newLTV"`
	DecisionMarginPercent float64 `json:"decisionMargin" yaml:"decisionMargin"`
}

// YearlySnapshot is one simulated year of one strategy.
type YearlySnapshot struct {
	Age               int     `json:"age"`
	PropertyValue     float64 `json:"propertyValue"`
	MortgageBalance   float64 `json:"mortgageBalance"`
	NetIncome         float64 `json:"netIncome"`
	TaxPayable        float64 `json:"taxPayable"`
	CashFlow          float64 `json:"cashFlow"`
	InvestmentAccount float64 `json:"investmentAccount"`
	StrategyValue     float64 `json:"strategyValue"`
	CapitalGainsTax   float64 `json:"capitalGainsTax"`
}

type SeriesPoint struct {
	Age          int     `json:"age"`
	CurrentValue float64 `json:"currentValue"`
	NewValue     float64 `json:"newValue"`
	Delta        float64 `json:"delta"`
}

type DecisionResult struct {
	Decision          Decision `json:"decision"`
	DecisionReason    string   `json:"decisionReason"`
	MarginPercent     float64  `json:"marginPercent"`
	PlanningAge       int      `json:"planningAge"`
	CurrentAtPlanning float64  `json:"currentAtPlanning"`
	NewAtPlanning     float64  `json:"newAtPlanning"`

	BreakEvenAge   *int    `json:"breakEvenAge"`
	PeakDeltaAge   *int    `json:"peakDeltaAge"`
	PeakDeltaValue float64 `json:"peakDeltaValue"`

	// Sale-side figures from the setup phase.
	SaleCapitalGainsTax float64 `json:"saleCapitalGainsTax"`
	NetSaleProceeds     float64 `json:"netSaleProceeds"`
	NewPropertyValue    float64 `json:"newPropertyValue"`
	NewMortgage         float64 `json:"newMortgage"`

	CurrentSeries []YearlySnapshot `json:"currentSeries"`
	NewSeries     []YearlySnapshot `json:"newSeries"`
	Series        []SeriesPoint    `json:"series"`
}
