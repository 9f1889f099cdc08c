package domain

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Rank orders confidences so stronger hits can replace weaker ones.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	}
	return 0
}

// Listing field keys.
const (
	FieldPurchasePrice     = "purchase_price"
	FieldMonthlyRent       = "monthly_rent"
	FieldPropertyTaxAnnual = "property_tax_annual"
	FieldHOAMonthly        = "hoa_monthly"
)

type ExtractedField struct {
	Value      float64    `json:"value"`
	Confidence Confidence `json:"confidence"`
	Source     string     `json:"source"`
}

// ListingExtraction is a partial, confidence-tagged pre-fill of candidate
// inputs scraped from listing markup.
type ListingExtraction struct {
	Fields map[string]ExtractedField `json:"fields"`
}

// Apply returns a copy of in with every extracted field overwritten.
// Confidence does not affect what is applied.
func (e ListingExtraction) Apply(in NewPropertyInputs) NewPropertyInputs {
	out := in
	for key, f := range e.Fields {
		switch key {
		case FieldPurchasePrice:
			out.PurchasePrice = f.Value
		case FieldMonthlyRent:
			out.MonthlyRent = f.Value
		case FieldPropertyTaxAnnual:
			out.Expenses.PropertyTax = f.Value / 12
		case FieldHOAMonthly:
			out.Expenses.HOA = f.Value
		}
	}
	return out
}
