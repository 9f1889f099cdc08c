package service

// Bounds the service enforces before handing inputs to the engine. They
// keep loop counts sane; the engine itself accepts anything.
const (
	MaxAmortizationYears = 50
	MaxTermYears         = 50
	MaxPlanningYears     = 120 // years between client age and planning age
	MaxListingBytes      = 2 << 20
)
