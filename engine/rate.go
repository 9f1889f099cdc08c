package engine

import "math"

// RateConvention turns an annual nominal rate into a per-payment rate.
type RateConvention interface {
	Name() string
	PeriodicRate(annualRatePercent float64, periodsPerYear int) float64
}

// SimpleMonthly divides the annual rate by 12 whatever the payment
// frequency. The property comparison and decision engines use it.
type SimpleMonthly struct{}

func (SimpleMonthly) Name() string { return "simple" }

func (SimpleMonthly) PeriodicRate(annualRatePercent float64, _ int) float64 {
	return rate(annualRatePercent) / 12
}

// SemiAnnualCompounding is the Canadian mortgage disclosure convention:
// the nominal rate compounds twice a year and is converted to the
// effective rate of the payment period.
type SemiAnnualCompounding struct{}

func (SemiAnnualCompounding) Name() string { return "semi-annual" }

func (SemiAnnualCompounding) PeriodicRate(annualRatePercent float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		periodsPerYear = 12
	}
	return finite(math.Pow(1+rate(annualRatePercent)/2, 2/float64(periodsPerYear)) - 1)
}

// ConventionByName resolves "simple" or "semi-annual"; anything else is
// semi-annual.
func ConventionByName(name string) RateConvention {
	if name == (SimpleMonthly{}).Name() {
		return SimpleMonthly{}
	}
	return SemiAnnualCompounding{}
}
