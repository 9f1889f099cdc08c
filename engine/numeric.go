// Package engine holds the pure financial calculations: debt service,
// single-period property metrics and the multi-year keep-vs-sell decision.
//
// Nothing in this package fails. Non-finite inputs are treated as zero and
// ratios with a non-positive denominator are zero, so every input produces a
// well-formed result.
package engine

import "math"

// balanceTolerance is the residual below which a loan counts as paid off.
const balanceTolerance = 0.005

// finite coerces NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// rate converts a 0-100 percentage to a fraction.
func rate(percent float64) float64 {
	return finite(percent) / 100
}

// ratio is num/den, or 0 when den <= 0.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return finite(num / den)
}

// periodsFor is round(years * periodsPerYear), never negative.
func periodsFor(years float64, periodsPerYear int) int {
	n := math.Round(finite(years) * float64(periodsPerYear))
	if n <= 0 || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}
