// internal/common/validation/sanitize.go
package validation

import "math"

// Amount coerces a monetary input to a usable value. NaN, Inf and negative
// amounts come in from upstream form data and default to zero rather than
// poisoning downstream arithmetic.
func Amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Percent clamps a percentage to the 0..100 range. NaN and Inf become 0.
func Percent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// TermMonths returns the term if positive, otherwise the given default.
func TermMonths(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
