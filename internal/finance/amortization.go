// internal/finance/amortization.go
package finance

import "math"

// Installment computes the monthly installment for a vehicle loan with an
// optional balloon (residual) amount due at the end of the term.
//
// The balloon is discounted to present value and subtracted from the
// principal before the standard annuity formula is applied. The result is
// rounded to the nearest whole currency unit.
//
// Degenerate inputs degrade to 0 instead of erroring: callers sanitize at
// the boundary and a transiently empty form field must not crash a live
// quote recomputation.
func Installment(principal, annualRatePercent float64, termMonths int, balloonAmount float64) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}

	// Zero rate: straight-line repayment, no annuity formula (division by zero).
	if annualRatePercent == 0 {
		return math.Round((principal - balloonAmount) / float64(termMonths))
	}

	r := annualRatePercent / 100 / 12
	n := float64(termMonths)
	growth := math.Pow(1+r, n)

	adjustedPrincipal := principal - balloonAmount/growth

	return math.Round(adjustedPrincipal * r * growth / (growth - 1))
}
