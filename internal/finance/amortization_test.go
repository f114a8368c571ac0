// internal/finance/amortization_test.go
package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// pmt recomputes the closed-form annuity value without rounding, used to
// verify Installment against the formula rather than hard-coded oracles.
func pmt(principal, annualRatePercent float64, termMonths int, balloon float64) float64 {
	r := annualRatePercent / 100 / 12
	n := float64(termMonths)
	growth := math.Pow(1+r, n)
	adjusted := principal - balloon/growth
	return adjusted * r * growth / (growth - 1)
}

func TestInstallment_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		rate       float64
		termMonths int
		balloon    float64
	}{
		{name: "zero principal", principal: 0, rate: 13.5, termMonths: 72},
		{name: "negative principal", principal: -50000, rate: 13.5, termMonths: 72},
		{name: "zero term", principal: 300000, rate: 13.5, termMonths: 0},
		{name: "negative term", principal: 300000, rate: 13.5, termMonths: -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, Installment(tt.principal, tt.rate, tt.termMonths, tt.balloon))
		})
	}
}

func TestInstallment_ZeroRateIsStraightLine(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		termMonths int
		balloon    float64
		expected   float64
	}{
		{name: "no balloon", principal: 72000, termMonths: 72, expected: 1000},
		{name: "with balloon", principal: 120000, termMonths: 60, balloon: 30000, expected: 1500},
		{name: "rounding", principal: 100000, termMonths: 72, expected: 1389},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Installment(tt.principal, 0, tt.termMonths, tt.balloon)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInstallment_MatchesAnnuityFormula(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		rate       float64
		termMonths int
		balloon    float64
	}{
		{name: "typical deal with balloon", principal: 300000, rate: 13.25, termMonths: 72, balloon: 105000},
		{name: "no balloon", principal: 250000, rate: 12.0, termMonths: 60},
		{name: "short term high rate", principal: 80000, rate: 18.5, termMonths: 24, balloon: 8000},
		{name: "long teaser term", principal: 450000, rate: 10.75, termMonths: 96, balloon: 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := math.Round(pmt(tt.principal, tt.rate, tt.termMonths, tt.balloon))
			got := Installment(tt.principal, tt.rate, tt.termMonths, tt.balloon)
			assert.Equal(t, expected, got)
		})
	}
}

func TestInstallment_MonotonicInRate(t *testing.T) {
	prev := Installment(300000, 0, 72, 50000)
	for rate := 0.5; rate <= 25; rate += 0.5 {
		current := Installment(300000, rate, 72, 50000)
		assert.GreaterOrEqual(t, current, prev, "rate %.1f", rate)
		prev = current
	}
}

func TestInstallment_NonIncreasingInBalloon(t *testing.T) {
	prev := Installment(300000, 13.25, 72, 0)
	for balloon := 10000.0; balloon <= 120000; balloon += 10000 {
		current := Installment(300000, 13.25, 72, balloon)
		assert.LessOrEqual(t, current, prev, "balloon %.0f", balloon)
		prev = current
	}
}

func TestInstallment_Idempotent(t *testing.T) {
	first := Installment(300000, 13.25, 72, 105000)
	second := Installment(300000, 13.25, 72, 105000)
	assert.Equal(t, first, second)
}

func BenchmarkInstallment(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Installment(300000, 13.25, 72, 105000)
	}
}
