// internal/common/validation/sanitize_test.go
package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	assert.Equal(t, 0.0, Amount(math.NaN()))
	assert.Equal(t, 0.0, Amount(math.Inf(1)))
	assert.Equal(t, 0.0, Amount(math.Inf(-1)))
	assert.Equal(t, 0.0, Amount(-500))
	assert.Equal(t, 250000.0, Amount(250000))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(math.NaN()))
	assert.Equal(t, 0.0, Percent(-10))
	assert.Equal(t, 100.0, Percent(150))
	assert.Equal(t, 35.0, Percent(35))
}

func TestTermMonths(t *testing.T) {
	assert.Equal(t, 72, TermMonths(0, 72))
	assert.Equal(t, 72, TermMonths(-12, 72))
	assert.Equal(t, 60, TermMonths(60, 72))
}
