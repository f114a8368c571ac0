// internal/finance/offers_test.go
package finance

import (
	"testing"

	"dealer-finance-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(v float64) *float64 { return &v }

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name     string
		offer    models.BankOffer
		want     float64
		eligible bool
	}{
		{
			name:     "both rates takes the lower",
			offer:    models.BankOffer{InterestRateLinked: rate(12.5), InterestRateFixed: rate(13.75)},
			want:     12.5,
			eligible: true,
		},
		{
			name:     "linked only",
			offer:    models.BankOffer{InterestRateLinked: rate(11.9)},
			want:     11.9,
			eligible: true,
		},
		{
			name:     "fixed only",
			offer:    models.BankOffer{InterestRateFixed: rate(14.2)},
			want:     14.2,
			eligible: true,
		},
		{
			name:     "neither rate is ineligible",
			offer:    models.BankOffer{BankName: "Declined Bank"},
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EffectiveRate(tt.offer)
			assert.Equal(t, tt.eligible, ok)
			if tt.eligible {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPickBestOffer(t *testing.T) {
	offers := []models.BankOffer{
		{BankName: "Alpha", InterestRateLinked: rate(13.5)},
		{BankName: "Bravo", InterestRateFixed: rate(12.25)},
		{BankName: "Charlie", InterestRateLinked: rate(12.9), InterestRateFixed: rate(12.4)},
		{BankName: "Declined"},
	}

	best := PickBestOffer(offers)
	require.NotNil(t, best)
	assert.Equal(t, "Bravo", best.BankName)
}

func TestPickBestOffer_NoEligibleOffers(t *testing.T) {
	assert.Nil(t, PickBestOffer(nil))
	assert.Nil(t, PickBestOffer([]models.BankOffer{{BankName: "Declined"}}))
}

func TestNormalizeOffer(t *testing.T) {
	balloon := 105000.0

	tests := []struct {
		name        string
		offer       models.BankOffer
		price       float64
		maxBalloon  float64
		wantRate    float64
		wantPercent float64
	}{
		{
			name:        "balloon converted to percent of price",
			offer:       models.BankOffer{InterestRateFixed: rate(13.25), BalloonAmount: &balloon},
			price:       300000,
			maxBalloon:  40,
			wantRate:    13.25,
			wantPercent: 35,
		},
		{
			name:        "percent clamped to site max",
			offer:       models.BankOffer{InterestRateFixed: rate(13.25), BalloonAmount: &balloon},
			price:       300000,
			maxBalloon:  30,
			wantRate:    13.25,
			wantPercent: 30,
		},
		{
			name:     "no balloon amount",
			offer:    models.BankOffer{InterestRateLinked: rate(12.0)},
			price:    300000,
			wantRate: 12.0,
		},
		{
			name:     "zero price avoids division",
			offer:    models.BankOffer{InterestRateLinked: rate(12.0), BalloonAmount: &balloon},
			price:    0,
			wantRate: 12.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRate, gotPercent := NormalizeOffer(tt.offer, tt.price, tt.maxBalloon)
			assert.Equal(t, tt.wantRate, gotRate)
			assert.Equal(t, tt.wantPercent, gotPercent)
		})
	}
}
