// internal/finance/offers.go
package finance

import (
	"math"

	"dealer-finance-workers/internal/models"
)

// EffectiveRate returns the lowest rate present on the offer. The second
// return is false when the bank supplied neither a linked nor a fixed rate,
// which makes the offer ineligible for selection.
func EffectiveRate(offer models.BankOffer) (float64, bool) {
	switch {
	case offer.InterestRateLinked != nil && offer.InterestRateFixed != nil:
		return math.Min(*offer.InterestRateLinked, *offer.InterestRateFixed), true
	case offer.InterestRateLinked != nil:
		return *offer.InterestRateLinked, true
	case offer.InterestRateFixed != nil:
		return *offer.InterestRateFixed, true
	default:
		return 0, false
	}
}

// PickBestOffer returns the eligible offer with the lowest effective rate,
// or nil when no offer carries a rate.
func PickBestOffer(offers []models.BankOffer) *models.BankOffer {
	var best *models.BankOffer
	var bestRate float64

	for i := range offers {
		rate, ok := EffectiveRate(offers[i])
		if !ok {
			continue
		}
		if best == nil || rate < bestRate {
			best = &offers[i]
			bestRate = rate
		}
	}

	return best
}

// NormalizeOffer turns a stored offer into the rate and balloon percentage
// the quote layer works with. The balloon amount is converted to a percent
// of the vehicle price, rounded, and clamped into [0, maxBalloonPercent].
func NormalizeOffer(offer models.BankOffer, vehiclePrice, maxBalloonPercent float64) (rate, balloonPercent float64) {
	rate, _ = EffectiveRate(offer)

	if offer.BalloonAmount == nil || vehiclePrice <= 0 {
		return rate, 0
	}

	balloonPercent = math.Round(*offer.BalloonAmount / vehiclePrice * 100)
	if balloonPercent < 0 {
		balloonPercent = 0
	}
	if balloonPercent > maxBalloonPercent {
		balloonPercent = maxBalloonPercent
	}

	return rate, balloonPercent
}
