// internal/finance/marketing.go
package finance

// MarketingOffer is the term/rate pair shown on catalog listings. A teaser
// offer is intentionally optimistic and must never be presented as binding.
type MarketingOffer struct {
	TermMonths int     `json:"termMonths"`
	Rate       float64 `json:"rate"`
	Teaser     bool    `json:"teaser"`
}

const (
	personalizedTermMonths = 72
	teaserLongTermMonths   = 96
	teaserPriceThreshold   = 250000
	teaserRateDiscount     = 1.0
)

// MarketingConfig returns the display offer for a vehicle. A personalized
// (bank-derived) rate always wins over marketing framing and is returned
// verbatim at 72 months. Without one, expensive vehicles get a longer
// teaser term and the site default rate less one point.
func MarketingConfig(vehiclePrice, defaultSiteRate float64, personalizedRate *float64) MarketingOffer {
	if personalizedRate != nil {
		return MarketingOffer{
			TermMonths: personalizedTermMonths,
			Rate:       *personalizedRate,
		}
	}

	term := personalizedTermMonths
	if vehiclePrice > teaserPriceThreshold {
		term = teaserLongTermMonths
	}

	rate := defaultSiteRate - teaserRateDiscount
	if rate < 0 {
		rate = 0
	}

	return MarketingOffer{
		TermMonths: term,
		Rate:       rate,
		Teaser:     true,
	}
}
