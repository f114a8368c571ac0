// internal/workers/finance/quote-vehicle-finance/models.go
package quotevehiclefinance

import "dealer-finance-workers/internal/finance"

type Input struct {
	SiteID                  string   `json:"siteId"`
	VehiclePrice            float64  `json:"vehiclePrice"`
	VehicleYear             int      `json:"vehicleYear"`
	BodyType                string   `json:"bodyType"`
	DepositPercent          float64  `json:"depositPercent"`
	TermMonths              int      `json:"termMonths"`
	RequestedBalloonPercent *float64 `json:"requestedBalloonPercent,omitempty"`
	PersonalizedRate        *float64 `json:"personalizedRate,omitempty"`
}

// Output is the full quote: applied term and rate with the adjustment
// breakdown, the clamped balloon, financed principal and installment.
type Output struct {
	RateBreakdown      finance.RateAdjustment `json:"rateBreakdown"`
	TermMonths         int                    `json:"termMonths"`
	AppliedRate        float64                `json:"appliedRate"`
	Teaser             bool                   `json:"teaser"`
	BalloonPercent     float64                `json:"balloonPercent"`
	BalloonAmount      float64                `json:"balloonAmount"`
	Principal          float64                `json:"principal"`
	MonthlyInstallment float64                `json:"monthlyInstallment"`
}

// sitePolicy mirrors a site_settings row.
type sitePolicy struct {
	DefaultInterestRate   float64 `json:"defaultInterestRate"`
	MaxBalloonPercent     float64 `json:"maxBalloonPercent"`
	DefaultBalloonPercent float64 `json:"defaultBalloonPercent"`
}
