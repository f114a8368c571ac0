// internal/finance/rates.go
package finance

import (
	"strings"
	"time"
)

// RiskProfile describes the vehicle and buyer attributes that move the
// interest rate away from the site base rate.
type RiskProfile struct {
	VehicleYear    int     `json:"vehicleYear"` // 0 when unknown
	BodyType       string  `json:"bodyType"`
	DepositPercent float64 `json:"depositPercent"`
}

// RateAdjustment is the fully decomposed rate so reports can show each
// adjustment term, not just the final number.
type RateAdjustment struct {
	BaseRate     float64 `json:"baseRate"`
	AgePenalty   float64 `json:"agePenalty"`
	TypePenalty  float64 `json:"typePenalty"`
	DepositBonus float64 `json:"depositBonus"`
	FinalRate    float64 `json:"finalRate"`
}

// Body types that carry a sports-car risk loading.
var riskyBodyTypes = map[string]bool{
	"coupe":       true,
	"sport":       true,
	"sports":      true,
	"convertible": true,
}

const (
	agePenaltyYears   = 6
	agePenaltyAmount  = 1.5
	typePenaltyAmount = 0.5
	depositBonusFloor = 20.0
	depositBonus      = -1.0
)

// AdjustRate derives the final rate from the base rate via additive
// adjustments for vehicle age, body type and deposit size. The final rate
// never goes negative. An unknown vehicle year (zero) takes no age penalty.
func AdjustRate(baseRate float64, p RiskProfile) RateAdjustment {
	adj := RateAdjustment{BaseRate: baseRate}

	if p.VehicleYear > 0 {
		age := time.Now().Year() - p.VehicleYear
		if age > agePenaltyYears {
			adj.AgePenalty = agePenaltyAmount
		}
	}

	if riskyBodyTypes[strings.ToLower(strings.TrimSpace(p.BodyType))] {
		adj.TypePenalty = typePenaltyAmount
	}

	if p.DepositPercent > depositBonusFloor {
		adj.DepositBonus = depositBonus
	}

	adj.FinalRate = baseRate + adj.AgePenalty + adj.TypePenalty + adj.DepositBonus
	if adj.FinalRate < 0 {
		adj.FinalRate = 0
	}

	return adj
}
