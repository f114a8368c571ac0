// internal/finance/balloon.go
package finance

import "time"

// Age-tiered balloon ceilings: older vehicles carry a higher residual risk
// so the permitted balloon shrinks with age.
const (
	balloonCeilingNew    = 40.0 // up to 3 model years
	balloonCeilingRecent = 30.0 // up to 6
	balloonCeilingOlder  = 20.0 // up to 10
	balloonCeilingOldest = 10.0
)

// MaxBalloonPercent returns the permitted balloon percentage for a vehicle,
// always capped by the site-wide maximum. An unknown vehicle year (zero)
// takes no age ceiling, only the global cap.
func MaxBalloonPercent(vehicleYear int, globalMaxPercent float64) float64 {
	if vehicleYear <= 0 {
		return globalMaxPercent
	}

	age := time.Now().Year() - vehicleYear

	var ceiling float64
	switch {
	case age <= 3:
		ceiling = balloonCeilingNew
	case age <= 6:
		ceiling = balloonCeilingRecent
	case age <= 10:
		ceiling = balloonCeilingOlder
	default:
		ceiling = balloonCeilingOldest
	}

	if ceiling > globalMaxPercent {
		return globalMaxPercent
	}
	return ceiling
}

// ClampBalloonPercent forces a selected balloon percentage into the
// permitted range. A selection above the ceiling is clamped down, never
// silently exceeded.
func ClampBalloonPercent(selected float64, vehicleYear int, globalMaxPercent float64) float64 {
	if selected < 0 {
		return 0
	}
	if max := MaxBalloonPercent(vehicleYear, globalMaxPercent); selected > max {
		return max
	}
	return selected
}
