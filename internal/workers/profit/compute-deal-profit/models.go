// internal/workers/profit/compute-deal-profit/models.go
package computedealprofit

import "dealer-finance-workers/internal/profit"

type Input struct {
	DealID          string `json:"dealId"`
	UnlockConfirmed bool   `json:"unlockConfirmed"`
}

// Output carries the profit summary and the id of the persisted audit
// snapshot.
type Output struct {
	DealID     string               `json:"dealId"`
	IsClosed   bool                 `json:"isClosed"`
	SnapshotID string               `json:"snapshotId"`
	Summary    profit.ProfitSummary `json:"summary"`
}
