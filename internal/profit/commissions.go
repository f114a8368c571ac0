// internal/profit/commissions.go
package profit

import "dealer-finance-workers/internal/models"

// Unassigned is the placeholder name for commission on deals with no
// attributed salesperson or referrer.
const Unassigned = "Unassigned"

// CommissionTotals is the per-person commission rollup.
type CommissionTotals struct {
	SalesCommission    float64 `json:"salesCommission"`
	ReferralCommission float64 `json:"referralCommission"`
	Total              float64 `json:"total"`
}

// AggregateByPerson sums sales-rep and referral commission per person over
// an arbitrary deal collection. Period filtering is the caller's concern.
func AggregateByPerson(deals []models.DealRecord) map[string]CommissionTotals {
	totals := make(map[string]CommissionTotals)

	addSales := func(name string, amount float64) {
		if name == "" {
			name = Unassigned
		}
		t := totals[name]
		t.SalesCommission += amount
		t.Total += amount
		totals[name] = t
	}

	addReferral := func(name string, amount float64) {
		if name == "" {
			name = Unassigned
		}
		t := totals[name]
		t.ReferralCommission += amount
		t.Total += amount
		totals[name] = t
	}

	for _, deal := range deals {
		if deal.SalesRepCommission != 0 {
			addSales(deal.SalesRepName, deal.SalesRepCommission)
		}
		if deal.ReferralCommissionAmount != 0 {
			addReferral(deal.ReferralName, deal.ReferralCommissionAmount)
		}
	}

	return totals
}
