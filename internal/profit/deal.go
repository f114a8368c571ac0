// internal/profit/deal.go
package profit

import "dealer-finance-workers/internal/models"

// Advisory codes raised by ComputeProfit. These are data-quality flags,
// never errors: the computation still completes.
const (
	AdvisoryZeroCostPrice        = "ZERO_COST_PRICE"
	AdvisoryDealerDepositInCosts = "DEALER_DEPOSIT_IN_COSTS"
)

// ProfitSummary is the full profit decomposition for one deal.
//
// GrossProfit is the original profit at close; CurrentProfit deducts the
// aftersales expense ledger so staff can see drift after the deal closed.
// NetProfit is the commission basis.
type ProfitSummary struct {
	GrossIncome     float64  `json:"grossIncome"`
	TotalCosts      float64  `json:"totalCosts"`
	GrossProfit     float64  `json:"grossProfit"`
	AftersalesTotal float64  `json:"aftersalesTotal"`
	CurrentProfit   float64  `json:"currentProfit"`
	NetProfit       float64  `json:"netProfit"`
	Advisories      []string `json:"advisories,omitempty"`
}

// ComputeProfit applies the canonical profit formula to a deal.
//
// The bank incentive (DIC) counts on the income side and the dealer
// deposit contribution on the cost side. Source reports disagreed on the
// deposit treatment, so its presence is surfaced as an advisory.
func ComputeProfit(deal models.DealRecord) ProfitSummary {
	var addonIncome, addonCosts float64
	for _, addon := range deal.AddOns {
		addonIncome += addon.SellingPrice
		addonCosts += addon.CostPrice
	}

	grossIncome := (deal.SoldPrice - deal.DiscountAmount) + addonIncome +
		deal.DICAmount + deal.ReferralIncomeAmount

	totalCosts := deal.CostPrice + deal.ReconCost + deal.DealerDepositContribution +
		addonCosts + deal.ReferralCommissionAmount

	grossProfit := grossIncome - totalCosts

	var aftersalesTotal float64
	for _, expense := range deal.AftersalesExpenses {
		aftersalesTotal += expense.Amount
	}

	summary := ProfitSummary{
		GrossIncome:     grossIncome,
		TotalCosts:      totalCosts,
		GrossProfit:     grossProfit,
		AftersalesTotal: aftersalesTotal,
		CurrentProfit:   grossProfit - aftersalesTotal,
		NetProfit:       grossProfit - deal.SalesRepCommission,
	}

	if deal.CostPrice == 0 {
		summary.Advisories = append(summary.Advisories, AdvisoryZeroCostPrice)
	}
	if deal.DealerDepositContribution != 0 {
		summary.Advisories = append(summary.Advisories, AdvisoryDealerDepositInCosts)
	}

	return summary
}
