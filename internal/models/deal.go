// internal/models/deal.go
package models

import "time"

// AddOn is an accessory or product sold with the vehicle.
type AddOn struct {
	Name         string  `json:"name"`
	CostPrice    float64 `json:"costPrice"`
	SellingPrice float64 `json:"sellingPrice"`
}

// AftersalesExpense is a cost incurred after the sale closed, e.g. a
// warranty claim or goodwill repair absorbed by the dealership.
type AftersalesExpense struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// DealRecord is the full financial picture of a vehicle deal as stored
// in the deals table.
type DealRecord struct {
	ID          string `json:"id"`
	SiteID      string `json:"siteId"`
	StockNumber string `json:"stockNumber"`

	SoldPrice      float64 `json:"soldPrice"`
	CostPrice      float64 `json:"costPrice"`
	ReconCost      float64 `json:"reconCost"`
	DICAmount      float64 `json:"dicAmount"` // dealer incentive commission from the bank
	DiscountAmount float64 `json:"discountAmount"`

	DealerDepositContribution float64 `json:"dealerDepositContribution"`

	SalesRepName       string  `json:"salesRepName"`
	SalesRepCommission float64 `json:"salesRepCommission"`

	ReferralName             string  `json:"referralName"`
	ReferralCommissionAmount float64 `json:"referralCommissionAmount"` // paid out to the referrer
	ReferralIncomeAmount     float64 `json:"referralIncomeAmount"`     // earned from referring out

	IsSharedCapital            bool    `json:"isSharedCapital"`
	PartnerSplitType           string  `json:"partnerSplitType"` // "percentage" or "fixed"
	PartnerSplitValue          float64 `json:"partnerSplitValue"`
	PartnerCapitalContribution float64 `json:"partnerCapitalContribution"`

	AddOns             []AddOn             `json:"addOns"`
	AftersalesExpenses []AftersalesExpense `json:"aftersalesExpenses"`

	IsClosed bool       `json:"isClosed"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`
}
