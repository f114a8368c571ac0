// internal/workers/profit/partner-statement/models.go
package partnerstatement

type Input struct {
	DealID          string  `json:"dealId"`
	NetSharedProfit float64 `json:"netSharedProfit"`
}

// Output is the partner settlement statement for one shared-capital deal.
type Output struct {
	DealID             string  `json:"dealId"`
	SplitType          string  `json:"splitType"`
	SplitValue         float64 `json:"splitValue"`
	PartnerCapital     float64 `json:"partnerCapital"`
	PartnerShare       float64 `json:"partnerShare"`
	LuminaShare        float64 `json:"luminaShare"`
	PartnerPayoutTotal float64 `json:"partnerPayoutTotal"`
}

// splitConfig mirrors the partner columns of a deals row.
type splitConfig struct {
	IsSharedCapital bool
	SplitType       string
	SplitValue      float64
	PartnerCapital  float64
}
