// internal/workers/profit/commission-report/models.go
package commissionreport

type Input struct {
	PeriodStart string `json:"periodStart"` // RFC3339
	PeriodEnd   string `json:"periodEnd"`   // RFC3339
}

// ReportEntry is one person's commission totals for the period.
type ReportEntry struct {
	Name               string  `json:"name"`
	SalesCommission    float64 `json:"salesCommission"`
	ReferralCommission float64 `json:"referralCommission"`
	Total              float64 `json:"total"`
}

// Output is the commission report for the requested window. Entries are
// sorted by name for stable report rendering.
type Output struct {
	ReportID    string        `json:"reportId"`
	PeriodStart string        `json:"periodStart"`
	PeriodEnd   string        `json:"periodEnd"`
	Entries     []ReportEntry `json:"entries"`
	GrandTotal  float64       `json:"grandTotal"`
	DealCount   int           `json:"dealCount"`
}
