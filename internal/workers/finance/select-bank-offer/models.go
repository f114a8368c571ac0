// internal/workers/finance/select-bank-offer/models.go
package selectbankoffer

type Input struct {
	ApplicationID string  `json:"applicationId"`
	VehiclePrice  float64 `json:"vehiclePrice"`
}

// Output is the selected offer normalized for the quote layer.
type Output struct {
	ApplicationID      string  `json:"applicationId"`
	OfferID            string  `json:"offerId"`
	BankName           string  `json:"bankName"`
	Rate               float64 `json:"rate"`
	BalloonPercent     float64 `json:"balloonPercent"`
	BalloonAmount      float64 `json:"balloonAmount"`
	TermMonths         int     `json:"termMonths"`
	TotalFees          float64 `json:"totalFees"`
	MonthlyInstallment float64 `json:"monthlyInstallment"`
}

// GetInputSchema returns the JSON schema for job variables.
func GetInputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"applicationId": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"vehiclePrice": map[string]interface{}{
				"type":    "number",
				"minimum": 0,
			},
		},
		"required": []interface{}{"applicationId", "vehiclePrice"},
	}
}
