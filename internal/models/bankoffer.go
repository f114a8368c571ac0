// internal/models/bankoffer.go
package models

// BankOffer is one bank's response to a finance application. Rate and
// balloon fields are pointers because banks omit products they declined.
type BankOffer struct {
	ID                 string   `json:"id"`
	ApplicationID      string   `json:"applicationId"`
	BankName           string   `json:"bankName"`
	CashPrice          float64  `json:"cashPrice"`
	PrincipalDebt      float64  `json:"principalDebt"`
	TermMonths         int      `json:"termMonths"`
	InterestRateLinked *float64 `json:"interestRateLinked,omitempty"`
	InterestRateFixed  *float64 `json:"interestRateFixed,omitempty"`
	BalloonAmount      *float64 `json:"balloonAmount,omitempty"`
	LicenseFee         float64  `json:"licenseFee"`
	DeliveryFee        float64  `json:"deliveryFee"`
	AdminFee           float64  `json:"adminFee"`
	InitiationFee      float64  `json:"initiationFee"`
	InstalmentLinked   float64  `json:"instalmentLinked"`
	InstalmentFixed    float64  `json:"instalmentFixed"`
}
