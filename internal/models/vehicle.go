// internal/models/vehicle.go
package models

// Vehicle carries the stock attributes finance quoting needs.
type Vehicle struct {
	StockNumber string  `json:"stockNumber"`
	Year        int     `json:"year"` // 0 when unknown
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	BodyType    string  `json:"bodyType"`
	SalePrice   float64 `json:"salePrice"`
}

// SitePolicy holds per-site finance policy loaded from site_settings.
type SitePolicy struct {
	SiteID                string  `json:"siteId"`
	DefaultInterestRate   float64 `json:"defaultInterestRate"` // annual, percent
	MaxBalloonPercent     float64 `json:"maxBalloonPercent"`
	DefaultBalloonPercent float64 `json:"defaultBalloonPercent"`
}
