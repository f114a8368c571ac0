// internal/profit/partner.go
package profit

// SplitType selects how the partner's share of net shared profit is
// determined.
type SplitType string

const (
	SplitPercentage SplitType = "percentage"
	SplitFixed      SplitType = "fixed"
)

// ValidSplitType reports whether s is a known split mode.
func ValidSplitType(s string) bool {
	switch SplitType(s) {
	case SplitPercentage, SplitFixed:
		return true
	}
	return false
}

// Distribution is the partner settlement for one deal.
type Distribution struct {
	PartnerShare       float64 `json:"partnerShare"`
	LuminaShare        float64 `json:"luminaShare"`
	PartnerPayoutTotal float64 `json:"partnerPayoutTotal"`
}

// Distribute splits net shared profit between the dealership and the
// capital partner. Capital contributed is returned in full alongside the
// profit share and is never subject to the split. An unrecognized split
// type falls back to percentage; callers validate upstream.
func Distribute(netSharedProfit float64, splitType SplitType, splitValue, partnerCapital float64) Distribution {
	var partnerShare float64
	switch splitType {
	case SplitFixed:
		partnerShare = splitValue
	default:
		partnerShare = netSharedProfit * splitValue / 100
	}

	return Distribution{
		PartnerShare:       partnerShare,
		LuminaShare:        netSharedProfit - partnerShare,
		PartnerPayoutTotal: partnerCapital + partnerShare,
	}
}
