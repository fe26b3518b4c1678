package shop

// Rating tiers used to colour results, mirroring the thresholds of the list view.
const (
	TierHigh = "high"
	TierMid  = "mid"
	TierLow  = "low"
)

// EnrichedShop is a qualifying shop with its places rating attached.
type EnrichedShop struct {
	Shop
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	// Filled by the ranking stage.
	Rank          int    `json:"rank"`
	Tier          string `json:"tier"`
	ClosedDayHint bool   `json:"closed_day_hint"`
}

// TierFor maps a rating onto its colour tier.
func TierFor(rating float64) string {
	switch {
	case rating >= 4.0:
		return TierHigh
	case rating >= 3.0:
		return TierMid
	default:
		return TierLow
	}
}

// TierColor returns the pin/badge colour for a tier.
func TierColor(tier string) string {
	switch tier {
	case TierHigh:
		return "#2980b9"
	case TierMid:
		return "#27ae60"
	default:
		return "#7f8c8d"
	}
}
