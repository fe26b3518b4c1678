package services

import (
	"sort"
	"time"

	"reserve-assistant/models/shop"
)

// Rank orders shops by rating, highest first. Equal ratings fall back to
// review count, highest first, then to shop id so the order is reproducible.
// Rank, Tier and ClosedDayHint are filled in on the returned copy.
func Rank(venues []shop.EnrichedShop, weekday time.Weekday) []shop.EnrichedShop {
	ranked := append([]shop.EnrichedShop(nil), venues...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		return a.ID < b.ID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Tier = shop.TierFor(ranked[i].Rating)
		ranked[i].ClosedDayHint = MentionsWeekday(ranked[i].Close, weekday)
	}
	return ranked
}
