package services

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"

	"reserve-assistant/api/places"
	"reserve-assistant/models/shop"
)

// RatingEnricher attaches a places rating and review count to each shop.
type RatingEnricher struct {
	placesApi places.PlacesAPI
	pool      *Pool
	logger    arbor.ILogger
}

func NewRatingEnricher(placesApi places.PlacesAPI, pool *Pool, logger arbor.ILogger) *RatingEnricher {
	return &RatingEnricher{
		placesApi: placesApi,
		pool:      pool,
		logger:    logger,
	}
}

// Enrich looks the shop up by name and address. Any failure, or no match,
// yields rating 0 and review count 0.
func (e *RatingEnricher) Enrich(ctx context.Context, s shop.Shop) shop.EnrichedShop {
	enriched := shop.EnrichedShop{Shop: s}

	query := strings.TrimSpace(s.Name + " " + s.Address)
	resp, err := e.placesApi.TextSearch(ctx, query)
	if err != nil {
		e.logger.Warn().Err(err).Str("shop_id", s.ID).Msg("[RatingEnricher] Places lookup failed, using zero rating")
		return enriched
	}
	if resp == nil || len(resp.Results) == 0 {
		return enriched
	}

	first := resp.Results[0]
	if first.Rating > 0 {
		enriched.Rating = first.Rating
	}
	if first.UserRatingsTotal > 0 {
		enriched.ReviewCount = first.UserRatingsTotal
	}
	return enriched
}

// EnrichAll enriches every shop concurrently. The output keeps the input order.
func (e *RatingEnricher) EnrichAll(ctx context.Context, shops []shop.Shop) []shop.EnrichedShop {
	out := make([]shop.EnrichedShop, len(shops))
	for i, s := range shops {
		out[i] = shop.EnrichedShop{Shop: s}
	}
	e.pool.Run(ctx, len(shops), func(ctx context.Context, i int) {
		out[i] = e.Enrich(ctx, shops[i])
	})
	return out
}
