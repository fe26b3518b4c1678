package places

import (
	"context"

	"reserve-assistant/models"
)

// PlacesAPI defines the interface for the places text search used to rate shops
type PlacesAPI interface {
	TextSearch(ctx context.Context, query string) (*models.PlacesSearchResponse, error)
}
