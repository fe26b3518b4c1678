package hotpepper

import (
	"context"

	"reserve-assistant/models"
	"reserve-assistant/models/shop"
)

// HotPepperAPI defines the interface for interacting with the gourmet directory search API
type HotPepperAPI interface {
	SearchShops(ctx context.Context, params models.ShopSearchParams) ([]shop.Shop, error)
}
