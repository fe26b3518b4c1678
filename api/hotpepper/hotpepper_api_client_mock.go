package hotpepper

import (
	"context"
	"fmt"
	"sync"

	"reserve-assistant/models"
	"reserve-assistant/models/shop"
	"reserve-assistant/util"
)

// HotPepperApiClientMock serves canned shops instead of calling the directory.
// Pages are cut from the canned list by Start and Count; the budget filter
// is recorded but not applied.
type HotPepperApiClientMock struct {
	shops []shop.Shop

	mu    sync.Mutex
	calls []models.ShopSearchParams
}

// NewHotPepperApiClientMock creates a mock serving the given shops.
func NewHotPepperApiClientMock(shops []shop.Shop) *HotPepperApiClientMock {
	return &HotPepperApiClientMock{shops: shops}
}

// NewHotPepperApiClientMockFromJSON creates a mock serving a recorded search response.
func NewHotPepperApiClientMockFromJSON(filePath string) (*HotPepperApiClientMock, error) {
	response, err := util.ReadShopSearchResponseFromJSON(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not read shop search response: %w", err)
	}
	return NewHotPepperApiClientMock(response.Results.Shops), nil
}

func (c *HotPepperApiClientMock) SearchShops(ctx context.Context, params models.ShopSearchParams) ([]shop.Shop, error) {
	c.mu.Lock()
	c.calls = append(c.calls, params)
	c.mu.Unlock()

	start := params.Start - 1
	if start < 0 {
		start = 0
	}
	if start >= len(c.shops) {
		return []shop.Shop{}, nil
	}
	end := len(c.shops)
	if params.Count > 0 && start+params.Count < end {
		end = start + params.Count
	}
	return append([]shop.Shop(nil), c.shops[start:end]...), nil
}

// Calls returns the parameters of every search made so far.
func (c *HotPepperApiClientMock) Calls() []models.ShopSearchParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ShopSearchParams(nil), c.calls...)
}
