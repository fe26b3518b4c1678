package hotpepper

import (
	"context"
	"fmt"

	"reserve-assistant/api"
	"reserve-assistant/models"
	"reserve-assistant/models/apperr"
	"reserve-assistant/models/shop"
)

const SOURCE_NAME = "hotpepper"
const SHOP_SEARCH_ENDPOINT = "/gourmet/v1/"

// HotPepperApiClient embeds the common HTTPClient
type HotPepperApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
	apiKey          string
}

// NewHotPepperApiClient creates a new instance of HotPepperApiClient
func NewHotPepperApiClient(httpClient *api.HTTPClient, apiKey string) *HotPepperApiClient {
	return &HotPepperApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
	}
}

// SearchShops runs one keyword search for a single budget filter (or none).
// Every failure is returned as a SourceError; shops without an id are dropped
// because the id is the merge key downstream.
func (c *HotPepperApiClient) SearchShops(ctx context.Context, params models.ShopSearchParams) ([]shop.Shop, error) {
	query := params.ToValues()
	query.Set("key", c.apiKey)

	var response models.ShopSearchResponse
	if err := c.Request(ctx, "GET", SHOP_SEARCH_ENDPOINT, query, nil, nil, &response); err != nil {
		return nil, apperr.Source(SOURCE_NAME, err)
	}

	if len(response.Results.Errors) > 0 {
		e := response.Results.Errors[0]
		return nil, apperr.Source(SOURCE_NAME, fmt.Errorf("api error %d: %s", e.Code, e.Message))
	}

	shops := make([]shop.Shop, 0, len(response.Results.Shops))
	for _, s := range response.Results.Shops {
		if s.ID == "" {
			continue
		}
		shops = append(shops, s)
	}
	return shops, nil
}
