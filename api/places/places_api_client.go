package places

import (
	"context"
	"fmt"
	"net/url"

	"reserve-assistant/api"
	"reserve-assistant/models"
	"reserve-assistant/models/apperr"
)

const SOURCE_NAME = "places"
const TEXT_SEARCH_ENDPOINT = "/textsearch/json"

// PlacesApiClient embeds the common HTTPClient
type PlacesApiClient struct {
	*api.HTTPClient
	apiKey   string
	language string
}

// NewPlacesApiClient creates a new instance of PlacesApiClient
func NewPlacesApiClient(httpClient *api.HTTPClient, apiKey, language string) *PlacesApiClient {
	return &PlacesApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
		language:   language,
	}
}

// TextSearch looks a free-text query up. ZERO_RESULTS is a successful empty
// response; any other non-OK status is a SourceError.
func (c *PlacesApiClient) TextSearch(ctx context.Context, query string) (*models.PlacesSearchResponse, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}

	var response models.PlacesSearchResponse
	if err := c.Request(ctx, "GET", TEXT_SEARCH_ENDPOINT, q, nil, nil, &response); err != nil {
		return nil, apperr.Source(SOURCE_NAME, err)
	}

	if response.Status != models.PlacesStatusOK && response.Status != models.PlacesStatusZeroResults {
		return nil, apperr.Source(SOURCE_NAME, fmt.Errorf("api status %s: %s", response.Status, response.ErrorMessage))
	}

	return &response, nil
}
