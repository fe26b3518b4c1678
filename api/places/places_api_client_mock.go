package places

import (
	"context"
	"fmt"

	"reserve-assistant/models"
	"reserve-assistant/util"
)

// PlacesApiClientMock answers every query with the same recorded response.
type PlacesApiClientMock struct {
	response *models.PlacesSearchResponse
}

// NewPlacesApiClientMock creates a mock answering with response.
func NewPlacesApiClientMock(response *models.PlacesSearchResponse) *PlacesApiClientMock {
	return &PlacesApiClientMock{response: response}
}

// NewPlacesApiClientMockFromJSON creates a mock answering with a recorded response file.
func NewPlacesApiClientMockFromJSON(filePath string) (*PlacesApiClientMock, error) {
	response, err := util.ReadPlacesSearchResponseFromJSON(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not read places search response: %w", err)
	}
	return NewPlacesApiClientMock(response), nil
}

func (c *PlacesApiClientMock) TextSearch(ctx context.Context, query string) (*models.PlacesSearchResponse, error) {
	if c.response == nil {
		return &models.PlacesSearchResponse{Status: models.PlacesStatusZeroResults}, nil
	}
	return c.response, nil
}
