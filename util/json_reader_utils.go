package util

import (
	"encoding/json"
	"fmt"
	"os"

	"reserve-assistant/models"
)

// ReadShopSearchResponseFromJSON loads a recorded directory response from disk.
func ReadShopSearchResponseFromJSON(filePath string) (*models.ShopSearchResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.ShopSearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ShopSearchResponse: %w", err)
	}
	return &resp, nil
}

// ReadPlacesSearchResponseFromJSON loads a recorded places text search response from disk.
func ReadPlacesSearchResponseFromJSON(filePath string) (*models.PlacesSearchResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.PlacesSearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal PlacesSearchResponse: %w", err)
	}
	return &resp, nil
}
