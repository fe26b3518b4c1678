// models/shop_search_response.go
package models

import "reserve-assistant/models/shop"

// ShopSearchResponse is the top-level JSON returned by GET /gourmet/v1/.
type ShopSearchResponse struct {
	Results ShopSearchResults `json:"results"`
}

type ShopSearchResults struct {
	APIVersion       string      `json:"api_version,omitempty"`
	ResultsAvailable int         `json:"results_available,omitempty"`
	ResultsStart     int         `json:"results_start,omitempty"`
	Shops            []shop.Shop `json:"shop"`

	// Only present when the request was rejected.
	Errors []DirectoryError `json:"error,omitempty"`
}

type DirectoryError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
