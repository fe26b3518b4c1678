// models/places_search_response.go
package models

// PlacesSearchResponse matches the places text search API response.
type PlacesSearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []PlaceResult `json:"results"`
}

// PlaceResult matches a single "results[N]". Rating fields are absent for
// places nobody has reviewed and decode as zero.
type PlaceResult struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
	UserRatingsTotal int     `json:"user_ratings_total,omitempty"`
}

const (
	PlacesStatusOK          = "OK"
	PlacesStatusZeroResults = "ZERO_RESULTS"
)
