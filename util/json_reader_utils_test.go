package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestReadShopSearchResponseFromJSON(t *testing.T) {
	content := `{
		"results": {
			"api_version": "1.30",
			"results_available": 2,
			"results_start": 1,
			"shop": [
				{"id": "J001", "name": "炭火焼 大手町", "party_capacity": 40, "close": "日"},
				{"id": "J002", "name": "酒場 丸の内", "party_capacity": "20名"}
			]
		}
	}`
	path := createTempFile(t, content)

	resp, err := ReadShopSearchResponseFromJSON(path)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Results.ResultsAvailable)
	require.Len(t, resp.Results.Shops, 2)
	assert.Equal(t, "J001", resp.Results.Shops[0].ID)
	assert.Equal(t, "40", string(resp.Results.Shops[0].PartyCapacity))
	assert.Equal(t, "20名", string(resp.Results.Shops[1].PartyCapacity))
}

func TestReadPlacesSearchResponseFromJSON(t *testing.T) {
	content := `{
		"status": "OK",
		"results": [
			{"place_id": "p1", "name": "炭火焼 大手町", "rating": 4.2, "user_ratings_total": 120}
		]
	}`
	path := createTempFile(t, content)

	resp, err := ReadPlacesSearchResponseFromJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "OK", resp.Status)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 4.2, resp.Results[0].Rating)
	assert.Equal(t, 120, resp.Results[0].UserRatingsTotal)
}

func TestReadFromJSON_Errors(t *testing.T) {
	_, err := ReadShopSearchResponseFromJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := createTempFile(t, `{not json`)
	_, err = ReadPlacesSearchResponseFromJSON(bad)
	assert.Error(t, err)
}
