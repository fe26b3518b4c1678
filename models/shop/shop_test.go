package shop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"number", `{"id":"J1","party_capacity":40}`, "40"},
		{"string", `{"id":"J1","party_capacity":"25"}`, "25"},
		{"empty string", `{"id":"J1","party_capacity":""}`, ""},
		{"missing", `{"id":"J1"}`, ""},
		{"null", `{"id":"J1","party_capacity":null}`, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var s Shop
			require.NoError(t, json.Unmarshal([]byte(test.raw), &s))
			assert.Equal(t, "J1", s.ID)
			assert.Equal(t, Capacity(test.want), s.PartyCapacity)
		})
	}
}

func TestShop_UnmarshalJSON_NestedFields(t *testing.T) {
	raw := `{
		"id": "J000123",
		"name": "炭火焼 大手町",
		"address": "東京都千代田区大手町1-1",
		"lat": 35.6866,
		"lng": 139.7637,
		"open": "月～金: 17:00～23:00",
		"close": "日曜、祝日",
		"party_capacity": 60,
		"budget": {"code": "B003", "name": "3001～4000円", "average": "3500円"},
		"genre": {"code": "G001", "name": "居酒屋"},
		"photo": {"pc": {"l": "https://img.example/l.jpg"}},
		"urls": {"pc": "https://www.hotpepper.jp/strJ000123/"}
	}`

	var s Shop
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, "炭火焼 大手町", s.Name)
	assert.Equal(t, 35.6866, s.Lat)
	assert.Equal(t, Capacity("60"), s.PartyCapacity)
	assert.Equal(t, "3500円", s.Budget.Average)
	assert.Equal(t, "居酒屋", s.Genre.Name)
	assert.Equal(t, "https://img.example/l.jpg", s.PhotoURL())
	assert.Equal(t, "https://www.hotpepper.jp/strJ000123/", s.BookingURL())
}

func TestShop_RoundTripKeepsCapacity(t *testing.T) {
	in := Shop{ID: "J9", PartyCapacity: "12"}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Shop
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, Capacity("12"), out.PartyCapacity)
}

func TestEnrichedShop_JSONKeepsShopAndRating(t *testing.T) {
	in := EnrichedShop{
		Shop:        Shop{ID: "J9", Name: "鮨 しま", PartyCapacity: "8"},
		Rating:      4.2,
		ReviewCount: 130,
		Rank:        1,
		Tier:        TierHigh,
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out EnrichedShop
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierHigh, TierFor(4.0))
	assert.Equal(t, TierHigh, TierFor(4.6))
	assert.Equal(t, TierMid, TierFor(3.0))
	assert.Equal(t, TierMid, TierFor(3.99))
	assert.Equal(t, TierLow, TierFor(0))
	assert.Equal(t, "#2980b9", TierColor(TierHigh))
	assert.Equal(t, "#7f8c8d", TierColor("unknown"))
}
