package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/dinescout/internal/models"
)

func decodeListing(t *testing.T, raw string) models.RawListing {
	t.Helper()
	var listing models.RawListing
	require.NoError(t, json.Unmarshal([]byte(raw), &listing))
	return listing
}

func TestNormalize_FullListing(t *testing.T) {
	raw := decodeListing(t, `{
		"name": "Joe's Pizza",
		"place_id": "p1",
		"formatted_address": "7 Carmine St, New York",
		"geometry": {"location": {"lat": 40.73, "lng": -74.0}},
		"rating": 4.6,
		"user_ratings_total": 1200,
		"price_level": 2,
		"photos": [{"photo_reference": "ph-1"}, {"photo_reference": "ph-2"}]
	}`)

	record := Normalize(raw)

	assert.Equal(t, "Joe's Pizza", record.Name)
	assert.Equal(t, "p1", record.PlaceID)
	assert.Equal(t, "7 Carmine St, New York", record.Address)
	require.NotNil(t, record.Rating)
	assert.Equal(t, 4.6, *record.Rating)
	assert.Equal(t, 1200, record.RatingCount)
	require.NotNil(t, record.PriceLevel)
	assert.Equal(t, 2, *record.PriceLevel)
	require.NotNil(t, record.PhotoReference)
	assert.Equal(t, "ph-1", *record.PhotoReference)
	require.NotNil(t, record.Coordinates)
	assert.Equal(t, models.Coordinates{Lat: 40.73, Lng: -74.0}, *record.Coordinates)
}

func TestNormalize_CoordinatesAllOrNothing(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantCoords bool
	}{
		{"both present", `{"geometry": {"location": {"lat": 1.5, "lng": 2.5}}}`, true},
		{"zero values are present", `{"geometry": {"location": {"lat": 0, "lng": 0}}}`, true},
		{"lat missing", `{"geometry": {"location": {"lng": 2.5}}}`, false},
		{"lng null", `{"geometry": {"location": {"lat": 1.5, "lng": null}}}`, false},
		{"lat not numeric", `{"geometry": {"location": {"lat": "abc", "lng": 2.5}}}`, false},
		{"location null", `{"geometry": {"location": null}}`, false},
		{"location not an object", `{"geometry": {"location": "here"}}`, false},
		{"geometry missing", `{"name": "x"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Normalize(decodeListing(t, tt.raw))
			if tt.wantCoords {
				assert.NotNil(t, record.Coordinates)
			} else {
				assert.Nil(t, record.Coordinates)
			}
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	record := Normalize(models.RawListing{Name: "Bare"})

	assert.Nil(t, record.Rating)
	assert.Equal(t, 0, record.RatingCount)
	assert.Nil(t, record.PriceLevel)
	assert.Nil(t, record.PhotoReference)
	assert.Nil(t, record.Coordinates)
}

func TestNormalize_PriceLevelRange(t *testing.T) {
	for _, level := range []int{0, 5, -1} {
		l := level
		record := Normalize(models.RawListing{PriceLevel: &l})
		assert.Nil(t, record.PriceLevel, "price level %d should be absent", level)
	}
	for _, level := range []int{1, 2, 3, 4} {
		l := level
		record := Normalize(models.RawListing{PriceLevel: &l})
		require.NotNil(t, record.PriceLevel)
		assert.Equal(t, level, *record.PriceLevel)
	}
}

func TestNormalize_EmptyPhotoList(t *testing.T) {
	record := Normalize(models.RawListing{Photos: []models.RawPhoto{}})
	assert.Nil(t, record.PhotoReference)
}

func TestNormalize_DoesNotAliasRawPointers(t *testing.T) {
	rating := 4.0
	level := 3
	raw := models.RawListing{Rating: &rating, PriceLevel: &level}

	record := Normalize(raw)
	rating = 1.0
	level = 1

	assert.Equal(t, 4.0, *record.Rating)
	assert.Equal(t, 3, *record.PriceLevel)
}
