package interfaces

import (
	"context"

	"github.com/ternarybob/dinescout/internal/models"
)

// PlacesClient defines the operations against the external places provider
type PlacesClient interface {
	// FetchPage issues one text search request. pageToken is empty for the first page.
	// A non-OK provider status or non-2xx response returns a *common.ProviderError,
	// a network failure a *common.TransportError.
	FetchPage(ctx context.Context, query string, bias *models.LocationBias, pageToken string) (*models.SearchPage, error)

	// TextSearchRaw returns the provider text search JSON untouched
	TextSearchRaw(ctx context.Context, query, location, radius string) (map[string]interface{}, error)

	// Geocode returns the provider geocoding JSON untouched
	Geocode(ctx context.Context, address string) (map[string]interface{}, error)

	// PlaceDetails returns the detail view of a place, including its website
	PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error)

	// IsConfigured reports whether a provider credential was supplied
	IsConfigured() bool
}
