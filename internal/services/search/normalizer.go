package search

import (
	"github.com/ternarybob/dinescout/internal/models"
)

// Normalize maps one raw provider listing to a ListingRecord.
// Coordinates are all-or-nothing: both lat and lng must be present.
// A price level outside 1..4 is treated as absent.
func Normalize(raw models.RawListing) models.ListingRecord {
	record := models.ListingRecord{
		Name:    raw.Name,
		PlaceID: raw.PlaceID,
		Address: raw.FormattedAddress,
	}

	if raw.Rating != nil {
		rating := *raw.Rating
		record.Rating = &rating
	}

	if raw.UserRatingsTotal != nil && *raw.UserRatingsTotal > 0 {
		record.RatingCount = *raw.UserRatingsTotal
	}

	if raw.PriceLevel != nil && *raw.PriceLevel >= 1 && *raw.PriceLevel <= 4 {
		level := *raw.PriceLevel
		record.PriceLevel = &level
	}

	if len(raw.Photos) > 0 && raw.Photos[0].PhotoReference != "" {
		ref := raw.Photos[0].PhotoReference
		record.PhotoReference = &ref
	}

	record.Coordinates = extractCoordinates(raw.Geometry)

	return record
}

func extractCoordinates(geometry *models.RawGeometry) *models.Coordinates {
	if geometry == nil || geometry.Location == nil {
		return nil
	}
	location := geometry.Location
	if location.Lat == nil || location.Lng == nil {
		return nil
	}
	return &models.Coordinates{
		Lat: *location.Lat,
		Lng: *location.Lng,
	}
}
