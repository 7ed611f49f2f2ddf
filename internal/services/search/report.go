package search

import (
	"github.com/ternarybob/dinescout/internal/models"
)

// Summarize computes the aggregate statistics for a result set.
// AverageRating is the mean over rated listings only, or 0 when none are rated.
func Summarize(listings []models.EnrichedListing, pagesFetched int) models.SearchSummary {
	summary := models.SearchSummary{
		TotalFound:   len(listings),
		PagesFetched: pagesFetched,
	}

	var ratingSum float64
	rated := 0
	for _, listing := range listings {
		if listing.Rating != nil {
			ratingSum += *listing.Rating
			rated++
		}
		if listing.Website != nil {
			summary.WithWebsites++
		}
	}

	if rated > 0 {
		summary.AverageRating = ratingSum / float64(rated)
	}

	return summary
}
