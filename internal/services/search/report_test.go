package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/dinescout/internal/models"
)

func listingWithRating(rating *float64) models.EnrichedListing {
	return models.EnrichedListing{ListingRecord: models.ListingRecord{Rating: rating}}
}

func TestSummarize_NoRatedListings(t *testing.T) {
	summary := Summarize([]models.EnrichedListing{
		listingWithRating(nil),
		listingWithRating(nil),
	}, 1)

	assert.Equal(t, 2, summary.TotalFound)
	assert.Equal(t, 1, summary.PagesFetched)
	assert.Equal(t, 0.0, summary.AverageRating)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, 0)
	assert.Equal(t, models.SearchSummary{}, summary)
}

func TestSummarize_UnratedExcludedFromMean(t *testing.T) {
	summary := Summarize([]models.EnrichedListing{
		listingWithRating(floatPtr(4.0)),
		listingWithRating(nil),
		listingWithRating(floatPtr(5.0)),
		listingWithRating(floatPtr(3.0)),
	}, 2)

	assert.Equal(t, 4, summary.TotalFound)
	assert.InDelta(t, 4.0, summary.AverageRating, 1e-9)
}

func TestSummarize_ZeroRatingCountsAsPresent(t *testing.T) {
	summary := Summarize([]models.EnrichedListing{
		listingWithRating(floatPtr(0)),
		listingWithRating(floatPtr(4.0)),
	}, 1)

	assert.InDelta(t, 2.0, summary.AverageRating, 1e-9)
}

func TestSummarize_WithWebsites(t *testing.T) {
	site := "https://example.com"
	withSite := listingWithRating(nil)
	withSite.Website = &site

	summary := Summarize([]models.EnrichedListing{withSite, listingWithRating(nil)}, 1)

	assert.Equal(t, 1, summary.WithWebsites)
}
