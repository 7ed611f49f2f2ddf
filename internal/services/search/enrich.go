package search

import (
	"github.com/ternarybob/dinescout/internal/models"
)

// Revenue tiers, highest first
const (
	TierHigh       = "High"
	TierMediumHigh = "Medium-High"
	TierMedium     = "Medium"
	TierLow        = "Low"
)

// DefaultPriceLevelDisplay is shown when the price level is unknown
const DefaultPriceLevelDisplay = "$$"

var priceLevelSymbols = map[int]string{
	1: "$",
	2: "$$",
	3: "$$$",
	4: "$$$$",
}

// PriceLevelDisplay returns the dollar-sign display for a price level
func PriceLevelDisplay(level *int) string {
	if level == nil {
		return DefaultPriceLevelDisplay
	}
	if symbol, ok := priceLevelSymbols[*level]; ok {
		return symbol
	}
	return DefaultPriceLevelDisplay
}

// EstimateRevenueTier scores a listing from its rating, price level and review volume.
// Absent rating and price level default to 0 and 1. Thresholds are inclusive on the lower bound.
func EstimateRevenueTier(rating *float64, priceLevel *int, ratingCount int) models.RevenueTier {
	r := 0.0
	if rating != nil {
		r = *rating
	}
	p := 1
	if priceLevel != nil {
		p = *priceLevel
	}

	score := ratingScore(r) + p*15 + popularityScore(ratingCount)

	switch {
	case score >= 90:
		return models.RevenueTier{Tier: TierHigh, EstimatedAnnualRange: "$2M+", Confidence: "Medium", Score: score}
	case score >= 70:
		return models.RevenueTier{Tier: TierMediumHigh, EstimatedAnnualRange: "$1M-$2M", Confidence: "Medium", Score: score}
	case score >= 50:
		return models.RevenueTier{Tier: TierMedium, EstimatedAnnualRange: "$500K-$1M", Confidence: "Low", Score: score}
	default:
		return models.RevenueTier{Tier: TierLow, EstimatedAnnualRange: "<$500K", Confidence: "Low", Score: score}
	}
}

func ratingScore(rating float64) int {
	switch {
	case rating >= 4.5:
		return 40
	case rating >= 4.0:
		return 30
	case rating >= 3.5:
		return 20
	default:
		return 10
	}
}

func popularityScore(ratingCount int) int {
	switch {
	case ratingCount > 1000:
		return 30
	case ratingCount > 500:
		return 20
	case ratingCount > 100:
		return 10
	default:
		return 5
	}
}

// Enrich derives the display fields and revenue tier for a normalized record
func Enrich(record models.ListingRecord) models.EnrichedListing {
	enriched := models.EnrichedListing{
		ListingRecord:     record,
		FormattedAddress:  record.Address,
		BusinessStatus:    models.DefaultBusinessStatus,
		PriceLevelDisplay: PriceLevelDisplay(record.PriceLevel),
		RevenueTier:       EstimateRevenueTier(record.Rating, record.PriceLevel, record.RatingCount),
		MAScore:           models.DefaultMAScore,
		KeywordsFound:     models.DefaultKeywordsFound,
	}

	if record.Coordinates != nil {
		lat := record.Coordinates.Lat
		lng := record.Coordinates.Lng
		enriched.Lat = &lat
		enriched.Lng = &lng
	}

	return enriched
}
