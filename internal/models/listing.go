package models

// Placeholder values the dashboard expects on every listing
const (
	DefaultBusinessStatus = "OPERATIONAL"
	DefaultKeywordsFound  = "No website"
	NoKeywordsFound       = "None found"
	DefaultMAScore        = 50
)

// Coordinates is a complete lat/lng pair; it is never partially populated
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ListingRecord is the normalized internal shape of one place
type ListingRecord struct {
	Name           string       `json:"name"`
	PlaceID        string       `json:"place_id"`
	Rating         *float64     `json:"rating"`
	RatingCount    int          `json:"user_ratings_total"`
	Address        string       `json:"address"`
	PriceLevel     *int         `json:"price_level"`
	PhotoReference *string      `json:"photo_reference"`
	Coordinates    *Coordinates `json:"coordinates"`
}

// RevenueTier is a coarse heuristic classification of business scale
type RevenueTier struct {
	Tier                 string `json:"tier"`
	EstimatedAnnualRange string `json:"estimated_annual"`
	Confidence           string `json:"confidence"`
	Score                int    `json:"score"`
}

// EnrichedListing is a ListingRecord plus derived display fields
type EnrichedListing struct {
	ListingRecord

	Lat               *float64    `json:"lat,omitempty"`
	Lng               *float64    `json:"lng,omitempty"`
	FormattedAddress  string      `json:"formatted_address"`
	BusinessStatus    string      `json:"business_status"`
	PriceLevelDisplay string      `json:"price_level_display"`
	RevenueTier       RevenueTier `json:"revenue_tier"`
	MAScore           int         `json:"ma_score"`
	Website           *string     `json:"website"`
	KeywordsFound     string      `json:"keywords_found"`
}
