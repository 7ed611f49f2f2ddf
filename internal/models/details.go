package models

// PlaceDetails is the detail view of one place, including its website
type PlaceDetails struct {
	Name             string   `json:"name"`
	PlaceID          string   `json:"place_id"`
	Website          *string  `json:"website"`
	Phone            string   `json:"phone,omitempty"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
	PriceLevel       *int     `json:"price_level"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Hours            []string `json:"hours"`
	Reviews          []Review `json:"reviews"`
	Types            []string `json:"types"`
	BusinessStatus   string   `json:"business_status"`
	PhotoReference   *string  `json:"photo_reference"`
}

// Review is a shortened provider review
type Review struct {
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
	Time   string  `json:"time"`
}
