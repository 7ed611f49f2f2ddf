package places

import (
	"github.com/ternarybob/dinescout/internal/models"
)

// textSearchResponse represents the Places Text Search API response
type textSearchResponse struct {
	HTMLAttributions []string            `json:"html_attributions"`
	Results          []models.RawListing `json:"results"`
	Status           string              `json:"status"`
	ErrorMessage     string              `json:"error_message,omitempty"`
	NextPageToken    string              `json:"next_page_token,omitempty"`
}

// detailsResponse represents the Places Details API response
type detailsResponse struct {
	Result       *detailsResult `json:"result,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

type detailsResult struct {
	Name                 string               `json:"name"`
	PlaceID              string               `json:"place_id"`
	Website              string               `json:"website,omitempty"`
	FormattedPhoneNumber string               `json:"formatted_phone_number,omitempty"`
	FormattedAddress     string               `json:"formatted_address,omitempty"`
	Rating               *float64             `json:"rating,omitempty"`
	PriceLevel           *int                 `json:"price_level,omitempty"`
	UserRatingsTotal     *int                 `json:"user_ratings_total,omitempty"`
	OpeningHours         *models.OpeningHours `json:"opening_hours,omitempty"`
	Reviews              []review             `json:"reviews,omitempty"`
	Photos               []models.RawPhoto    `json:"photos,omitempty"`
	Types                []string             `json:"types,omitempty"`
}

type review struct {
	AuthorName              string  `json:"author_name"`
	Rating                  float64 `json:"rating"`
	Text                    string  `json:"text"`
	RelativeTimeDescription string  `json:"relative_time_description"`
}

// detailsFields is the field mask requested from the Details API
const detailsFields = "name,place_id,website,formatted_phone_number,formatted_address,rating,price_level,opening_hours,reviews,photos,types,user_ratings_total"
