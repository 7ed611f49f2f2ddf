package models

import (
	"bytes"
	"encoding/json"
)

// Provider status values for a text search page
const (
	ProviderStatusOK          = "OK"
	ProviderStatusZeroResults = "ZERO_RESULTS"
	ProviderStatusError       = "ERROR"
)

// RawListing is one place exactly as returned by the provider.
// Every field is optional; pointers distinguish absent/null from zero.
type RawListing struct {
	Name             string        `json:"name,omitempty"`
	PlaceID          string        `json:"place_id,omitempty"`
	FormattedAddress string        `json:"formatted_address,omitempty"`
	BusinessStatus   string        `json:"business_status,omitempty"`
	Geometry         *RawGeometry  `json:"geometry,omitempty"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	Photos           []RawPhoto    `json:"photos,omitempty"`
	Types            []string      `json:"types,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
}

// RawGeometry is the nested geometry block of a provider place
type RawGeometry struct {
	Location *RawLatLng `json:"location,omitempty"`
}

// RawLatLng keeps lat and lng independently nullable
type RawLatLng struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// UnmarshalJSON decodes lat and lng leniently: null, missing or
// non-numeric values leave the field nil instead of failing the page.
func (l *RawLatLng) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lat json.RawMessage `json:"lat"`
		Lng json.RawMessage `json:"lng"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		l.Lat, l.Lng = nil, nil
		return nil
	}
	l.Lat = numberOrNil(raw.Lat)
	l.Lng = numberOrNil(raw.Lng)
	return nil
}

func numberOrNil(msg json.RawMessage) *float64 {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err != nil {
		return nil
	}
	return &f
}

// RawPhoto is a provider photo reference
type RawPhoto struct {
	Height           int      `json:"height,omitempty"`
	Width            int      `json:"width,omitempty"`
	PhotoReference   string   `json:"photo_reference,omitempty"`
	HTMLAttributions []string `json:"html_attributions,omitempty"`
}

// OpeningHours represents the opening hours of a place
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// SearchPage is one page of text search results plus its continuation token.
// An empty NextPageToken means there are no further pages.
type SearchPage struct {
	Status        string       `json:"status"`
	Results       []RawListing `json:"results"`
	NextPageToken string       `json:"next_page_token,omitempty"`
}

// LocationBias is a circular geo-bias around a point
type LocationBias struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters int     `json:"radius_meters"`
}
