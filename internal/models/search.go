package models

// SearchRequest is the body of a restaurant search call
type SearchRequest struct {
	Query        string `json:"query" validate:"required"`
	Location     string `json:"location"` // Free text or "lat,lng"
	MaxResults   int    `json:"max_results" validate:"gte=0"`
	ScanWebsites bool   `json:"scan_websites"`
}

// SearchSummary holds aggregate statistics for a search
type SearchSummary struct {
	TotalFound    int     `json:"total_found"`
	PagesFetched  int     `json:"pages_fetched"`
	WithWebsites  int     `json:"with_websites"`
	AverageRating float64 `json:"average_rating"`
}

// SearchResult is the final payload of the search pipeline
type SearchResult struct {
	SearchID     string            `json:"search_id"`
	Query        string            `json:"query"`
	Location     string            `json:"location"`
	Results      []EnrichedListing `json:"results"`
	TotalFound   int               `json:"total_found"`
	PagesFetched int               `json:"pages_fetched"`
	StopReason   string            `json:"stop_reason"`
	Summary      SearchSummary     `json:"summary"`
}
