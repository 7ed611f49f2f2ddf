package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/interfaces"
	"github.com/ternarybob/dinescout/internal/models"
)

// SearchResponse is the body of a successful POST /search_restaurants
type SearchResponse struct {
	Status       string                   `json:"status"`
	SearchID     string                   `json:"search_id"`
	Results      []models.EnrichedListing `json:"results"`
	TotalFound   int                      `json:"total_found"`
	PagesFetched int                      `json:"pages_fetched"`
	StopReason   string                   `json:"stop_reason"`
	Summary      models.SearchSummary     `json:"summary"`
}

// SearchHandler serves restaurant searches
type SearchHandler struct {
	searchService interfaces.SearchService
	logger        arbor.ILogger
}

// NewSearchHandler creates a new search handler with dependencies
func NewSearchHandler(searchService interfaces.SearchService, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// SearchRestaurantsHandler handles POST /search_restaurants
func (h *SearchHandler) SearchRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.SearchRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	result, err := h.searchService.Search(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	summary := result.Summary
	summary.AverageRating = roundTo1(summary.AverageRating)

	results := result.Results
	if results == nil {
		results = []models.EnrichedListing{}
	}

	WriteJSON(w, http.StatusOK, SearchResponse{
		Status:       "success",
		SearchID:     result.SearchID,
		Results:      results,
		TotalFound:   result.TotalFound,
		PagesFetched: result.PagesFetched,
		StopReason:   result.StopReason,
		Summary:      summary,
	})
}
