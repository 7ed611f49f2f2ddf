package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/common"
	"github.com/ternarybob/dinescout/internal/interfaces"
	"github.com/ternarybob/dinescout/internal/services/places"
)

// MapsKeywordsLabel replaces keywords_found on passthrough results
const MapsKeywordsLabel = "View on Maps"

// PlacesHandler serves the provider passthrough endpoints
type PlacesHandler struct {
	client        interfaces.PlacesClient
	querySuffix   string
	defaultRadius int
	logger        arbor.ILogger
}

// NewPlacesHandler creates a places handler
func NewPlacesHandler(client interfaces.PlacesClient, config *common.SearchConfig, logger arbor.ILogger) *PlacesHandler {
	return &PlacesHandler{
		client:        client,
		querySuffix:   config.QuerySuffix,
		defaultRadius: config.GeoBiasRadius,
		logger:        logger,
	}
}

// PlacesHandler handles GET /places?query&location&radius.
// Returns the provider JSON with each result's website replaced by a Maps link.
func (h *PlacesHandler) PlacesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	if query == "" || location == "" {
		WriteError(w, http.StatusBadRequest, "Query and location parameters required", common.ErrorTypeBadRequest)
		return
	}

	radius := r.URL.Query().Get("radius")
	if _, err := strconv.Atoi(radius); err != nil {
		radius = strconv.Itoa(h.defaultRadius)
	}

	if !h.client.IsConfigured() {
		WriteServiceError(w, h.logger, &common.ConfigurationError{Message: "Google Places API key not configured"})
		return
	}

	data, err := h.client.TextSearchRaw(r.Context(), places.BuildQuery(query, h.querySuffix, "", nil), location, radius)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if results, ok := data["results"].([]interface{}); ok {
		for _, item := range results {
			restaurant, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			placeID, _ := restaurant["place_id"].(string)
			name, _ := restaurant["name"].(string)
			address, _ := restaurant["formatted_address"].(string)
			restaurant["website"] = places.MapsLink(placeID, name, address)
			restaurant["keywords_found"] = MapsKeywordsLabel
		}
	}

	WriteJSON(w, http.StatusOK, data)
}

// GeocodeHandler handles GET /geocode?address
func (h *PlacesHandler) GeocodeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		WriteError(w, http.StatusBadRequest, "Address parameter required", common.ErrorTypeBadRequest)
		return
	}

	if !h.client.IsConfigured() {
		WriteServiceError(w, h.logger, &common.ConfigurationError{Message: "Google Places API key not configured"})
		return
	}

	data, err := h.client.Geocode(r.Context(), address)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, data)
}

// DetailsHandler handles GET /details?place_id
func (h *PlacesHandler) DetailsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	placeID := strings.TrimSpace(r.URL.Query().Get("place_id"))
	if placeID == "" {
		WriteError(w, http.StatusBadRequest, "place_id parameter required", common.ErrorTypeBadRequest)
		return
	}

	if !h.client.IsConfigured() {
		WriteServiceError(w, h.logger, &common.ConfigurationError{Message: "Google Places API key not configured"})
		return
	}

	details, err := h.client.PlaceDetails(r.Context(), placeID)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"details": details,
	})
}
