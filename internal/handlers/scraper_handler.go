package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/common"
	"github.com/ternarybob/dinescout/internal/interfaces"
)

// ScanWebsiteRequest is the body of POST /scan_website
type ScanWebsiteRequest struct {
	WebsiteURL     string `json:"website_url" validate:"required"`
	RestaurantName string `json:"restaurant_name"`
}

// ScrapeWebsiteRequest is the body of POST /api/scrape-website
type ScrapeWebsiteRequest struct {
	URL string `json:"url" validate:"required"`
}

// ScraperHandler serves website keyword scans
type ScraperHandler struct {
	scraper  interfaces.WebsiteScraper
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewScraperHandler creates a scraper handler. scraper may be nil when scanning is disabled.
func NewScraperHandler(scraper interfaces.WebsiteScraper, logger arbor.ILogger) *ScraperHandler {
	return &ScraperHandler{
		scraper:  scraper,
		validate: validator.New(),
		logger:   logger,
	}
}

// ScanWebsiteHandler handles POST /scan_website
func (h *ScraperHandler) ScanWebsiteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ScanWebsiteRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "No website URL provided", common.ErrorTypeBadRequest)
		return
	}
	if !h.requireScraper(w) {
		return
	}

	name := req.RestaurantName
	if name == "" {
		name = "Unknown"
	}

	scanID := common.NewScanID()
	result := h.scraper.Scrape(r.Context(), req.WebsiteURL)

	h.logger.WithCorrelationId(scanID).Info().
		Str("restaurant", name).
		Str("url", req.WebsiteURL).
		Int("keyword_count", result.KeywordCount).
		Str("scrape_status", result.ScrapeStatus()).
		Msg("Website scanned")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "success",
		"scan_id":         scanID,
		"restaurant_name": name,
		"website_url":     req.WebsiteURL,
		"keywords_found":  result.FoundKeywords,
		"keyword_count":   result.KeywordCount,
		"scrape_status":   result.ScrapeStatus(),
	})
}

// ScrapeWebsiteHandler handles POST /api/scrape-website and returns the raw scrape result
func (h *ScraperHandler) ScrapeWebsiteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ScrapeWebsiteRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "URL required", common.ErrorTypeBadRequest)
		return
	}
	if !h.requireScraper(w) {
		return
	}

	WriteJSON(w, http.StatusOK, h.scraper.Scrape(r.Context(), req.URL))
}

func (h *ScraperHandler) requireScraper(w http.ResponseWriter) bool {
	if h.scraper == nil {
		WriteError(w, http.StatusServiceUnavailable, "Website scanning is disabled", common.ErrorTypeConfiguration)
		return false
	}
	return true
}
