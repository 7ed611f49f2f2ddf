package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Search pipeline
	mux.HandleFunc("/search_restaurants", s.app.SearchHandler.SearchRestaurantsHandler) // POST

	// Provider passthrough
	mux.HandleFunc("/places", s.app.PlacesHandler.PlacesHandler)   // GET ?query&location&radius
	mux.HandleFunc("/geocode", s.app.PlacesHandler.GeocodeHandler) // GET ?address
	mux.HandleFunc("/details", s.app.PlacesHandler.DetailsHandler) // GET ?place_id

	// Website keyword scans
	mux.HandleFunc("/scan_website", s.app.ScraperHandler.ScanWebsiteHandler)         // POST
	mux.HandleFunc("/api/scrape-website", s.app.ScraperHandler.ScrapeWebsiteHandler) // POST

	// System
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)

	// Everything else is a JSON 404
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
