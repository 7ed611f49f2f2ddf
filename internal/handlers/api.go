package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/common"
)

// APIHandler serves health and version endpoints
type APIHandler struct {
	apiKeyConfigured bool
	logger           arbor.ILogger
}

func NewAPIHandler(apiKeyConfigured bool, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		apiKeyConfigured: apiKeyConfigured,
		logger:           logger,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, common.GetBuildInfo())
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":             "healthy",
		"message":            "DineScout API is running",
		"api_key_configured": h.apiKeyConfigured,
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"status":     "error",
		"message":    "The requested endpoint does not exist",
		"error_type": "not_found",
		"path":       r.URL.Path,
	})
}
