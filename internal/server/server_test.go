package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/app"
	"github.com/ternarybob/dinescout/internal/common"
	"github.com/ternarybob/dinescout/internal/handlers"
	"github.com/ternarybob/dinescout/internal/models"
	"github.com/ternarybob/dinescout/internal/services/places"
)

// stubSearchService returns a fixed result or panics when asked to
type stubSearchService struct {
	panic bool
}

func (s *stubSearchService) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	if s.panic {
		panic("boom")
	}
	return &models.SearchResult{SearchID: "srch_test", StopReason: "no_next_page"}, nil
}

func newTestServer(t *testing.T, search *stubSearchService) *Server {
	t.Helper()

	logger := arbor.NewLogger()
	config := common.NewDefaultConfig()
	client := places.NewClient("", places.WithLogger(logger))

	application := &app.App{
		Config:         config,
		Logger:         logger,
		PlacesClient:   client,
		SearchService:  search,
		APIHandler:     handlers.NewAPIHandler(client.IsConfigured(), logger),
		SearchHandler:  handlers.NewSearchHandler(search, logger),
		PlacesHandler:  handlers.NewPlacesHandler(client, &config.Search, logger),
		ScraperHandler: handlers.NewScraperHandler(nil, logger),
	}
	return New(application)
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Search(t *testing.T) {
	s := newTestServer(t, &stubSearchService{})

	rec := serve(s, http.MethodPost, "/search_restaurants", `{"query":"pizza"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Body.String(), `"search_id":"srch_test"`)
}

func TestRoutes_HealthReportsMissingKey(t *testing.T) {
	s := newTestServer(t, &stubSearchService{})

	rec := serve(s, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["api_key_configured"])
}

func TestRoutes_PlacesWithoutKey(t *testing.T) {
	s := newTestServer(t, &stubSearchService{})

	rec := serve(s, http.MethodGet, "/places?query=tacos&location=1,2", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), common.ErrorTypeConfiguration)
}

func TestRoutes_NotFound(t *testing.T) {
	s := newTestServer(t, &stubSearchService{})

	rec := serve(s, http.MethodGet, "/does-not-exist", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error_type":"not_found"`)
}

func TestMiddleware_Preflight(t *testing.T) {
	s := newTestServer(t, &stubSearchService{})

	rec := serve(s, http.MethodOptions, "/search_restaurants", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestMiddleware_RecoversPanic(t *testing.T) {
	s := newTestServer(t, &stubSearchService{panic: true})

	rec := serve(s, http.MethodPost, "/search_restaurants", `{"query":"pizza"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, common.ErrorTypeInternal, body["error_type"])
}
