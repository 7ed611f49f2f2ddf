package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/common"
	"github.com/ternarybob/dinescout/internal/models"
)

func newTestPlacesHandler(client *mockPlacesClient) *PlacesHandler {
	return NewPlacesHandler(client, &common.NewDefaultConfig().Search, arbor.NewLogger())
}

func TestPlacesHandler_RewritesWebsite(t *testing.T) {
	var gotQuery, gotLocation, gotRadius string
	client := &mockPlacesClient{
		configured: true,
		textSearchRawFunc: func(ctx context.Context, query, location, radius string) (map[string]interface{}, error) {
			gotQuery, gotLocation, gotRadius = query, location, radius
			return map[string]interface{}{
				"status": "OK",
				"results": []interface{}{
					map[string]interface{}{"name": "Joe's", "place_id": "p1", "website": "https://joes.example.com"},
					map[string]interface{}{"name": "No Id Cafe", "formatted_address": "1 Main St"},
				},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/places?query=tacos&location=34.05,-118.24", nil)
	rec := httptest.NewRecorder()
	newTestPlacesHandler(client).PlacesHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tacos restaurant", gotQuery)
	assert.Equal(t, "34.05,-118.24", gotLocation)
	assert.Equal(t, "50000", gotRadius, "radius defaults to 50000")

	body := decodeBody(t, rec)
	results := body["results"].([]interface{})
	first := results[0].(map[string]interface{})
	assert.Equal(t, "https://www.google.com/maps/place/?q=place_id:p1", first["website"])
	assert.Equal(t, MapsKeywordsLabel, first["keywords_found"])
	second := results[1].(map[string]interface{})
	assert.Equal(t, "https://www.google.com/maps/search/No+Id+Cafe+1+Main+St", second["website"])
}

func TestPlacesHandler_CustomRadius(t *testing.T) {
	var gotRadius string
	client := &mockPlacesClient{
		configured: true,
		textSearchRawFunc: func(ctx context.Context, query, location, radius string) (map[string]interface{}, error) {
			gotRadius = radius
			return map[string]interface{}{"status": "ZERO_RESULTS"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/places?query=tacos&location=1,2&radius=1500", nil)
	rec := httptest.NewRecorder()
	newTestPlacesHandler(client).PlacesHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1500", gotRadius)
}

func TestPlacesHandler_MissingParams(t *testing.T) {
	handler := newTestPlacesHandler(&mockPlacesClient{configured: true})

	for _, target := range []string{"/places", "/places?query=tacos", "/places?location=1,2"} {
		rec := httptest.NewRecorder()
		handler.PlacesHandler(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, common.ErrorTypeBadRequest, decodeBody(t, rec)["error_type"])
	}
}

func TestPlacesHandler_NotConfigured(t *testing.T) {
	handler := newTestPlacesHandler(&mockPlacesClient{configured: false})

	rec := httptest.NewRecorder()
	handler.PlacesHandler(rec, httptest.NewRequest(http.MethodGet, "/places?query=tacos&location=1,2", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, common.ErrorTypeConfiguration, decodeBody(t, rec)["error_type"])
}

func TestGeocodeHandler(t *testing.T) {
	client := &mockPlacesClient{
		configured: true,
		geocodeFunc: func(ctx context.Context, address string) (map[string]interface{}, error) {
			assert.Equal(t, "Raleigh, NC", address)
			return map[string]interface{}{"status": "OK", "results": []interface{}{}}, nil
		},
	}
	handler := newTestPlacesHandler(client)

	rec := httptest.NewRecorder()
	handler.GeocodeHandler(rec, httptest.NewRequest(http.MethodGet, "/geocode?address=Raleigh,+NC", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", decodeBody(t, rec)["status"])

	rec = httptest.NewRecorder()
	handler.GeocodeHandler(rec, httptest.NewRequest(http.MethodGet, "/geocode", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeocodeHandler_ProviderError(t *testing.T) {
	client := &mockPlacesClient{
		configured: true,
		geocodeFunc: func(ctx context.Context, address string) (map[string]interface{}, error) {
			return nil, &common.ProviderError{StatusCode: http.StatusBadGateway, Message: "bad gateway"}
		},
	}

	rec := httptest.NewRecorder()
	newTestPlacesHandler(client).GeocodeHandler(rec, httptest.NewRequest(http.MethodGet, "/geocode?address=x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, common.ErrorTypeProvider, decodeBody(t, rec)["error_type"])
}

func TestDetailsHandler(t *testing.T) {
	site := "https://joes.example.com"
	client := &mockPlacesClient{
		configured: true,
		placeDetailsFunc: func(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
			return &models.PlaceDetails{Name: "Joe's", PlaceID: placeID, Website: &site}, nil
		},
	}
	handler := newTestPlacesHandler(client)

	rec := httptest.NewRecorder()
	handler.DetailsHandler(rec, httptest.NewRequest(http.MethodGet, "/details?place_id=p1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	details := body["details"].(map[string]interface{})
	assert.Equal(t, "p1", details["place_id"])
	assert.Equal(t, site, details["website"])

	rec = httptest.NewRecorder()
	handler.DetailsHandler(rec, httptest.NewRequest(http.MethodGet, "/details", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
