package handlers

import (
	"context"

	"github.com/ternarybob/dinescout/internal/models"
)

// mockSearchService implements interfaces.SearchService for testing
type mockSearchService struct {
	searchFunc func(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error)
}

func (m *mockSearchService) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, req)
	}
	return &models.SearchResult{}, nil
}

// mockPlacesClient implements interfaces.PlacesClient for testing
type mockPlacesClient struct {
	configured        bool
	textSearchRawFunc func(ctx context.Context, query, location, radius string) (map[string]interface{}, error)
	geocodeFunc       func(ctx context.Context, address string) (map[string]interface{}, error)
	placeDetailsFunc  func(ctx context.Context, placeID string) (*models.PlaceDetails, error)
}

func (m *mockPlacesClient) FetchPage(ctx context.Context, query string, bias *models.LocationBias, pageToken string) (*models.SearchPage, error) {
	return &models.SearchPage{Status: models.ProviderStatusZeroResults}, nil
}

func (m *mockPlacesClient) TextSearchRaw(ctx context.Context, query, location, radius string) (map[string]interface{}, error) {
	if m.textSearchRawFunc != nil {
		return m.textSearchRawFunc(ctx, query, location, radius)
	}
	return map[string]interface{}{}, nil
}

func (m *mockPlacesClient) Geocode(ctx context.Context, address string) (map[string]interface{}, error) {
	if m.geocodeFunc != nil {
		return m.geocodeFunc(ctx, address)
	}
	return map[string]interface{}{}, nil
}

func (m *mockPlacesClient) PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	if m.placeDetailsFunc != nil {
		return m.placeDetailsFunc(ctx, placeID)
	}
	return &models.PlaceDetails{PlaceID: placeID}, nil
}

func (m *mockPlacesClient) IsConfigured() bool {
	return m.configured
}

// mockScraper implements interfaces.WebsiteScraper for testing
type mockScraper struct {
	scrapeFunc func(ctx context.Context, url string) *models.ScrapeResult
}

func (m *mockScraper) Scrape(ctx context.Context, url string) *models.ScrapeResult {
	if m.scrapeFunc != nil {
		return m.scrapeFunc(ctx, url)
	}
	return &models.ScrapeResult{Success: true, URL: url, FoundKeywords: []string{}}
}
