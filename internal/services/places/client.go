// Package places provides a client for the Google Places web service.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/common"
	"github.com/ternarybob/dinescout/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the Maps web services.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"

	// DefaultTimeout is the default per-call HTTP timeout.
	DefaultTimeout = 10 * time.Second

	// reviewTextLimit is the number of characters kept from each review
	reviewTextLimit = 200

	textSearchPath = "/place/textsearch/json"
	detailsPath    = "/place/details/json"
	geocodePath    = "/geocode/json"
)

// Client is a Places API client.
type Client struct {
	baseURL           string
	apiKey            string
	placeType         string
	httpClient        *http.Client
	timeout           time.Duration
	logger            arbor.ILogger
	requestsPerSecond float64
	burst             int
	maxConcurrent     int
	limiter           *providerLimiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-call HTTP timeout. It is applied to a copy of the
// HTTP client, so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the shared per-key request rate.
func WithRateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *Client) {
		c.requestsPerSecond = requestsPerSecond
		c.burst = burst
	}
}

// WithMaxConcurrent caps in-flight provider calls per key.
func WithMaxConcurrent(n int) ClientOption {
	return func(c *Client) {
		c.maxConcurrent = n
	}
}

// WithPlaceType sets the place type filter used with geo-biased searches.
func WithPlaceType(placeType string) ClientOption {
	return func(c *Client) {
		c.placeType = placeType
	}
}

// NewClient creates a new Places API client. The key is injected here and
// never read from the environment by the client itself.
//
// Clients built with the same key share one limiter, created by the first
// NewClient call for that key. WithRateLimit and WithMaxConcurrent are ignored
// when a limiter for the key already exists.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		placeType: "restaurant",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:            common.GetLogger(),
		requestsPerSecond: 10,
		burst:             10,
		maxConcurrent:     4,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.timeout > 0 {
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}

	c.limiter = sharedLimiters.forKey(apiKey, c.requestsPerSecond, c.burst, c.maxConcurrent)

	return c
}

// IsConfigured reports whether an API key was supplied.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// FetchPage performs one Text Search request. A location bias switches the
// request to a circular geo-bias; otherwise the query text carries the location.
func (c *Client) FetchPage(ctx context.Context, query string, bias *models.LocationBias, pageToken string) (*models.SearchPage, error) {
	params := url.Values{}
	params.Set("query", query)
	if bias != nil {
		location := fmt.Sprintf("%g,%g", bias.Lat, bias.Lng)
		params.Set("location", location)
		params.Set("radius", strconv.Itoa(bias.RadiusMeters))
		params.Set("locationbias", fmt.Sprintf("circle:%d@%s", bias.RadiusMeters, location))
		if c.placeType != "" {
			params.Set("type", c.placeType)
		}
	}
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	}

	var apiResp textSearchResponse
	if err := c.get(ctx, textSearchPath, params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != models.ProviderStatusOK && apiResp.Status != models.ProviderStatusZeroResults {
		return nil, &common.ProviderError{
			Status:     apiResp.Status,
			Message:    apiResp.ErrorMessage,
			StatusCode: http.StatusOK,
			Endpoint:   textSearchPath,
		}
	}

	samplePlaces := []string{}
	for i, place := range apiResp.Results {
		if i >= 3 {
			break
		}
		samplePlaces = append(samplePlaces, place.Name)
	}

	c.logger.Debug().
		Str("search_query", query).
		Bool("geo_bias", bias != nil).
		Bool("has_page_token", pageToken != "").
		Str("status", apiResp.Status).
		Int("results_count", len(apiResp.Results)).
		Bool("has_next_page", apiResp.NextPageToken != "").
		Strs("sample_places", samplePlaces).
		Msg("Places Text Search page fetched")

	return &models.SearchPage{
		Status:        apiResp.Status,
		Results:       apiResp.Results,
		NextPageToken: apiResp.NextPageToken,
	}, nil
}

// TextSearchRaw performs a Text Search and returns the provider JSON as-is.
func (c *Client) TextSearchRaw(ctx context.Context, query, location, radius string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("location", location)
	params.Set("radius", radius)
	if c.placeType != "" {
		params.Set("type", c.placeType)
	}

	var data map[string]interface{}
	if err := c.get(ctx, textSearchPath, params, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Geocode resolves an address and returns the provider JSON as-is.
func (c *Client) Geocode(ctx context.Context, address string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("address", address)

	var data map[string]interface{}
	if err := c.get(ctx, geocodePath, params, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// PlaceDetails fetches the detail view of a place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)

	var apiResp detailsResponse
	if err := c.get(ctx, detailsPath, params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != models.ProviderStatusOK || apiResp.Result == nil {
		return nil, &common.ProviderError{
			Status:     apiResp.Status,
			Message:    apiResp.ErrorMessage,
			StatusCode: http.StatusOK,
			Endpoint:   detailsPath,
		}
	}

	return convertDetails(apiResp.Result), nil
}

// get performs a rate limited GET request and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if !c.IsConfigured() {
		return &common.ConfigurationError{Message: "places API key is not configured"}
	}

	release, err := c.limiter.acquire(ctx)
	if err != nil {
		return &common.TransportError{Endpoint: path, Err: err}
	}
	defer release()

	// Redact API key in logs
	logURL := fmt.Sprintf("%s%s?%s&key=***REDACTED***", c.baseURL, path, params.Encode())

	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", common.ClientUserAgent())

	c.logger.Debug().Str("url", logURL).Msg("Calling Places API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &common.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &common.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to decode API response: %v", err),
			Endpoint:   path,
		}
	}

	return nil
}

// convertDetails maps a Details API result to the PlaceDetails model
func convertDetails(result *detailsResult) *models.PlaceDetails {
	details := &models.PlaceDetails{
		Name:             result.Name,
		PlaceID:          result.PlaceID,
		Website:          CleanWebsiteURL(result.Website),
		Phone:            result.FormattedPhoneNumber,
		FormattedAddress: result.FormattedAddress,
		Rating:           result.Rating,
		PriceLevel:       result.PriceLevel,
		Hours:            []string{},
		Reviews:          []models.Review{},
		Types:            result.Types,
		BusinessStatus:   models.DefaultBusinessStatus,
	}

	if result.UserRatingsTotal != nil {
		details.UserRatingsTotal = *result.UserRatingsTotal
	}
	if result.OpeningHours != nil && result.OpeningHours.WeekdayText != nil {
		details.Hours = result.OpeningHours.WeekdayText
	}
	if details.Types == nil {
		details.Types = []string{}
	}
	if len(result.Photos) > 0 && result.Photos[0].PhotoReference != "" {
		ref := result.Photos[0].PhotoReference
		details.PhotoReference = &ref
	}

	for i, r := range result.Reviews {
		if i >= 5 {
			break
		}
		text := r.Text
		if runes := []rune(text); len(runes) > reviewTextLimit {
			text = string(runes[:reviewTextLimit]) + "..."
		}
		details.Reviews = append(details.Reviews, models.Review{
			Author: r.AuthorName,
			Rating: r.Rating,
			Text:   text,
			Time:   r.RelativeTimeDescription,
		})
	}

	return details
}
