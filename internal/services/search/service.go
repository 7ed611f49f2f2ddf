// Package search implements the paginated restaurant search pipeline:
// pagination, normalization, enrichment and aggregation.
package search

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"golang.org/x/sync/errgroup"

	"github.com/ternarybob/dinescout/internal/common"
	"github.com/ternarybob/dinescout/internal/interfaces"
	"github.com/ternarybob/dinescout/internal/models"
	"github.com/ternarybob/dinescout/internal/services/places"
)

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Service runs restaurant searches against a places provider
type Service struct {
	client          interfaces.PlacesClient
	scraper         interfaces.WebsiteScraper
	config          common.SearchConfig
	scanConcurrency int
	logger          arbor.ILogger

	newPaginator func(fetcher PageFetcher, config PaginatorConfig, logger arbor.ILogger) *Paginator
}

// NewService creates a search service. scraper may be nil, in which case
// scan_websites requests are served without website scans.
func NewService(client interfaces.PlacesClient, scraper interfaces.WebsiteScraper, config *common.Config, logger arbor.ILogger) *Service {
	scanConcurrency := config.Scraper.MaxConcurrency
	if scanConcurrency <= 0 {
		scanConcurrency = 1
	}

	return &Service{
		client:          client,
		scraper:         scraper,
		config:          config.Search,
		scanConcurrency: scanConcurrency,
		logger:          logger,
		newPaginator:    NewPaginator,
	}
}

// Search runs the full pipeline for one request.
// A failure on the first page is returned as an error; a failure on a later
// page yields the records gathered so far.
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !s.client.IsConfigured() {
		return nil, &common.ConfigurationError{Message: "Google Places API key not configured"}
	}

	query := strings.TrimSpace(req.Query)
	maxResults := s.resolveMaxResults(req.MaxResults)
	searchID := common.NewSearchID()
	logger := s.logger.WithCorrelationId(searchID)

	bias := places.ParseLocationHint(req.Location, s.config.GeoBiasRadius)
	providerQuery := places.BuildQuery(query, s.config.QuerySuffix, req.Location, bias)

	logger.Info().
		Str("query", query).
		Str("location", req.Location).
		Str("provider_query", providerQuery).
		Bool("geo_bias", bias != nil).
		Int("max_results", maxResults).
		Msg("Starting restaurant search")

	startTime := time.Now()
	paginator := s.newPaginator(s.client, PaginatorConfig{
		MaxPages:       s.config.MaxPages,
		PageTokenDelay: s.config.PageTokenDelayDuration(),
	}, logger)
	collection := paginator.Collect(ctx, providerQuery, bias, maxResults)

	if collection.Err != nil && collection.PagesFetched == 0 {
		logger.Error().Err(collection.Err).Msg("Restaurant search failed on first page")
		return nil, collection.Err
	}

	listings := make([]models.EnrichedListing, 0, len(collection.Records))
	for _, raw := range collection.Records {
		listings = append(listings, Enrich(Normalize(raw)))
	}

	if req.ScanWebsites {
		s.scanWebsites(ctx, listings, logger)
	}

	summary := Summarize(listings, collection.PagesFetched)

	logger.Info().
		Int("total_found", summary.TotalFound).
		Int("pages_fetched", summary.PagesFetched).
		Str("stop_reason", collection.StopReason).
		Float64("average_rating", summary.AverageRating).
		Dur("duration", time.Since(startTime)).
		Msg("Restaurant search completed")

	return &models.SearchResult{
		SearchID:     searchID,
		Query:        query,
		Location:     req.Location,
		Results:      listings,
		TotalFound:   summary.TotalFound,
		PagesFetched: summary.PagesFetched,
		StopReason:   collection.StopReason,
		Summary:      summary,
	}, nil
}

// resolveMaxResults applies the default to unset values and clamps to the configured ceiling
func (s *Service) resolveMaxResults(requested int) int {
	ceiling := s.config.MaxResults
	if ceiling <= 0 {
		ceiling = DefaultMaxResults
	}
	if requested <= 0 || requested > ceiling {
		return ceiling
	}
	return requested
}

// scanWebsites looks up each listing's website and scans it for keywords.
// Listings whose lookup or scan fails keep their placeholder values.
func (s *Service) scanWebsites(ctx context.Context, listings []models.EnrichedListing, logger arbor.ILogger) {
	if s.scraper == nil {
		logger.Warn().Msg("Website scan requested but scraper is disabled")
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.scanConcurrency)

	for i := range listings {
		if listings[i].PlaceID == "" {
			continue
		}
		g.Go(func() error {
			err := common.RecoverCall(logger, "scanWebsite", func() error {
				s.scanListing(gctx, &listings[i], logger)
				return nil
			})
			if err != nil {
				logger.Warn().Err(err).Str("place_id", listings[i].PlaceID).Msg("Website scan aborted")
			}
			return nil
		})
	}

	_ = g.Wait()
}

// scanListing fills in one listing's website and keywords.
func (s *Service) scanListing(ctx context.Context, listing *models.EnrichedListing, logger arbor.ILogger) {
	details, err := s.client.PlaceDetails(ctx, listing.PlaceID)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("place_id", listing.PlaceID).
			Msg("Failed to fetch place details for website scan")
		return
	}
	if details.Website == nil {
		return
	}

	listing.Website = details.Website
	result := s.scraper.Scrape(ctx, *details.Website)
	if !result.Success {
		logger.Debug().
			Str("url", *details.Website).
			Str("error", result.Error).
			Msg("Website scan failed")
		return
	}
	listing.KeywordsFound = FormatKeywords(result.FoundKeywords)
}

// FormatKeywords renders found keywords for the keywords_found column
func FormatKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return models.NoKeywordsFound
	}
	return strings.Join(keywords, ", ")
}

func validateRequest(req *models.SearchRequest) error {
	if req == nil {
		return &common.BadRequestError{Message: "request body is required"}
	}
	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fieldErr := validationErrs[0]
			return &common.BadRequestError{
				Field:   fieldErr.Field(),
				Message: "failed validation: " + fieldErr.Tag(),
			}
		}
		return &common.BadRequestError{Message: err.Error()}
	}
	if strings.TrimSpace(req.Query) == "" {
		return &common.BadRequestError{Field: "query", Message: "query is required"}
	}
	return nil
}
