package search

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/models"
)

// Stop reasons reported on a Collection
const (
	StopNoNextPage    = "no_next_page"
	StopMaxPages      = "max_pages"
	StopMaxResults    = "max_results"
	StopProviderError = "provider_error"
	StopCanceled      = "canceled"
)

const (
	// DefaultMaxPages is the provider's hard page ceiling for text search
	DefaultMaxPages = 3

	// DefaultMaxResults is three full pages of 20
	DefaultMaxResults = 60

	// DefaultPageTokenDelay is the minimum age of a page token before it is redeemed
	DefaultPageTokenDelay = 2 * time.Second
)

// PageFetcher fetches one page of text search results
type PageFetcher interface {
	FetchPage(ctx context.Context, query string, bias *models.LocationBias, pageToken string) (*models.SearchPage, error)
}

// PaginatorConfig bounds a Collect run
type PaginatorConfig struct {
	MaxPages       int
	PageTokenDelay time.Duration
}

// Collection is the outcome of a Collect run.
// Err is set when the run ended on a failed page or a canceled wait;
// Records still hold everything gathered before that point.
type Collection struct {
	Records      []models.RawListing
	PagesFetched int
	StopReason   string
	Err          error
}

// Paginator drives token-paginated retrieval from a PageFetcher
type Paginator struct {
	fetcher        PageFetcher
	maxPages       int
	pageTokenDelay time.Duration
	logger         arbor.ILogger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPaginator creates a paginator. A zero MaxPages falls back to the provider ceiling
// and larger values are capped at it. A negative delay falls back to DefaultPageTokenDelay.
func NewPaginator(fetcher PageFetcher, config PaginatorConfig, logger arbor.ILogger) *Paginator {
	maxPages := config.MaxPages
	if maxPages <= 0 || maxPages > DefaultMaxPages {
		maxPages = DefaultMaxPages
	}
	delay := config.PageTokenDelay
	if delay < 0 {
		delay = DefaultPageTokenDelay
	}

	return &Paginator{
		fetcher:        fetcher,
		maxPages:       maxPages,
		pageTokenDelay: delay,
		logger:         logger,
		now:            time.Now,
		sleep:          sleepContext,
	}
}

// Collect fetches pages until one of the stop conditions holds, checked after each page
// in order: no continuation token, page ceiling reached, maxResults reached.
// A full page is always kept during the loop; surplus records are dropped afterwards.
func (p *Paginator) Collect(ctx context.Context, query string, bias *models.LocationBias, maxResults int) *Collection {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	collection := &Collection{Records: []models.RawListing{}}
	pageToken := ""
	var tokenReceivedAt time.Time

	for {
		if pageToken != "" {
			if err := p.waitForToken(ctx, tokenReceivedAt); err != nil {
				p.logger.Warn().
					Err(err).
					Int("pages_fetched", collection.PagesFetched).
					Msg("Pagination canceled while waiting for page token")
				collection.StopReason = StopCanceled
				collection.Err = err
				break
			}
		}

		page, err := p.fetcher.FetchPage(ctx, query, bias, pageToken)
		if err != nil {
			p.logger.Warn().
				Err(err).
				Int("page", collection.PagesFetched+1).
				Int("records_so_far", len(collection.Records)).
				Msg("Page fetch failed, stopping pagination")
			collection.StopReason = StopProviderError
			collection.Err = err
			break
		}
		tokenReceivedAt = p.now()

		collection.PagesFetched++
		collection.Records = append(collection.Records, page.Results...)

		p.logger.Debug().
			Int("page", collection.PagesFetched).
			Int("page_results", len(page.Results)).
			Int("total_records", len(collection.Records)).
			Bool("has_next_page", page.NextPageToken != "").
			Msg("Page collected")

		if page.NextPageToken == "" {
			collection.StopReason = StopNoNextPage
			break
		}
		if collection.PagesFetched >= p.maxPages {
			collection.StopReason = StopMaxPages
			break
		}
		if len(collection.Records) >= maxResults {
			collection.StopReason = StopMaxResults
			break
		}

		pageToken = page.NextPageToken
	}

	if len(collection.Records) > maxResults {
		p.logger.Debug().
			Int("collected", len(collection.Records)).
			Int("max_results", maxResults).
			Msg("Truncating collected records")
		collection.Records = collection.Records[:maxResults]
	}

	return collection
}

// waitForToken blocks until the page token is at least pageTokenDelay old
func (p *Paginator) waitForToken(ctx context.Context, receivedAt time.Time) error {
	remaining := p.pageTokenDelay - p.now().Sub(receivedAt)
	if remaining <= 0 {
		return ctx.Err()
	}
	return p.sleep(ctx, remaining)
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
