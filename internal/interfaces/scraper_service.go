package interfaces

import (
	"context"

	"github.com/ternarybob/dinescout/internal/models"
)

// WebsiteScraper scans a website for the configured marketing keywords.
// Failures are reported in the result, never as a Go error.
type WebsiteScraper interface {
	Scrape(ctx context.Context, url string) *models.ScrapeResult
}
