// Package scraper scans restaurant websites for marketing keywords
// using a headless browser.
package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/common"
	"github.com/ternarybob/dinescout/internal/models"
)

// AcceptLanguage is the Accept-Language header sent on website scans
const AcceptLanguage = "en-US,en;q=0.9"

// fetchFunc renders a page and returns its HTML
type fetchFunc func(ctx context.Context, pageURL string) (string, error)

// Service implements interfaces.WebsiteScraper
type Service struct {
	pool        *BrowserPool
	keywords    []string
	pageTimeout time.Duration
	logger      arbor.ILogger
	fetch       fetchFunc
}

// NewService creates a website scraper backed by a lazily started browser pool
func NewService(config common.ScraperConfig, logger arbor.ILogger) *Service {
	keywords := config.Keywords
	if len(keywords) == 0 {
		keywords = common.DefaultKeywords
	}

	s := &Service{
		pool: NewBrowserPool(BrowserPoolConfig{
			MaxInstances: config.MaxInstances,
			UserAgent:    config.UserAgent,
			Headless:     config.Headless,
			NoSandbox:    config.NoSandbox,
		}, logger),
		keywords:    keywords,
		pageTimeout: config.PageTimeoutDuration(),
		logger:      logger,
	}
	s.fetch = s.renderPage
	return s
}

// Keywords returns the keyword list scanned for
func (s *Service) Keywords() []string {
	return s.keywords
}

// Scrape loads a website and reports which keywords appear in its body text.
// Failures are reported on the result.
func (s *Service) Scrape(ctx context.Context, rawURL string) *models.ScrapeResult {
	result := &models.ScrapeResult{
		URL:           rawURL,
		FoundKeywords: []string{},
	}

	pageURL, err := normalizeURL(rawURL)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.URL = pageURL

	startTime := time.Now()
	html, err := s.fetch(ctx, pageURL)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("url", pageURL).
			Msg("Website scan failed")
		result.Error = err.Error()
		return result
	}

	text, err := ExtractText(html)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.FoundKeywords = MatchKeywords(text, s.keywords)
	result.KeywordCount = len(result.FoundKeywords)

	s.logger.Debug().
		Str("url", pageURL).
		Int("keyword_count", result.KeywordCount).
		Strs("found_keywords", result.FoundKeywords).
		Dur("duration", time.Since(startTime)).
		Msg("Website scan completed")

	return result
}

// renderPage loads pageURL in a new tab and returns the rendered document HTML
func (s *Service) renderPage(ctx context.Context, pageURL string) (string, error) {
	browserCtx, err := s.pool.Acquire()
	if err != nil {
		return "", fmt.Errorf("browser unavailable: %w", err)
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	// Tab contexts derive from the browser, so tie them to the caller explicitly
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.pageTimeout)
	defer cancelTimeout()

	var html string
	if err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": AcceptLanguage}),
		chromedp.Navigate(pageURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to load %s: %w", pageURL, err)
	}

	return html, nil
}

// Close shuts down the browser pool
func (s *Service) Close() {
	s.pool.Shutdown()
}

// normalizeURL adds a missing scheme and rejects anything that is not http(s)
func normalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("URL required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL: missing host")
	}

	return parsed.String(), nil
}
