package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "Mozilla/5.0 (compatible; DineScout/1.0)"

// BrowserPoolConfig holds configuration for the browser pool
type BrowserPoolConfig struct {
	MaxInstances   int
	UserAgent      string
	Headless       bool
	NoSandbox      bool
	StartupTimeout time.Duration
}

// BrowserPool manages headless Chrome instances shared by website scans.
// Browsers are started on first use and handed out round-robin.
type BrowserPool struct {
	config           BrowserPoolConfig
	browsers         []context.Context
	browserCancels   []context.CancelFunc
	allocatorCancels []context.CancelFunc
	mu               sync.Mutex
	currentIndex     int
	initialized      bool
	logger           arbor.ILogger
}

// NewBrowserPool creates a browser pool. No browser is launched until the first Acquire.
func NewBrowserPool(config BrowserPoolConfig, logger arbor.ILogger) *BrowserPool {
	if config.MaxInstances <= 0 {
		config.MaxInstances = 1
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.StartupTimeout <= 0 {
		config.StartupTimeout = 30 * time.Second
	}

	return &BrowserPool{
		config: config,
		logger: logger,
	}
}

// Acquire returns a browser context, starting the pool if needed
func (p *BrowserPool) Acquire() (context.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		if err := p.start(); err != nil {
			return nil, err
		}
	}

	if len(p.browsers) == 0 {
		return nil, fmt.Errorf("no browser instances available")
	}

	index := p.currentIndex % len(p.browsers)
	p.currentIndex = (p.currentIndex + 1) % len(p.browsers)

	p.logger.Debug().
		Int("browser_index", index).
		Int("total_browsers", len(p.browsers)).
		Msg("Browser context allocated from pool")

	return p.browsers[index], nil
}

// start launches the configured browser instances (must be called with mutex held)
func (p *BrowserPool) start() error {
	p.logger.Info().
		Int("pool_size", p.config.MaxInstances).
		Bool("headless", p.config.Headless).
		Msg("Starting headless browser pool")

	successCount := 0
	var lastErr error
	for i := 0; i < p.config.MaxInstances; i++ {
		if err := p.createBrowserInstance(i); err != nil {
			lastErr = err
			p.logger.Warn().
				Err(err).
				Int("browser_index", i).
				Msg("Failed to create browser instance")
			continue
		}
		successCount++
	}

	if successCount == 0 {
		p.cleanupInstances()
		return fmt.Errorf("failed to create any browser instances, last error: %w", lastErr)
	}

	p.initialized = true
	p.logger.Info().
		Int("browsers_created", successCount).
		Int("requested", p.config.MaxInstances).
		Msg("Headless browser pool started")

	return nil
}

// createBrowserInstance launches one browser and checks that it responds
func (p *BrowserPool) createBrowserInstance(index int) error {
	startTime := time.Now()

	allocatorOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", p.config.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", p.config.NoSandbox),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(p.config.UserAgent),
	)

	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(context.Background(), allocatorOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)

	testCtx, testCancel := context.WithTimeout(browserCtx, p.config.StartupTimeout)
	defer testCancel()

	if err := chromedp.Run(testCtx, chromedp.Navigate("about:blank")); err != nil {
		browserCancel()
		allocatorCancel()
		return fmt.Errorf("browser instance failed startup test: %w", err)
	}

	p.browsers = append(p.browsers, browserCtx)
	p.browserCancels = append(p.browserCancels, browserCancel)
	p.allocatorCancels = append(p.allocatorCancels, allocatorCancel)

	p.logger.Debug().
		Int("browser_index", index).
		Dur("startup_time", time.Since(startTime)).
		Msg("Browser instance created")

	return nil
}

// Shutdown stops all browser instances. The pool restarts on the next Acquire.
func (p *BrowserPool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	browserCount := len(p.browsers)
	p.cleanupInstances()
	p.initialized = false

	p.logger.Info().
		Int("browsers_shutdown", browserCount).
		Msg("Headless browser pool shut down")
}

// cleanupInstances cancels all browser and allocator contexts (must be called with mutex held)
func (p *BrowserPool) cleanupInstances() {
	for _, cancel := range p.browserCancels {
		if cancel != nil {
			cancel()
		}
	}
	for _, cancel := range p.allocatorCancels {
		if cancel != nil {
			cancel()
		}
	}

	p.browsers = nil
	p.browserCancels = nil
	p.allocatorCancels = nil
	p.currentIndex = 0
}

// IsInitialized returns whether any browser is running
func (p *BrowserPool) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}
