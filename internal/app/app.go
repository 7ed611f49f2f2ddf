package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/common"
	"github.com/ternarybob/dinescout/internal/handlers"
	"github.com/ternarybob/dinescout/internal/interfaces"
	"github.com/ternarybob/dinescout/internal/services/places"
	"github.com/ternarybob/dinescout/internal/services/scraper"
	"github.com/ternarybob/dinescout/internal/services/search"
	"github.com/ternarybob/dinescout/internal/storage"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Services
	PlacesClient   *places.Client
	ScraperService *scraper.Service // nil when scanning is disabled
	SearchService  interfaces.SearchService

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	SearchHandler  *handlers.SearchHandler
	PlacesHandler  *handlers.PlacesHandler
	ScraperHandler *handlers.ScraperHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app.initServices()
	app.initHandlers()

	logger.Info().
		Bool("api_key_configured", app.PlacesClient.IsConfigured()).
		Bool("scraper_enabled", app.ScraperService != nil).
		Int("max_pages", cfg.Search.MaxPages).
		Int("max_results", cfg.Search.MaxResults).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger) and seeds variables
func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	// Variables must be loaded before the provider key is resolved
	if err := a.StorageManager.LoadVariablesFromFiles(context.Background(), a.Config.Variables.Dir); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to load variables from files")
	}

	return nil
}

// initServices builds the places client, the optional website scraper and the search pipeline
func (a *App) initServices() {
	apiKey, err := common.ResolveAPIKey(
		context.Background(),
		a.StorageManager.KeyValueStorage(),
		common.PlacesAPIKeyName,
		a.Config.PlacesAPI.APIKey,
	)
	if err != nil {
		// Searches report configuration_error until a key is supplied
		a.Logger.Warn().Err(err).Msg("Google Places API key not configured")
		apiKey = ""
	}

	a.PlacesClient = places.NewClient(apiKey,
		places.WithBaseURL(a.Config.PlacesAPI.BaseURL),
		places.WithTimeout(a.Config.PlacesAPI.RequestTimeoutDuration()),
		places.WithRateLimit(a.Config.PlacesAPI.RequestsPerSecond, a.Config.PlacesAPI.Burst),
		places.WithMaxConcurrent(a.Config.PlacesAPI.MaxConcurrent),
		places.WithPlaceType(a.Config.Search.PlaceType),
		places.WithLogger(a.Logger),
	)

	// A nil *scraper.Service must not reach the interface-typed fields below
	var websiteScraper interfaces.WebsiteScraper
	if a.Config.Scraper.Enabled {
		a.ScraperService = scraper.NewService(a.Config.Scraper, a.Logger)
		websiteScraper = a.ScraperService
		a.Logger.Debug().
			Int("keywords", len(a.ScraperService.Keywords())).
			Str("page_timeout", a.Config.Scraper.PageTimeout).
			Msg("Website scraper initialized")
	} else {
		a.Logger.Info().Msg("Website scraper disabled")
	}

	a.SearchService = search.NewService(a.PlacesClient, websiteScraper, a.Config, a.Logger)
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() {
	var websiteScraper interfaces.WebsiteScraper
	if a.ScraperService != nil {
		websiteScraper = a.ScraperService
	}

	a.APIHandler = handlers.NewAPIHandler(a.PlacesClient.IsConfigured(), a.Logger)
	a.SearchHandler = handlers.NewSearchHandler(a.SearchService, a.Logger)
	a.PlacesHandler = handlers.NewPlacesHandler(a.PlacesClient, &a.Config.Search, a.Logger)
	a.ScraperHandler = handlers.NewScraperHandler(websiteScraper, a.Logger)
}

// Close closes all application resources
func (a *App) Close() error {
	if a.ScraperService != nil {
		a.ScraperService.Close()
		a.Logger.Info().Msg("Browser pool shut down")
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
