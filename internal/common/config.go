package common

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ternarybob/dinescout/internal/interfaces"
)

// PlacesAPIKeyName is the key/value store name of the provider credential
const PlacesAPIKeyName = "google_places_api_key"

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Logging     LoggingConfig   `toml:"logging"`
	PlacesAPI   PlacesAPIConfig `toml:"places_api"`
	Search      SearchConfig    `toml:"search"`
	Scraper     ScraperConfig   `toml:"scraper"`
	Storage     StorageConfig   `toml:"storage"`
	Variables   KeysDirConfig   `toml:"variables"` // Directory holding variables.toml (key/value secrets)
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // default "15:04:05"
}

// PlacesAPIConfig contains Google Places API configuration
type PlacesAPIConfig struct {
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`            // Override for tests/proxies
	RequestTimeout    string  `toml:"request_timeout"`     // Per HTTP call timeout, e.g. "10s"
	RequestsPerSecond float64 `toml:"requests_per_second"` // Shared across all requests using the same key
	Burst             int     `toml:"burst"`
	MaxConcurrent     int     `toml:"max_concurrent"` // Max in-flight provider calls per key
}

// SearchConfig contains the pagination bounds and query shaping for restaurant search
type SearchConfig struct {
	MaxPages       int    `toml:"max_pages"`
	MaxResults     int    `toml:"max_results"`      // Default and ceiling for max_results
	PageTokenDelay string `toml:"page_token_delay"` // Minimum wait before redeeming a page token
	GeoBiasRadius  int    `toml:"geo_bias_radius"`  // Meters, used when location is "lat,lng"
	QuerySuffix    string `toml:"query_suffix"`
	PlaceType      string `toml:"place_type"`
}

// ScraperConfig contains headless browser settings for website keyword scans
type ScraperConfig struct {
	Enabled        bool     `toml:"enabled"`
	Headless       bool     `toml:"headless"`
	NoSandbox      bool     `toml:"no_sandbox"`
	UserAgent      string   `toml:"user_agent"`
	PageTimeout    string   `toml:"page_timeout"`
	MaxInstances   int      `toml:"max_instances"`
	MaxConcurrency int      `toml:"max_concurrency"` // Parallel scans during a search
	Keywords       []string `toml:"keywords"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

// KeysDirConfig contains configuration for key/value file loading
type KeysDirConfig struct {
	Dir string `toml:"dir"`
}

// DefaultKeywords is the marketing keyword list scanned on restaurant websites
var DefaultKeywords = []string{
	"reservations", "reserve", "franchise", "franchising",
	"opening soon", "coming soon", "new location", "grand opening",
	"reserve a table", "call for reservations",
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 5000,
			Host: "0.0.0.0",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		PlacesAPI: PlacesAPIConfig{
			APIKey:            "",
			BaseURL:           "https://maps.googleapis.com/maps/api",
			RequestTimeout:    "10s",
			RequestsPerSecond: 10,
			Burst:             10,
			MaxConcurrent:     4,
		},
		Search: SearchConfig{
			MaxPages:       3,
			MaxResults:     60,   // 3 pages of 20
			PageTokenDelay: "2s", // Tokens redeemed earlier are rejected by the provider
			GeoBiasRadius:  50000,
			QuerySuffix:    "restaurant",
			PlaceType:      "restaurant",
		},
		Scraper: ScraperConfig{
			Enabled:        true,
			Headless:       true,
			NoSandbox:      true,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			PageTimeout:    "10s",
			MaxInstances:   1,
			MaxConcurrency: 3,
			Keywords:       append([]string(nil), DefaultKeywords...),
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Variables: KeysDirConfig{
			Dir: "./",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. CLI flags are applied separately by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DINESCOUT_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration (PORT kept for PaaS deployments)
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if port := os.Getenv("DINESCOUT_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DINESCOUT_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("DINESCOUT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("DINESCOUT_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("DINESCOUT_LOG_OUTPUT"); output != "" {
		if outputs := splitList(output); len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Places API configuration
	if baseURL := os.Getenv("DINESCOUT_PLACES_BASE_URL"); baseURL != "" {
		config.PlacesAPI.BaseURL = baseURL
	}
	if timeout := os.Getenv("DINESCOUT_PLACES_REQUEST_TIMEOUT"); timeout != "" {
		if _, err := time.ParseDuration(timeout); err == nil {
			config.PlacesAPI.RequestTimeout = timeout
		}
	}
	if rps := os.Getenv("DINESCOUT_PLACES_REQUESTS_PER_SECOND"); rps != "" {
		if r, err := strconv.ParseFloat(rps, 64); err == nil {
			config.PlacesAPI.RequestsPerSecond = r
		}
	}
	if maxConcurrent := os.Getenv("DINESCOUT_PLACES_MAX_CONCURRENT"); maxConcurrent != "" {
		if mc, err := strconv.Atoi(maxConcurrent); err == nil {
			config.PlacesAPI.MaxConcurrent = mc
		}
	}

	// Search configuration
	if maxResults := os.Getenv("DINESCOUT_SEARCH_MAX_RESULTS"); maxResults != "" {
		if mr, err := strconv.Atoi(maxResults); err == nil {
			config.Search.MaxResults = mr
		}
	}
	if delay := os.Getenv("DINESCOUT_SEARCH_PAGE_TOKEN_DELAY"); delay != "" {
		if _, err := time.ParseDuration(delay); err == nil {
			config.Search.PageTokenDelay = delay
		}
	}

	// Scraper configuration
	if enabled := os.Getenv("DINESCOUT_SCRAPER_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.Scraper.Enabled = e
		}
	}
	if noSandbox := os.Getenv("DINESCOUT_SCRAPER_NO_SANDBOX"); noSandbox != "" {
		if ns, err := strconv.ParseBool(noSandbox); err == nil {
			config.Scraper.NoSandbox = ns
		}
	}
	if keywords := os.Getenv("DINESCOUT_SCRAPER_KEYWORDS"); keywords != "" {
		if kws := splitList(keywords); len(kws) > 0 {
			config.Scraper.Keywords = kws
		}
	}

	// Storage configuration
	if badgerPath := os.Getenv("DINESCOUT_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if variablesDir := os.Getenv("DINESCOUT_VARIABLES_DIR"); variablesDir != "" {
		config.Variables.Dir = variablesDir
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Provider pagination bounds. Text search serves at most three pages, and a
// next_page_token is rejected when redeemed sooner than two seconds after issue.
const (
	MaxSearchPages    = 3
	MinPageTokenDelay = 2 * time.Second
)

// Validate checks values that would otherwise fail deep inside the pipeline
func (c *Config) Validate() error {
	if c.Search.MaxPages <= 0 || c.Search.MaxPages > MaxSearchPages {
		return fmt.Errorf("search.max_pages must be between 1 and %d, got %d", MaxSearchPages, c.Search.MaxPages)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be greater than 0, got %d", c.Search.MaxResults)
	}
	for name, value := range map[string]string{
		"search.page_token_delay":    c.Search.PageTokenDelay,
		"places_api.request_timeout": c.PlacesAPI.RequestTimeout,
		"scraper.page_timeout":       c.Scraper.PageTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", name, err)
		}
	}
	if delay, _ := time.ParseDuration(c.Search.PageTokenDelay); delay < MinPageTokenDelay {
		return fmt.Errorf("search.page_token_delay must be at least %s, got %s", MinPageTokenDelay, c.Search.PageTokenDelay)
	}
	return nil
}

// PageTokenDelayDuration returns the parsed minimum page token redemption delay
func (c *SearchConfig) PageTokenDelayDuration() time.Duration {
	return parseDurationOr(c.PageTokenDelay, 2*time.Second)
}

// RequestTimeoutDuration returns the parsed per-call provider timeout
func (c *PlacesAPIConfig) RequestTimeoutDuration() time.Duration {
	return parseDurationOr(c.RequestTimeout, 10*time.Second)
}

// PageTimeoutDuration returns the parsed page load timeout for website scans
func (c *ScraperConfig) PageTimeoutDuration() time.Duration {
	return parseDurationOr(c.PageTimeout, 10*time.Second)
}

// ResolveAPIKey resolves an API key by name.
// Resolution order: environment variables → KV store → config fallback → error
func ResolveAPIKey(ctx context.Context, kvStorage interfaces.KeyValueStorage, name string, configFallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		PlacesAPIKeyName: {"DINESCOUT_PLACES_API_KEY", "GOOGLE_PLACES_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if kvStorage != nil {
		apiKey, err := kvStorage.Get(ctx, name)
		if err == nil && apiKey != "" {
			return apiKey, nil
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", &ConfigurationError{Message: fmt.Sprintf("API key '%s' not found in environment, KV store, or config", name)}
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	return fallback
}

func splitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
