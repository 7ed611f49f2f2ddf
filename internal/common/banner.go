package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and the resolved endpoints
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.Print("DineScout", GetVersion())

	logger.Info().
		Str("version", GetFullVersion()).
		Str("environment", config.Environment).
		Str("host", config.Server.Host).
		Int("port", config.Server.Port).
		Int("max_pages", config.Search.MaxPages).
		Int("max_results", config.Search.MaxResults).
		Bool("scraper_enabled", config.Scraper.Enabled).
		Msg("DineScout starting")
}
