// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package config

import (
	"fmt"
	"net/url"
)

// Validate checks that the configuration is complete and internally
// consistent. Called by Load() after all layers are merged.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateNavigator(); err != nil {
		return err
	}

	if err := c.validateEmbeddings(); err != nil {
		return err
	}

	if err := c.validateExtraction(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "production", "test":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, production, or test, got %q", c.Server.Environment)
	}
}

func (c *Config) validateNavigator() error {
	n := c.Navigator

	if n.ColdStartThreshold < 0 {
		return fmt.Errorf("NAVIGATOR_COLD_START_THRESHOLD must be non-negative")
	}
	if n.ExplorationRate < 0 || n.ExplorationRate > 1 {
		return fmt.Errorf("NAVIGATOR_EXPLORATION_RATE must be between 0 and 1, got %g", n.ExplorationRate)
	}
	if n.ExploreRankLow < 0 || n.ExploreRankHigh <= n.ExploreRankLow {
		return fmt.Errorf("explore rank window [%d, %d) is invalid", n.ExploreRankLow, n.ExploreRankHigh)
	}
	if n.CandidateBase < 1 {
		return fmt.Errorf("NAVIGATOR_CANDIDATE_BASE must be at least 1")
	}
	if n.PlaylistLength < 1 {
		return fmt.Errorf("NAVIGATOR_PLAYLIST_LENGTH must be at least 1")
	}
	if n.MinWormholeSteps < 1 || n.MaxWormholeSteps < n.MinWormholeSteps {
		return fmt.Errorf("wormhole step bounds [%d, %d] are invalid", n.MinWormholeSteps, n.MaxWormholeSteps)
	}
	if n.WormholeSteps < n.MinWormholeSteps || n.WormholeSteps > n.MaxWormholeSteps {
		return fmt.Errorf("NAVIGATOR_WORMHOLE_STEPS %d is outside [%d, %d]",
			n.WormholeSteps, n.MinWormholeSteps, n.MaxWormholeSteps)
	}
	if n.WormholeLookahead < 1 {
		return fmt.Errorf("NAVIGATOR_WORMHOLE_LOOKAHEAD must be at least 1")
	}
	if n.RefreshInterval < 0 {
		return fmt.Errorf("NAVIGATOR_REFRESH_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateEmbeddings() error {
	if c.Embeddings.Dimension < 1 {
		return fmt.Errorf("EMBEDDINGS_DIMENSION must be at least 1, got %d", c.Embeddings.Dimension)
	}

	switch c.Embeddings.Source {
	case "auto", "cache", "service", "synthetic":
	default:
		return fmt.Errorf("EMBEDDINGS_SOURCE must be auto, cache, service, or synthetic, got %q", c.Embeddings.Source)
	}

	if c.Embeddings.Source == "cache" || c.Embeddings.Source == "auto" {
		if c.Embeddings.CacheDir == "" {
			return fmt.Errorf("EMBEDDINGS_CACHE_DIR is required when EMBEDDINGS_SOURCE=%s", c.Embeddings.Source)
		}
	}

	if c.Embeddings.Source == "service" && !c.Extraction.Enabled {
		return fmt.Errorf("EMBEDDINGS_SOURCE=service requires EXTRACTION_ENABLED=true")
	}

	if c.Embeddings.SyntheticTracks < 1 {
		return fmt.Errorf("EMBEDDINGS_SYNTHETIC_TRACKS must be at least 1")
	}

	return nil
}

func (c *Config) validateExtraction() error {
	if !c.Extraction.Enabled {
		return nil // extraction service is optional
	}

	if c.Extraction.URL == "" {
		return fmt.Errorf("EXTRACTION_URL is required when EXTRACTION_ENABLED=true")
	}
	if err := validateHTTPURL(c.Extraction.URL, "EXTRACTION_URL"); err != nil {
		return err
	}
	if c.Extraction.Timeout <= 0 {
		return fmt.Errorf("EXTRACTION_TIMEOUT must be positive")
	}
	if c.Extraction.RequestsPerSecond <= 0 {
		return fmt.Errorf("EXTRACTION_RPS must be positive")
	}
	if c.Extraction.Burst < 1 {
		return fmt.Errorf("EXTRACTION_BURST must be at least 1")
	}
	if c.Extraction.BreakerFailureRatio <= 0 || c.Extraction.BreakerFailureRatio > 1 {
		return fmt.Errorf("EXTRACTION_BREAKER_FAILURE_RATIO must be in (0, 1], got %g", c.Extraction.BreakerFailureRatio)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.InMemory {
		return nil
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH is required unless CATALOG_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE %d is below API_DEFAULT_PAGE_SIZE %d",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.RateLimitDisabled {
		return nil
	}
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// validateHTTPURL validates a base URL for HTTP services: http or https
// scheme, a host, and no path or query component.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be a base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
