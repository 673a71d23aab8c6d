// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sonarium/config.yaml",
	"/etc/sonarium/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config populated with every default value.
// Defaults load first and are then overridden by the config file and
// environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            4410,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Navigator: NavigatorConfig{
			ColdStartThreshold:   5,
			ExplorationRate:      0.2,
			ExploreMinCandidates: 10,
			ExploreRankLow:       5,
			ExploreRankHigh:      15,
			CandidateBase:        20,
			PlaylistLength:       15,
			WormholeSteps:        8,
			MinWormholeSteps:     2,
			MaxWormholeSteps:     20,
			WormholeLookahead:    5,
			RefreshInterval:      0, // periodic refresh off unless configured
			RefreshOnStartup:     false,
			Seed:                 0, // seed from entropy
			PathCacheTTL:         10 * time.Minute,
		},
		Embeddings: EmbeddingsConfig{
			Dimension:       128,
			CacheDir:        "/data/embeddings",
			Source:          "auto",
			SyntheticTracks: 500,
			SyntheticSeed:   42,
		},
		Extraction: ExtractionConfig{
			Enabled:             false, // standalone mode by default
			URL:                 "",
			Timeout:             30 * time.Second,
			RequestsPerSecond:   10,
			Burst:               5,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
			BreakerTimeout:      30 * time.Second,
		},
		Catalog: CatalogConfig{
			Path:      "/data/catalog",
			InMemory:  false,
			SeedDemo:  false,
			GCEnabled: true,
		},
		API: APIConfig{
			DefaultPageSize:   20,
			MaxPageSize:       100,
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		WebSocket: WebSocketConfig{
			Enabled:      true,
			MaxClients:   256,
			SendBuffer:   64,
			WriteTimeout: 10 * time.Second,
			PingInterval: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in defaults from defaultConfig()
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: highest priority
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables, mapped from flat names to koanf paths
	// (HTTP_PORT -> server.port, NAVIGATOR_EXPLORATION_RATE -> navigator.exploration_rate)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env values for known slice fields
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the path of the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// they arrive as strings from the environment.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults)
		switch val.(type) {
		case []interface{}, []string:
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps flat environment variable names to koanf config
// paths. Unmapped variables return "" and are skipped, which keeps random
// environment noise out of the configuration.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - EMBEDDINGS_DIMENSION -> embeddings.dimension
//   - NAVIGATOR_EXPLORATION_RATE -> navigator.exploration_rate
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_port":        "server.port",
		"http_host":        "server.host",
		"http_timeout":     "server.timeout",
		"shutdown_timeout": "server.shutdown_timeout",
		"environment":      "server.environment",

		// Navigator mappings
		"navigator_cold_start_threshold":   "navigator.cold_start_threshold",
		"navigator_exploration_rate":       "navigator.exploration_rate",
		"navigator_explore_min_candidates": "navigator.explore_min_candidates",
		"navigator_explore_rank_low":       "navigator.explore_rank_low",
		"navigator_explore_rank_high":      "navigator.explore_rank_high",
		"navigator_candidate_base":         "navigator.candidate_base",
		"navigator_playlist_length":        "navigator.playlist_length",
		"navigator_wormhole_steps":         "navigator.wormhole_steps",
		"navigator_min_wormhole_steps":     "navigator.min_wormhole_steps",
		"navigator_max_wormhole_steps":     "navigator.max_wormhole_steps",
		"navigator_wormhole_lookahead":     "navigator.wormhole_lookahead",
		"navigator_refresh_interval":       "navigator.refresh_interval",
		"navigator_refresh_on_startup":     "navigator.refresh_on_startup",
		"navigator_seed":                   "navigator.seed",
		"navigator_path_cache_ttl":         "navigator.path_cache_ttl",

		// Embeddings mappings
		"embeddings_dimension":        "embeddings.dimension",
		"embeddings_cache_dir":        "embeddings.cache_dir",
		"embeddings_source":           "embeddings.source",
		"embeddings_synthetic_tracks": "embeddings.synthetic_tracks",
		"embeddings_synthetic_seed":   "embeddings.synthetic_seed",

		// Extraction service mappings
		"extraction_enabled":               "extraction.enabled",
		"extraction_url":                   "extraction.url",
		"extraction_timeout":               "extraction.timeout",
		"extraction_rps":                   "extraction.requests_per_second",
		"extraction_burst":                 "extraction.burst",
		"extraction_breaker_min_requests":  "extraction.breaker_min_requests",
		"extraction_breaker_failure_ratio": "extraction.breaker_failure_ratio",
		"extraction_breaker_timeout":       "extraction.breaker_timeout",

		// Catalog mappings
		"catalog_path":       "catalog.path",
		"catalog_in_memory":  "catalog.in_memory",
		"catalog_seed_demo":  "catalog.seed_demo",
		"catalog_gc_enabled": "catalog.gc_enabled",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",
		"cors_origins":          "api.cors_origins",
		"rate_limit_requests":   "api.rate_limit_reqs",
		"rate_limit_window":     "api.rate_limit_window",
		"disable_rate_limit":    "api.rate_limit_disabled",

		// WebSocket mappings
		"ws_enabled":       "websocket.enabled",
		"ws_max_clients":   "websocket.max_clients",
		"ws_send_buffer":   "websocket.send_buffer",
		"ws_write_timeout": "websocket.write_timeout",
		"ws_ping_interval": "websocket.ping_interval",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Metrics mappings
		"metrics_enabled": "metrics.enabled",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload. The caller owns
// mutex protection around configuration swaps during reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
