// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in sensible defaults for every setting
//  2. Config file: optional YAML file (config.yaml) for persistent settings
//  3. Environment variables: override any setting
//
// Configuration categories:
//
//  1. Core engine:
//     - Navigator: selection policy, playlist and wormhole parameters, refresh
//     - Embeddings: vector source, dimensionality, on-disk cache location
//
//  2. Integrations:
//     - Extraction: optional external embedding service (circuit breaker, rate limit)
//     - Catalog: Badger-backed track metadata store
//
//  3. Serving:
//     - Server: HTTP listener (port, host, timeouts)
//     - API: pagination, CORS, rate limiting
//     - WebSocket: live engine event streaming
//
//  4. Observability:
//     - Logging: level and output format
//     - Metrics: Prometheus exposition
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Navigator  NavigatorConfig  `koanf:"navigator"`
	Embeddings EmbeddingsConfig `koanf:"embeddings"`
	Extraction ExtractionConfig `koanf:"extraction"` // Optional: external embedding extraction service
	Catalog    CatalogConfig    `koanf:"catalog"`
	API        APIConfig        `koanf:"api"`
	WebSocket  WebSocketConfig  `koanf:"websocket"`
	Logging    LoggingConfig    `koanf:"logging"`
	Metrics    MetricsConfig    `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings.
//
// Environment variables:
//   - HTTP_PORT: listen port (default: 4410)
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: read/write timeout (default: 30s)
//   - SHUTDOWN_TIMEOUT: graceful shutdown window (default: 10s)
//   - ENVIRONMENT: development or production (default: development)
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// NavigatorConfig holds the selection policy and traversal parameters for
// the embedding-space navigation engine.
//
// The defaults reproduce the tuned production policy: listeners with fewer
// than five history entries get a uniformly random pick, one in five warm
// selections explores the mid-ranked neighborhood instead of exploiting the
// nearest candidate, and wormhole paths default to eight intermediate stops.
//
// Environment variables:
//   - NAVIGATOR_COLD_START_THRESHOLD: history size below which selection is random (default: 5)
//   - NAVIGATOR_EXPLORATION_RATE: probability of an explore pick (default: 0.2)
//   - NAVIGATOR_EXPLORE_MIN_CANDIDATES: candidate count required before exploring (default: 10)
//   - NAVIGATOR_EXPLORE_RANK_LOW / _HIGH: explore pool rank window (default: 5 / 15)
//   - NAVIGATOR_CANDIDATE_BASE: base neighbor fetch size before history padding (default: 20)
//   - NAVIGATOR_PLAYLIST_LENGTH: default playlist length (default: 15)
//   - NAVIGATOR_WORMHOLE_STEPS: default wormhole step count (default: 8)
//   - NAVIGATOR_WORMHOLE_LOOKAHEAD: base nearest-neighbor lookahead per hop (default: 5)
//   - NAVIGATOR_REFRESH_INTERVAL: periodic re-embed interval, 0 disables (default: 0)
//   - NAVIGATOR_REFRESH_ON_STARTUP: rebuild embeddings when the refresh service starts (default: false)
//   - NAVIGATOR_SEED: RNG seed, 0 seeds from entropy (default: 0)
//   - NAVIGATOR_PATH_CACHE_TTL: computed path cache lifetime (default: 10m)
type NavigatorConfig struct {
	ColdStartThreshold   int           `koanf:"cold_start_threshold"`
	ExplorationRate      float64       `koanf:"exploration_rate"`
	ExploreMinCandidates int           `koanf:"explore_min_candidates"`
	ExploreRankLow       int           `koanf:"explore_rank_low"`
	ExploreRankHigh      int           `koanf:"explore_rank_high"`
	CandidateBase        int           `koanf:"candidate_base"`
	PlaylistLength       int           `koanf:"playlist_length"`
	WormholeSteps        int           `koanf:"wormhole_steps"`
	MinWormholeSteps     int           `koanf:"min_wormhole_steps"`
	MaxWormholeSteps     int           `koanf:"max_wormhole_steps"`
	WormholeLookahead    int           `koanf:"wormhole_lookahead"`
	RefreshInterval      time.Duration `koanf:"refresh_interval"`
	RefreshOnStartup     bool          `koanf:"refresh_on_startup"`
	Seed                 int64         `koanf:"seed"` // 0 = seed from crypto entropy
	PathCacheTTL         time.Duration `koanf:"path_cache_ttl"`
}

// EmbeddingsConfig holds embedding store settings.
//
// Source selects where vectors come from on startup:
//   - "auto": persisted cache first, then synthetic fallback
//   - "cache": persisted cache only (fail if absent)
//   - "service": extraction service only (requires extraction.enabled)
//   - "synthetic": deterministic synthetic vectors (demo and test mode)
//
// Environment variables:
//   - EMBEDDINGS_DIMENSION: vector dimensionality (default: 128)
//   - EMBEDDINGS_CACHE_DIR: persisted vector cache directory (default: /data/embeddings)
//   - EMBEDDINGS_SOURCE: auto, cache, service, or synthetic (default: auto)
//   - EMBEDDINGS_SYNTHETIC_TRACKS: synthetic catalog size (default: 500)
//   - EMBEDDINGS_SYNTHETIC_SEED: synthetic generator seed (default: 42)
type EmbeddingsConfig struct {
	Dimension       int    `koanf:"dimension"`
	CacheDir        string `koanf:"cache_dir"`
	Source          string `koanf:"source"`
	SyntheticTracks int    `koanf:"synthetic_tracks"`
	SyntheticSeed   int64  `koanf:"synthetic_seed"`
}

// ExtractionConfig holds settings for the external embedding extraction
// service. The client wraps calls in a circuit breaker and a token-bucket
// rate limiter so a degraded service cannot stall refresh jobs.
//
// Environment variables:
//   - EXTRACTION_ENABLED: enable the extraction client (default: false)
//   - EXTRACTION_URL: service base URL, e.g. http://localhost:8350
//   - EXTRACTION_TIMEOUT: per-request timeout (default: 30s)
//   - EXTRACTION_RPS: sustained requests per second (default: 10)
//   - EXTRACTION_BURST: rate limiter burst size (default: 5)
//   - EXTRACTION_BREAKER_MIN_REQUESTS: samples before the breaker may trip (default: 10)
//   - EXTRACTION_BREAKER_FAILURE_RATIO: failure ratio that trips the breaker (default: 0.6)
//   - EXTRACTION_BREAKER_TIMEOUT: open-state cooldown (default: 30s)
type ExtractionConfig struct {
	Enabled             bool          `koanf:"enabled"`
	URL                 string        `koanf:"url"`
	Timeout             time.Duration `koanf:"timeout"`
	RequestsPerSecond   float64       `koanf:"requests_per_second"`
	Burst               int           `koanf:"burst"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
}

// CatalogConfig holds track metadata store settings.
//
// Environment variables:
//   - CATALOG_PATH: Badger database directory (default: /data/catalog)
//   - CATALOG_IN_MEMORY: run Badger without persistence (default: false)
//   - CATALOG_SEED_DEMO: populate demo tracks when the catalog is empty (default: false)
type CatalogConfig struct {
	Path      string `koanf:"path"`
	InMemory  bool   `koanf:"in_memory"`
	SeedDemo  bool   `koanf:"seed_demo"`
	GCEnabled bool   `koanf:"gc_enabled"` // Badger value-log GC loop
}

// APIConfig holds REST API behavior settings.
//
// Environment variables:
//   - API_DEFAULT_PAGE_SIZE: default page size for list endpoints (default: 20)
//   - API_MAX_PAGE_SIZE: maximum allowed page size (default: 100)
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS: requests per window per client (default: 100)
//   - RATE_LIMIT_WINDOW: rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: disable rate limiting entirely (default: false)
type APIConfig struct {
	DefaultPageSize   int           `koanf:"default_page_size"`
	MaxPageSize       int           `koanf:"max_page_size"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// WebSocketConfig holds live event streaming settings.
//
// Environment variables:
//   - WS_ENABLED: enable the /api/v1/events/ws endpoint (default: true)
//   - WS_MAX_CLIENTS: maximum concurrent subscribers (default: 256)
//   - WS_SEND_BUFFER: per-client outbound queue length (default: 64)
//   - WS_WRITE_TIMEOUT: per-message write deadline (default: 10s)
//   - WS_PING_INTERVAL: keepalive ping interval (default: 30s)
type WebSocketConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxClients   int           `koanf:"max_clients"`
	SendBuffer   int           `koanf:"send_buffer"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	PingInterval time.Duration `koanf:"ping_interval"`
}

// LoggingConfig holds logging settings.
//
// Environment variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig holds Prometheus exposition settings.
//
// Environment variables:
//   - METRICS_ENABLED: expose /metrics (default: true)
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Load loads configuration from defaults, an optional config file, and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// ShouldWarnAboutCORS reports whether startup should warn about a wildcard
// CORS origin in production mode.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, origin := range c.API.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
