// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 4410 {
		t.Errorf("expected default port 4410, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Server.Timeout)
	}

	if cfg.Navigator.ColdStartThreshold != 5 {
		t.Errorf("expected cold start threshold 5, got %d", cfg.Navigator.ColdStartThreshold)
	}
	if cfg.Navigator.ExplorationRate != 0.2 {
		t.Errorf("expected exploration rate 0.2, got %g", cfg.Navigator.ExplorationRate)
	}
	if cfg.Navigator.ExploreRankLow != 5 || cfg.Navigator.ExploreRankHigh != 15 {
		t.Errorf("expected explore rank window [5, 15), got [%d, %d)",
			cfg.Navigator.ExploreRankLow, cfg.Navigator.ExploreRankHigh)
	}
	if cfg.Navigator.CandidateBase != 20 {
		t.Errorf("expected candidate base 20, got %d", cfg.Navigator.CandidateBase)
	}
	if cfg.Navigator.PlaylistLength != 15 {
		t.Errorf("expected playlist length 15, got %d", cfg.Navigator.PlaylistLength)
	}
	if cfg.Navigator.WormholeSteps != 8 {
		t.Errorf("expected wormhole steps 8, got %d", cfg.Navigator.WormholeSteps)
	}
	if cfg.Navigator.MinWormholeSteps != 2 || cfg.Navigator.MaxWormholeSteps != 20 {
		t.Errorf("expected wormhole bounds [2, 20], got [%d, %d]",
			cfg.Navigator.MinWormholeSteps, cfg.Navigator.MaxWormholeSteps)
	}

	if cfg.Embeddings.Dimension != 128 {
		t.Errorf("expected dimension 128, got %d", cfg.Embeddings.Dimension)
	}
	if cfg.Embeddings.Source != "auto" {
		t.Errorf("expected source auto, got %s", cfg.Embeddings.Source)
	}

	if cfg.Extraction.Enabled {
		t.Error("expected extraction disabled by default")
	}
	if cfg.WebSocket.Enabled != true {
		t.Error("expected websocket enabled by default")
	}
	if cfg.Metrics.Enabled != true {
		t.Error("expected metrics enabled by default")
	}
}

func TestDefaultsValidate(t *testing.T) {
	t.Parallel()

	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate, got: %v", err)
	}
}

func TestValidateServer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: "HTTP_TIMEOUT",
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantErr: "ENVIRONMENT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateNavigator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative exploration rate",
			mutate:  func(c *Config) { c.Navigator.ExplorationRate = -0.1 },
			wantErr: "EXPLORATION_RATE",
		},
		{
			name:    "exploration rate above one",
			mutate:  func(c *Config) { c.Navigator.ExplorationRate = 1.5 },
			wantErr: "EXPLORATION_RATE",
		},
		{
			name:    "inverted explore rank window",
			mutate:  func(c *Config) { c.Navigator.ExploreRankLow = 15; c.Navigator.ExploreRankHigh = 5 },
			wantErr: "explore rank window",
		},
		{
			name:    "zero candidate base",
			mutate:  func(c *Config) { c.Navigator.CandidateBase = 0 },
			wantErr: "CANDIDATE_BASE",
		},
		{
			name:    "inverted wormhole bounds",
			mutate:  func(c *Config) { c.Navigator.MinWormholeSteps = 20; c.Navigator.MaxWormholeSteps = 2 },
			wantErr: "wormhole step bounds",
		},
		{
			name:    "default steps outside bounds",
			mutate:  func(c *Config) { c.Navigator.WormholeSteps = 50 },
			wantErr: "WORMHOLE_STEPS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateEmbeddings(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Embeddings.Dimension = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero dimension")
	}

	cfg = defaultConfig()
	cfg.Embeddings.Source = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown source")
	}

	cfg = defaultConfig()
	cfg.Embeddings.Source = "cache"
	cfg.Embeddings.CacheDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for cache source without cache dir")
	}

	cfg = defaultConfig()
	cfg.Embeddings.Source = "service"
	cfg.Extraction.Enabled = false
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for service source without extraction enabled")
	}
}

func TestValidateExtraction(t *testing.T) {
	t.Parallel()

	// Disabled extraction skips all checks.
	cfg := defaultConfig()
	cfg.Extraction.Enabled = false
	cfg.Extraction.URL = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled extraction must not require URL: %v", err)
	}

	cfg = defaultConfig()
	cfg.Extraction.Enabled = true
	cfg.Extraction.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for enabled extraction without URL")
	}

	cfg = defaultConfig()
	cfg.Extraction.Enabled = true
	cfg.Extraction.URL = "ftp://example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-http scheme")
	}

	cfg = defaultConfig()
	cfg.Extraction.Enabled = true
	cfg.Extraction.URL = "http://localhost:8350/v1/embed"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for URL with path")
	}

	cfg = defaultConfig()
	cfg.Extraction.Enabled = true
	cfg.Extraction.URL = "http://localhost:8350"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid extraction config rejected: %v", err)
	}
}

func TestValidateCatalog(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Catalog.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty catalog path")
	}

	cfg = defaultConfig()
	cfg.Catalog.Path = ""
	cfg.Catalog.InMemory = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("in-memory catalog must not require path: %v", err)
	}
}

func TestValidateAPI(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.API.MaxPageSize = 5 // below default page size 20
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for max page size below default")
	}

	cfg = defaultConfig()
	cfg.API.RateLimitReqs = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero rate limit")
	}

	cfg = defaultConfig()
	cfg.API.RateLimitReqs = 0
	cfg.API.RateLimitDisabled = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled rate limiting must skip limit checks: %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}

	cfg = defaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if !cfg.IsDevelopment() {
		t.Error("expected default environment to be development")
	}
	if cfg.IsProduction() {
		t.Error("expected default environment to not be production")
	}

	cfg.Server.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("expected production after override")
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard CORS in development must not warn")
	}

	cfg.Server.Environment = "production"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard CORS in production must warn")
	}

	cfg.API.CORSOrigins = []string{"https://app.example.com"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origins must not warn")
	}
}
