// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package main is the entry point for the Sonarium server application.
//
// Sonarium is a self-hosted music recommendation backend that navigates a
// precomputed track embedding space: next-track selection, playlist
// synthesis from seed tracks, and wormhole paths that interpolate between
// two arbitrary points of the catalog.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Catalog: Open the BadgerDB track metadata store (optionally seeded with demo tracks)
//  3. Extraction client: Rate-limited, circuit-broken embedding service client (optional)
//  4. Navigation engine: Bootstrap the embedding space from the configured source chain
//  5. WebSocket Hub: Real-time engine and navigation events for subscribers
//  6. Supervisor tree: Suture v4 supervision of the refresh loop, hub, and HTTP server
//  7. HTTP Server: REST API with Swagger documentation
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (see .env.example)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Standalone Mode
//
// Sonarium runs WITHOUT an extraction service by default, serving vectors
// from the persisted embedding cache or a deterministic synthetic space:
//   - EMBEDDINGS_SOURCE=auto (cache first, synthetic fallback)
//   - EMBEDDINGS_SOURCE=synthetic (demo mode)
//
// Optional extraction service integration (for catalog-wide refresh):
//   - EXTRACTION_ENABLED=true
//   - EXTRACTION_URL: extraction service base URL (e.g. http://localhost:8350)
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Disconnects WebSocket subscribers
//   - Closes the catalog store and path caches
//
// # Example Usage
//
// Demo mode (in-memory catalog, synthetic embedding space):
//
//	export CATALOG_IN_MEMORY=true
//	export CATALOG_SEED_DEMO=true
//	export EMBEDDINGS_SOURCE=synthetic
//	./sonarium
//
// Production with persisted cache and nightly re-embedding:
//
//	export EMBEDDINGS_SOURCE=auto
//	export EMBEDDINGS_CACHE_DIR=/data/embeddings
//	export EXTRACTION_ENABLED=true
//	export EXTRACTION_URL=http://extraction:8350
//	export NAVIGATOR_REFRESH_INTERVAL=24h
//	./sonarium
//
// # Port 4410
//
// The default port 4410 references the 44.1 kHz CD audio sample rate.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/sonarium/docs" // Import generated swagger docs
	"github.com/tomtom215/sonarium/internal/api"
	"github.com/tomtom215/sonarium/internal/catalog"
	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/embedding"
	"github.com/tomtom215/sonarium/internal/extraction"
	"github.com/tomtom215/sonarium/internal/logging"
	"github.com/tomtom215/sonarium/internal/navigator"
	"github.com/tomtom215/sonarium/internal/supervisor"
	"github.com/tomtom215/sonarium/internal/supervisor/services"
	ws "github.com/tomtom215/sonarium/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Sonarium with supervisor tree")

	// Log configuration status - show extraction status based on Enabled flag
	if cfg.Extraction.Enabled {
		logging.Info().
			Str("extraction_url", cfg.Extraction.URL).
			Str("catalog_path", cfg.Catalog.Path).
			Str("embeddings_source", cfg.Embeddings.Source).
			Msg("Configuration loaded")
	} else {
		logging.Info().
			Bool("extraction_enabled", false).
			Str("catalog_path", cfg.Catalog.Path).
			Str("embeddings_source", cfg.Embeddings.Source).
			Msg("Configuration loaded (standalone mode)")
	}

	// Open the track catalog. Demo seeding happens inside Open when
	// CATALOG_SEED_DEMO is set and the store is empty.
	tracks, err := catalog.Open(cfg.Catalog)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open track catalog")
	}
	defer func() {
		if err := tracks.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog")
		}
	}()

	// Initialize extraction client with circuit breaker for fault tolerance.
	// Extraction is OPTIONAL - without it the engine serves the persisted
	// cache or synthetic vectors and catalog-wide refresh is unavailable.
	var embedder embedding.Embedder
	if cfg.Extraction.Enabled {
		embedder = extraction.NewClient(cfg.Extraction)
		logging.Info().Str("url", cfg.Extraction.URL).Msg("Extraction service client initialized")
	} else {
		logging.Info().Msg("Extraction service disabled - embedding refresh unavailable")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Create WebSocket hub for real-time updates (before the engine, which
	// publishes its events through it)
	var wsHub *ws.Hub
	if cfg.WebSocket.Enabled {
		wsHub = ws.NewHub(cfg.WebSocket)
	} else {
		logging.Info().Msg("WebSocket event feed disabled (WS_ENABLED=false)")
	}

	// Create the navigation engine. The source chain controls where the
	// first embedding space comes from; refresh jobs use the extraction
	// client to rebuild it from the live catalog.
	deps := navigator.Dependencies{
		Sources:  embeddingSources(ctx, cfg, tracks, embedder),
		Tracks:   tracks,
		Embedder: embedder,
		CacheDir: cfg.Embeddings.CacheDir,
	}
	if wsHub != nil {
		deps.Events = wsHub
	}
	engine := navigator.New(cfg.Navigator, deps)
	defer engine.Close()

	// Bootstrap failure is non-fatal: the server starts degraded, readiness
	// reports 503, and navigation recovers when a refresh succeeds.
	if err := engine.Bootstrap(ctx); err != nil {
		logging.Error().Err(err).Msg("Engine bootstrap failed - navigation unavailable until a refresh succeeds")
	} else {
		status := engine.Status()
		logging.Info().
			Str("source", status.Source).
			Int("tracks", status.Tracks).
			Int("dimension", status.Dimension).
			Int64("version", status.Version).
			Msg("Embedding space ready")
	}

	if cfg.API.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
		logging.Warn().Msg("This should only be used for load testing!")
	}

	// Warn about wildcard CORS outside development
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: CORS is configured with wildcard origin (CORS_ORIGINS=*)")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  This allows ANY website to make cross-origin requests to your API.")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  RECOMMENDED: Set specific origins in production:")
		logging.Warn().Msg("    CORS_ORIGINS=https://yourdomain.com,https://app.yourdomain.com")
		logging.Warn().Msg("============================================================")
	}

	handler := api.NewHandler(engine, tracks, wsHub, cfg)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Engine layer services
	tree.AddEngineService(services.NewRefreshService(engine, services.RefreshServiceConfig{
		RefreshOnStartup: cfg.Navigator.RefreshOnStartup,
		RefreshInterval:  cfg.Navigator.RefreshInterval,
	}, logging.Logger()))
	logging.Info().
		Dur("interval", cfg.Navigator.RefreshInterval).
		Bool("on_startup", cfg.Navigator.RefreshOnStartup).
		Msg("Refresh service added to supervisor tree")

	// Messaging layer services. The hub implements suture.Service itself,
	// so it goes into the tree without a wrapper.
	if wsHub != nil {
		tree.AddMessagingService(wsHub)
		logging.Info().Msg("WebSocket hub added to supervisor tree")
	}

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// embeddingSources assembles the bootstrap source chain for the configured
// EMBEDDINGS_SOURCE mode. Config validation has already rejected unknown
// modes and service mode without an extraction client.
func embeddingSources(ctx context.Context, cfg *config.Config, tracks *catalog.Store, embedder embedding.Embedder) []embedding.Source {
	switch cfg.Embeddings.Source {
	case "cache":
		return []embedding.Source{
			&embedding.CacheSource{Dir: cfg.Embeddings.CacheDir},
		}
	case "service":
		return []embedding.Source{
			&embedding.ServiceSource{Tracks: tracks, Embedder: embedder},
		}
	case "synthetic":
		return []embedding.Source{
			syntheticSource(ctx, cfg, tracks),
		}
	default: // "auto": persisted cache first, synthetic fallback
		return []embedding.Source{
			&embedding.CacheSource{Dir: cfg.Embeddings.CacheDir},
			syntheticSource(ctx, cfg, tracks),
		}
	}
}

// syntheticSource fabricates vectors for the real catalog when it holds
// tracks, so demo navigation still resolves to catalog metadata. An empty
// catalog falls back to generated demo identifiers.
func syntheticSource(ctx context.Context, cfg *config.Config, tracks *catalog.Store) *embedding.SyntheticSource {
	src := &embedding.SyntheticSource{
		Count:     cfg.Embeddings.SyntheticTracks,
		Dimension: cfg.Embeddings.Dimension,
		Seed:      cfg.Embeddings.SyntheticSeed,
	}
	ids, err := tracks.ListTrackIDs(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to list catalog tracks for synthetic vectors, using generated demo IDs")
		return src
	}
	if len(ids) > 0 {
		src.IDs = ids
	}
	return src
}
