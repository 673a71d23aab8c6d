// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

/*
Package main is the entry point for the Sonarium server application.

Sonarium is a self-hosted music recommendation backend. Instead of
collaborative filtering over play counts, it navigates a precomputed
embedding space in which nearby tracks sound alike: the next track is a
neighbor of the current one, playlists grow outward from seed tracks, and
"wormhole" paths interpolate a smooth route between any two points of the
catalog.

# Application Architecture

The server implements a layered architecture with Suture v4 process
supervision:

	RootSupervisor ("sonarium")
	├── EngineSupervisor ("engine-layer")
	│   └── Refresh Service (periodic catalog re-embedding)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket Hub (real-time engine events)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST API + Swagger)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Catalog: BadgerDB track metadata store with demo seeding
 4. Extraction client: rate-limited, circuit-broken embedding service client
 5. Navigation engine: embedding store, neighbor index, selection policies
 6. Engine bootstrap: first space from cache, service, or synthetic source
 7. WebSocket Hub: real-time engine and navigation events
 8. Supervisor tree: Suture v4 process supervision
 9. HTTP Server: Chi router with middleware stack

The engine is not itself a supervised service: queries are synchronous
reads against an immutable snapshot, so there is no loop to restart. Only
the refresh schedule, the hub, and the HTTP server live in the tree. A
crash in the refresh loop therefore never takes down query serving.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest
priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=4410               # HTTP server port (44.1 kHz reference)
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Embedding space
	EMBEDDINGS_SOURCE=auto       # auto, cache, service, or synthetic
	EMBEDDINGS_CACHE_DIR=/data/embeddings
	EMBEDDINGS_DIMENSION=128

	# Track catalog
	CATALOG_PATH=/data/catalog
	CATALOG_SEED_DEMO=false      # seed demo tracks when catalog is empty

	# Extraction service (optional)
	EXTRACTION_ENABLED=false
	EXTRACTION_URL=http://localhost:8350

	# Refresh schedule
	NAVIGATOR_REFRESH_INTERVAL=0 # 0 disables periodic re-embedding
	NAVIGATOR_REFRESH_ON_STARTUP=false

See .env.example for the complete configuration reference.

# Embedding Sources

The first embedding space comes from a configurable source chain:

	auto       persisted cache first, then deterministic synthetic vectors
	cache      persisted cache only; startup degrades if absent
	service    embed the whole catalog through the extraction service
	synthetic  deterministic random unit vectors (demo and test mode)

A synthetic space is clearly labeled in /api/v1/engine/status so
fabricated vectors are never mistaken for model output. Bootstrap failure
is not fatal: the server starts, readiness reports 503, and navigation
recovers when a refresh succeeds.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Disconnects WebSocket subscribers with close frames
 3. Waits for in-flight requests (10s timeout)
 4. Flushes pending writes and closes the catalog store
 5. Reports any services that failed to stop

# Usage Examples

Demo mode (no external dependencies):

	export CATALOG_IN_MEMORY=true CATALOG_SEED_DEMO=true
	export EMBEDDINGS_SOURCE=synthetic
	go run ./cmd/server

Production (persisted cache + nightly re-embedding):

	export EMBEDDINGS_SOURCE=auto
	export EMBEDDINGS_CACHE_DIR=/data/embeddings
	export EXTRACTION_ENABLED=true EXTRACTION_URL=http://extraction:8350
	export NAVIGATOR_REFRESH_INTERVAL=24h
	./sonarium

Docker:

	docker run -d \
	  -e CATALOG_SEED_DEMO=true \
	  -e EMBEDDINGS_SOURCE=synthetic \
	  -p 4410:4410 \
	  ghcr.io/tomtom215/sonarium

# Port 4410

The default port 4410 references the 44.1 kHz CD audio sample rate.

# API Documentation

Swagger documentation is available at /swagger/index.html when the server
is running. The API is organized into categories:

  - Core: Health checks, liveness and readiness probes
  - Navigation: Next-track selection, playlists, wormhole paths
  - Engine: Space status, configuration, refresh, direct loads
  - Tracks: Catalog queries, search, metadata management
  - Realtime: WebSocket event feed
  - Admin: Performance statistics

# See Also

  - internal/config: Configuration management
  - internal/navigator: Embedding-space navigation engine
  - internal/catalog: Track metadata store
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
*/
package main
