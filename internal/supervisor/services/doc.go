// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

/*
Package services provides suture.Service wrappers for Sonarium components.

This package adapts application components to the suture v4 supervision
model, translating their lifecycle patterns (ListenAndServe, scheduled
loops) into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation into the Serve pattern
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Refresh Service (RefreshService):
  - Drives periodic embedding-space rebuilds on the navigation engine
  - Optional rebuild on startup, ticker-driven rebuilds thereafter
  - A failed or already-running rebuild is logged and skipped, never
    escalated to the supervisor

The websocket hub needs no wrapper; *websocket.Hub implements Serve and
String itself and is added to the tree directly.

# Usage Example

Creating and registering services:

	import (
	    "net/http"
	    "time"

	    "github.com/tomtom215/sonarium/internal/supervisor"
	    "github.com/tomtom215/sonarium/internal/supervisor/services"
	)

	func setupSupervisor(server *http.Server, hub *websocket.Hub, engine *navigator.Engine) {
	    tree, _ := supervisor.NewSupervisorTree(logger, config)

	    // HTTP server with 30s shutdown timeout
	    tree.AddAPIService(services.NewHTTPServerService(server, 30*time.Second))

	    // WebSocket hub implements suture.Service directly
	    tree.AddMessagingService(hub)

	    // Periodic embedding refresh
	    refreshSvc := services.NewRefreshService(engine, services.RefreshServiceConfig{
	        RefreshOnStartup: true,
	        RefreshInterval:  6 * time.Hour,
	    }, logging.Logger())
	    tree.AddEngineService(refreshSvc)

	    // Start supervision
	    tree.Serve(ctx)
	}

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

The refresh service deliberately swallows rebuild failures: the engine
keeps serving the previously installed embedding space, so a broken
extraction backend should surface as log warnings and a stale built_at
timestamp, not as a supervisor restart storm.

# Service Identification

All services implement fmt.Stringer for logging:

	func (s *HTTPServerService) String() string {
	    return "http-server"
	}

Suture uses this for log messages:

	INFO http-server: starting
	INFO http-server: stopped
	ERROR refresh-service: restarting after failure

# Thread Safety

All service wrappers are safe for concurrent use:
  - Context cancellation is handled atomically
  - Multiple Serve calls are not supported (undefined behavior)

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - github.com/thejerf/suture/v4: Underlying supervision library
  - internal/websocket: WebSocket hub implementation
  - internal/navigator: Navigation engine driven by RefreshService
*/
package services
