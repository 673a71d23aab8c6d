// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

/*
Package websocket streams engine events to connected subscribers in real time.

This package broadcasts navigation-engine activity (refresh lifecycle, snapshot
swaps, track selections, playlist synthesis, wormhole computation) and catalog
change notifications to frontend clients. It uses the gorilla/websocket library
with a hub-client architecture for efficient fan-out.

Key Components:

  - Hub: Central broker that manages subscriber connections and fans out events.
    Implements navigator.EventSink, so the engine publishes to it directly, and
    suture's Service interface, so it runs under supervision.
  - Client: Represents a single WebSocket connection with read/write goroutines
  - Message: Wire envelope carrying the event type, timestamp, and payload

Architecture:

The package implements a hub-and-spoke pattern:

	┌──────────┐
	│  Engine  │ ← Publish(Event), never blocks
	└────┬─────┘
	     │
	┌────┴─────┐
	│   Hub    │ ← Broadcasts to all subscribers
	└────┬─────┘
	     │
	┌────┴─────┬─────────┬─────────┐
	│          │         │         │
	│ Client1  │ Client2 │ Client3 │ Client4
	│          │         │         │
	└──────────┴─────────┴─────────┘

Each client has two goroutines:
  - readPump: Processes control frames, detects disconnects
  - writePump: Writes queued messages, sends keepalive pings

Message Types:

Engine events keep their navigator type string:

  - engine.state_changed: Engine lifecycle transition
  - engine.refresh_started / refresh_finished / refresh_failed: Rebuild jobs
  - engine.snapshot_swapped: A new index generation went live
  - navigator.track_selected: A next-track selection completed
  - navigator.playlist_generated: A playlist synthesis completed
  - navigator.wormhole_computed: A path interpolation completed

The API layer adds ad-hoc types via Broadcast, e.g. catalog.track_updated.

Delivery Guarantees:

Delivery is best-effort by design. Publish never blocks the engine: when the
hub's broadcast queue is full the event is dropped and counted
(websocket_events_dropped_total). A subscriber whose per-client queue stays
full is disconnected rather than buffered without bound. Consumers needing a
consistent view should treat the stream as an invalidation signal and re-query
the REST API.

Usage Example - Server:

	hub := websocket.NewHub(cfg.WebSocket)
	supervisor.Add(hub)

	// Hand the hub to the engine as its event sink
	engine, err := navigator.NewEngine(cfg.Engine, navigator.Dependencies{
	    Events: hub,
	})

Usage Example - Client (JavaScript):

	const ws = new WebSocket('ws://localhost:4410/api/v1/events/ws');

	ws.onmessage = (event) => {
	    const msg = JSON.parse(event.data);

	    if (msg.type === 'engine.snapshot_swapped') {
	        refreshStatus(); // Re-query /api/v1/engine/status
	    }

	    if (msg.type === 'navigator.playlist_generated') {
	        showToast(`Playlist ready: ${msg.data.length} tracks`);
	    }
	};

Connection Lifecycle:

 1. Client connects via HTTP upgrade at /api/v1/events/ws
 2. Hub registers the client (rejected with a close frame when at capacity)
 3. Client starts read/write goroutines
 4. Hub fans out events to all subscribers in client-ID order
 5. Client disconnects (network error, slow-consumer drop, or explicit close)
 6. Hub unregisters the client and cleans up

Thread Safety:

The package is fully thread-safe:
  - Hub uses a mutex for client map access
  - Channels coordinate goroutine communication
  - The send channel of each client is written and closed only by the hub
    goroutine, so pumps never race the hub on a closed channel

Configuration:

Settings come from config.WebSocketConfig:
  - MaxClients: subscriber limit (default 256)
  - SendBuffer: per-client outbound queue length (default 64)
  - WriteTimeout: per-message write deadline (default 10s)
  - PingInterval: keepalive ping interval (default 30s); the pong deadline
    is twice this, so one lost pong does not kill the connection

See Also:

  - github.com/gorilla/websocket: Underlying WebSocket library
  - internal/navigator: Event types and the EventSink contract
  - internal/api: WebSocket endpoint handler
*/
package websocket
