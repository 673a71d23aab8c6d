// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/sonarium/internal/logging"
	ws "github.com/tomtom215/sonarium/internal/websocket"
)

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout so a slow client cannot hold the accept path open.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins.
//
// A missing Origin header is rejected: browsers always send one, so its
// absence would let any page bypass the CORS allowlist entirely.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// Nil config allows everything, the fail-open path for tests.
	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.API.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// EventStream upgrades the connection to the live engine event feed
//
// @Summary Subscribe to engine events
// @Description Upgrades to a WebSocket carrying engine lifecycle events (refresh started/finished/failed, snapshot swaps, state changes) and catalog change notifications. The stream is one-way and best-effort; treat it as an invalidation signal and re-query REST endpoints for state.
// @Tags Realtime
// @Accept json
// @Produce json
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {string} string "Bad Request"
// @Failure 503 {object} APIResponse "Event feed disabled or at capacity"
// @Router /events/ws [get]
func (h *Handler) EventStream(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		WriteError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Event feed unavailable")
		return
	}
	if h.wsHub.AtCapacity() {
		logging.Warn().Int("clients", h.wsHub.GetClientCount()).Msg("WebSocket connection rejected: subscriber limit reached")
		WriteError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Event feed at capacity")
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
