// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/logging"
	"github.com/tomtom215/sonarium/internal/metrics"
	"github.com/tomtom215/sonarium/internal/navigator"
)

// ShutdownReason identifies why the hub is shutting down.
// This enables clear observability in logs and metrics.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled indicates the parent context was canceled.
	// This is the normal graceful shutdown path (e.g., SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was exceeded.
	// This may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

const (
	defaultMaxClients = 256
	defaultSendBuffer = 64

	// broadcastBuffer absorbs bursts from the engine (a playlist synthesis
	// publishes one event per hop). Enqueueing never blocks; overflow is
	// counted and dropped instead.
	broadcastBuffer = 256
)

// Message is the wire envelope delivered to subscribers. Engine events keep
// their navigator type string verbatim (engine.refresh_finished,
// navigator.track_selected, ...); ad-hoc broadcasts supply their own.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Data      any       `json:"data,omitempty"`
}

// Hub maintains the set of active subscribers and fans engine events out to
// them. It implements navigator.EventSink so it can be handed to the engine
// directly, and suture's Service interface so it runs under supervision.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	maxClients   int
	sendBuffer   int
	writeTimeout time.Duration
	pingInterval time.Duration
}

var _ navigator.EventSink = (*Hub)(nil)

// NewHub creates a hub sized from cfg. Zero or negative values fall back to
// the package defaults.
func NewHub(cfg config.WebSocketConfig) *Hub {
	maxClients := cfg.MaxClients
	if maxClients <= 0 {
		maxClients = defaultMaxClients
	}
	sendBuffer := cfg.SendBuffer
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	pingInterval := cfg.PingInterval
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}

	return &Hub{
		clients:      make(map[*Client]bool),
		broadcast:    make(chan Message, broadcastBuffer),
		Register:     make(chan *Client),
		Unregister:   make(chan *Client),
		maxClients:   maxClients,
		sendBuffer:   sendBuffer,
		writeTimeout: writeTimeout,
		pingInterval: pingInterval,
	}
}

// String names the hub for supervisor logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

// Serve runs the hub loop until ctx is canceled, then closes all subscribers
// and returns ctx.Err(). The signature matches suture's Service interface.
//
// DETERMINISM: When several channels are ready Go's select picks at random.
// The tiered selects below impose a fixed priority instead:
//   - Priority 1: shutdown
//   - Priority 2: subscriber lifecycle (Register/Unregister)
//   - Priority 3: event fan-out
//
// Handling lifecycle ahead of broadcasts keeps the client set consistent
// before any message is delivered.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		// Priority 1: check for shutdown (non-blocking).
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		// Priority 2: subscriber lifecycle (non-blocking check).
		select {
		case client := <-h.Register:
			h.registerClient(client)
			continue
		case client := <-h.Unregister:
			h.unregisterClient(client)
			continue
		default:
		}

		// Priority 3: block until anything happens.
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// registerClient admits a new subscriber, enforcing the configured limit.
// Rejected clients get their send channel closed, which makes writePump
// deliver a close frame and terminate the connection.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if len(h.clients) >= h.maxClients {
		h.mu.Unlock()
		close(client.send)
		logging.Warn().
			Int("max_clients", h.maxClients).
			Msg("websocket subscriber limit reached, rejecting client")
		return
	}
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logging.Info().Int("total_clients", total).Msg("websocket subscriber connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	metrics.WSConnections.Dec()
	logging.Info().Int("total_clients", total).Msg("websocket subscriber disconnected")
}

// Publish implements navigator.EventSink. The engine calls it inline from
// selection and refresh paths, so it must never block: when the broadcast
// queue is full the event is counted as dropped and discarded.
func (h *Hub) Publish(e navigator.Event) {
	h.enqueue(Message{Type: e.Type, Timestamp: e.Timestamp, Data: e.Payload})
}

// Broadcast queues an ad-hoc message for all subscribers, such as catalog
// change notifications published by the API layer.
func (h *Hub) Broadcast(messageType string, data any) {
	h.enqueue(Message{Type: messageType, Timestamp: time.Now().UTC(), Data: data})
}

func (h *Hub) enqueue(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		metrics.WSEventsDropped.Inc()
		logging.Warn().Str("message_type", msg.Type).Msg("broadcast queue full, dropping message")
	}
}

// broadcastToClients delivers a message to every subscriber in a
// deterministic order.
//
// DETERMINISM: Clients are sorted by their monotonically assigned ID before
// delivery. Map iteration order would vary per run, which makes delivery
// order (and therefore which client wins a race to a full buffer) impossible
// to reproduce in tests.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	// Track clients to remove (can't modify map during iteration)
	var toRemove []*Client

	for _, client := range clients {
		select {
		case client.send <- message:
			metrics.WSEventsSent.Inc()
		default:
			// Queue full: the subscriber cannot keep up. Drop it rather
			// than buffer without bound.
			metrics.WSEventsDropped.Inc()
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		metrics.WSConnections.Dec()
		logging.Warn().Uint64("client_id", client.id).Msg("dropping slow websocket subscriber")
	}
}

// closeAllClients closes every subscriber during shutdown.
// DETERMINISM: Closes clients in ID order for consistent shutdown behavior.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
		metrics.WSConnections.Dec()
	}
	logging.Info().Msg("closed all websocket subscribers during shutdown")
}

// logGracefulShutdown closes all subscribers and logs structured shutdown
// information.
//
// Note: ctx.Err() is NOT logged as an error because context cancellation is
// expected behavior during graceful shutdown. Logging it with Err() would
// confuse operators monitoring error logs.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()
	reason := getShutdownReason(ctx)

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(reason)).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

// getShutdownReason determines the shutdown reason from the context error.
func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.Canceled:
		return ShutdownReasonContextCanceled
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		// Fallback for any future context error types
		return ShutdownReasonContextCanceled
	}
}

// GetClientCount returns the number of connected subscribers.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// AtCapacity reports whether the hub has reached its subscriber limit. The
// API layer checks this before upgrading a connection so the client gets an
// HTTP 503 instead of an upgrade followed by an immediate close.
func (h *Hub) AtCapacity() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients) >= h.maxClients
}

// MarshalMessage converts a message to JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
