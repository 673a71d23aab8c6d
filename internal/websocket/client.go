// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package websocket

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/sonarium/internal/logging"
)

// maxMessageSize bounds inbound frames. The event stream is one-way;
// subscribers have nothing to say beyond control frames.
const maxMessageSize = 1024

// clientIDCounter generates unique, monotonically increasing IDs for clients.
// DETERMINISM: This gives fan-out a stable sort key, eliminating
// non-deterministic map iteration order.
var clientIDCounter atomic.Uint64

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	// id is a unique identifier for this client, used for deterministic
	// ordering during broadcast and shutdown.
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message

	writeTimeout time.Duration
	pingInterval time.Duration
	pongWait     time.Duration
}

// NewClient wraps an upgraded connection. Buffer size and timing come from
// the hub's configuration; the pong deadline is twice the ping interval so a
// single lost pong does not kill the connection.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:           clientIDCounter.Add(1),
		hub:          hub,
		conn:         conn,
		send:         make(chan Message, hub.sendBuffer),
		writeTimeout: hub.writeTimeout,
		pingInterval: hub.pingInterval,
		pongWait:     2 * hub.pingInterval,
	}
}

// ID returns the client's unique identifier for deterministic ordering.
func (c *Client) ID() uint64 {
	return c.id
}

// readPump drains the connection until it errors or closes. Subscribers do
// not speak application messages; reads exist to process control frames
// (pong handling resets the read deadline) and to detect disconnects.
//
// The send channel is written and closed only by the hub goroutine, so the
// hub never races a pump writing to a channel it just closed.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close() // Explicitly ignore error - best-effort cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Msg("unexpected websocket close error")
			}
			break
		}
		// Inbound data frames are ignored; the stream is one-way.
	}
}

// writePump pumps messages from the hub to the websocket connection and
// keeps the connection alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Explicitly ignore error - best-effort cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				// The hub closed the channel
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logging.Error().Err(err).Msg("failed to write close message")
				}
				return
			}

			data, err := MarshalMessage(message)
			if err != nil {
				logging.Error().Err(err).Str("message_type", message.Type).Msg("failed to marshal message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Error().Err(err).Msg("failed to write message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
