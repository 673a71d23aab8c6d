// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/navigator"
)

// setupWebSocketServer creates a test WebSocket server with a custom handler.
func setupWebSocketServer(t *testing.T, handler func(t *testing.T, conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()
		handler(t, conn)
	}))
}

// dialWebSocket establishes a WebSocket connection to the test server.
func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	return conn
}

// waitForChannel waits for a channel signal with timeout.
func waitForChannel(t *testing.T, ch <-chan bool, timeout time.Duration, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Errorf("%s: timeout after %v", msg, timeout)
	}
}

func TestNewClient(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{
		MaxClients:   8,
		SendBuffer:   8,
		WriteTimeout: 3 * time.Second,
		PingInterval: 40 * time.Second,
	})

	first := NewClient(hub, nil)
	second := NewClient(hub, nil)

	if first == nil || second == nil {
		t.Fatal("NewClient returned nil")
	}
	if second.id <= first.id {
		t.Errorf("client IDs should be monotonically increasing: %d then %d", first.id, second.id)
	}
	if first.hub != hub {
		t.Error("client hub not set correctly")
	}
	if cap(first.send) != 8 {
		t.Errorf("expected send channel capacity 8, got %d", cap(first.send))
	}
	if first.writeTimeout != 3*time.Second {
		t.Errorf("writeTimeout = %v, want 3s", first.writeTimeout)
	}
	if first.pingInterval != 40*time.Second {
		t.Errorf("pingInterval = %v, want 40s", first.pingInterval)
	}
	if first.pongWait != 80*time.Second {
		t.Errorf("pongWait = %v, want twice the ping interval", first.pongWait)
	}
	if first.ID() != first.id {
		t.Error("ID() should return the assigned id")
	}
}

func TestClientWritePumpSendsMessage(t *testing.T) {
	hub := NewHub(testHubConfig())

	messageReceived := make(chan bool, 1)
	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		var msg struct {
			Type string         `json:"type"`
			Data map[string]any `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Errorf("failed to read message: %v", err)
			return
		}
		if msg.Type != navigator.EventTrackSelected {
			t.Errorf("expected message type %q, got %q", navigator.EventTrackSelected, msg.Type)
		}
		if msg.Data["track_id"] != "demo-00001" {
			t.Errorf("expected track_id demo-00001, got %v", msg.Data["track_id"])
		}
		messageReceived <- true
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	client := NewClient(hub, conn)
	go client.writePump()

	client.send <- Message{
		Type:      navigator.EventTrackSelected,
		Timestamp: time.Now().UTC(),
		Data:      map[string]string{"track_id": "demo-00001"},
	}

	waitForChannel(t, messageReceived, time.Second, "message not received")
}

// TestClientWritePumpSkipsUnmarshalableMessage verifies that a payload that
// cannot be serialized is skipped without killing the connection.
func TestClientWritePumpSkipsUnmarshalableMessage(t *testing.T) {
	hub := NewHub(testHubConfig())

	messageReceived := make(chan bool, 1)
	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Errorf("failed to read message: %v", err)
			return
		}
		if msg.Type != "good" {
			t.Errorf("expected the serializable message, got type %q", msg.Type)
		}
		messageReceived <- true
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	client := NewClient(hub, conn)
	go client.writePump()

	client.send <- Message{Type: "bad", Data: make(chan int)}
	client.send <- Message{Type: "good"}

	waitForChannel(t, messageReceived, time.Second, "connection did not survive marshal failure")
}

func TestClientWritePumpClosesOnHubClose(t *testing.T) {
	hub := NewHub(testHubConfig())

	closeReceived := make(chan bool, 1)
	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		_, _, err := conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNoStatusReceived, websocket.CloseNormalClosure) {
			closeReceived <- true
			return
		}
		if err == nil {
			t.Error("expected a close frame, got a data message")
		}
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	client := NewClient(hub, conn)
	go client.writePump()

	// Closing the send channel is how the hub tells the pump to shut down.
	close(client.send)

	waitForChannel(t, closeReceived, time.Second, "close frame not received")
}

func TestClientWritePumpPings(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{
		SendBuffer:   4,
		WriteTimeout: time.Second,
		PingInterval: 50 * time.Millisecond,
	})

	pinged := make(chan bool, 1)
	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		conn.SetPingHandler(func(string) error {
			select {
			case pinged <- true:
			default:
			}
			return nil
		})
		// Control frames are only processed while reading.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	client := NewClient(hub, conn)
	go client.writePump()

	waitForChannel(t, pinged, time.Second, "keepalive ping not received")
}

// TestClientServerSideLifecycle runs the production wiring end to end: the
// handler upgrades, registers with a live hub, and starts the pumps; a
// dialed subscriber then receives a published engine event, and closing the
// subscriber unregisters the client.
func TestClientServerSideLifecycle(t *testing.T) {
	hub := NewHub(testHubConfig())
	startHub(t, hub)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("failed to upgrade connection: %v", err)
			return
		}
		client := NewClient(hub, conn)
		hub.Register <- client
		client.Start()
	}))
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()
	waitForClientCount(t, hub, 1)

	hub.Publish(navigator.Event{
		Type:      navigator.EventPlaylistGenerated,
		Timestamp: time.Now().UTC(),
		Payload:   []string{"demo-00001", "demo-00002"},
	})

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("failed to set read deadline: %v", err)
	}
	var msg struct {
		Type string   `json:"type"`
		Data []string `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if msg.Type != navigator.EventPlaylistGenerated {
		t.Errorf("Type = %q, want %q", msg.Type, navigator.EventPlaylistGenerated)
	}
	if len(msg.Data) != 2 {
		t.Errorf("expected 2 track IDs, got %d", len(msg.Data))
	}

	// Closing the subscriber side must unregister the client.
	_ = conn.Close()
	waitForClientCount(t, hub, 0)
}

func TestClientReadPumpUnregistersOnServerClose(t *testing.T) {
	hub := NewHub(testHubConfig())
	startHub(t, hub)

	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		time.Sleep(50 * time.Millisecond)
		// Handler returns, the deferred close drops the connection.
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	client := NewClient(hub, conn)
	hub.Register <- client
	client.Start()
	waitForClientCount(t, hub, 1)

	// The peer went away; readPump must notice and unregister.
	waitForClientCount(t, hub, 0)
}
