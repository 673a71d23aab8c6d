// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

import "time"

// Event types published by the engine. Subscribers receive them over the
// WebSocket event stream.
const (
	EventStateChanged      = "engine.state_changed"
	EventSnapshotSwapped   = "engine.snapshot_swapped"
	EventRefreshStarted    = "engine.refresh_started"
	EventRefreshFinished   = "engine.refresh_finished"
	EventRefreshFailed     = "engine.refresh_failed"
	EventTrackSelected     = "navigator.track_selected"
	EventPlaylistGenerated = "navigator.playlist_generated"
	EventWormholeComputed  = "navigator.wormhole_computed"
)

// Event is one engine occurrence worth broadcasting.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// EventSink receives engine events. Publish must not block; slow consumers
// drop events rather than stalling selection or refresh.
type EventSink interface {
	Publish(Event)
}

func (e *Engine) publish(eventType string, payload any) {
	if e.deps.Events == nil {
		return
	}
	e.deps.Events.Publish(Event{Type: eventType, Timestamp: time.Now(), Payload: payload})
}
