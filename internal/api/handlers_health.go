// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/sonarium/internal/navigator"
)

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status         string    `json:"status"`
	Version        string    `json:"version"`
	EngineState    string    `json:"engine_state"`
	SnapshotSource string    `json:"snapshot_source,omitempty"`
	Tracks         int       `json:"tracks"`
	CatalogTracks  int       `json:"catalog_tracks"`
	CatalogOpen    bool      `json:"catalog_open"`
	BuiltAt        time.Time `json:"built_at,omitzero"`
	Uptime         float64   `json:"uptime_seconds"`
}

// serverVersion is reported by health and status responses.
const serverVersion = "1.0.0"

// Health reports the overall service health
//
// @Summary Get system health
// @Description Returns the overall health summary: engine state, embedding-space and catalog track counts, and uptime. Status degrades when the engine is not serving or the catalog is unreachable.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health summary"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	health := HealthStatus{
		Status:      "healthy",
		Version:     serverVersion,
		EngineState: navigator.StateUnloaded.String(),
		Uptime:      time.Since(h.startTime).Seconds(),
	}

	if h.engine != nil {
		st := h.engine.Status()
		health.EngineState = st.State
		health.SnapshotSource = st.Source
		health.Tracks = st.Tracks
		health.BuiltAt = st.BuiltAt
	}
	if h.engine == nil || h.engine.State() != navigator.StateReady {
		health.Status = "degraded"
	}

	if h.tracks != nil {
		if count, err := h.tracks.Count(r.Context()); err == nil {
			health.CatalogOpen = true
			health.CatalogTracks = count
		} else {
			health.Status = "degraded"
		}
	}

	rw.Success(health)
}

// HealthLive is the liveness probe
//
// @Summary Liveness probe
// @Description Returns 200 OK if the process is alive, regardless of engine or catalog state.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is the readiness probe
//
// @Summary Readiness probe
// @Description Returns 200 only once the engine has a snapshot installed and serves queries. Returns 503 while unloaded, loading, or failed, so load balancers hold traffic during bootstrap.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Failure 503 {object} APIResponse "Engine has no installed snapshot"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	state := navigator.StateUnloaded
	if h.engine != nil {
		state = h.engine.State()
	}
	ready := state == navigator.StateReady

	data := map[string]interface{}{
		"ready":        ready,
		"engine_state": state.String(),
		"uptime":       time.Since(h.startTime).Seconds(),
	}
	if !ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeEngineNotReady,
			"Engine has no installed snapshot", data)
		return
	}
	rw.Success(data)
}
