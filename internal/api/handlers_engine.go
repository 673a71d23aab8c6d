// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sonarium/internal/logging"
)

// EngineConfigResponse is the tunable subset of the navigator
// configuration exposed by GET /engine/config. Collaborator wiring
// (catalog paths, extraction URLs) stays out of the API surface.
type EngineConfigResponse struct {
	ColdStartThreshold   int     `json:"cold_start_threshold"`
	ExplorationRate      float64 `json:"exploration_rate"`
	ExploreMinCandidates int     `json:"explore_min_candidates"`
	ExploreRankLow       int     `json:"explore_rank_low"`
	ExploreRankHigh      int     `json:"explore_rank_high"`
	CandidateBase        int     `json:"candidate_base"`
	PlaylistLength       int     `json:"playlist_length"`
	WormholeSteps        int     `json:"wormhole_steps"`
	WormholeLookahead    int     `json:"wormhole_lookahead"`
	RefreshInterval      string  `json:"refresh_interval"`
	RefreshOnStartup     bool    `json:"refresh_on_startup"`
	PathCacheTTL         string  `json:"path_cache_ttl"`
}

// RefreshAcceptedResponse is the payload of a 202 from POST /engine/refresh.
type RefreshAcceptedResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

// EngineStatus reports the engine lifecycle state
//
// @Summary Get engine status
// @Description Returns the engine lifecycle state plus snapshot details: version, track count, dimensionality, the source that built it, and the last error if bootstrap failed.
// @Tags Engine
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse{data=navigator.Status} "Engine status"
// @Failure 503 {object} APIResponse "Engine unavailable"
// @Router /engine/status [get]
func (h *Handler) EngineStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Navigation engine unavailable")
		return
	}
	rw.Success(h.engine.Status())
}

// EngineConfig reports the engine tunables
//
// @Summary Get engine configuration
// @Description Returns the selection-policy and traversal tunables the engine is running with.
// @Tags Engine
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse{data=EngineConfigResponse} "Engine configuration"
// @Failure 503 {object} APIResponse "Configuration unavailable"
// @Router /engine/config [get]
func (h *Handler) EngineConfig(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.config == nil {
		rw.ServiceUnavailable("Configuration unavailable")
		return
	}

	nav := h.config.Navigator
	rw.Success(EngineConfigResponse{
		ColdStartThreshold:   nav.ColdStartThreshold,
		ExplorationRate:      nav.ExplorationRate,
		ExploreMinCandidates: nav.ExploreMinCandidates,
		ExploreRankLow:       nav.ExploreRankLow,
		ExploreRankHigh:      nav.ExploreRankHigh,
		CandidateBase:        nav.CandidateBase,
		PlaylistLength:       nav.PlaylistLength,
		WormholeSteps:        nav.WormholeSteps,
		WormholeLookahead:    nav.WormholeLookahead,
		RefreshInterval:      nav.RefreshInterval.String(),
		RefreshOnStartup:     nav.RefreshOnStartup,
		PathCacheTTL:         nav.PathCacheTTL.String(),
	})
}

// TriggerRefresh starts a catalog-wide embedding rebuild
//
// @Summary Trigger an embedding refresh
// @Description Starts a background job that re-extracts an embedding for every catalog track and atomically swaps the rebuilt space in. Queries keep hitting the old snapshot until the swap. Completion is observable via engine status and the websocket event feed.
// @Tags Engine
// @Accept json
// @Produce json
// @Success 202 {object} APIResponse{data=RefreshAcceptedResponse} "Refresh job accepted"
// @Failure 409 {object} APIResponse "A refresh is already running"
// @Failure 503 {object} APIResponse "No extraction service configured"
// @Router /engine/refresh [post]
func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Navigation engine unavailable")
		return
	}

	// The job outlives this request. WithoutCancel keeps the request ID
	// in the job's log lines while detaching its lifetime from the
	// client connection.
	jobID, err := h.engine.RefreshAsync(context.WithoutCancel(r.Context()))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("job_id", jobID).Msg("embedding refresh accepted")
	rw.Accepted(RefreshAcceptedResponse{
		JobID:   jobID,
		Message: "Embedding refresh started",
	})
}

// LoadEmbeddings installs an embedding space from the request body
//
// @Summary Load embeddings directly
// @Description Administrative ingest: installs caller-supplied vectors as the new embedding space in one atomic swap. Ragged rows, duplicate IDs, or an ID/vector count mismatch reject the load and leave the active space untouched.
// @Tags Engine
// @Accept json
// @Produce json
// @Param request body LoadEmbeddingsRequest true "Track IDs and their embedding vectors"
// @Success 200 {object} APIResponse{data=navigator.RefreshResult} "Embedding space installed"
// @Failure 400 {object} APIResponse "Structurally invalid vectors"
// @Failure 409 {object} APIResponse "A refresh is already running"
// @Failure 503 {object} APIResponse "Engine unavailable"
// @Router /engine/load [post]
func (h *Handler) LoadEmbeddings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Navigation engine unavailable")
		return
	}

	var req LoadEmbeddingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	start := time.Now()
	result, err := h.engine.Load(req.IDs, req.Vectors)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("job_id", result.JobID).
		Int("tracks", result.Tracks).
		Dur("duration", time.Since(start)).
		Msg("embedding space loaded via API")
	rw.Success(result)
}

// PerformanceStats reports internal performance counters
//
// @Summary Get performance statistics
// @Description Returns per-endpoint latency percentiles from the in-process monitor, wormhole path cache counters, and the live subscriber count.
// @Tags Engine
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Performance statistics"
// @Router /admin/performance [get]
func (h *Handler) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	stats := map[string]interface{}{
		"endpoints": h.perfMon.Stats(),
	}
	if h.engine != nil {
		stats["path_cache"] = h.engine.PathCacheStats()
	}
	if h.wsHub != nil {
		stats["websocket_clients"] = h.wsHub.GetClientCount()
	}
	rw.Success(stats)
}
