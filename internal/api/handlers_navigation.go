// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sonarium/internal/catalog"
	"github.com/tomtom215/sonarium/internal/logging"
)

// NextTrackResponse is the payload of POST /recommendations/next. Track
// carries the catalog entry when the ID resolves; clients that only queue
// by ID can ignore it.
type NextTrackResponse struct {
	TrackID  string         `json:"track_id"`
	Strategy string         `json:"strategy"`
	Distance float64        `json:"distance"`
	Track    *catalog.Track `json:"track,omitempty"`
}

// PlaylistResponse is the payload of POST /playlists.
type PlaylistResponse struct {
	TrackIDs      []string        `json:"track_ids"`
	Tracks        []catalog.Track `json:"tracks,omitempty"`
	Count         int             `json:"count"`
	CentroidSeeds int             `json:"centroid_seeds"`
}

// WormholeResponse is the payload of GET /wormhole.
type WormholeResponse struct {
	TrackIDs       []string `json:"track_ids"`
	RequestedSteps int      `json:"requested_steps"`
	DroppedSteps   int      `json:"dropped_steps"`
	Cached         bool     `json:"cached"`
}

// NextTrack picks the next track for a listening session
//
// @Summary Recommend the next track
// @Description Picks the track to play after the current one. Listeners with a short history get a random pick; warm listeners get the nearest unplayed neighbor, with an occasional exploration of the mid-ranked neighborhood.
// @Tags Navigation
// @Accept json
// @Produce json
// @Param request body NextTrackRequest true "Current track and listening history"
// @Success 200 {object} APIResponse{data=NextTrackResponse} "Next track selected"
// @Failure 400 {object} APIResponse "Invalid request body"
// @Failure 404 {object} APIResponse "Current track unknown to the embedding space"
// @Failure 422 {object} APIResponse "History filtering left no candidates"
// @Failure 503 {object} APIResponse "Engine not ready"
// @Router /recommendations/next [post]
func (h *Handler) NextTrack(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Navigation engine unavailable")
		return
	}

	var req NextTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	sel, err := h.engine.NextTrack(req.CurrentTrackID, req.History)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	resp := NextTrackResponse{
		TrackID:  sel.TrackID,
		Strategy: string(sel.Strategy),
		Distance: sel.Distance,
		Track:    h.resolveTrack(r, sel.TrackID),
	}
	rw.Success(resp)
}

// GeneratePlaylist synthesizes a playlist around seed tracks
//
// @Summary Generate a playlist from seeds
// @Description Builds an ordered playlist around the centroid of the seed tracks. Seeds missing from the embedding space are skipped; excluded tracks never appear. Fewer tracks than requested is a valid short playlist.
// @Tags Navigation
// @Accept json
// @Produce json
// @Param request body PlaylistRequest true "Seed tracks, target length, exclusions"
// @Success 200 {object} APIResponse{data=PlaylistResponse} "Playlist generated"
// @Failure 400 {object} APIResponse "Invalid request body"
// @Failure 422 {object} APIResponse "No seed resolves in the embedding space"
// @Failure 503 {object} APIResponse "Engine not ready"
// @Router /playlists [post]
func (h *Handler) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Navigation engine unavailable")
		return
	}

	var req PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	trackIDs, err := h.engine.GeneratePlaylist(req.SeedTrackIDs, req.Count, req.ExcludeTrackIDs)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	seedsUsed := 0
	for _, id := range req.SeedTrackIDs {
		if h.engine.Contains(id) {
			seedsUsed++
		}
	}

	resp := PlaylistResponse{
		TrackIDs:      trackIDs,
		Tracks:        h.resolveTracks(r, trackIDs),
		Count:         len(trackIDs),
		CentroidSeeds: seedsUsed,
	}
	rw.Success(resp)
}

// Wormhole computes an interpolated path between two tracks
//
// @Summary Compute a wormhole path
// @Description Interpolates a listening path from one track to another through embedding space, snapping each step to its nearest stored track. Steps outside 2..20 are rejected; an omitted steps parameter selects the default of 8.
// @Tags Navigation
// @Accept json
// @Produce json
// @Param from query string true "Start track ID"
// @Param to query string true "Destination track ID"
// @Param steps query int false "Intermediate steps (2-20, default 8)"
// @Success 200 {object} APIResponse{data=WormholeResponse} "Path computed"
// @Failure 400 {object} APIResponse "Missing or out-of-range parameters"
// @Failure 404 {object} APIResponse "Endpoint track unknown to the embedding space"
// @Failure 503 {object} APIResponse "Engine not ready"
// @Router /wormhole [get]
func (h *Handler) Wormhole(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Navigation engine unavailable")
		return
	}

	req := WormholeRequest{
		From:  r.URL.Query().Get("from"),
		To:    r.URL.Query().Get("to"),
		Steps: getIntParam(r, "steps", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	// A second identical query is answered from the path cache; compare
	// hit counters around the call to report it.
	before := h.engine.PathCacheStats()
	path, err := h.engine.Wormhole(req.From, req.To, req.Steps)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	after := h.engine.PathCacheStats()

	resp := WormholeResponse{
		TrackIDs:       path.TrackIDs,
		RequestedSteps: path.RequestedSteps,
		DroppedSteps:   path.DroppedSteps,
		Cached:         after.Hits > before.Hits,
	}
	rw.Success(resp)
}

// resolveTrack looks up one catalog entry for response enrichment.
// Resolution is best-effort: a missing catalog or an ID known only to the
// embedding store yields nil, never an error response.
func (h *Handler) resolveTrack(r *http.Request, id string) *catalog.Track {
	if h.tracks == nil {
		return nil
	}
	track, err := h.tracks.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, catalog.ErrTrackNotFound) {
			logging.Warn().Err(err).Str("track_id", sanitizeLogValue(id)).Msg("catalog lookup failed")
		}
		return nil
	}
	return track
}

// resolveTracks resolves a batch of IDs, dropping the ones the catalog
// does not know. The result may be shorter than ids or nil.
func (h *Handler) resolveTracks(r *http.Request, ids []string) []catalog.Track {
	if h.tracks == nil || len(ids) == 0 {
		return nil
	}
	tracks := make([]catalog.Track, 0, len(ids))
	for _, id := range ids {
		if t := h.resolveTrack(r, id); t != nil {
			tracks = append(tracks, *t)
		}
	}
	if len(tracks) == 0 {
		return nil
	}
	return tracks
}
