// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/sonarium/internal/catalog"
	"github.com/tomtom215/sonarium/internal/logging"
)

// TrackListResponse is the payload of GET /tracks and GET /tracks/search.
type TrackListResponse struct {
	Tracks []catalog.Track `json:"tracks"`
}

// ListTracks returns a page of the track catalog
//
// @Summary List catalog tracks
// @Description Returns catalog entries in lexicographic ID order with offset pagination.
// @Tags Tracks
// @Accept json
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} APIResponse{data=TrackListResponse} "Tracks listed"
// @Failure 400 {object} APIResponse "Invalid pagination parameters"
// @Failure 503 {object} APIResponse "Catalog unavailable"
// @Router /tracks [get]
func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.tracks == nil {
		rw.ServiceUnavailable("Track catalog unavailable")
		return
	}

	req := ListTracksRequest{
		Limit:  h.clampLimit(getIntParam(r, "limit", 0)),
		Offset: getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	tracks, err := h.tracks.List(r.Context(), req.Offset, req.Limit)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	total, err := h.tracks.Count(r.Context())
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	rw.SuccessWithPagination(TrackListResponse{Tracks: tracks}, &PaginationMeta{
		Total:   int64(total),
		Count:   len(tracks),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: req.Offset+len(tracks) < total,
	})
}

// SearchTracks finds tracks by title or artist prefix
//
// @Summary Search tracks by prefix
// @Description Case-insensitive prefix search over track titles and artist names, served from the in-memory index.
// @Tags Tracks
// @Accept json
// @Produce json
// @Param prefix query string true "Title or artist prefix"
// @Param limit query int false "Maximum results (default 20, max 100)"
// @Success 200 {object} APIResponse{data=TrackListResponse} "Matching tracks"
// @Failure 400 {object} APIResponse "Missing prefix"
// @Failure 503 {object} APIResponse "Catalog unavailable"
// @Router /tracks/search [get]
func (h *Handler) SearchTracks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.tracks == nil {
		rw.ServiceUnavailable("Track catalog unavailable")
		return
	}

	req := SearchTracksRequest{
		Prefix: r.URL.Query().Get("prefix"),
		Limit:  h.clampLimit(getIntParam(r, "limit", 0)),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	tracks, err := h.tracks.Search(r.Context(), req.Prefix, req.Limit)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	rw.Success(TrackListResponse{Tracks: tracks})
}

// GetTrack resolves one catalog entry
//
// @Summary Get a track
// @Description Resolves a track ID to its catalog entry.
// @Tags Tracks
// @Accept json
// @Produce json
// @Param id path string true "Track ID"
// @Success 200 {object} APIResponse{data=catalog.Track} "Track found"
// @Failure 404 {object} APIResponse "Track not found"
// @Failure 503 {object} APIResponse "Catalog unavailable"
// @Router /tracks/{id} [get]
func (h *Handler) GetTrack(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.tracks == nil {
		rw.ServiceUnavailable("Track catalog unavailable")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		rw.BadRequest("Track ID is required")
		return
	}

	track, err := h.tracks.Get(r.Context(), id)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	rw.Success(track)
}

// UpsertTrack creates or replaces a catalog entry
//
// @Summary Upsert a track
// @Description Creates or replaces the catalog entry for the given ID. The track becomes navigable after the next embedding refresh.
// @Tags Tracks
// @Accept json
// @Produce json
// @Param id path string true "Track ID"
// @Param request body TrackUpsertRequest true "Track metadata"
// @Success 200 {object} APIResponse{data=catalog.Track} "Entry replaced"
// @Success 201 {object} APIResponse{data=catalog.Track} "Entry created"
// @Failure 400 {object} APIResponse "Invalid metadata"
// @Failure 503 {object} APIResponse "Catalog unavailable"
// @Router /tracks/{id} [put]
func (h *Handler) UpsertTrack(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.tracks == nil {
		rw.ServiceUnavailable("Track catalog unavailable")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		rw.BadRequest("Track ID is required")
		return
	}

	var req TrackUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	created := false
	if _, err := h.tracks.Get(r.Context(), id); err != nil {
		created = true
	}

	track := &catalog.Track{
		ID:          id,
		Title:       req.Title,
		Artist:      req.Artist,
		Album:       req.Album,
		Genre:       req.Genre,
		DurationSec: req.DurationSec,
		AddedAt:     time.Now().UTC(),
	}
	if err := h.tracks.Put(r.Context(), track); err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.notifyCatalogChange(r, "catalog.track_updated", id)
	if created {
		rw.Created(track)
		return
	}
	rw.Success(track)
}

// DeleteTrack removes a catalog entry
//
// @Summary Delete a track
// @Description Removes the catalog entry. The track leaves the embedding space at the next refresh; until then navigation may still return its ID.
// @Tags Tracks
// @Accept json
// @Produce json
// @Param id path string true "Track ID"
// @Success 204 "Entry removed"
// @Failure 404 {object} APIResponse "Track not found"
// @Failure 503 {object} APIResponse "Catalog unavailable"
// @Router /tracks/{id} [delete]
func (h *Handler) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.tracks == nil {
		rw.ServiceUnavailable("Track catalog unavailable")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		rw.BadRequest("Track ID is required")
		return
	}

	if err := h.tracks.Delete(r.Context(), id); err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.notifyCatalogChange(r, "catalog.track_deleted", id)
	rw.NoContent()
}

// notifyCatalogChange pushes a catalog mutation onto the websocket feed.
// Subscribers treat it as an invalidation signal and re-query.
func (h *Handler) notifyCatalogChange(r *http.Request, event, trackID string) {
	if h.wsHub == nil {
		return
	}
	h.wsHub.Broadcast(event, map[string]string{"track_id": trackID})
	logging.Ctx(r.Context()).Debug().
		Str("event", event).
		Str("track_id", sanitizeLogValue(trackID)).
		Msg("catalog change broadcast")
}
