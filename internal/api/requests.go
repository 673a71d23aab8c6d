// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package api serves the HTTP surface of the navigation engine: the
// recommendation, playlist, and wormhole queries, catalog CRUD, engine
// lifecycle operations, health probes, and the websocket event feed.
//
// This file holds the request bodies and query parameter structs with
// go-playground/validator tags. Handlers decode, then run every struct
// through validateRequest before touching the engine.
//
// The validation tags follow the go-playground/validator v10 syntax:
//   - required: field must be present and non-zero
//   - min,max: numeric or string length bounds
//   - dive: apply subsequent tags to each slice element
//   - oneof: value must be one of the specified options
//   - omitempty: skip validation if field is empty/zero
package api

// NextTrackRequest is the body of POST /recommendations/next.
//
// CurrentTrackID anchors the neighborhood search; History lists recently
// played track IDs, most recent last. Tracks in the history are excluded
// from the candidate pool, and its length decides cold-start handling.
type NextTrackRequest struct {
	CurrentTrackID string   `json:"current_track_id" validate:"required,min=1,max=256"`
	History        []string `json:"history" validate:"max=200,dive,min=1,max=256"`
}

// PlaylistRequest is the body of POST /playlists.
//
// Count defaults to the configured playlist length when zero. Excluded
// tracks never appear in the result even when they neighbor the seed
// centroid.
type PlaylistRequest struct {
	SeedTrackIDs    []string `json:"seed_track_ids" validate:"required,min=1,max=50,dive,min=1,max=256"`
	Count           int      `json:"count" validate:"omitempty,gte=1,lte=100"`
	ExcludeTrackIDs []string `json:"exclude_track_ids" validate:"max=500,dive,min=1,max=256"`
}

// WormholeRequest holds the parsed query parameters of GET /wormhole.
//
// Steps stays zero when the client omitted it; the engine then applies
// its configured default before clamping to the legal range.
type WormholeRequest struct {
	From  string `validate:"required,min=1,max=256"`
	To    string `validate:"required,min=1,max=256"`
	Steps int    `validate:"omitempty,gte=2,lte=20"`
}

// LoadEmbeddingsRequest is the body of POST /engine/load, the
// administrative direct-load surface. IDs and Vectors must be the same
// length; deeper structural checks (ragged rows, duplicates) belong to
// the embedding store and map to DIMENSION_MISMATCH.
type LoadEmbeddingsRequest struct {
	IDs     []string    `json:"ids" validate:"required,min=1,dive,min=1,max=256"`
	Vectors [][]float32 `json:"vectors" validate:"required,min=1"`
}

// TrackUpsertRequest is the body of PUT /tracks/{id}. The ID comes from
// the URL, never the body, so a body ID mismatch cannot relocate an
// entry.
type TrackUpsertRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=512"`
	Artist      string `json:"artist" validate:"required,min=1,max=512"`
	Album       string `json:"album" validate:"omitempty,max=512"`
	Genre       string `json:"genre" validate:"omitempty,max=128"`
	DurationSec int    `json:"duration_sec" validate:"omitempty,gte=0,lte=86400"`
}

// ListTracksRequest holds the validated query parameters of GET /tracks.
type ListTracksRequest struct {
	Limit  int `validate:"min=1,max=1000"`
	Offset int `validate:"min=0,max=1000000"`
}

// SearchTracksRequest holds the validated query parameters of
// GET /tracks/search. Prefix matches are case-insensitive against track
// titles and artist names.
type SearchTracksRequest struct {
	Prefix string `validate:"required,min=1,max=256"`
	Limit  int    `validate:"min=1,max=100"`
}
