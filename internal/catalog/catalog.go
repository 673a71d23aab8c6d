// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package catalog stores track metadata in BadgerDB and maintains an
// in-memory prefix index for title and artist autocomplete.
//
// The catalog is the source of truth for which tracks exist. Refresh jobs
// list its track IDs and ask the extraction service for one embedding per
// entry, so adding a track here makes it navigable after the next refresh.
package catalog

import (
	"errors"
	"time"
)

// Errors returned by the track store.
var (
	// ErrTrackNotFound is returned when a track ID has no catalog entry.
	ErrTrackNotFound = errors.New("catalog: track not found")

	// ErrInvalidTrack is returned when a track fails basic validation.
	ErrInvalidTrack = errors.New("catalog: invalid track")

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("catalog: store is closed")
)

// Track is a single catalog entry.
//
// ID is the stable identifier shared with the embedding store; everything
// else is display metadata.
type Track struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Album       string    `json:"album,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	DurationSec int       `json:"duration_sec,omitempty"`
	AddedAt     time.Time `json:"added_at,omitzero"`
}

// Validate checks the fields a track must carry before storage.
func (t *Track) Validate() error {
	if t == nil {
		return ErrInvalidTrack
	}
	if t.ID == "" {
		return errors.New("catalog: track id is required")
	}
	if t.Title == "" {
		return errors.New("catalog: track title is required")
	}
	if t.Artist == "" {
		return errors.New("catalog: track artist is required")
	}
	if t.DurationSec < 0 {
		return errors.New("catalog: track duration cannot be negative")
	}
	return nil
}
