// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/sonarium/internal/catalog"
	"github.com/tomtom215/sonarium/internal/embedding"
	"github.com/tomtom215/sonarium/internal/logging"
	"github.com/tomtom215/sonarium/internal/navigator"
)

// writeEngineError maps an engine or catalog error onto the wire taxonomy.
//
// The mapping keeps the distinction the engine draws internally: expected
// outcomes (unknown track, nothing left to recommend) become 4xx codes the
// client can branch on, lifecycle conditions (not ready, refresh collision)
// become 503/409, and only genuinely unexplained failures fall through to
// a logged 500.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	switch {
	case errors.Is(err, embedding.ErrNotFound), errors.Is(err, catalog.ErrTrackNotFound):
		rw.Error(http.StatusNotFound, ErrCodeTrackNotFound, err.Error())

	case errors.Is(err, navigator.ErrNoCandidates):
		rw.Error(http.StatusUnprocessableEntity, ErrCodeNoCandidates, err.Error())

	case errors.Is(err, navigator.ErrNoValidSeeds):
		rw.Error(http.StatusUnprocessableEntity, ErrCodeNoValidSeeds, err.Error())

	case errors.Is(err, navigator.ErrNotReady):
		rw.Error(http.StatusServiceUnavailable, ErrCodeEngineNotReady, err.Error())

	case errors.Is(err, navigator.ErrRefreshInProgress):
		rw.Error(http.StatusConflict, ErrCodeRefreshInProgress, err.Error())

	case errors.Is(err, navigator.ErrRefreshUnavailable):
		rw.Error(http.StatusServiceUnavailable, ErrCodeRefreshUnavailable, err.Error())

	case errors.Is(err, embedding.ErrDimensionMismatch):
		rw.Error(http.StatusBadRequest, ErrCodeDimensionMismatch, err.Error())

	case errors.Is(err, catalog.ErrInvalidTrack):
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())

	default:
		logging.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled engine error")
		rw.InternalError("An internal error occurred")
	}
}
