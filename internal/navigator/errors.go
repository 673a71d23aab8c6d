// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

import "errors"

var (
	// ErrNotReady is returned by query operations before the engine has
	// installed its first snapshot, or after a failed bootstrap.
	ErrNotReady = errors.New("navigator: engine not ready")

	// ErrNoCandidates is returned when history filtering leaves nothing to
	// recommend. It is an expected outcome, not a fault; callers fall back
	// to their own strategy (catalog random, same genre).
	ErrNoCandidates = errors.New("navigator: no candidates after filtering")

	// ErrNoValidSeeds is returned when none of the requested playlist seeds
	// exist in the current snapshot.
	ErrNoValidSeeds = errors.New("navigator: no valid seed tracks")

	// ErrRefreshInProgress is returned when a refresh is requested while
	// another refresh job holds the build lock.
	ErrRefreshInProgress = errors.New("navigator: refresh already in progress")

	// ErrRefreshUnavailable is returned when a catalog-wide refresh is
	// requested but no extraction collaborator is configured. Direct loads
	// remain available.
	ErrRefreshUnavailable = errors.New("navigator: refresh unavailable without an extraction service")
)
