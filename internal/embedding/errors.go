// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package embedding

import "errors"

var (
	// ErrDimensionMismatch indicates vectors of inconsistent dimensionality,
	// or a vector/identifier count mismatch, at load time. The operation
	// fails whole; a previously valid store is never left damaged.
	ErrDimensionMismatch = errors.New("embedding: dimension mismatch")

	// ErrEmptyStore indicates an operation that requires at least one
	// stored vector ran against an empty store.
	ErrEmptyStore = errors.New("embedding: store is empty")

	// ErrNotFound indicates the requested track identifier is not present
	// in the current store snapshot.
	ErrNotFound = errors.New("embedding: track not found")
)
