// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

import (
	"fmt"

	"github.com/tomtom215/sonarium/internal/embedding"
)

// Index answers nearest-neighbor queries over one immutable embedding store.
// It performs an exhaustive cosine-distance scan, which is exact and fast
// enough for catalog sizes in the tens of thousands. An index is read-only
// after construction and safe for unrestricted concurrent use; refresh
// replaces the whole index rather than mutating it.
type Index struct {
	store *embedding.Store
}

// NewIndex wraps a store for querying. An empty store cannot answer any
// query and is rejected with ErrEmptyStore.
func NewIndex(store *embedding.Store) (*Index, error) {
	if store == nil || store.Len() == 0 {
		return nil, fmt.Errorf("index over zero tracks: %w", embedding.ErrEmptyStore)
	}
	return &Index{store: store}, nil
}

// Store returns the underlying embedding store.
func (ix *Index) Store() *embedding.Store {
	return ix.store
}

// Query returns up to k nearest stored tracks to an arbitrary query vector,
// ordered by ascending cosine distance with ties broken by storage order.
// k larger than the store is clamped, never an error. The query vector does
// not need to be a stored embedding; centroids and interpolated points are
// queried the same way.
func (ix *Index) Query(vector []float32, k int) ([]Candidate, error) {
	if len(vector) != ix.store.Dimension() {
		return nil, fmt.Errorf("query dimension %d against store dimension %d: %w",
			len(vector), ix.store.Dimension(), embedding.ErrDimensionMismatch)
	}
	if k <= 0 {
		return nil, nil
	}
	if n := ix.store.Len(); k > n {
		k = n
	}

	heap := newTopK(k)
	for row := range ix.store.Len() {
		heap.Offer(Candidate{
			Row:      row,
			Distance: embedding.CosineDistance(vector, ix.store.Row(row)),
		})
	}

	out := heap.Sorted()
	for i := range out {
		out[i].TrackID = ix.store.IDAt(out[i].Row)
	}
	return out, nil
}

// QueryTrack runs Query against a stored track's own embedding. The track
// itself comes back as the first candidate at distance zero; callers that
// want neighbors only must filter it out.
func (ix *Index) QueryTrack(trackID string, k int) ([]Candidate, error) {
	vec, err := ix.store.Vector(trackID)
	if err != nil {
		return nil, err
	}
	return ix.Query(vec, k)
}
