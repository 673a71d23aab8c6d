// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package embedding holds track embedding vectors and the numeric
// primitives the navigation engine is built on: an immutable row-major
// vector store, cosine-space math, a persisted cache codec, and the
// loading strategies that populate a store on startup and refresh.
//
// A Store never mutates after construction. Refreshing the engine builds a
// brand-new Store aside and swaps a snapshot reference, so concurrent
// readers always see a fully consistent matrix.
package embedding

import (
	"fmt"
	"math"
	"math/rand"
)

// Store is an immutable in-memory matrix of track embeddings with a
// parallel identifier list and reverse lookup. Row i of the matrix belongs
// to IDAt(i).
type Store struct {
	dim  int
	ids  []string
	data []float32 // row-major, len = len(ids) * dim
	rows map[string]int
}

// NewStore builds a store from parallel identifier and vector slices.
// It fails with ErrDimensionMismatch when the slice lengths differ or the
// vectors do not share one dimensionality, and rejects duplicate
// identifiers. An empty input produces a valid zero-length store.
func NewStore(ids []string, vectors [][]float32) (*Store, error) {
	if len(ids) != len(vectors) {
		return nil, fmt.Errorf("%w: %d identifiers for %d vectors", ErrDimensionMismatch, len(ids), len(vectors))
	}

	s := &Store{
		ids:  make([]string, len(ids)),
		rows: make(map[string]int, len(ids)),
	}
	copy(s.ids, ids)

	if len(vectors) > 0 {
		s.dim = len(vectors[0])
		if s.dim == 0 {
			return nil, fmt.Errorf("%w: zero-length vector for %q", ErrDimensionMismatch, ids[0])
		}
		s.data = make([]float32, 0, len(vectors)*s.dim)
	}

	for i, vec := range vectors {
		if len(vec) != s.dim {
			return nil, fmt.Errorf("%w: row %d has dimension %d, expected %d", ErrDimensionMismatch, i, len(vec), s.dim)
		}
		if _, dup := s.rows[ids[i]]; dup {
			return nil, fmt.Errorf("duplicate track identifier %q at row %d", ids[i], i)
		}
		s.rows[ids[i]] = i
		s.data = append(s.data, vec...)
	}

	return s, nil
}

// Synthesize generates one pseudo-random unit vector per identifier. This
// is the degraded demo mode used when no real embeddings are available;
// callers surface the synthetic origin so it is never mistaken for model
// output. Gaussian components normalized to unit length give a uniform
// draw on the hypersphere, so cosine distances are well-defined.
func Synthesize(ids []string, dim int, rng *rand.Rand) (*Store, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: dimension %d", ErrDimensionMismatch, dim)
	}

	vectors := make([][]float32, len(ids))
	for i := range ids {
		v := make([]float64, dim)
		var sumSq float64
		for j := range v {
			v[j] = rng.NormFloat64()
			sumSq += v[j] * v[j]
		}
		norm := math.Sqrt(sumSq)
		if norm == 0 {
			norm = 1
		}

		row := make([]float32, dim)
		for j := range v {
			row[j] = float32(v[j] / norm)
		}
		vectors[i] = row
	}

	return NewStore(ids, vectors)
}

// Len returns the number of stored tracks.
func (s *Store) Len() int {
	return len(s.ids)
}

// Dimension returns the shared vector dimensionality, 0 for an empty store.
func (s *Store) Dimension() int {
	return s.dim
}

// IDs returns a copy of the identifier list in row order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// IDAt returns the identifier of row i.
func (s *Store) IDAt(i int) string {
	return s.ids[i]
}

// Row returns the vector of row i as a view into the store. Callers must
// not modify it.
func (s *Store) Row(i int) []float32 {
	return s.data[i*s.dim : (i+1)*s.dim]
}

// IndexOf resolves an identifier to its row index, failing with
// ErrNotFound for identifiers that were never loaded.
func (s *Store) IndexOf(id string) (int, error) {
	row, ok := s.rows[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return row, nil
}

// Has reports whether the identifier is present.
func (s *Store) Has(id string) bool {
	_, ok := s.rows[id]
	return ok
}

// Vector returns the embedding of the given track as a view into the
// store. Fails with ErrNotFound for unknown identifiers.
func (s *Store) Vector(id string) ([]float32, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.Row(row), nil
}
