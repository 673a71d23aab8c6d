// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/tomtom215/sonarium/internal/embedding"
)

// compassIndex is a 2-D store with easily checked geometry: east, north,
// northeast, west, south.
func compassIndex(t *testing.T) *Index {
	t.Helper()
	return buildIndex(t,
		[]string{"east", "north", "northeast", "west", "south"},
		[][]float32{{1, 0}, {0, 1}, {1, 1}, {-1, 0}, {0, -1}},
	)
}

func buildIndex(t *testing.T, ids []string, vectors [][]float32) *Index {
	t.Helper()
	store, err := embedding.NewStore(ids, vectors)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	index, err := NewIndex(store)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	return index
}

func syntheticIndex(t *testing.T, n, dim int, seed int64) *Index {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = syntheticID(i)
	}
	store, err := embedding.Synthesize(ids, dim, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	index, err := NewIndex(store)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	return index
}

func syntheticID(i int) string {
	return string(rune('a'+i/26%26)) + string(rune('a'+i%26)) + "-track"
}

func TestNewIndex_EmptyStore(t *testing.T) {
	t.Parallel()

	store, err := embedding.NewStore(nil, nil)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if _, err := NewIndex(store); !errors.Is(err, embedding.ErrEmptyStore) {
		t.Errorf("NewIndex(empty) error = %v, want ErrEmptyStore", err)
	}
	if _, err := NewIndex(nil); !errors.Is(err, embedding.ErrEmptyStore) {
		t.Errorf("NewIndex(nil) error = %v, want ErrEmptyStore", err)
	}
}

func TestIndexQuery_NearestTwo(t *testing.T) {
	t.Parallel()

	index := compassIndex(t)

	got, err := index.Query([]float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Query() returned %d candidates, want 2", len(got))
	}

	if got[0].TrackID != "east" {
		t.Errorf("rank 0 = %q, want east", got[0].TrackID)
	}
	if math.Abs(got[0].Distance) > 1e-6 {
		t.Errorf("rank 0 distance = %g, want 0", got[0].Distance)
	}

	if got[1].TrackID != "northeast" {
		t.Errorf("rank 1 = %q, want northeast", got[1].TrackID)
	}
	wantDist := 1 - 1/math.Sqrt2
	if math.Abs(got[1].Distance-wantDist) > 1e-6 {
		t.Errorf("rank 1 distance = %g, want %g", got[1].Distance, wantDist)
	}
}

func TestIndexQuery_ClampsOversizedK(t *testing.T) {
	t.Parallel()

	index := compassIndex(t)

	got, err := index.Query([]float32{1, 0}, 50)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Query(k=50) returned %d candidates, want all 5", len(got))
	}

	// north and south tie at distance 1; north wins on storage order.
	wantOrder := []string{"east", "northeast", "north", "south", "west"}
	for i, want := range wantOrder {
		if got[i].TrackID != want {
			t.Errorf("rank %d = %q, want %q", i, got[i].TrackID, want)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance < got[i-1].Distance {
			t.Errorf("distances not non-decreasing at rank %d", i)
		}
	}
}

func TestIndexQuery_NonPositiveK(t *testing.T) {
	t.Parallel()

	index := compassIndex(t)

	for _, k := range []int{0, -3} {
		got, err := index.Query([]float32{1, 0}, k)
		if err != nil {
			t.Fatalf("Query(k=%d) error = %v", k, err)
		}
		if len(got) != 0 {
			t.Errorf("Query(k=%d) returned %d candidates, want 0", k, len(got))
		}
	}
}

func TestIndexQuery_DimensionMismatch(t *testing.T) {
	t.Parallel()

	index := compassIndex(t)

	if _, err := index.Query([]float32{1, 0, 0}, 1); !errors.Is(err, embedding.ErrDimensionMismatch) {
		t.Errorf("Query() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestIndexQuery_ZeroVector(t *testing.T) {
	t.Parallel()

	index := compassIndex(t)

	got, err := index.Query([]float32{0, 0}, 5)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	for _, c := range got {
		if c.Distance != 1 {
			t.Errorf("distance to %q = %g, want 1 for zero-magnitude query", c.TrackID, c.Distance)
		}
	}
}

func TestIndexQueryTrack_SelfFirst(t *testing.T) {
	t.Parallel()

	index := compassIndex(t)

	got, err := index.QueryTrack("northeast", 1)
	if err != nil {
		t.Fatalf("QueryTrack() error = %v", err)
	}
	if got[0].TrackID != "northeast" {
		t.Errorf("rank 0 = %q, want the queried track itself", got[0].TrackID)
	}
	if math.Abs(got[0].Distance) > 1e-6 {
		t.Errorf("self distance = %g, want 0 within 1e-6", got[0].Distance)
	}
}

func TestIndexQueryTrack_Unknown(t *testing.T) {
	t.Parallel()

	index := compassIndex(t)

	if _, err := index.QueryTrack("ghost", 1); !errors.Is(err, embedding.ErrNotFound) {
		t.Errorf("QueryTrack(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestIndexQuery_MatchesFullSort(t *testing.T) {
	t.Parallel()

	index := syntheticIndex(t, 60, 16, 11)
	query := index.Store().Row(7)

	top5, err := index.Query(query, 5)
	if err != nil {
		t.Fatalf("Query(k=5) error = %v", err)
	}
	all, err := index.Query(query, 60)
	if err != nil {
		t.Fatalf("Query(k=60) error = %v", err)
	}

	for i := range top5 {
		if top5[i].TrackID != all[i].TrackID {
			t.Errorf("rank %d: top-k %q differs from full ranking %q", i, top5[i].TrackID, all[i].TrackID)
		}
	}
}
