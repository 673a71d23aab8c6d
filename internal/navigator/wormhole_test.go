// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

import (
	"errors"
	"testing"

	"github.com/tomtom215/sonarium/internal/embedding"
)

func TestComputePath_Endpoints(t *testing.T) {
	t.Parallel()

	index := syntheticIndex(t, 40, 8, 9)
	from := index.Store().IDAt(0)
	to := index.Store().IDAt(1)

	got, err := ComputePath(index, from, to, 5, 5)
	if err != nil {
		t.Fatalf("ComputePath() error = %v", err)
	}

	if got.TrackIDs[0] != from {
		t.Errorf("path starts with %q, want %q", got.TrackIDs[0], from)
	}
	if got.TrackIDs[len(got.TrackIDs)-1] != to {
		t.Errorf("path ends with %q, want %q", got.TrackIDs[len(got.TrackIDs)-1], to)
	}
	if got.RequestedSteps != 5 {
		t.Errorf("RequestedSteps = %d, want 5", got.RequestedSteps)
	}
	if len(got.TrackIDs) != 5+2-got.DroppedSteps {
		t.Errorf("length %d inconsistent with %d dropped steps", len(got.TrackIDs), got.DroppedSteps)
	}
}

func TestComputePath_IdenticalEndpoints(t *testing.T) {
	t.Parallel()

	index := syntheticIndex(t, 10, 8, 9)
	id := index.Store().IDAt(3)

	got, err := ComputePath(index, id, id, 5, 5)
	if err != nil {
		t.Fatalf("ComputePath() error = %v", err)
	}
	if len(got.TrackIDs) != 2 || got.TrackIDs[0] != id || got.TrackIDs[1] != id {
		t.Errorf("path = %v, want [%s %s]", got.TrackIDs, id, id)
	}
	if got.DroppedSteps != 0 {
		t.Errorf("DroppedSteps = %d, want 0", got.DroppedSteps)
	}
}

func TestComputePath_UnknownEndpoint(t *testing.T) {
	t.Parallel()

	index := syntheticIndex(t, 10, 8, 9)
	known := index.Store().IDAt(0)

	if _, err := ComputePath(index, "ghost", known, 3, 5); !errors.Is(err, embedding.ErrNotFound) {
		t.Errorf("unknown start error = %v, want ErrNotFound", err)
	}
	if _, err := ComputePath(index, known, "ghost", 3, 5); !errors.Is(err, embedding.ErrNotFound) {
		t.Errorf("unknown end error = %v, want ErrNotFound", err)
	}
}

func TestComputePath_DropsExhaustedSteps(t *testing.T) {
	t.Parallel()

	// With only the two endpoints stored, every interior step finds its
	// neighbors already visited and is dropped.
	index := buildIndex(t,
		[]string{"from", "to"},
		[][]float32{{1, 0}, {0, 1}},
	)

	got, err := ComputePath(index, "from", "to", 3, 5)
	if err != nil {
		t.Fatalf("ComputePath() error = %v", err)
	}
	if len(got.TrackIDs) != 2 {
		t.Errorf("path = %v, want only the endpoints", got.TrackIDs)
	}
	if got.DroppedSteps != 3 {
		t.Errorf("DroppedSteps = %d, want 3", got.DroppedSteps)
	}
}

func TestComputePath_SnapsToMidpointTrack(t *testing.T) {
	t.Parallel()

	// The single interior sample at t=0.5 lies along [1,1]; the midpoint
	// track sits exactly there.
	index := buildIndex(t,
		[]string{"from", "to", "midpoint"},
		[][]float32{{1, 0}, {0, 1}, {1, 1}},
	)

	got, err := ComputePath(index, "from", "to", 1, 5)
	if err != nil {
		t.Fatalf("ComputePath() error = %v", err)
	}
	want := []string{"from", "midpoint", "to"}
	if len(got.TrackIDs) != 3 || got.TrackIDs[1] != "midpoint" {
		t.Errorf("path = %v, want %v", got.TrackIDs, want)
	}
	if got.DroppedSteps != 0 {
		t.Errorf("DroppedSteps = %d, want 0", got.DroppedSteps)
	}
}

func TestComputePath_NoDuplicates(t *testing.T) {
	t.Parallel()

	index := syntheticIndex(t, 50, 8, 9)
	from := index.Store().IDAt(10)
	to := index.Store().IDAt(20)

	got, err := ComputePath(index, from, to, 10, 5)
	if err != nil {
		t.Fatalf("ComputePath() error = %v", err)
	}

	seen := make(map[string]int)
	for _, id := range got.TrackIDs {
		seen[id]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("track %q appears %d times in the path", id, n)
		}
	}
}

func TestComputePath_ParallelEndpoints(t *testing.T) {
	t.Parallel()

	// Near-parallel endpoints route through the linear branch; the path
	// must still be well formed.
	index := buildIndex(t,
		[]string{"a", "b", "c"},
		[][]float32{{1, 0}, {1, 1e-9}, {0.9, 0.1}},
	)

	got, err := ComputePath(index, "a", "b", 2, 5)
	if err != nil {
		t.Fatalf("ComputePath() error = %v", err)
	}
	if got.TrackIDs[0] != "a" || got.TrackIDs[len(got.TrackIDs)-1] != "b" {
		t.Errorf("path = %v, want a...b", got.TrackIDs)
	}
}

func TestComputePath_AntiparallelEndpoints(t *testing.T) {
	t.Parallel()

	// Opposite vectors have sin(omega) ~ 0; interpolation must not produce
	// NaN and the path must keep its endpoints.
	index := buildIndex(t,
		[]string{"a", "b", "c", "d"},
		[][]float32{{1, 0}, {-1, 0}, {0, 1}, {0, -1}},
	)

	got, err := ComputePath(index, "a", "b", 3, 5)
	if err != nil {
		t.Fatalf("ComputePath() error = %v", err)
	}
	if got.TrackIDs[0] != "a" || got.TrackIDs[len(got.TrackIDs)-1] != "b" {
		t.Errorf("path = %v, want a...b", got.TrackIDs)
	}
}
