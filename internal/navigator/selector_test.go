// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/embedding"
)

func testNavConfig() config.NavigatorConfig {
	return config.NavigatorConfig{
		ColdStartThreshold:   5,
		ExplorationRate:      0.2,
		ExploreMinCandidates: 10,
		ExploreRankLow:       5,
		ExploreRankHigh:      15,
		CandidateBase:        20,
		PlaylistLength:       15,
		WormholeSteps:        8,
		MinWormholeSteps:     2,
		MaxWormholeSteps:     20,
		WormholeLookahead:    5,
		PathCacheTTL:         time.Minute,
		Seed:                 1,
	}
}

func seededSelector(cfg config.NavigatorConfig, seed int64) *Selector {
	return NewSelector(cfg, rand.New(rand.NewSource(seed)))
}

func TestSelectorColdStart(t *testing.T) {
	t.Parallel()

	index := syntheticIndex(t, 10, 8, 3)
	sel := seededSelector(testNavConfig(), 7)

	history := []string{index.Store().IDAt(1), index.Store().IDAt(2)}
	current := index.Store().IDAt(0)

	for range 25 {
		got, err := sel.Next(index, current, history)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got.Strategy != StrategyColdStart {
			t.Fatalf("strategy = %q, want cold_start", got.Strategy)
		}
		if !index.Store().Has(got.TrackID) {
			t.Fatalf("cold start picked %q, not in store", got.TrackID)
		}
		if got.TrackID == current {
			t.Fatal("cold start returned the current track")
		}
		for _, h := range history {
			if got.TrackID == h {
				t.Fatalf("cold start returned history track %q", h)
			}
		}
	}
}

func TestSelectorColdStart_UnknownCurrent(t *testing.T) {
	t.Parallel()

	// Cold start never consults the current track's embedding, so an
	// unknown current track still yields a pick.
	index := syntheticIndex(t, 10, 8, 3)
	sel := seededSelector(testNavConfig(), 7)

	got, err := sel.Next(index, "ghost", nil)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got.Strategy != StrategyColdStart || !index.Store().Has(got.TrackID) {
		t.Errorf("got %+v, want a cold-start pick from the store", got)
	}
}

func TestSelectorColdStart_ExhaustedPoolFallsBack(t *testing.T) {
	t.Parallel()

	// Current plus history covers the whole store; the pick falls back to
	// the full store rather than failing.
	index := buildIndex(t,
		[]string{"a", "b", "c"},
		[][]float32{{1, 0}, {0, 1}, {1, 1}},
	)
	sel := seededSelector(testNavConfig(), 7)

	got, err := sel.Next(index, "a", []string{"b", "c"})
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !index.Store().Has(got.TrackID) {
		t.Errorf("pick %q not in store", got.TrackID)
	}
}

func TestSelectorColdStart_Deterministic(t *testing.T) {
	t.Parallel()

	index := syntheticIndex(t, 30, 8, 3)

	s1 := seededSelector(testNavConfig(), 99)
	s2 := seededSelector(testNavConfig(), 99)
	for i := range 10 {
		got1, err1 := s1.Next(index, "x", nil)
		got2, err2 := s2.Next(index, "x", nil)
		if err1 != nil || err2 != nil {
			t.Fatalf("Next() errors = %v, %v", err1, err2)
		}
		if got1.TrackID != got2.TrackID {
			t.Fatalf("call %d: identical seeds diverged: %q vs %q", i, got1.TrackID, got2.TrackID)
		}
	}
}

func warmHistory(index *Index, n int) []string {
	history := make([]string, n)
	for i := range history {
		history[i] = index.Store().IDAt(i + 1)
	}
	return history
}

func TestSelectorExploit(t *testing.T) {
	t.Parallel()

	cfg := testNavConfig()
	cfg.ExplorationRate = 0 // force the exploit branch
	index := syntheticIndex(t, 100, 16, 3)
	sel := seededSelector(cfg, 7)

	current := index.Store().IDAt(0)
	history := warmHistory(index, 5)

	got, err := sel.Next(index, current, history)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got.Strategy != StrategyExploit {
		t.Fatalf("strategy = %q, want exploit", got.Strategy)
	}

	// The exploit pick is the best-ranked candidate after filtering.
	candidates, err := index.QueryTrack(current, cfg.CandidateBase+len(history))
	if err != nil {
		t.Fatalf("QueryTrack() error = %v", err)
	}
	candidates = dropListened(candidates, current, history)
	if got.TrackID != candidates[0].TrackID {
		t.Errorf("exploit pick = %q, want best candidate %q", got.TrackID, candidates[0].TrackID)
	}
	if got.Distance != candidates[0].Distance {
		t.Errorf("exploit distance = %g, want %g", got.Distance, candidates[0].Distance)
	}
}

func TestSelectorExplore(t *testing.T) {
	t.Parallel()

	cfg := testNavConfig()
	cfg.ExplorationRate = 1 // force the explore branch
	index := syntheticIndex(t, 100, 16, 3)
	sel := seededSelector(cfg, 7)

	current := index.Store().IDAt(0)
	history := warmHistory(index, 5)

	candidates, err := index.QueryTrack(current, cfg.CandidateBase+len(history))
	if err != nil {
		t.Fatalf("QueryTrack() error = %v", err)
	}
	candidates = dropListened(candidates, current, history)
	window := make(map[string]struct{})
	for _, c := range candidates[cfg.ExploreRankLow:min(cfg.ExploreRankHigh, len(candidates))] {
		window[c.TrackID] = struct{}{}
	}

	for range 20 {
		got, err := sel.Next(index, current, history)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got.Strategy != StrategyExplore {
			t.Fatalf("strategy = %q, want explore", got.Strategy)
		}
		if _, ok := window[got.TrackID]; !ok {
			t.Fatalf("explore pick %q outside the mid-rank window", got.TrackID)
		}
	}
}

func TestSelectorExplore_FewCandidatesExploits(t *testing.T) {
	t.Parallel()

	// Eight tracks minus current and five history entries leaves two
	// candidates, below the exploration gate even at rate 1.
	cfg := testNavConfig()
	cfg.ExplorationRate = 1
	index := syntheticIndex(t, 8, 8, 3)
	sel := seededSelector(cfg, 7)

	current := index.Store().IDAt(0)
	history := warmHistory(index, 5)

	got, err := sel.Next(index, current, history)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got.Strategy != StrategyExploit {
		t.Errorf("strategy = %q, want exploit below the candidate gate", got.Strategy)
	}
}

func TestSelectorWarm_NoCandidates(t *testing.T) {
	t.Parallel()

	// History plus current covers the entire store.
	index := syntheticIndex(t, 6, 8, 3)
	sel := seededSelector(testNavConfig(), 7)

	current := index.Store().IDAt(0)
	history := warmHistory(index, 5)

	_, err := sel.Next(index, current, history)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Next() error = %v, want ErrNoCandidates", err)
	}
}

func TestSelectorWarm_UnknownCurrent(t *testing.T) {
	t.Parallel()

	index := syntheticIndex(t, 20, 8, 3)
	sel := seededSelector(testNavConfig(), 7)

	_, err := sel.Next(index, "ghost", warmHistory(index, 5))
	if !errors.Is(err, embedding.ErrNotFound) {
		t.Errorf("Next() error = %v, want ErrNotFound", err)
	}
}

func TestSelectorExclusionProperty(t *testing.T) {
	t.Parallel()

	// Randomized histories of size 0..50 over a 100-track store: the
	// selection never repeats the current track or anything in history.
	index := syntheticIndex(t, 100, 16, 3)
	sel := seededSelector(testNavConfig(), 7)
	rng := rand.New(rand.NewSource(13))

	ids := index.Store().IDs()
	for trial := range 200 {
		size := rng.Intn(51)
		perm := rng.Perm(len(ids))
		history := make([]string, size)
		for i := range history {
			history[i] = ids[perm[i]]
		}
		current := ids[perm[size]]

		got, err := sel.Next(index, current, history)
		if err != nil {
			t.Fatalf("trial %d: Next() error = %v", trial, err)
		}
		if got.TrackID == current {
			t.Fatalf("trial %d: returned the current track", trial)
		}
		for _, h := range history {
			if got.TrackID == h {
				t.Fatalf("trial %d: returned history track %q", trial, h)
			}
		}
	}
}

func TestSelectorSeedDeterminism(t *testing.T) {
	t.Parallel()

	index := syntheticIndex(t, 100, 16, 3)
	current := index.Store().IDAt(0)
	history := warmHistory(index, 6)

	s1 := seededSelector(testNavConfig(), 42)
	s2 := seededSelector(testNavConfig(), 42)
	for i := range 50 {
		got1, err1 := s1.Next(index, current, history)
		got2, err2 := s2.Next(index, current, history)
		if err1 != nil || err2 != nil {
			t.Fatalf("call %d: errors = %v, %v", i, err1, err2)
		}
		if got1 != got2 {
			t.Fatalf("call %d: identical seeds diverged: %+v vs %+v", i, got1, got2)
		}
	}
}
