// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/embedding"
	"github.com/tomtom215/sonarium/internal/metrics"
)

// Strategy names the branch that produced a selection.
type Strategy string

const (
	// StrategyColdStart is a uniform random pick made while the listening
	// history is too short to carry a useful signal.
	StrategyColdStart Strategy = "cold_start"
	// StrategyExploit is the best-ranked neighbor of the current track.
	StrategyExploit Strategy = "exploit"
	// StrategyExplore is a randomized pick from the mid-rank window,
	// trading immediate similarity for novelty.
	StrategyExplore Strategy = "explore"
)

// Selection is one next-track decision. Distance is the cosine distance
// from the current track's embedding; it is zero for cold-start picks,
// which are not distance-ranked.
type Selection struct {
	TrackID  string   `json:"track_id"`
	Strategy Strategy `json:"strategy"`
	Distance float64  `json:"distance"`
}

// Selector implements the next-track policy over an index snapshot. It is
// stateless across calls; the caller owns history persistence. The random
// source is injected so tests can force either policy branch.
type Selector struct {
	cfg config.NavigatorConfig

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewSelector builds a selector. A nil rng gets a source seeded from
// cfg.Seed, or from crypto entropy when the seed is zero.
func NewSelector(cfg config.NavigatorConfig, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	return &Selector{cfg: cfg, rng: rng}
}

// NewRand returns a seeded math/rand source. Seed zero draws the seed from
// crypto entropy so independent processes diverge.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		var buf [8]byte
		if _, err := crand.Read(buf[:]); err == nil {
			seed = int64(binary.LittleEndian.Uint64(buf[:]))
		} else {
			seed = time.Now().UnixNano()
		}
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // selection jitter, not security
}

// Next picks the track to play after currentID. With fewer than
// ColdStartThreshold history entries it returns a uniform random track,
// avoiding the current track and history while any alternative exists.
// Otherwise it ranks the current track's neighbors, drops the current track
// and all of history, and either exploits the best-ranked survivor or, with
// probability ExplorationRate when enough survivors remain, explores the
// mid-rank window [ExploreRankLow, ExploreRankHigh).
func (s *Selector) Next(index *Index, currentID string, history []string) (Selection, error) {
	if len(history) < s.cfg.ColdStartThreshold {
		return s.coldStart(index.Store(), currentID, history)
	}

	candidates, err := index.QueryTrack(currentID, s.cfg.CandidateBase+len(history))
	if err != nil {
		return Selection{}, fmt.Errorf("current track %q: %w", currentID, err)
	}

	candidates = dropListened(candidates, currentID, history)
	metrics.NeighborCandidates.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		return Selection{}, fmt.Errorf("current track %q with %d history entries: %w",
			currentID, len(history), ErrNoCandidates)
	}

	if len(candidates) >= s.cfg.ExploreMinCandidates && s.roll() < s.cfg.ExplorationRate {
		low := s.cfg.ExploreRankLow
		high := min(s.cfg.ExploreRankHigh, len(candidates))
		if low < high {
			pick := candidates[low+s.intn(high-low)]
			return Selection{TrackID: pick.TrackID, Strategy: StrategyExplore, Distance: pick.Distance}, nil
		}
	}

	best := candidates[0]
	return Selection{TrackID: best.TrackID, Strategy: StrategyExploit, Distance: best.Distance}, nil
}

// coldStart picks uniformly from tracks outside the listened set. If the
// listened set covers the whole store, it falls back to the full store so a
// non-empty store always yields a track.
func (s *Selector) coldStart(store *embedding.Store, currentID string, history []string) (Selection, error) {
	if store.Len() == 0 {
		return Selection{}, fmt.Errorf("cold start over empty store: %w", ErrNoCandidates)
	}

	listened := listenedSet(currentID, history)
	pool := make([]string, 0, store.Len())
	for i := range store.Len() {
		id := store.IDAt(i)
		if _, ok := listened[id]; !ok {
			pool = append(pool, id)
		}
	}
	if len(pool) == 0 {
		pool = store.IDs()
	}

	return Selection{TrackID: pool[s.intn(len(pool))], Strategy: StrategyColdStart}, nil
}

// dropListened filters the current track and history out of a ranked
// candidate list, preserving order. It reuses the input's backing array.
func dropListened(candidates []Candidate, currentID string, history []string) []Candidate {
	listened := listenedSet(currentID, history)
	out := candidates[:0]
	for _, c := range candidates {
		if _, ok := listened[c.TrackID]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

func listenedSet(currentID string, history []string) map[string]struct{} {
	set := make(map[string]struct{}, len(history)+1)
	set[currentID] = struct{}{}
	for _, id := range history {
		set[id] = struct{}{}
	}
	return set
}

func (s *Selector) roll() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Selector) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
