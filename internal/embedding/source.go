// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package embedding

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/tomtom215/sonarium/internal/logging"
)

// Source is one strategy for populating an embedding store. Sources are
// probed in an explicit priority order at startup; the first one that
// loads wins, and its name tells callers which mode the engine runs in
// (synthetic mode in particular must be detectable downstream).
type Source interface {
	// Name identifies the strategy: "cache", "service", "synthetic".
	Name() string

	// Load builds a store, or reports why this strategy cannot serve.
	Load(ctx context.Context) (*Store, error)
}

// TrackLister enumerates every known track identifier. Implemented by the
// track catalog.
type TrackLister interface {
	ListTrackIDs(ctx context.Context) ([]string, error)
}

// Embedder resolves one track to its embedding vector. Implemented by the
// extraction service client; allowed to be slow, called only during load
// and refresh, never per recommendation query.
type Embedder interface {
	Embed(ctx context.Context, trackID string) ([]float32, error)
}

// LoadFirst probes sources in order and returns the first store that
// loads, along with the winning source's name. Failures short of the last
// source are logged and skipped.
func LoadFirst(ctx context.Context, sources ...Source) (*Store, string, error) {
	if len(sources) == 0 {
		return nil, "", errors.New("embedding: no sources configured")
	}

	var lastErr error
	for _, src := range sources {
		store, err := src.Load(ctx)
		if err != nil {
			logging.Warn().
				Str("component", "embedding").
				Str("source", src.Name()).
				Err(err).
				Msg("embedding source unavailable, trying next")
			lastErr = err
			continue
		}
		return store, src.Name(), nil
	}

	return nil, "", fmt.Errorf("all embedding sources failed, last error: %w", lastErr)
}

// CacheSource loads a previously persisted store from disk.
type CacheSource struct {
	Dir string
}

func (s *CacheSource) Name() string { return "cache" }

func (s *CacheSource) Load(_ context.Context) (*Store, error) {
	if !CacheExists(s.Dir) {
		return nil, fmt.Errorf("no persisted cache under %s", s.Dir)
	}
	store, err := LoadCache(s.Dir)
	if err != nil {
		return nil, err
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("persisted cache under %s: %w", s.Dir, ErrEmptyStore)
	}
	return store, nil
}

// ServiceSource embeds the full catalog through the extraction
// collaborator.
type ServiceSource struct {
	Tracks   TrackLister
	Embedder Embedder
}

func (s *ServiceSource) Name() string { return "service" }

func (s *ServiceSource) Load(ctx context.Context) (*Store, error) {
	store, stats, err := Collect(ctx, s.Tracks, s.Embedder)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Str("component", "embedding").
		Int("succeeded", stats.Succeeded).
		Int("skipped", stats.Skipped).
		Msg("embedded catalog via extraction service")
	return store, nil
}

// SyntheticSource generates a deterministic store of random unit vectors.
// Degraded demo mode; the "synthetic" source name must reach the caller so
// the fabricated vectors are never mistaken for model output.
type SyntheticSource struct {
	// IDs to synthesize vectors for. When nil, Count sequential demo
	// identifiers are generated instead.
	IDs       []string
	Count     int
	Dimension int
	Seed      int64
}

func (s *SyntheticSource) Name() string { return "synthetic" }

func (s *SyntheticSource) Load(_ context.Context) (*Store, error) {
	ids := s.IDs
	if ids == nil {
		ids = make([]string, s.Count)
		for i := range ids {
			ids[i] = fmt.Sprintf("demo-%05d", i)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("synthetic source: %w", ErrEmptyStore)
	}

	rng := rand.New(rand.NewSource(s.Seed)) //nolint:gosec // deterministic demo vectors, not credentials
	return Synthesize(ids, s.Dimension, rng)
}

// CollectStats tallies one collect pass over the catalog.
type CollectStats struct {
	Total     int
	Succeeded int
	Skipped   int
}

// Collect embeds every track the lister knows through the embedder and
// builds a store from the results. A single track's extraction failure
// skips that track and continues; the tally reports how many were skipped.
// Fails outright when the catalog is empty, when every extraction failed,
// or when ctx is canceled partway.
func Collect(ctx context.Context, tracks TrackLister, embedder Embedder) (*Store, CollectStats, error) {
	ids, err := tracks.ListTrackIDs(ctx)
	if err != nil {
		return nil, CollectStats{}, fmt.Errorf("failed to list catalog tracks: %w", err)
	}

	stats := CollectStats{Total: len(ids)}
	if stats.Total == 0 {
		return nil, stats, fmt.Errorf("catalog holds no tracks: %w", ErrEmptyStore)
	}

	keptIDs := make([]string, 0, len(ids))
	vectors := make([][]float32, 0, len(ids))
	var lastErr error

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("collect canceled after %d of %d tracks: %w", stats.Succeeded, stats.Total, err)
		}

		vec, err := embedder.Embed(ctx, id)
		if err != nil {
			stats.Skipped++
			lastErr = err
			logging.Warn().
				Str("component", "embedding").
				Str("track_id", id).
				Err(err).
				Msg("extraction failed, skipping track")
			continue
		}

		keptIDs = append(keptIDs, id)
		vectors = append(vectors, vec)
		stats.Succeeded++
	}

	if stats.Succeeded == 0 {
		return nil, stats, fmt.Errorf("all %d extractions failed, last error: %w", stats.Total, lastErr)
	}

	store, err := NewStore(keptIDs, vectors)
	if err != nil {
		return nil, stats, err
	}
	return store, stats, nil
}

// Interface compliance checks.
var (
	_ Source = (*CacheSource)(nil)
	_ Source = (*ServiceSource)(nil)
	_ Source = (*SyntheticSource)(nil)
)
