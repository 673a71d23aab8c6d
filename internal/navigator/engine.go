// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package navigator implements embedding-space navigation: next-track
// selection, playlist synthesis around seed centroids, and wormhole paths
// interpolated between two tracks.
//
// The engine is read-mostly. All queries run against an immutable Snapshot
// (store plus index) reached through one pointer read; refresh builds a
// complete replacement aside and swaps the pointer, so concurrent queries
// observe either the old or the new snapshot in full, never a mix. Slow
// work, namely per-track embedding extraction, happens only inside
// bootstrap and refresh, never on the query path.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sonarium/internal/cache"
	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/embedding"
	"github.com/tomtom215/sonarium/internal/logging"
	"github.com/tomtom215/sonarium/internal/metrics"
)

// State is the engine lifecycle state.
type State int

const (
	// StateUnloaded means no snapshot has ever been installed.
	StateUnloaded State = iota
	// StateLoading means the initial bootstrap is in progress.
	StateLoading
	// StateReady means a snapshot is installed and queries are served.
	StateReady
	// StateFailed means bootstrap failed and no snapshot is available.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is one immutable generation of the embedding space. Version
// increases by one per installed snapshot; Source names the strategy that
// produced it ("cache", "service", "synthetic", "admin"), letting callers
// detect a synthetic-fallback space.
type Snapshot struct {
	Store   *embedding.Store
	Index   *Index
	Version int64
	Source  string
	BuiltAt time.Time
}

// Dependencies are the engine's external collaborators. Sources is the
// bootstrap chain, probed in order. Tracks and Embedder drive catalog-wide
// refresh and may be nil when no extraction service is configured. CacheDir
// receives a persisted copy of each built snapshot when non-empty. Events
// and Rand are optional.
type Dependencies struct {
	Sources  []embedding.Source
	Tracks   embedding.TrackLister
	Embedder embedding.Embedder
	CacheDir string
	Events   EventSink
	Rand     *rand.Rand
}

// RefreshResult reports the outcome of one completed rebuild job.
type RefreshResult struct {
	JobID     string        `json:"job_id"`
	Version   int64         `json:"version"`
	Tracks    int           `json:"tracks"`
	Dimension int           `json:"dimension"`
	Succeeded int           `json:"succeeded"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration"`
}

// Status is the engine state summary exposed by the API.
type Status struct {
	State     string    `json:"state"`
	Version   int64     `json:"version,omitempty"`
	Tracks    int       `json:"tracks,omitempty"`
	Dimension int       `json:"dimension,omitempty"`
	Source    string    `json:"source,omitempty"`
	BuiltAt   time.Time `json:"built_at,omitzero"`
	LastError string    `json:"last_error,omitempty"`
}

// Engine owns the active snapshot and serves all navigation queries.
type Engine struct {
	cfg      config.NavigatorConfig
	deps     Dependencies
	selector *Selector
	paths    *cache.Cache[Path]
	log      zerolog.Logger

	mu       sync.RWMutex
	state    State
	lastErr  error
	snapshot *Snapshot

	buildMu sync.Mutex // serializes bootstrap, refresh, and direct loads
	version atomic.Int64
}

// New creates an engine in the Unloaded state. Call Bootstrap to install
// the first snapshot.
func New(cfg config.NavigatorConfig, deps Dependencies) *Engine {
	ttl := cfg.PathCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Engine{
		cfg:      cfg,
		deps:     deps,
		selector: NewSelector(cfg, deps.Rand),
		paths:    cache.New[Path]("path", ttl),
		log:      logging.WithComponent("navigator"),
		state:    StateUnloaded,
	}
}

// Close releases background resources. The engine stays queryable.
func (e *Engine) Close() {
	e.paths.Stop()
}

// Bootstrap probes the configured sources in order and installs the first
// snapshot they produce. On failure the engine enters the Failed state;
// calling Bootstrap again retries from scratch.
func (e *Engine) Bootstrap(ctx context.Context) error {
	if !e.buildMu.TryLock() {
		return ErrRefreshInProgress
	}
	defer e.buildMu.Unlock()

	e.transition(StateLoading, nil)

	store, source, err := embedding.LoadFirst(ctx, e.deps.Sources...)
	if err != nil {
		e.transition(StateFailed, err)
		return fmt.Errorf("bootstrap: %w", err)
	}

	snap, err := e.install(store, source)
	if err != nil {
		e.transition(StateFailed, err)
		return fmt.Errorf("bootstrap: %w", err)
	}

	if source != "cache" {
		e.persist(snap)
	}
	e.log.Info().
		Str("source", source).
		Int("tracks", store.Len()).
		Int("dimension", store.Dimension()).
		Int64("version", snap.Version).
		Msg("embedding space loaded")
	return nil
}

// Refresh re-extracts an embedding for every catalog track, builds a fresh
// snapshot aside, and swaps it in on success. Individual extraction
// failures skip the track; the tally is reported in the result. A failed
// refresh leaves the active snapshot untouched. Only one build job runs at
// a time; concurrent calls fail fast with ErrRefreshInProgress.
func (e *Engine) Refresh(ctx context.Context) (*RefreshResult, error) {
	if e.deps.Tracks == nil || e.deps.Embedder == nil {
		return nil, ErrRefreshUnavailable
	}
	if !e.buildMu.TryLock() {
		metrics.RecordRefresh("rejected", 0, 0, 0)
		return nil, ErrRefreshInProgress
	}
	defer e.buildMu.Unlock()

	return e.refreshLocked(ctx, uuid.New().String())
}

// RefreshAsync begins a refresh job in the background and returns the ID
// it runs under. The availability and in-progress checks happen before
// returning, so callers get ErrRefreshUnavailable or ErrRefreshInProgress
// immediately; the extraction work itself continues on ctx after this
// call returns. Completion is observable through Status and the event
// sink.
func (e *Engine) RefreshAsync(ctx context.Context) (string, error) {
	if e.deps.Tracks == nil || e.deps.Embedder == nil {
		return "", ErrRefreshUnavailable
	}
	if !e.buildMu.TryLock() {
		metrics.RecordRefresh("rejected", 0, 0, 0)
		return "", ErrRefreshInProgress
	}

	jobID := uuid.New().String()
	go func() {
		defer e.buildMu.Unlock()
		if _, err := e.refreshLocked(ctx, jobID); err != nil {
			e.log.Error().Err(err).Str("job_id", jobID).Msg("background refresh failed")
		}
	}()
	return jobID, nil
}

// refreshLocked does the rebuild work for one job. The caller holds
// buildMu and has verified the extraction collaborators exist.
func (e *Engine) refreshLocked(ctx context.Context, jobID string) (*RefreshResult, error) {
	start := time.Now()
	log := e.log.With().Str("job_id", jobID).Logger()
	log.Info().Msg("embedding refresh started")
	e.publish(EventRefreshStarted, map[string]any{"job_id": jobID})

	store, stats, err := embedding.Collect(ctx, e.deps.Tracks, e.deps.Embedder)
	if err != nil {
		metrics.RecordRefresh("failure", time.Since(start), stats.Succeeded, stats.Skipped)
		log.Error().Err(err).Msg("embedding refresh failed")
		e.publish(EventRefreshFailed, map[string]any{"job_id": jobID, "error": err.Error()})
		return nil, fmt.Errorf("refresh job %s: %w", jobID, err)
	}

	snap, err := e.install(store, "service")
	if err != nil {
		metrics.RecordRefresh("failure", time.Since(start), stats.Succeeded, stats.Skipped)
		log.Error().Err(err).Msg("embedding refresh produced an unusable store")
		e.publish(EventRefreshFailed, map[string]any{"job_id": jobID, "error": err.Error()})
		return nil, fmt.Errorf("refresh job %s: %w", jobID, err)
	}
	e.persist(snap)

	duration := time.Since(start)
	metrics.RecordRefresh("success", duration, stats.Succeeded, stats.Skipped)
	result := &RefreshResult{
		JobID:     jobID,
		Version:   snap.Version,
		Tracks:    store.Len(),
		Dimension: store.Dimension(),
		Succeeded: stats.Succeeded,
		Skipped:   stats.Skipped,
		Duration:  duration,
	}
	log.Info().
		Int("succeeded", stats.Succeeded).
		Int("skipped", stats.Skipped).
		Int64("version", snap.Version).
		Dur("duration", duration).
		Msg("embedding refresh complete")
	e.publish(EventRefreshFinished, result)
	return result, nil
}

// Load installs a snapshot directly from caller-supplied vectors, the
// administrative refresh path. Structural errors (ragged rows, duplicate
// ids, empty input) reject the load and leave the active snapshot intact.
func (e *Engine) Load(ids []string, vectors [][]float32) (*RefreshResult, error) {
	if !e.buildMu.TryLock() {
		metrics.RecordRefresh("rejected", 0, 0, 0)
		return nil, ErrRefreshInProgress
	}
	defer e.buildMu.Unlock()

	jobID := uuid.New().String()
	start := time.Now()

	store, err := embedding.NewStore(ids, vectors)
	if err != nil {
		metrics.RecordRefresh("failure", time.Since(start), 0, 0)
		return nil, fmt.Errorf("load %d vectors: %w", len(vectors), err)
	}
	snap, err := e.install(store, "admin")
	if err != nil {
		metrics.RecordRefresh("failure", time.Since(start), 0, 0)
		return nil, fmt.Errorf("load %d vectors: %w", len(vectors), err)
	}
	e.persist(snap)

	duration := time.Since(start)
	metrics.RecordRefresh("success", duration, store.Len(), 0)
	e.log.Info().
		Str("job_id", jobID).
		Int("tracks", store.Len()).
		Int("dimension", store.Dimension()).
		Int64("version", snap.Version).
		Msg("embedding space loaded from admin request")
	result := &RefreshResult{
		JobID:     jobID,
		Version:   snap.Version,
		Tracks:    store.Len(),
		Dimension: store.Dimension(),
		Succeeded: store.Len(),
		Duration:  duration,
	}
	e.publish(EventRefreshFinished, result)
	return result, nil
}

// NextTrack picks the track to play after currentID given the listening
// history. See Selector.Next for the policy.
func (e *Engine) NextTrack(currentID string, history []string) (Selection, error) {
	snap, err := e.readySnapshot()
	if err != nil {
		return Selection{}, err
	}

	start := time.Now()
	sel, err := e.selector.Next(snap.Index, currentID, history)
	if err != nil {
		return Selection{}, err
	}
	metrics.RecordSelection(string(sel.Strategy), time.Since(start))
	e.publish(EventTrackSelected, sel)
	return sel, nil
}

// GeneratePlaylist synthesizes a playlist around the given seeds. A
// non-positive n falls back to the configured default length.
func (e *Engine) GeneratePlaylist(seedIDs []string, n int, excludeIDs []string) ([]string, error) {
	snap, err := e.readySnapshot()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = e.cfg.PlaylistLength
	}

	start := time.Now()
	playlist, err := SynthesizePlaylist(snap.Index, seedIDs, n, excludeIDs)
	if err != nil {
		return nil, err
	}
	metrics.RecordPlaylist(len(playlist), time.Since(start))
	e.publish(EventPlaylistGenerated, map[string]any{"seeds": len(seedIDs), "tracks": len(playlist)})
	return playlist, nil
}

// Wormhole computes (or returns a cached) interpolated path between two
// tracks. Steps outside the configured bounds are clamped; zero or negative
// steps select the configured default. Cached paths are keyed by snapshot
// version, so a refresh implicitly invalidates them.
func (e *Engine) Wormhole(startID, endID string, steps int) (Path, error) {
	snap, err := e.readySnapshot()
	if err != nil {
		return Path{}, err
	}
	steps = e.clampSteps(steps)

	key := cache.Key("wormhole", struct {
		From    string
		To      string
		Steps   int
		Version int64
	}{startID, endID, steps, snap.Version})
	if p, ok := e.paths.Get(key); ok {
		return p, nil
	}

	start := time.Now()
	p, err := ComputePath(snap.Index, startID, endID, steps, e.cfg.WormholeLookahead)
	if err != nil {
		return Path{}, err
	}
	metrics.RecordWormhole(p.DroppedSteps, time.Since(start))
	e.paths.Set(key, p)
	e.publish(EventWormholeComputed, map[string]any{
		"from": startID, "to": endID, "length": len(p.TrackIDs), "dropped": p.DroppedSteps,
	})
	return p, nil
}

// Contains reports whether id is present in the active snapshot. It is
// false both for unknown tracks and while the engine is not ready.
func (e *Engine) Contains(id string) bool {
	snap, err := e.readySnapshot()
	if err != nil {
		return false
	}
	return snap.Store.Has(id)
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Status returns the state summary for the API and health checks.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := Status{State: e.state.String()}
	if e.lastErr != nil {
		st.LastError = e.lastErr.Error()
	}
	if e.snapshot != nil {
		st.Version = e.snapshot.Version
		st.Tracks = e.snapshot.Store.Len()
		st.Dimension = e.snapshot.Store.Dimension()
		st.Source = e.snapshot.Source
		st.BuiltAt = e.snapshot.BuiltAt
	}
	return st
}

// PathCacheStats exposes the wormhole cache counters.
func (e *Engine) PathCacheStats() cache.Stats {
	return e.paths.Stats()
}

// readySnapshot returns the active snapshot, or ErrNotReady outside the
// Ready state. Queries hold no lock beyond this pointer read; the snapshot
// itself is immutable.
func (e *Engine) readySnapshot() (*Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.state != StateReady || e.snapshot == nil {
		if e.lastErr != nil {
			return nil, fmt.Errorf("engine state %s after %q: %w", e.state, e.lastErr, ErrNotReady)
		}
		return nil, fmt.Errorf("engine state %s: %w", e.state, ErrNotReady)
	}
	return e.snapshot, nil
}

// install builds an index over store and atomically swaps it in as the new
// active snapshot. Installation fails only for an empty store, in which
// case the previous snapshot remains active.
func (e *Engine) install(store *embedding.Store, source string) (*Snapshot, error) {
	index, err := NewIndex(store)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Store:   store,
		Index:   index,
		Version: e.version.Add(1),
		Source:  source,
		BuiltAt: time.Now(),
	}

	e.mu.Lock()
	prev := e.state
	e.snapshot = snap
	e.state = StateReady
	e.lastErr = nil
	e.mu.Unlock()

	e.paths.Clear()
	metrics.UpdateSnapshot(snap.Version, store.Len(), store.Dimension())
	if prev != StateReady {
		metrics.EngineState.Set(float64(StateReady))
		e.publish(EventStateChanged, map[string]string{"from": prev.String(), "to": StateReady.String()})
	}
	e.publish(EventSnapshotSwapped, map[string]any{
		"version":   snap.Version,
		"tracks":    store.Len(),
		"dimension": store.Dimension(),
		"source":    source,
	})
	return snap, nil
}

func (e *Engine) transition(to State, cause error) {
	e.mu.Lock()
	from := e.state
	e.state = to
	e.lastErr = cause
	e.mu.Unlock()

	if from == to {
		return
	}
	metrics.EngineState.Set(float64(to))
	if cause != nil {
		e.log.Error().Err(cause).Str("from", from.String()).Str("to", to.String()).Msg("engine state changed")
	} else {
		e.log.Debug().Str("from", from.String()).Str("to", to.String()).Msg("engine state changed")
	}
	e.publish(EventStateChanged, map[string]string{"from": from.String(), "to": to.String()})
}

// persist writes the snapshot to the embedding cache directory so the next
// start can boot from disk. Persistence failures are logged, never fatal.
func (e *Engine) persist(snap *Snapshot) {
	if e.deps.CacheDir == "" {
		return
	}
	if err := embedding.SaveCache(e.deps.CacheDir, snap.Store); err != nil {
		e.log.Warn().Err(err).Str("dir", e.deps.CacheDir).Msg("failed to persist embedding snapshot")
		return
	}
	e.log.Debug().Str("dir", e.deps.CacheDir).Int64("version", snap.Version).Msg("embedding snapshot persisted")
}

func (e *Engine) clampSteps(steps int) int {
	if steps <= 0 {
		steps = e.cfg.WormholeSteps
	}
	if e.cfg.MinWormholeSteps > 0 && steps < e.cfg.MinWormholeSteps {
		steps = e.cfg.MinWormholeSteps
	}
	if e.cfg.MaxWormholeSteps > 0 && steps > e.cfg.MaxWormholeSteps {
		steps = e.cfg.MaxWormholeSteps
	}
	return steps
}

// IsExpected reports whether err is one of the engine's expected
// non-fault outcomes rather than a structural failure.
func IsExpected(err error) bool {
	return errors.Is(err, ErrNoCandidates) || errors.Is(err, ErrNoValidSeeds)
}
