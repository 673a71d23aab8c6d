// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/embedding"
	"github.com/tomtom215/sonarium/internal/logging"
	"github.com/tomtom215/sonarium/internal/metrics"
)

// trackKeyPrefix namespaces track entries in BadgerDB.
const trackKeyPrefix = "track:"

const (
	gcInterval   = 10 * time.Minute
	gcRatio      = 0.5
	closeTimeout = 30 * time.Second
)

// Ensure the store satisfies the lister contract used by refresh jobs.
var _ embedding.TrackLister = (*Store)(nil)

// Store is a BadgerDB-backed track catalog with an in-memory prefix index.
type Store struct {
	db     *badger.DB
	search *searchIndex
	log    zerolog.Logger

	mu     sync.RWMutex
	closed bool
	gcStop chan struct{}
}

// Open creates or opens the catalog at the configured path. With
// cfg.InMemory set, Badger runs without persistence, which is the mode unit
// tests and demo deployments use.
func Open(cfg config.CatalogConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("catalog: path is required unless in_memory is set")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}

	s := &Store{
		db:     db,
		search: newSearchIndex(),
		log:    logging.WithComponent("catalog"),
		gcStop: make(chan struct{}),
	}

	count, err := s.rebuildSearchIndex()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("rebuild catalog search index: %w", err)
	}

	if cfg.SeedDemo && count == 0 {
		seeded, err := s.seedDemoTracks()
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed demo catalog: %w", err)
		}
		count = seeded
		s.log.Info().Int("tracks", seeded).Msg("Seeded demo catalog")
	}

	metrics.CatalogTracks.Set(float64(count))

	if cfg.GCEnabled && !cfg.InMemory {
		go s.gcLoop()
	}

	s.log.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Int("tracks", count).
		Msg("Catalog opened")

	return s, nil
}

// Put inserts or replaces a track. A zero AddedAt is stamped with the
// current time.
func (s *Store) Put(ctx context.Context, track *Track) error {
	start := time.Now()
	err := s.put(ctx, track)
	metrics.RecordCatalogOp("put", time.Since(start), err)
	return err
}

func (s *Store) put(ctx context.Context, track *Track) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := track.Validate(); err != nil {
		return err
	}
	if track.AddedAt.IsZero() {
		track.AddedAt = time.Now().UTC()
	}

	data, err := json.Marshal(track)
	if err != nil {
		return fmt.Errorf("marshal track: %w", err)
	}

	// Fetch any previous version so stale index entries can be removed.
	previous, err := s.get(ctx, track.ID)
	if err != nil && !errors.Is(err, ErrTrackNotFound) {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(trackKeyPrefix+track.ID), data)
	})
	if err != nil {
		return fmt.Errorf("set track: %w", err)
	}

	if previous != nil {
		s.search.Remove(previous)
	}
	s.search.Add(track)

	if previous == nil {
		s.refreshTrackGauge()
	}
	return nil
}

// Get retrieves a track by ID.
func (s *Store) Get(ctx context.Context, id string) (*Track, error) {
	start := time.Now()
	track, err := s.get(ctx, id)
	metrics.RecordCatalogOp("get", time.Since(start), err)
	return track, err
}

func (s *Store) get(ctx context.Context, id string) (*Track, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var track Track
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(trackKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("track %q: %w", id, ErrTrackNotFound)
		}
		if err != nil {
			return fmt.Errorf("get track: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &track)
		})
	})
	if err != nil {
		return nil, err
	}

	return &track, nil
}

// Delete removes a track by ID. Deleting an absent track returns
// ErrTrackNotFound so callers can distinguish it from success.
func (s *Store) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.remove(ctx, id)
	metrics.RecordCatalogOp("delete", time.Since(start), err)
	return err
}

func (s *Store) remove(ctx context.Context, id string) error {
	track, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(trackKeyPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("delete track: %w", err)
	}

	s.search.Remove(track)
	s.refreshTrackGauge()
	return nil
}

// List returns tracks ordered by ID, skipping offset entries and returning
// at most limit. A non-positive limit returns everything after the offset.
func (s *Store) List(ctx context.Context, offset, limit int) ([]Track, error) {
	start := time.Now()
	tracks, err := s.list(ctx, offset, limit)
	metrics.RecordCatalogOp("list", time.Since(start), err)
	return tracks, err
}

func (s *Store) list(ctx context.Context, offset, limit int) ([]Track, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	tracks := []Track{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		skipped := 0
		prefix := []byte(trackKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(tracks) >= limit {
				break
			}

			var track Track
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &track)
			})
			if err != nil {
				return fmt.Errorf("unmarshal track: %w", err)
			}
			tracks = append(tracks, track)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tracks, nil
}

// ListTrackIDs returns every track ID in the catalog, ordered by ID.
// Refresh jobs use this to enumerate the extraction work list.
func (s *Store) ListTrackIDs(ctx context.Context) ([]string, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(trackKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list track ids: %w", err)
	}

	return ids, nil
}

// Count returns the number of tracks in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(trackKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// Search returns tracks whose title or artist starts with the given prefix,
// title matches first. Matching is case-insensitive.
func (s *Store) Search(ctx context.Context, prefix string, limit int) ([]Track, error) {
	start := time.Now()
	tracks, err := s.searchTracks(ctx, prefix, limit)
	metrics.RecordCatalogOp("search", time.Since(start), err)
	return tracks, err
}

func (s *Store) searchTracks(ctx context.Context, prefix string, limit int) ([]Track, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tracks := []Track{}
	for _, id := range s.search.Lookup(prefix, limit) {
		track, err := s.get(ctx, id)
		if errors.Is(err, ErrTrackNotFound) {
			continue // Index raced a delete
		}
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, *track)
	}

	return tracks, nil
}

// Close shuts down the GC loop and closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.gcStop)
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close catalog database: %w", err)
		}
		s.log.Info().Msg("Catalog closed")
		return nil
	case <-time.After(closeTimeout):
		s.log.Warn().Dur("timeout", closeTimeout).Msg("Catalog close timed out")
		return fmt.Errorf("catalog close timeout after %v", closeTimeout)
	}
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// rebuildSearchIndex scans every stored track into the prefix index.
// Returns the number of tracks scanned.
func (s *Store) rebuildSearchIndex() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(trackKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var track Track
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &track)
			})
			if err != nil {
				return fmt.Errorf("unmarshal track: %w", err)
			}
			s.search.Add(&track)
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *Store) refreshTrackGauge() {
	count, err := s.Count(context.Background())
	if err != nil {
		return
	}
	metrics.CatalogTracks.Set(float64(count))
}

// gcLoop periodically reclaims Badger value-log space.
func (s *Store) gcLoop() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.gcStop:
			return
		case <-ticker.C:
			// Run GC until no more cleanup is possible
			for {
				err := s.db.RunValueLogGC(gcRatio)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					s.log.Warn().Err(err).Msg("Catalog value-log GC failed")
					break
				}
			}
		}
	}
}
