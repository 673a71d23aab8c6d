// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package cache provides a typed in-memory TTL cache for derived query
// results, principally wormhole paths, which are deterministic per snapshot
// and expensive enough to be worth memoizing.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sonarium/internal/metrics"
)

// cleanupInterval is how often the background sweep removes expired entries.
// Expired entries are also removed lazily on Get, so the sweep only bounds
// memory held by keys that are never read again.
const cleanupInterval = time.Minute

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	Entries     int64     `json:"entries"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// Cache is a thread-safe TTL cache with typed values. The label names the
// cache in Prometheus metrics; an empty label disables metric emission,
// which tests use to avoid polluting the default registry.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	label   string

	statsMu sync.Mutex
	stats   Stats

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache whose entries expire after ttl and starts the
// background cleanup sweep. Call Stop when the cache is no longer needed.
func New[V any](label string, ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		label:   label,
		stats:   Stats{LastCleanup: time.Now()},
		stop:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached value for key if present and unexpired. Expired
// entries are evicted on the spot and reported as misses.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		c.recordMiss()
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		size := len(c.entries)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEvictions(1, size)
		return zero, false
	}

	c.recordHit()
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with an explicit TTL, replacing any
// existing entry.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: time.Now().Add(ttl)}
	size := len(c.entries)
	c.mu.Unlock()

	c.setSize(size)
}

// Delete removes key if present.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.recordEvictions(1, size)
	}
}

// Clear drops every entry. Called after a snapshot swap, when all cached
// paths computed against the previous snapshot become stale at once.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()

	c.recordEvictions(evicted, 0)
}

// Len returns the current entry count, expired entries included until the
// next sweep.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a copy of the activity counters.
func (c *Cache[V]) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns the hit percentage over the cache lifetime.
func (c *Cache[V]) HitRate() float64 {
	s := c.Stats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// Stop terminates the background cleanup goroutine. Safe to call more than
// once. The cache remains usable afterwards; only lazy eviction applies.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache[V]) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache[V]) cleanup() {
	now := time.Now()

	c.mu.Lock()
	var evicted int64
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.LastCleanup = now
	c.statsMu.Unlock()
	c.recordEvictions(evicted, size)
}

func (c *Cache[V]) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
	if c.label != "" {
		metrics.CacheHits.WithLabelValues(c.label).Inc()
	}
}

func (c *Cache[V]) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
	if c.label != "" {
		metrics.CacheMisses.WithLabelValues(c.label).Inc()
	}
}

func (c *Cache[V]) recordEvictions(n int64, size int) {
	if n > 0 {
		c.statsMu.Lock()
		c.stats.Evictions += n
		c.statsMu.Unlock()
		if c.label != "" {
			metrics.CacheEvictions.WithLabelValues(c.label).Add(float64(n))
		}
	}
	c.setSize(size)
}

func (c *Cache[V]) setSize(size int) {
	c.statsMu.Lock()
	c.stats.Entries = int64(size)
	c.statsMu.Unlock()
	if c.label != "" {
		metrics.CacheEntries.WithLabelValues(c.label).Set(float64(size))
	}
}

// Key derives a compact cache key from an operation name and its
// parameters. Parameters are serialized to JSON and hashed, so any
// comparable parameter struct produces a stable key.
func Key(operation string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", operation, params)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", operation, sum[:16])
}
