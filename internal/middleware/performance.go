// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/sonarium/internal/logging"
)

// slowRequestThreshold is the latency above which a request gets a warning
// log entry.
const slowRequestThreshold = time.Second

// sample is one observed request.
type sample struct {
	endpoint   string // "METHOD /route/pattern"
	durationMS int64
}

// PerformanceMonitor keeps a sliding window of request latencies and
// serves per-endpoint percentile summaries for the admin API. Prometheus
// histograms cover dashboards; this gives operators an answer without one.
type PerformanceMonitor struct {
	mu         sync.RWMutex
	samples    []sample
	maxSamples int
}

// EndpointStats summarizes the recent latency of one endpoint.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        int64   `json:"p50_ms"`
	P95MS        int64   `json:"p95_ms"`
	P99MS        int64   `json:"p99_ms"`
	MinMS        int64   `json:"min_ms"`
	MaxMS        int64   `json:"max_ms"`
}

// NewPerformanceMonitor creates a monitor retaining the last maxSamples
// requests.
func NewPerformanceMonitor(maxSamples int) *PerformanceMonitor {
	if maxSamples <= 0 {
		maxSamples = 1000
	}
	return &PerformanceMonitor{
		samples:    make([]sample, 0, maxSamples),
		maxSamples: maxSamples,
	}
}

// Middleware observes every request passing through it.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		elapsed := time.Since(start)
		pm.record(r.Method+" "+routePattern(r), elapsed.Milliseconds())

		if elapsed > slowRequestThreshold {
			logging.Warn().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", elapsed).
				Msg("Slow request")
		}
	})
}

func (pm *PerformanceMonitor) record(endpoint string, durationMS int64) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.samples = append(pm.samples, sample{endpoint: endpoint, durationMS: durationMS})
	if len(pm.samples) > pm.maxSamples {
		pm.samples = pm.samples[1:]
	}
}

// Stats aggregates the current window into per-endpoint summaries, busiest
// endpoint first.
func (pm *PerformanceMonitor) Stats() []EndpointStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	byEndpoint := make(map[string][]int64)
	for _, s := range pm.samples {
		byEndpoint[s.endpoint] = append(byEndpoint[s.endpoint], s.durationMS)
	}

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, durations := range byEndpoint {
		sorted := make([]int64, len(durations))
		copy(sorted, durations)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, d := range sorted {
			sum += d
		}

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(sorted)),
			AvgMS:        float64(sum) / float64(len(sorted)),
			P50MS:        percentile(sorted, 0.50),
			P95MS:        percentile(sorted, 0.95),
			P99MS:        percentile(sorted, 0.99),
			MinMS:        sorted[0],
			MaxMS:        sorted[len(sorted)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})

	return stats
}

// percentile reads the p-quantile from a sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}
