// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package metrics defines the Prometheus instrumentation for Sonarium.
//
// All metrics register on the default registry via promauto and are exposed
// through promhttp on /metrics. Instrumented areas:
//   - Navigation engine state, snapshot freshness, and selection outcomes
//   - Playlist synthesis and wormhole path computation
//   - Embedding refresh jobs and the extraction service circuit breaker
//   - Track catalog operations (Badger)
//   - API endpoint latency and throughput
//   - WebSocket event streaming
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engine Metrics
	EngineState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_state",
			Help: "Navigation engine lifecycle state (0=unloaded, 1=loading, 2=ready, 3=failed)",
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_snapshot_version",
			Help: "Monotonic version of the active embedding snapshot",
		},
	)

	SnapshotTracks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_snapshot_tracks",
			Help: "Number of tracks in the active embedding snapshot",
		},
	)

	SnapshotDimension = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_snapshot_dimension",
			Help: "Vector dimensionality of the active embedding snapshot",
		},
	)

	// Selection Metrics
	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selections_total",
			Help: "Total number of next-track selections by strategy",
		},
		[]string{"strategy"}, // "cold_start", "exploit", "explore"
	)

	SelectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "selection_duration_seconds",
			Help:    "Duration of next-track selection in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"operation"}, // "next", "playlist", "wormhole"
	)

	NeighborCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neighbor_candidates",
			Help:    "Number of neighbor candidates surviving history exclusion",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 250},
		},
	)

	// Playlist Metrics
	PlaylistsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlists_generated_total",
			Help: "Total number of playlists synthesized",
		},
	)

	PlaylistLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playlist_length",
			Help:    "Number of tracks in synthesized playlists",
			Buckets: []float64{1, 5, 10, 15, 20, 30, 50, 100},
		},
	)

	// Wormhole Metrics
	WormholesComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wormholes_computed_total",
			Help: "Total number of wormhole paths computed",
		},
	)

	WormholeDroppedSteps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wormhole_dropped_steps_total",
			Help: "Total number of interpolation steps dropped for lack of unvisited neighbors",
		},
	)

	// Refresh Metrics
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_jobs_total",
			Help: "Total number of embedding refresh jobs by outcome",
		},
		[]string{"outcome"}, // "success", "failure", "rejected"
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "refresh_duration_seconds",
			Help:    "Duration of embedding refresh jobs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	RefreshTracksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refresh_tracks_processed_total",
			Help: "Total number of tracks re-embedded during refresh jobs",
		},
	)

	RefreshTracksSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refresh_tracks_skipped_total",
			Help: "Total number of tracks skipped during refresh jobs (embedding failures)",
		},
	)

	RefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful embedding refresh",
		},
	)

	// Extraction Service Metrics
	ExtractionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_requests_total",
			Help: "Total number of embedding extraction requests",
		},
		[]string{"result"}, // "success", "failure", "rejected"
	)

	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extraction_request_duration_seconds",
			Help:    "Duration of embedding extraction requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "path", "embedding"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Catalog Metrics
	CatalogOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_operation_duration_seconds",
			Help:    "Duration of track catalog operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "get", "put", "delete", "list"
	)

	CatalogOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_operation_errors_total",
			Help: "Total number of track catalog operation errors",
		},
		[]string{"operation"},
	)

	CatalogTracks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_tracks",
			Help: "Current number of tracks in the catalog",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket subscribers",
		},
	)

	WSEventsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_events_sent_total",
			Help: "Total number of engine events sent to WebSocket subscribers",
		},
	)

	WSEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_events_dropped_total",
			Help: "Total number of engine events dropped due to slow subscribers",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordSelection records a completed next-track selection.
func RecordSelection(strategy string, duration time.Duration) {
	SelectionsTotal.WithLabelValues(strategy).Inc()
	SelectionDuration.WithLabelValues("next").Observe(duration.Seconds())
}

// RecordPlaylist records a synthesized playlist.
func RecordPlaylist(length int, duration time.Duration) {
	PlaylistsGenerated.Inc()
	PlaylistLength.Observe(float64(length))
	SelectionDuration.WithLabelValues("playlist").Observe(duration.Seconds())
}

// RecordWormhole records a computed wormhole path.
func RecordWormhole(droppedSteps int, duration time.Duration) {
	WormholesComputed.Inc()
	WormholeDroppedSteps.Add(float64(droppedSteps))
	SelectionDuration.WithLabelValues("wormhole").Observe(duration.Seconds())
}

// RecordRefresh records a finished refresh job. Outcome is "success",
// "failure", or "rejected" (another refresh already in flight).
func RecordRefresh(outcome string, duration time.Duration, processed, skipped int) {
	RefreshTotal.WithLabelValues(outcome).Inc()
	if outcome == "rejected" {
		return
	}
	RefreshDuration.Observe(duration.Seconds())
	RefreshTracksProcessed.Add(float64(processed))
	RefreshTracksSkipped.Add(float64(skipped))
	if outcome == "success" {
		RefreshLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// UpdateSnapshot publishes the active snapshot's vitals after a swap.
func UpdateSnapshot(version int64, tracks, dimension int) {
	SnapshotVersion.Set(float64(version))
	SnapshotTracks.Set(float64(tracks))
	SnapshotDimension.Set(float64(dimension))
}

// RecordExtractionRequest records one request to the extraction service.
func RecordExtractionRequest(result string, duration time.Duration) {
	ExtractionRequests.WithLabelValues(result).Inc()
	if result != "rejected" {
		ExtractionDuration.Observe(duration.Seconds())
	}
}

// RecordCatalogOp records a track catalog operation.
func RecordCatalogOp(operation string, duration time.Duration, err error) {
	CatalogOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		CatalogOpErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight API request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
