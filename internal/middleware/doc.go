// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

/*
Package middleware provides HTTP middleware for the API server.

All middleware uses the standard func(http.Handler) http.Handler shape so
it composes with chi's Use chain. CORS, rate limiting, and compression come
from the chi ecosystem (go-chi/cors, go-chi/httprate, chi's Compress); this
package holds the pieces specific to this service.

Key Components:

  - RequestID: reuses or generates an X-Request-ID, propagates it through
    the response header, the request context, and the request-scoped logger
  - PrometheusMetrics: request count, duration, and in-flight gauge, keyed
    by chi route pattern to keep cardinality bounded
  - PerformanceMonitor: sliding-window latency percentiles served by the
    admin API, plus slow-request warning logs

Middleware Stack:

The router applies middleware in this order:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)
	r.Use(cors.Handler(...))
	r.Use(httprate.LimitByIP(...))

Usage Example - Request ID:

	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := middleware.GetRequestID(r.Context())
	    logging.Ctx(r.Context()).Info().Msg("processing") // carries request_id
	}

Thread Safety:

All components are safe for concurrent use. The performance monitor guards
its sample window with a sync.RWMutex; request IDs live in immutable
context values; Prometheus collectors are atomic.
*/
package middleware
