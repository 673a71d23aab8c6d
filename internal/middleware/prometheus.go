// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/sonarium/internal/metrics"
)

// PrometheusMetrics records request count, duration, and in-flight gauge
// for every API request.
//
// The endpoint label uses the chi route pattern (e.g. /api/v1/tracks/{id})
// rather than the raw path, keeping metric cardinality bounded no matter
// how many track IDs pass through.
//
// The status capture uses chi's response-writer wrapper, which passes
// Hijack and Flush through to the underlying writer. Websocket upgrades
// on instrumented routes record status 0; the connection left HTTP before
// a status code was written.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		metrics.RecordAPIRequest(
			r.Method,
			routePattern(r),
			strconv.Itoa(ww.Status()),
			time.Since(start),
		)
	})
}

// routePattern returns the matched chi pattern, falling back to the raw
// path for requests that never reached the router.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
