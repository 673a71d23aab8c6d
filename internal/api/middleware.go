// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/sonarium/internal/config"
)

// ChiMiddleware builds the router's CORS and rate-limiting middleware
// from configuration. Rate limits are keyed by client IP and applied per
// route group, so a polling dashboard on the health endpoints cannot
// starve the navigation endpoints of budget.
type ChiMiddleware struct {
	corsOrigins []string
	requests    int
	window      time.Duration
	disabled    bool
}

// NewChiMiddleware creates the middleware factory from API settings.
func NewChiMiddleware(cfg config.APIConfig) *ChiMiddleware {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	requests := cfg.RateLimitReqs
	if requests <= 0 {
		requests = 100
	}
	window := cfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return &ChiMiddleware{
		corsOrigins: origins,
		requests:    requests,
		window:      window,
		disabled:    cfg.RateLimitDisabled,
	}
}

// CORS returns the CORS middleware for browser clients.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   m.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit returns the default per-IP rate limiter from configuration.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit(m.requests, m.window)
}

// HealthRateLimit is permissive: monitoring systems poll these endpoints
// every few seconds.
func (m *ChiMiddleware) HealthRateLimit() func(http.Handler) http.Handler {
	return m.limit(1000, time.Minute)
}

// WriteRateLimit covers mutating endpoints (catalog upserts, refresh
// triggers, direct loads).
func (m *ChiMiddleware) WriteRateLimit() func(http.Handler) http.Handler {
	return m.limit(30, time.Minute)
}

// WebSocketRateLimit bounds upgrade attempts, not message volume.
func (m *ChiMiddleware) WebSocketRateLimit() func(http.Handler) http.Handler {
	return m.limit(30, time.Minute)
}

func (m *ChiMiddleware) limit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if m.disabled {
		return passthrough
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

func passthrough(next http.Handler) http.Handler {
	return next
}

// rateLimitExceeded answers a limited request with the standard envelope
// instead of httprate's plain-text default.
func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).TooManyRequests("Rate limit exceeded, retry later")
}

// SecurityHeaders sets defensive response headers on every API response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}
