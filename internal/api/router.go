// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/middleware"
)

// NewRouter assembles the chi router: global request plumbing, per-group
// rate limits, and the observability endpoints at the root.
//
// Group layout mirrors traffic classes. Health endpoints get a permissive
// limit for monitoring pollers; navigation queries share the configured
// default; mutations and websocket upgrades get tighter budgets.
func NewRouter(h *Handler) *chi.Mux {
	var apiCfg config.APIConfig
	metricsEnabled := true
	if h.config != nil {
		apiCfg = h.config.API
		metricsEnabled = h.config.Metrics.Enabled
	}
	chiMW := NewChiMiddleware(apiCfg)

	r := chi.NewRouter()

	// Global middleware. RealIP must precede the rate limiters so their
	// per-IP keys see the client address, not the proxy's.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(h.perfMon.Middleware)
	r.Use(chiMW.CORS())
	r.Use(SecurityHeaders)
	r.Use(chimiddleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		// Health and status probes.
		r.Group(func(r chi.Router) {
			r.Use(chiMW.HealthRateLimit())
			r.Get("/health", h.Health)
			r.Get("/health/live", h.HealthLive)
			r.Get("/health/ready", h.HealthReady)
		})

		// Navigation queries and catalog reads.
		r.Group(func(r chi.Router) {
			r.Use(chiMW.RateLimit())
			r.Post("/recommendations/next", h.NextTrack)
			r.Post("/playlists", h.GeneratePlaylist)
			r.Get("/wormhole", h.Wormhole)
			r.Get("/engine/status", h.EngineStatus)
			r.Get("/engine/config", h.EngineConfig)
			r.Get("/tracks", h.ListTracks)
			r.Get("/tracks/search", h.SearchTracks)
			r.Get("/tracks/{id}", h.GetTrack)
			r.Get("/admin/performance", h.PerformanceStats)
		})

		// Mutations.
		r.Group(func(r chi.Router) {
			r.Use(chiMW.WriteRateLimit())
			r.Post("/engine/refresh", h.TriggerRefresh)
			r.Post("/engine/load", h.LoadEmbeddings)
			r.Put("/tracks/{id}", h.UpsertTrack)
			r.Delete("/tracks/{id}", h.DeleteTrack)
		})

		// Live event feed. The limit bounds upgrade attempts; message
		// volume is the hub's concern.
		r.Group(func(r chi.Router) {
			r.Use(chiMW.WebSocketRateLimit())
			r.Get("/events/ws", h.EventStream)
		})
	})

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
