// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sonarium/internal/navigator"
)

// RefreshEngine is the slice of the navigation engine the refresh
// service drives. Satisfied by *navigator.Engine.
type RefreshEngine interface {
	Refresh(ctx context.Context) (*navigator.RefreshResult, error)
}

// RefreshServiceConfig holds configuration for the refresh service.
type RefreshServiceConfig struct {
	// RefreshOnStartup triggers a rebuild as soon as the service starts.
	RefreshOnStartup bool

	// RefreshInterval is how often to rebuild the embedding space from
	// the catalog. Zero or negative disables periodic rebuilds; the
	// service then only refreshes on startup (if configured) and keeps
	// running idle so the admin endpoint stays the sole trigger.
	RefreshInterval time.Duration

	// Timeout bounds a single rebuild. Default: 30m.
	Timeout time.Duration
}

// RefreshService drives periodic embedding-space rebuilds under Suture
// supervision. A failed rebuild is logged and retried on the next tick;
// the engine keeps serving the previously installed space throughout.
type RefreshService struct {
	engine RefreshEngine
	config RefreshServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRefreshService creates a new refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(engine RefreshEngine, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	return &RefreshService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "refresh").Logger(),
		name:   "refresh-service",
	}
}

// Serve implements the suture.Service interface.
// It manages the rebuild schedule for the navigation engine.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Dur("refresh_interval", s.config.RefreshInterval).
		Msg("refresh service starting")

	if s.config.RefreshOnStartup {
		s.logger.Info().Msg("rebuilding embedding space on startup")
		if err := s.refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup refresh failed (will retry on schedule)")
		}
	}

	if s.config.RefreshInterval <= 0 {
		s.logger.Info().Msg("periodic refresh disabled, service idle")
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	s.logger.Info().Msg("refresh service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled refresh triggered")
			if err := s.refresh(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled refresh failed")
			}
		}
	}
}

// refresh performs one rebuild cycle with its own timeout.
func (s *RefreshService) refresh(ctx context.Context) error {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info().Msg("starting embedding space rebuild")

	result, err := s.engine.Refresh(refreshCtx)
	if err != nil {
		// An admin-triggered rebuild already holds the build lock; the
		// scheduled one just yields.
		if errors.Is(err, navigator.ErrRefreshInProgress) {
			s.logger.Debug().Msg("rebuild already in progress, skipping tick")
			return nil
		}
		return err
	}

	s.logger.Info().
		Str("job_id", result.JobID).
		Int64("version", result.Version).
		Int("tracks", result.Tracks).
		Int("skipped", result.Skipped).
		Dur("duration", time.Since(start)).
		Msg("embedding space rebuild complete")

	return nil
}

// String returns the service name for logging.
func (s *RefreshService) String() string {
	return s.name
}
