// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/sonarium/internal/catalog"
	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/middleware"
	"github.com/tomtom215/sonarium/internal/navigator"
	"github.com/tomtom215/sonarium/internal/validation"
	ws "github.com/tomtom215/sonarium/internal/websocket"
)

// Handler carries the collaborators every endpoint needs. The engine and
// catalog may be nil when their subsystems failed to start; handlers that
// need them answer 503 instead of panicking, so health and status stay
// reachable on a degraded process.
type Handler struct {
	engine    *navigator.Engine
	tracks    *catalog.Store
	wsHub     *ws.Hub
	config    *config.Config
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(engine *navigator.Engine, tracks *catalog.Store, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		engine:    engine,
		tracks:    tracks,
		wsHub:     wsHub,
		config:    cfg,
		perfMon:   middleware.NewPerformanceMonitor(1000),
		startTime: time.Now(),
	}
}

// PerformanceMonitor exposes the per-endpoint latency monitor so the
// router can install its middleware and the admin endpoint can report it.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// defaultPageSize returns the configured default list page size.
func (h *Handler) defaultPageSize() int {
	if h.config != nil && h.config.API.DefaultPageSize > 0 {
		return h.config.API.DefaultPageSize
	}
	return 20
}

// maxPageSize returns the configured page size ceiling.
func (h *Handler) maxPageSize() int {
	if h.config != nil && h.config.API.MaxPageSize > 0 {
		return h.config.API.MaxPageSize
	}
	return 100
}

// clampLimit folds a requested limit into [1, maxPageSize], substituting
// the default for zero or negative values.
func (h *Handler) clampLimit(limit int) int {
	if limit <= 0 {
		return h.defaultPageSize()
	}
	if ceiling := h.maxPageSize(); limit > ceiling {
		return ceiling
	}
	return limit
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or an APIError carrying the
// translated field messages if it fails.
func validateRequest(v interface{}) *APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// sanitizeLogValue removes control characters from strings to prevent log
// injection. Newlines, carriage returns, and other control characters are
// replaced with an escaped representation before the value reaches a log
// line.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
