// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/sonarium/internal/logging"
)

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	var seenID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if seenID == "" {
		t.Fatal("handler saw empty request ID")
	}
	if _, err := uuid.Parse(seenID); err != nil {
		t.Errorf("request ID %q is not a UUID: %v", seenID, err)
	}
	if got := rec.Header().Get("X-Request-ID"); got != seenID {
		t.Errorf("response header X-Request-ID = %q, want %q", got, seenID)
	}
}

func TestRequestIDReusesUpstreamID(t *testing.T) {
	const upstream = "proxy-assigned-id-123"

	var seenID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", upstream)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenID != upstream {
		t.Errorf("handler saw request ID %q, want upstream %q", seenID, upstream)
	}
	if got := rec.Header().Get("X-Request-ID"); got != upstream {
		t.Errorf("response header X-Request-ID = %q, want %q", got, upstream)
	}
}

func TestRequestIDUniquePerRequest(t *testing.T) {
	ids := make(map[string]bool)
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ids[GetRequestID(r.Context())] = true
	}))

	for range 20 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	if len(ids) != 20 {
		t.Errorf("got %d distinct IDs over 20 requests, want 20", len(ids))
	}
}

func TestRequestIDPopulatesLoggingContext(t *testing.T) {
	var loggedID string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		loggedID = logging.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-me")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if loggedID != "trace-me" {
		t.Errorf("logging context request ID = %q, want trace-me", loggedID)
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID(empty context) = %q, want empty", got)
	}
}
