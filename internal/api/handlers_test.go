// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package api

import (
	"bytes"
	"context"
	"hash/fnv"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/sonarium/internal/catalog"
	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/logging"
	"github.com/tomtom215/sonarium/internal/navigator"
	ws "github.com/tomtom215/sonarium/internal/websocket"
)

//nolint:gochecknoinits // quiet logger for the whole test binary
func init() {
	logging.Init(logging.Config{Level: "info", Format: "console", Output: io.Discard})
}

// testSpace is a small embedding space with hand-placed geometry: three
// axis tracks, two diagonals, and a near-duplicate of axis-x, so nearest
// neighbors are predictable.
func testSpace() ([]string, [][]float32) {
	ids := []string{"axis-x", "axis-y", "axis-z", "diag-xy", "diag-xz", "near-x"}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.7, 0.7, 0},
		{0.7, 0, 0.7},
		{0.95, 0.05, 0},
	}
	return ids, vectors
}

func testConfig() *config.Config {
	return &config.Config{
		Navigator: config.NavigatorConfig{
			ColdStartThreshold:   2,
			ExplorationRate:      0, // deterministic exploit picks
			ExploreMinCandidates: 10,
			ExploreRankLow:       5,
			ExploreRankHigh:      15,
			CandidateBase:        20,
			PlaylistLength:       3,
			WormholeSteps:        8,
			MinWormholeSteps:     2,
			MaxWormholeSteps:     20,
			WormholeLookahead:    5,
			PathCacheTTL:         time.Minute,
			Seed:                 1,
		},
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			CORSOrigins:     []string{"*"},
		},
		WebSocket: config.WebSocketConfig{
			Enabled:    true,
			MaxClients: 8,
			SendBuffer: 8,
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

// openTestCatalog opens an in-memory catalog seeded with one entry per
// embedding-space track.
func openTestCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(config.CatalogConfig{InMemory: true})
	if err != nil {
		t.Fatalf("catalog.Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("catalog close error = %v", err)
		}
	})

	ids, _ := testSpace()
	for i, id := range ids {
		track := &catalog.Track{
			ID:          id,
			Title:       "Track " + id,
			Artist:      "The Basis Vectors",
			Album:       "Orthonormal",
			Genre:       "electronic",
			DurationSec: 180 + i,
			AddedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := store.Put(context.Background(), track); err != nil {
			t.Fatalf("seed Put(%s) error = %v", id, err)
		}
	}
	return store
}

// loadedTestEngine returns an engine serving the test space.
func loadedTestEngine(t *testing.T, cfg *config.Config) *navigator.Engine {
	t.Helper()

	engine := navigator.New(cfg.Navigator, navigator.Dependencies{
		Rand: rand.New(rand.NewSource(1)), //nolint:gosec // deterministic test picks
	})
	t.Cleanup(engine.Close)

	ids, vectors := testSpace()
	if _, err := engine.Load(ids, vectors); err != nil {
		t.Fatalf("engine.Load() error = %v", err)
	}
	return engine
}

// newTestHandler builds a handler over a ready engine, a seeded
// in-memory catalog, and a non-running hub.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := testConfig()
	engine := loadedTestEngine(t, cfg)
	tracks := openTestCatalog(t)
	hub := ws.NewHub(cfg.WebSocket)
	return NewHandler(engine, tracks, hub, cfg)
}

// fnvEmbedder returns a deterministic unit vector per track ID, standing
// in for the extraction service during refresh tests.
type fnvEmbedder struct {
	dim int
}

func (m *fnvEmbedder) Embed(_ context.Context, trackID string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(trackID))
	rng := rand.New(rand.NewSource(int64(h.Sum64()))) //nolint:gosec // deterministic test vectors
	vec := make([]float32, m.dim)
	var norm float64
	for i := range vec {
		vec[i] = float32(rng.NormFloat64())
		norm += float64(vec[i]) * float64(vec[i])
	}
	for i := range vec {
		vec[i] /= float32(math.Sqrt(norm))
	}
	return vec, nil
}

// doJSON invokes a handler directly with an optional JSON body.
func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// withURLParam attaches a chi route context carrying one URL parameter,
// standing in for the router when handlers are invoked directly.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// doJSONParam is doJSON with a single chi URL parameter attached.
func doJSONParam(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}, key, value string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req = withURLParam(req, key, value)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// doRaw invokes a handler with a literal body, for malformed-payload
// cases doJSON cannot produce.
func doRaw(t *testing.T, handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// decodeEnvelope parses the response envelope, failing the test on
// malformed JSON.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

// dataAsMap re-marshals the envelope's Data into a map for field checks.
func dataAsMap(t *testing.T, resp APIResponse) map[string]interface{} {
	t.Helper()

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return m
}

// wantStatus fails with the response body for context when the status
// differs, which makes broken-envelope failures readable.
func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

// errCode extracts the error code from an error envelope.
func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	resp := decodeEnvelope(t, rec)
	if resp.Success {
		t.Fatalf("expected error envelope, got success (body %s)", rec.Body.String())
	}
	if resp.Error == nil {
		t.Fatalf("error envelope without error object (body %s)", rec.Body.String())
	}
	return resp.Error.Code
}
