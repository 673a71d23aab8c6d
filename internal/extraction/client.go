// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package extraction provides the HTTP client for the external embedding
// extraction service. The service computes an embedding vector for a single
// track; refresh jobs call it once per catalog entry.
//
// Every call passes through a token-bucket rate limiter and a circuit
// breaker, so a slow or failing extraction service degrades refresh jobs
// gracefully instead of stalling them.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. This is intentional for
// production resilience. Tests exercise the HTTP layer against httptest
// servers and force breaker transitions with low thresholds.
package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/sonarium/internal/config"
	"github.com/tomtom215/sonarium/internal/embedding"
	"github.com/tomtom215/sonarium/internal/logging"
	"github.com/tomtom215/sonarium/internal/metrics"
)

// breakerName labels the extraction circuit breaker in logs and metrics.
const breakerName = "extraction-service"

// Defaults applied when the corresponding config value is zero.
const (
	defaultTimeout       = 30 * time.Second
	defaultRPS           = 10
	defaultBurst         = 5
	defaultMinRequests   = 10
	defaultFailureRatio  = 0.6
	defaultOpenStateWait = 30 * time.Second
)

// Ensure Client satisfies the embedder contract used by refresh jobs.
var _ embedding.Embedder = (*Client)(nil)

// Client calls the embedding extraction service over HTTP.
//
// The zero value is not usable; construct with NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[[]float32]
	name       string
}

// embedRequest is the JSON body sent to the extraction service.
type embedRequest struct {
	TrackID string `json:"track_id"`
}

// embedResponse is the JSON body returned by the extraction service.
// Dimension is advisory; the embedding length is authoritative.
type embedResponse struct {
	TrackID   string    `json:"track_id"`
	Embedding []float32 `json:"embedding"`
	Dimension int       `json:"dimension"`
}

// NewClient creates an extraction service client from configuration.
//
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - BreakerTimeout cooldown before attempting recovery
//   - Opens at BreakerFailureRatio with at least BreakerMinRequests samples
func NewClient(cfg config.ExtractionConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.URL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	minRequests := cfg.BreakerMinRequests
	if minRequests == 0 {
		minRequests = defaultMinRequests
	}
	failureRatio := cfg.BreakerFailureRatio
	if failureRatio <= 0 || failureRatio > 1 {
		failureRatio = defaultFailureRatio
	}
	openWait := cfg.BreakerTimeout
	if openWait <= 0 {
		openWait = defaultOpenStateWait
	}

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]float32](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,           // Allow 3 concurrent requests in half-open state
		Interval:    time.Minute, // Reset counts after 1 minute in closed state
		Timeout:     openWait,

		// ReadyToTrip determines when to open the circuit
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false // Need enough requests for statistical significance
			}

			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := ratio >= failureRatio

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening extraction circuit")
			}

			return shouldTrip
		},

		// OnStateChange is called whenever the circuit breaker changes state
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().
				Str("from", fromStr).
				Str("to", toStr).
				Msg("[CIRCUIT BREAKER] Extraction state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		cb:         cb,
		name:       breakerName,
	}
}

// Embed requests the embedding vector for a single track.
//
// The call blocks on the rate limiter first, then passes through the circuit
// breaker. When the breaker is open the request is rejected locally without
// touching the service.
func (c *Client) Embed(ctx context.Context, trackID string) ([]float32, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordExtractionRequest("rejected", 0)
		return nil, fmt.Errorf("extraction rate limit wait: %w", err)
	}

	start := time.Now()
	vector, err := c.cb.Execute(func() ([]float32, error) {
		return c.fetchEmbedding(ctx, trackID)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordExtractionRequest("rejected", 0)
			logging.Warn().Err(err).Str("track_id", trackID).Msg("[CIRCUIT BREAKER] Extraction request rejected")
		} else {
			metrics.RecordExtractionRequest("failure", time.Since(start))
		}
		return nil, err
	}

	metrics.RecordExtractionRequest("success", time.Since(start))
	return vector, nil
}

// fetchEmbedding performs the raw HTTP call without breaker bookkeeping.
func (c *Client) fetchEmbedding(ctx context.Context, trackID string) ([]float32, error) {
	payload, err := json.Marshal(embedRequest{TrackID: trackID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction request: %w", err)
	}

	fullURL := c.baseURL + "/v1/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("extraction returned status %d (failed to read body)", resp.StatusCode)
		}
		return nil, fmt.Errorf("extraction returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	if len(decoded.Embedding) == 0 {
		return nil, fmt.Errorf("extraction returned empty embedding for track %q", trackID)
	}
	if decoded.Dimension != 0 && decoded.Dimension != len(decoded.Embedding) {
		return nil, fmt.Errorf("extraction dimension mismatch for track %q: declared %d, got %d values",
			trackID, decoded.Dimension, len(decoded.Embedding))
	}

	return decoded.Embedding, nil
}

// Ping verifies connectivity to the extraction service.
// It bypasses the rate limiter and circuit breaker so health checks stay
// meaningful while the breaker is open.
func (c *Client) Ping(ctx context.Context) error {
	fullURL := c.baseURL + "/v1/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("extraction ping failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("extraction ping returned status %d", resp.StatusCode)
	}

	return nil
}

// State returns the current circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.cb.State()
}

// Counts returns the current circuit breaker counts.
func (c *Client) Counts() gobreaker.Counts {
	return c.cb.Counts()
}

// Name returns the circuit breaker name.
func (c *Client) Name() string {
	return c.name
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
