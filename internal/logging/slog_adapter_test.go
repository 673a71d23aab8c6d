// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLoggerWith(zerolog.New(&buf).Level(zerolog.DebugLevel))

	tests := []struct {
		name    string
		logFunc func()
		level   string
	}{
		{"Debug", func() { logger.Debug("debug msg") }, `"level":"debug"`},
		{"Info", func() { logger.Info("info msg") }, `"level":"info"`},
		{"Warn", func() { logger.Warn("warn msg") }, `"level":"warn"`},
		{"Error", func() { logger.Error("error msg") }, `"level":"error"`},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.logFunc()
		if !strings.Contains(buf.String(), tt.level) {
			t.Errorf("%s: expected %s in output: %s", tt.name, tt.level, buf.String())
		}
	}
}

func TestSlogEnabled(t *testing.T) {
	t.Parallel()

	handler := &ZerologHandler{logger: zerolog.Nop().Level(zerolog.WarnLevel)}

	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug to be disabled at warn level")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

func TestSlogAttributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLoggerWith(zerolog.New(&buf))

	logger.Info("attrs",
		slog.String("track", "tr-42"),
		slog.Int("rank", 3),
		slog.Bool("explore", true),
		slog.Float64("distance", 0.25),
		slog.Duration("elapsed", 5*time.Millisecond),
	)

	output := buf.String()
	for _, want := range []string{
		`"track":"tr-42"`,
		`"rank":3`,
		`"explore":true`,
		`"distance":0.25`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewSlogLoggerWith(zerolog.New(&buf))
	child := base.With(slog.String("service", "navigator"))

	child.Info("with attrs")

	if !strings.Contains(buf.String(), `"service":"navigator"`) {
		t.Errorf("expected inherited attr in output: %s", buf.String())
	}
}

func TestSlogWithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewSlogLoggerWith(zerolog.New(&buf))
	grouped := base.WithGroup("refresh")

	grouped.Info("grouped", slog.Int("total", 10))

	if !strings.Contains(buf.String(), `"refresh.total":10`) {
		t.Errorf("expected prefixed key in output: %s", buf.String())
	}
}

func TestSlogWithGroup_Empty(t *testing.T) {
	t.Parallel()

	handler := &ZerologHandler{logger: zerolog.Nop()}
	if handler.WithGroup("") != slog.Handler(handler) {
		t.Error("expected empty group name to return the same handler")
	}
}

func TestSlogGroupAttribute(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLoggerWith(zerolog.New(&buf))

	logger.Info("nested", slog.Group("job", slog.String("id", "j-1"), slog.Int("total", 4)))

	output := buf.String()
	if !strings.Contains(output, `"job.id":"j-1"`) {
		t.Errorf("expected job.id in output: %s", output)
	}
	if !strings.Contains(output, `"job.total":4`) {
		t.Errorf("expected job.total in output: %s", output)
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    slog.Level
		expected zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.input); got != tt.expected {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	NewSlogLogger().Info("global backed")

	if !strings.Contains(buf.String(), "global backed") {
		t.Errorf("expected message through global logger: %s", buf.String())
	}
}
