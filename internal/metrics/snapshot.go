// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// SelectionCounts holds per-strategy selection totals extracted from the
// metrics registry. Used by the engine status endpoint so operators see
// policy behavior without scraping Prometheus.
type SelectionCounts struct {
	ColdStart uint64 `json:"cold_start"`
	Exploit   uint64 `json:"exploit"`
	Explore   uint64 `json:"explore"`
}

// Total returns the sum across all strategies.
func (s SelectionCounts) Total() uint64 {
	return s.ColdStart + s.Exploit + s.Explore
}

// GatherSelectionCounts reads the selections_total counter family from the
// default registry and splits it by strategy label.
func GatherSelectionCounts() (SelectionCounts, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return SelectionCounts{}, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var counts SelectionCounts
	for _, mf := range families {
		if mf.GetName() != "selections_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			counts.add(strategyLabel(m), uint64(m.GetCounter().GetValue()))
		}
	}
	return counts, nil
}

func (s *SelectionCounts) add(strategy string, n uint64) {
	switch strategy {
	case "cold_start":
		s.ColdStart += n
	case "exploit":
		s.Exploit += n
	case "explore":
		s.Explore += n
	}
}

func strategyLabel(m *dto.Metric) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == "strategy" {
			return lp.GetValue()
		}
	}
	return ""
}
