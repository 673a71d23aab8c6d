// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

// Candidate is one neighbor produced by an index query. Ordering is by
// ascending Distance; equal distances rank by ascending Row so results are
// stable across identical queries.
type Candidate struct {
	TrackID  string  `json:"track_id"`
	Row      int     `json:"-"`
	Distance float64 `json:"distance"`
}

// worse reports whether a ranks after b.
func worse(a, b Candidate) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.Row > b.Row
}

// topK retains the best limit candidates seen during a scan. The root holds
// the worst retained candidate, so most rows are rejected with a single
// comparison once the heap fills.
type topK struct {
	limit int
	items []Candidate
}

func newTopK(limit int) *topK {
	return &topK{limit: limit, items: make([]Candidate, 0, limit)}
}

// Offer considers one candidate, keeping it only if it beats the current
// worst retained entry.
func (h *topK) Offer(c Candidate) {
	if h.limit <= 0 {
		return
	}
	if len(h.items) < h.limit {
		h.items = append(h.items, c)
		h.bubbleUp(len(h.items) - 1)
		return
	}
	if worse(c, h.items[0]) {
		return
	}
	h.items[0] = c
	h.sink(0, len(h.items))
}

// Sorted drains the heap and returns the retained candidates in ascending
// rank order. The heap is empty afterwards.
func (h *topK) Sorted() []Candidate {
	out := h.items
	for n := len(out) - 1; n > 0; n-- {
		out[0], out[n] = out[n], out[0]
		h.sink(0, n)
	}
	h.items = nil
	return out
}

func (h *topK) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !worse(h.items[i], h.items[parent]) {
			return
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *topK) sink(i, n int) {
	for {
		left := 2*i + 1
		right := 2*i + 2
		worst := i

		if left < n && worse(h.items[left], h.items[worst]) {
			worst = left
		}
		if right < n && worse(h.items[right], h.items[worst]) {
			worst = right
		}
		if worst == i {
			return
		}

		h.items[i], h.items[worst] = h.items[worst], h.items[i]
		i = worst
	}
}
