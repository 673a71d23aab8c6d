// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

import (
	"fmt"

	"github.com/tomtom215/sonarium/internal/embedding"
)

// SynthesizePlaylist builds an ordered playlist of at most n tracks around
// the centroid of the resolvable seeds. Seeds missing from the store are
// ignored; if none resolve the call fails with ErrNoValidSeeds. The centroid
// is the dimension-wise mean of the seed embeddings, left unnormalized
// because cosine ranking is magnitude-insensitive. Candidates are over-fetched
// by 2n plus the exclusion count so the result survives filtering, then
// emitted in ascending-distance order skipping every seed and excluded
// identifier. Fewer than n results is a valid short playlist, not an error.
func SynthesizePlaylist(index *Index, seedIDs []string, n int, excludeIDs []string) ([]string, error) {
	store := index.Store()

	seeds := make([][]float32, 0, len(seedIDs))
	for _, id := range seedIDs {
		if vec, err := store.Vector(id); err == nil {
			seeds = append(seeds, vec)
		}
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%d seed ids, none present in store: %w", len(seedIDs), ErrNoValidSeeds)
	}
	if n <= 0 {
		return []string{}, nil
	}

	candidates, err := index.Query(embedding.Centroid(seeds), 2*n+len(excludeIDs))
	if err != nil {
		return nil, err
	}

	skip := make(map[string]struct{}, len(seedIDs)+len(excludeIDs))
	for _, id := range seedIDs {
		skip[id] = struct{}{}
	}
	for _, id := range excludeIDs {
		skip[id] = struct{}{}
	}

	playlist := make([]string, 0, n)
	for _, c := range candidates {
		if _, ok := skip[c.TrackID]; ok {
			continue
		}
		playlist = append(playlist, c.TrackID)
		if len(playlist) == n {
			break
		}
	}
	return playlist, nil
}
