// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package navigator

import (
	"fmt"

	"github.com/tomtom215/sonarium/internal/embedding"
)

// Path is a wormhole traversal between two tracks. TrackIDs always starts
// with the origin and ends with the destination. DroppedSteps counts interior
// interpolation points that found no unvisited neighbor within the lookahead;
// a nonzero count means the path is shorter than RequestedSteps+2. Dropping
// is the chosen degradation policy: the step is skipped and tallied rather
// than retried with a wider lookahead or aborting the whole path, so the
// caller can always distinguish a degraded path from a full one.
type Path struct {
	TrackIDs       []string `json:"track_ids"`
	RequestedSteps int      `json:"requested_steps"`
	DroppedSteps   int      `json:"dropped_steps"`
}

// ComputePath interpolates a listening path from startID to endID through
// embedding space. The great-circle arc between the endpoint embeddings is
// sampled at steps evenly spaced interior points; each sample snaps to its
// nearest stored track that has not already appeared in the path and is not
// the destination. The neighbor search for each sample uses lookahead slots
// plus one per already-excluded track. Identical endpoints degenerate to
// the two-element path [startID, endID].
func ComputePath(index *Index, startID, endID string, steps, lookahead int) (Path, error) {
	store := index.Store()

	start, err := store.Vector(startID)
	if err != nil {
		return Path{}, fmt.Errorf("wormhole start %q: %w", startID, err)
	}
	end, err := store.Vector(endID)
	if err != nil {
		return Path{}, fmt.Errorf("wormhole end %q: %w", endID, err)
	}

	path := Path{RequestedSteps: steps}
	if startID == endID {
		path.TrackIDs = []string{startID, endID}
		return path, nil
	}

	arc := embedding.NewArc(start, end)
	visited := map[string]struct{}{startID: {}, endID: {}}
	ids := make([]string, 0, steps+2)
	ids = append(ids, startID)

	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		candidates, err := index.Query(arc.At(t), lookahead+len(visited))
		if err != nil {
			return Path{}, fmt.Errorf("wormhole step %d: %w", i, err)
		}

		stepped := false
		for _, c := range candidates {
			if _, seen := visited[c.TrackID]; seen {
				continue
			}
			ids = append(ids, c.TrackID)
			visited[c.TrackID] = struct{}{}
			stepped = true
			break
		}
		if !stepped {
			path.DroppedSteps++
		}
	}

	path.TrackIDs = append(ids, endID)
	return path, nil
}
