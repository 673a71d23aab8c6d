// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package catalog

import (
	"context"
	"fmt"
)

// demoTracks is the fixture catalog for demo deployments. IDs follow the
// demo-%05d scheme the synthetic embedding source generates, so a demo
// instance gets consistent recommendations without an extraction service.
var demoTracks = []Track{
	{Title: "Midnight Transit", Artist: "Velvet Arcade", Album: "Neon Cartography", Genre: "synthwave", DurationSec: 243},
	{Title: "Glass Highways", Artist: "Velvet Arcade", Album: "Neon Cartography", Genre: "synthwave", DurationSec: 198},
	{Title: "Afterimage", Artist: "Velvet Arcade", Album: "Neon Cartography", Genre: "synthwave", DurationSec: 274},
	{Title: "Salt and Cedar", Artist: "Harbor Lights", Album: "Low Tide", Genre: "folk", DurationSec: 221},
	{Title: "Driftwood Letters", Artist: "Harbor Lights", Album: "Low Tide", Genre: "folk", DurationSec: 189},
	{Title: "North of Sunday", Artist: "Harbor Lights", Album: "Low Tide", Genre: "folk", DurationSec: 256},
	{Title: "Copper Sky", Artist: "The Reverb Union", Album: "Analog Ghosts", Genre: "indie rock", DurationSec: 232},
	{Title: "Static Bloom", Artist: "The Reverb Union", Album: "Analog Ghosts", Genre: "indie rock", DurationSec: 207},
	{Title: "Parallel Hearts", Artist: "The Reverb Union", Album: "Analog Ghosts", Genre: "indie rock", DurationSec: 251},
	{Title: "Late Bus Home", Artist: "The Reverb Union", Album: "Analog Ghosts", Genre: "indie rock", DurationSec: 183},
	{Title: "Quiet Machinery", Artist: "Mira Solen", Album: "Weightless", Genre: "ambient", DurationSec: 312},
	{Title: "Slow Orbit", Artist: "Mira Solen", Album: "Weightless", Genre: "ambient", DurationSec: 347},
	{Title: "Winter Aperture", Artist: "Mira Solen", Album: "Weightless", Genre: "ambient", DurationSec: 288},
	{Title: "Basalt", Artist: "Mira Solen", Album: "Weightless", Genre: "ambient", DurationSec: 266},
	{Title: "Hummingbird Logic", Artist: "Petra & The Frequencies", Album: "Signal Garden", Genre: "electropop", DurationSec: 214},
	{Title: "Chalk Lines", Artist: "Petra & The Frequencies", Album: "Signal Garden", Genre: "electropop", DurationSec: 201},
	{Title: "Overexposed", Artist: "Petra & The Frequencies", Album: "Signal Garden", Genre: "electropop", DurationSec: 227},
	{Title: "Gold Hour", Artist: "Petra & The Frequencies", Album: "Signal Garden", Genre: "electropop", DurationSec: 194},
	{Title: "Third Rail Blues", Artist: "Otis Fairbanks", Album: "Union Station", Genre: "blues", DurationSec: 276},
	{Title: "Rust Belt Lullaby", Artist: "Otis Fairbanks", Album: "Union Station", Genre: "blues", DurationSec: 248},
	{Title: "Ninety Miles Out", Artist: "Otis Fairbanks", Album: "Union Station", Genre: "blues", DurationSec: 301},
	{Title: "Cassia", Artist: "Lumen Field", Album: "Terraria", Genre: "post-rock", DurationSec: 398},
	{Title: "Firn", Artist: "Lumen Field", Album: "Terraria", Genre: "post-rock", DurationSec: 421},
	{Title: "Moraine", Artist: "Lumen Field", Album: "Terraria", Genre: "post-rock", DurationSec: 365},
	{Title: "Paper Planets", Artist: "June Idlewild", Album: "Attic Season", Genre: "dream pop", DurationSec: 218},
	{Title: "Violet Static", Artist: "June Idlewild", Album: "Attic Season", Genre: "dream pop", DurationSec: 236},
	{Title: "Sleeper Ferry", Artist: "June Idlewild", Album: "Attic Season", Genre: "dream pop", DurationSec: 254},
	{Title: "Clockwise", Artist: "Brass Meridian", Album: "Second Wind", Genre: "jazz fusion", DurationSec: 329},
	{Title: "Tangent Street", Artist: "Brass Meridian", Album: "Second Wind", Genre: "jazz fusion", DurationSec: 297},
	{Title: "Half-Light Waltz", Artist: "Brass Meridian", Album: "Second Wind", Genre: "jazz fusion", DurationSec: 343},
}

// seedDemoTracks populates an empty catalog with the demo fixture set.
// Returns the number of tracks written.
func (s *Store) seedDemoTracks() (int, error) {
	ctx := context.Background()
	for i := range demoTracks {
		track := demoTracks[i]
		track.ID = fmt.Sprintf("demo-%05d", i)
		if err := s.put(ctx, &track); err != nil {
			return i, fmt.Errorf("seed track %q: %w", track.ID, err)
		}
	}
	return len(demoTracks), nil
}
