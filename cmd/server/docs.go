// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package main provides the Sonarium HTTP server
//
// Sonarium API provides embedding-space navigation for music streaming:
// next-track recommendations, playlist synthesis, and wormhole paths.
//
// @title Sonarium API
// @version 1.0
// @description Music recommendation engine that navigates a precomputed track embedding space
// @description
// @description ## Features
// @description
// @description - **Next-Track Selection**: Cold-start, exploit, and explore policies driven by listening history
// @description - **Playlist Synthesis**: Coherent playlists grown outward from one or more seed tracks
// @description - **Wormhole Paths**: Smooth track sequences interpolated between two arbitrary catalog points
// @description - **Atomic Refresh**: Catalog-wide re-embedding swaps the space without dropping queries
// @description - **Real-time Events**: WebSocket feed of engine state changes and navigation activity
// @description - **Track Catalog**: BadgerDB-backed metadata store with substring search
// @description
// @description ## Engine States
// @description
// @description The engine reports one of four states via `/api/v1/engine/status`:
// @description `unloaded`, `loading`, `ready`, `failed`. Navigation endpoints return
// @description 503 with code `ENGINE_NOT_READY` until the first embedding space loads.
// @description A `synthetic` source value means vectors are fabricated demo data, not
// @description model output.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Mutating endpoints (refresh, load, track upserts) share a tighter budget.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "TRACK_NOT_FOUND",
// @description     "message": "Human-readable error message",
// @description     "details": {},
// @description     "request_id": "b1c2d3e4"
// @description   },
// @description   "meta": {
// @description     "timestamp": "2026-08-22T12:34:56Z"
// @description   }
// @description }
// @description ```
// @description
// @description Expected navigation outcomes have dedicated codes so clients can react
// @description without string matching: `NO_CANDIDATES`, `NO_VALID_SEEDS`,
// @description `REFRESH_IN_PROGRESS`, `ENGINE_NOT_READY`.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/sonarium/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:4410
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health checks and liveness/readiness probes
//
// @tag.name Navigation
// @tag.description Next-track selection, playlist synthesis, and wormhole path endpoints
//
// @tag.name Engine
// @tag.description Embedding space status, configuration, refresh, and direct load operations
//
// @tag.name Tracks
// @tag.description Track catalog queries, search, and metadata management
//
// @tag.name Realtime
// @tag.description WebSocket event feed for engine state changes and navigation activity
//
// @tag.name Admin
// @tag.description Administrative operations (performance statistics, direct embedding loads)
package main
