// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package model defines the record schemas consumed and produced by the
// discovery engine.
//
// Input records (Song, User, Interaction and the activity records embedded
// in Song) are plain value types supplied by the caller as immutable
// snapshots. The engine never mutates them; ownership stays with the caller
// for the lifetime of a call.
//
// Derived types (TrendingScore, UserProfile, ChartEntry, Recommendation,
// Opportunity, SearchResult) are ephemeral outputs computed fresh per call
// and never persisted by the engine.
//
// The package also defines the engine's error kinds. Components return
// *Error values discriminated by Kind so the orchestrator can map them into
// the response envelope without string matching.
package model
