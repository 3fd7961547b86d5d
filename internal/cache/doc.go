// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package cache provides the data structures backing the discovery engine:
// a TTL-aware LRU used for the orchestrator's opt-in result cache, and a
// prefix trie used by autocomplete suggestion ranking.
package cache
