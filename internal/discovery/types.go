// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package discovery

import (
	"time"

	"github.com/tristanhayes/riffline/internal/discovery/model"
)

// Snapshot is the caller-supplied, read-only view of the platform data an
// operation computes over. The engine never mutates it; ownership stays
// with the caller and is released when the call returns.
type Snapshot struct {
	Songs        []model.Song        `json:"songs"`
	Users        []model.User        `json:"users"`
	Interactions []model.Interaction `json:"interactions,omitempty"`
}

// Meta carries per-call trace information in the response envelope.
type Meta struct {
	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id"`

	// Operation names the invoked operation.
	Operation string `json:"operation"`

	// CacheHit reports whether the payload came from the result cache.
	CacheHit bool `json:"cache_hit"`

	// LatencyMS is the call latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was produced.
	Timestamp time.Time `json:"timestamp"`
}

// Result is the uniform response envelope. Exactly one of Data and Error
// is meaningful: a failed operation carries no partial payload.
type Result[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data,omitempty"`
	Error   *model.Error `json:"error,omitempty"`
	Meta    Meta         `json:"meta"`
}

// Status is the system status report.
type Status struct {
	// Initialized reports whether Initialize has been called.
	Initialized bool `json:"initialized"`

	// Services maps each component name to its readiness.
	Services map[string]bool `json:"services"`

	// SupportedGenres lists the genre tags the platform recognizes.
	SupportedGenres []string `json:"supported_genres"`

	// ChartUpdateSchedule echoes the configured refresh hint for
	// external periodic-refresh callers. Empty means disabled.
	ChartUpdateSchedule string `json:"chart_update_schedule,omitempty"`

	// CacheEntries is the current result-cache size.
	CacheEntries int `json:"cache_entries"`
}

// RecommendationSet is the payload of the Recommend operation.
type RecommendationSet struct {
	Recommendations []model.Recommendation `json:"recommendations"`
	UserProfile     model.UserProfile      `json:"user_profile"`
}

// SearchResponse is the payload of the Search operation.
type SearchResponse struct {
	Results []model.SearchResult `json:"results"`
	Facets  model.Facets         `json:"facets"`
	Total   int                  `json:"total"`
}

// serviceNames lists the components reported by GetSystemStatus.
var serviceNames = []string{
	"trending",
	"profile",
	"charts",
	"recommend",
	"match",
	"search",
	"autocomplete",
}
