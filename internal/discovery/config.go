// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package discovery

import (
	"time"

	"github.com/tristanhayes/riffline/internal/discovery/charts"
	"github.com/tristanhayes/riffline/internal/discovery/match"
	"github.com/tristanhayes/riffline/internal/discovery/model"
	"github.com/tristanhayes/riffline/internal/discovery/profile"
	"github.com/tristanhayes/riffline/internal/discovery/recommend"
	"github.com/tristanhayes/riffline/internal/discovery/search"
	"github.com/tristanhayes/riffline/internal/discovery/trending"
)

// CacheConfig contains result-cache parameters. Caching is opt-in: with
// Enabled false every call recomputes.
type CacheConfig struct {
	// Enabled toggles the orchestrator-level result cache.
	// Default: false.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is the cache entry time-to-live. Default: 5m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`

	// MaxEntries is the cache capacity. Default: 1000.
	MaxEntries int `json:"max_entries" koanf:"max_entries"`
}

// Config contains all component weights, thresholds and limits for one
// orchestrator instance.
type Config struct {
	// Trending contains the trending scorer parameters.
	Trending trending.Config `json:"trending" koanf:"trending"`

	// Profile contains the profile builder parameters.
	Profile profile.Config `json:"profile" koanf:"profile"`

	// Charts contains the chart generator parameters.
	Charts charts.Config `json:"charts" koanf:"charts"`

	// Recommend contains the recommendation engine parameters.
	Recommend recommend.Config `json:"recommend" koanf:"recommend"`

	// Match contains the collaboration matcher parameters.
	Match match.Config `json:"match" koanf:"match"`

	// Search contains the search engine parameters.
	Search search.Config `json:"search" koanf:"search"`

	// Cache contains the result-cache parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`

	// ChartUpdateSchedule is an opaque scheduling hint for an external
	// periodic-refresh caller. The engine never acts on it; empty
	// disables the hint.
	ChartUpdateSchedule string `json:"chart_update_schedule" koanf:"chart_update_schedule"`

	// SupportedGenres lists the genre tags reported by system status.
	SupportedGenres []string `json:"supported_genres" koanf:"supported_genres"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Trending:  trending.DefaultConfig(),
		Profile:   profile.DefaultConfig(),
		Charts:    charts.DefaultConfig(),
		Recommend: recommend.DefaultConfig(),
		Match:     match.DefaultConfig(),
		Search:    search.DefaultConfig(),
		Cache: CacheConfig{
			Enabled:    false,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
		SupportedGenres: []string{
			"electronic", "hip-hop", "rock", "pop", "jazz",
			"classical", "folk", "metal", "r&b", "ambient",
		},
	}
}

// Validate checks all configuration ranges. Violations are reported as
// validation errors so they map cleanly into the response envelope.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	w := c.Trending.Weights
	for _, v := range []float64{w.Vote, w.Collaboration, w.Recency} {
		if v < 0 || v > 1 {
			return model.Validationf("trending weight %f out of range [0, 1]", v)
		}
	}
	if c.Trending.RecencyHalfLife <= 0 {
		return model.Validationf("trending.recency_half_life must be positive, got %v", c.Trending.RecencyHalfLife)
	}
	if c.Trending.RecencyFloor < 0 || c.Trending.RecencyFloor > 100 {
		return model.Validationf("trending.recency_floor must be in [0, 100], got %f", c.Trending.RecencyFloor)
	}
	if c.Trending.VoteSaturation <= 0 {
		return model.Validationf("trending.vote_saturation must be positive, got %f", c.Trending.VoteSaturation)
	}
	if c.Trending.CollabSaturation <= 0 {
		return model.Validationf("trending.collab_saturation must be positive, got %f", c.Trending.CollabSaturation)
	}

	if c.Profile.ActivityWindow <= 0 {
		return model.Validationf("profile.activity_window must be positive, got %v", c.Profile.ActivityWindow)
	}
	t := c.Profile.ActivityThresholds
	if t.Medium <= 0 || t.High <= t.Medium {
		return model.Validationf("profile thresholds must satisfy 0 < medium < high, got %d/%d", t.Medium, t.High)
	}

	if c.Charts.DefaultLimit < 1 {
		return model.Validationf("charts.default_limit must be positive, got %d", c.Charts.DefaultLimit)
	}
	if c.Charts.RisingWindow <= 0 {
		return model.Validationf("charts.rising_window must be positive, got %v", c.Charts.RisingWindow)
	}

	if c.Recommend.Limit < 1 {
		return model.Validationf("recommend.limit must be positive, got %d", c.Recommend.Limit)
	}
	if c.Match.Limit < 1 {
		return model.Validationf("match.limit must be positive, got %d", c.Match.Limit)
	}
	if c.Search.MaxResults < 1 {
		return model.Validationf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.AutocompleteLimit < 1 {
		return model.Validationf("search.autocomplete_limit must be positive, got %d", c.Search.AutocompleteLimit)
	}

	if c.Cache.TTL <= 0 {
		return model.Validationf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}
	if c.Cache.MaxEntries < 1 {
		return model.Validationf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	if len(c.SupportedGenres) > 0 {
		out.SupportedGenres = make([]string, len(c.SupportedGenres))
		copy(out.SupportedGenres, c.SupportedGenres)
	}
	return &out
}

// ConfigPatch is a partial configuration update. Nil fields leave the
// current value unchanged; ChartUpdateSchedule set to the empty string
// disables the refresh hint.
type ConfigPatch struct {
	VoteWeight              *float64            `json:"vote_weight,omitempty"`
	CollabWeight            *float64            `json:"collab_weight,omitempty"`
	RecencyWeight           *float64            `json:"recency_weight,omitempty"`
	RecencyHalfLife         *time.Duration      `json:"recency_half_life,omitempty"`
	EnableCaching           *bool               `json:"enable_caching,omitempty"`
	ChartUpdateSchedule     *string             `json:"chart_update_schedule,omitempty"`
	RecommendationLimit     *int                `json:"recommendation_limit,omitempty"`
	AutocompleteLimit       *int                `json:"autocomplete_limit,omitempty"`
	ActivityLevelThresholds *profile.Thresholds `json:"activity_level_thresholds,omitempty"`
}

// apply merges the patch into a clone of c and validates the result.
// On error the returned config is nil and c is untouched.
func (c *Config) apply(patch ConfigPatch) (*Config, error) {
	next := c.Clone()

	if patch.VoteWeight != nil {
		next.Trending.Weights.Vote = *patch.VoteWeight
	}
	if patch.CollabWeight != nil {
		next.Trending.Weights.Collaboration = *patch.CollabWeight
	}
	if patch.RecencyWeight != nil {
		next.Trending.Weights.Recency = *patch.RecencyWeight
	}
	if patch.RecencyHalfLife != nil {
		next.Trending.RecencyHalfLife = *patch.RecencyHalfLife
	}
	if patch.EnableCaching != nil {
		next.Cache.Enabled = *patch.EnableCaching
	}
	if patch.ChartUpdateSchedule != nil {
		next.ChartUpdateSchedule = *patch.ChartUpdateSchedule
	}
	if patch.RecommendationLimit != nil {
		next.Recommend.Limit = *patch.RecommendationLimit
	}
	if patch.AutocompleteLimit != nil {
		next.Search.AutocompleteLimit = *patch.AutocompleteLimit
	}
	if patch.ActivityLevelThresholds != nil {
		next.Profile.ActivityThresholds = *patch.ActivityLevelThresholds
	}

	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}
