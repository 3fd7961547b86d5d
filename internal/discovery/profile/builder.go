// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package profile derives an implicit taste and activity profile for one
// user from their declared attributes plus their interaction history.
//
// Profiles are pure values computed fresh per call. Any memoization happens
// in the orchestrator's cache layer, never here, so stale-profile bugs
// cannot hide behind the chart cache.
package profile

import (
	"time"

	"github.com/tristanhayes/riffline/internal/discovery/model"
)

// Thresholds holds the interaction-count cutoffs for activity bucketing.
// A user with fewer than Medium interactions in the window is low activity;
// at least High interactions is high activity.
type Thresholds struct {
	// Medium is the minimum count for medium activity. Default: 5.
	Medium int `json:"medium" koanf:"medium" validate:"min=1"`

	// High is the minimum count for high activity. Default: 20.
	High int `json:"high" koanf:"high" validate:"min=1"`
}

// Config contains the profile builder parameters.
type Config struct {
	// ActivityWindow is the trailing window for activity bucketing.
	// Default: 30 days.
	ActivityWindow time.Duration `json:"activity_window" koanf:"activity_window" validate:"min=1"`

	// ActivityThresholds buckets interaction counts into levels.
	ActivityThresholds Thresholds `json:"activity_thresholds" koanf:"activity_thresholds"`
}

// DefaultConfig returns production defaults for the builder.
func DefaultConfig() Config {
	return Config{
		ActivityWindow: 30 * 24 * time.Hour,
		ActivityThresholds: Thresholds{
			Medium: 5,
			High:   20,
		},
	}
}

// Builder derives user profiles. Stateless and safe for concurrent use.
type Builder struct {
	cfg Config
}

// NewBuilder creates a builder with the given configuration.
// Invalid window and threshold values fall back to defaults.
func NewBuilder(cfg Config) *Builder {
	def := DefaultConfig()
	if cfg.ActivityWindow <= 0 {
		cfg.ActivityWindow = def.ActivityWindow
	}
	if cfg.ActivityThresholds.Medium <= 0 {
		cfg.ActivityThresholds.Medium = def.ActivityThresholds.Medium
	}
	if cfg.ActivityThresholds.High <= cfg.ActivityThresholds.Medium {
		cfg.ActivityThresholds.High = def.ActivityThresholds.High
		if cfg.ActivityThresholds.High <= cfg.ActivityThresholds.Medium {
			cfg.ActivityThresholds.High = cfg.ActivityThresholds.Medium * 4
		}
	}
	return &Builder{cfg: cfg}
}

// Config returns the builder's configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build derives the profile for userID. The song snapshot is needed to
// resolve each interaction to its genre. Fails with a not-found error when
// userID matches no user record.
func (b *Builder) Build(userID string, users []model.User, songs []model.Song, interactions []model.Interaction, now time.Time) (model.UserProfile, error) {
	if userID == "" {
		return model.UserProfile{}, model.Validationf("user id is required")
	}

	user, ok := findUser(userID, users)
	if !ok {
		return model.UserProfile{}, model.NotFoundf("user %s not in snapshot", userID)
	}

	genreBySong := make(map[string]string, len(songs))
	for i := range songs {
		if songs[i].Genre != "" {
			genreBySong[songs[i].ID] = songs[i].Genre
		}
	}

	affinity := make(map[string]float64)
	windowStart := now.Add(-b.cfg.ActivityWindow)
	recent := 0

	for _, in := range interactions {
		if in.UserID != userID {
			continue
		}
		if !in.CreatedAt.Before(windowStart) && !in.CreatedAt.After(now) {
			recent++
		}
		if genre, ok := genreBySong[in.SongID]; ok {
			affinity[genre] += in.Type.Weight()
		}
	}

	return model.UserProfile{
		UserID:           user.ID,
		DeclaredSkills:   copyTags(user.Skills),
		DeclaredGenres:   copyTags(user.Genres),
		InferredGenres:   normalizeAffinities(affinity),
		ActivityLevel:    b.bucketActivity(recent),
		InteractionCount: recent,
	}, nil
}

// bucketActivity maps a window interaction count to an activity level.
func (b *Builder) bucketActivity(count int) model.ActivityLevel {
	switch {
	case count >= b.cfg.ActivityThresholds.High:
		return model.ActivityHigh
	case count >= b.cfg.ActivityThresholds.Medium:
		return model.ActivityMedium
	default:
		return model.ActivityLow
	}
}

// normalizeAffinities scales accumulated affinities so the strongest genre
// maps to 1.0. Empty input yields an empty map, not nil, so callers can
// range without a nil check.
func normalizeAffinities(raw map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(raw))
	var maxAffinity float64
	for _, a := range raw {
		if a > maxAffinity {
			maxAffinity = a
		}
	}
	if maxAffinity == 0 {
		return out
	}
	for g, a := range raw {
		out[g] = a / maxAffinity
	}
	return out
}

func findUser(id string, users []model.User) (model.User, bool) {
	for i := range users {
		if users[i].ID == id {
			return users[i], true
		}
	}
	return model.User{}, false
}

// copyTags returns a copy so derived profiles never alias caller-owned
// slices.
func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
