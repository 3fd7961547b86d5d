// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package recommend ranks candidate songs for a specific user by blending
// global trending scores with a profile-match score derived from the user's
// declared attributes and inferred taste.
//
// Users with no interaction history still get a result: with nothing
// inferred, the blend degrades to declared genres/skills plus global
// trending, which is the cold-start fallback.
package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/tristanhayes/riffline/internal/discovery/model"
	"github.com/tristanhayes/riffline/internal/discovery/profile"
	"github.com/tristanhayes/riffline/internal/discovery/trending"
)

// Config contains the recommendation engine parameters.
type Config struct {
	// Limit truncates the recommendation list. Default: 20.
	Limit int `json:"limit" koanf:"limit" validate:"min=1"`

	// TrendWeight is the blend weight of the trending component.
	// Default: 0.4.
	TrendWeight float64 `json:"trend_weight" koanf:"trend_weight" validate:"min=0,max=1"`

	// ProfileWeight is the blend weight of the profile-match component.
	// Default: 0.6.
	ProfileWeight float64 `json:"profile_weight" koanf:"profile_weight" validate:"min=0,max=1"`

	// GenreWeight, MoodWeight and SkillWeight split the profile-match
	// score between genre affinity, mood affinity and skill-need overlap.
	// Defaults: 0.4 / 0.2 / 0.4.
	GenreWeight float64 `json:"genre_weight" koanf:"genre_weight" validate:"min=0,max=1"`
	MoodWeight  float64 `json:"mood_weight" koanf:"mood_weight" validate:"min=0,max=1"`
	SkillWeight float64 `json:"skill_weight" koanf:"skill_weight" validate:"min=0,max=1"`
}

// DefaultConfig returns production defaults for the engine.
func DefaultConfig() Config {
	return Config{
		Limit:         20,
		TrendWeight:   0.4,
		ProfileWeight: 0.6,
		GenreWeight:   0.4,
		MoodWeight:    0.2,
		SkillWeight:   0.4,
	}
}

// Result pairs the ranked recommendations with the profile they were
// ranked against.
type Result struct {
	Recommendations []model.Recommendation `json:"recommendations"`
	Profile         model.UserProfile      `json:"user_profile"`
}

// Engine ranks candidate songs. Stateless and safe for concurrent use.
type Engine struct {
	cfg     Config
	scorer  *trending.Scorer
	builder *profile.Builder
}

// NewEngine creates an engine backed by the given scorer and profile
// builder. Out-of-range config values fall back to defaults.
func NewEngine(cfg Config, scorer *trending.Scorer, builder *profile.Builder) *Engine {
	def := DefaultConfig()
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.TrendWeight <= 0 && cfg.ProfileWeight <= 0 {
		cfg.TrendWeight = def.TrendWeight
		cfg.ProfileWeight = def.ProfileWeight
	}
	if cfg.GenreWeight <= 0 && cfg.MoodWeight <= 0 && cfg.SkillWeight <= 0 {
		cfg.GenreWeight = def.GenreWeight
		cfg.MoodWeight = def.MoodWeight
		cfg.SkillWeight = def.SkillWeight
	}
	return &Engine{cfg: cfg, scorer: scorer, builder: builder}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Recommend builds the user's profile and ranks candidate songs for them.
// Candidates are songs open for collaboration that the user does not own
// and has not already interacted with.
func (e *Engine) Recommend(userID string, songs []model.Song, users []model.User, interactions []model.Interaction, now time.Time) (*Result, error) {
	prof, err := e.builder.Build(userID, users, songs, interactions, now)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}

	seen := make(map[string]struct{})
	for _, in := range interactions {
		if in.UserID == userID {
			seen[in.SongID] = struct{}{}
		}
	}

	type candidate struct {
		song  *model.Song
		rec   model.Recommendation
		score float64
	}

	rows := make([]candidate, 0, len(songs))
	for i := range songs {
		song := &songs[i]
		if !song.OpenForCollaboration || song.OwnerID == userID {
			continue
		}
		if _, ok := seen[song.ID]; ok {
			continue
		}

		t, err := e.scorer.Score(song, now)
		if err != nil {
			return nil, fmt.Errorf("score song %s: %w", song.ID, err)
		}

		match := e.profileMatch(song, &prof)
		blended := e.cfg.TrendWeight*(t.Total/100) + e.cfg.ProfileWeight*match

		rows = append(rows, candidate{
			song: song,
			rec: model.Recommendation{
				SongID:        song.ID,
				Title:         song.Title,
				Genre:         song.Genre,
				Score:         blended,
				TrendingScore: t.Total,
				ProfileMatch:  match,
			},
			score: blended,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		if !rows[i].song.CreatedAt.Equal(rows[j].song.CreatedAt) {
			return rows[i].song.CreatedAt.After(rows[j].song.CreatedAt)
		}
		return rows[i].song.ID < rows[j].song.ID
	})

	if len(rows) > e.cfg.Limit {
		rows = rows[:e.cfg.Limit]
	}

	recs := make([]model.Recommendation, len(rows))
	for i, r := range rows {
		recs[i] = r.rec
	}

	return &Result{Recommendations: recs, Profile: prof}, nil
}

// profileMatch scores the overlap between a song and a profile in [0, 1]:
// genre affinity, mood affinity (a mood tag matching a liked genre tag),
// and the share of the song's stated needs covered by declared skills.
func (e *Engine) profileMatch(song *model.Song, prof *model.UserProfile) float64 {
	genre := prof.GenreAffinity(song.Genre)
	mood := prof.GenreAffinity(song.Mood)

	var skills float64
	if len(song.CollaborationNeeded) > 0 {
		skills = overlapRatio(prof.DeclaredSkills, song.CollaborationNeeded)
	}

	wSum := e.cfg.GenreWeight + e.cfg.MoodWeight + e.cfg.SkillWeight
	if wSum == 0 {
		return 0
	}
	return (e.cfg.GenreWeight*genre + e.cfg.MoodWeight*mood + e.cfg.SkillWeight*skills) / wSum
}

// overlapRatio returns |have ∩ want| / |want|.
func overlapRatio(have, want []string) float64 {
	if len(want) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(have))
	for _, s := range have {
		set[s] = struct{}{}
	}
	matched := 0
	for _, s := range want {
		if _, ok := set[s]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(want))
}
