// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package charts produces ranked chart views over songs and artists.
//
// All song rankings share one deterministic tie-break: higher score first,
// then more recent creation time, then ascending song ID. Identical input
// snapshots therefore always yield identical output.
package charts

import (
	"fmt"
	"sort"
	"time"

	"github.com/tristanhayes/riffline/internal/discovery/model"
	"github.com/tristanhayes/riffline/internal/discovery/trending"
)

// Kind identifies a chart view.
type Kind int

const (
	// KindOverall ranks all songs by trending score.
	KindOverall Kind = iota
	// KindGenre ranks songs of one genre by trending score.
	KindGenre
	// KindRisingStars ranks artists by recent activity velocity.
	KindRisingStars
	// KindCollaboration ranks songs by collaboration activity.
	KindCollaboration
)

// String returns the wire name for the chart kind.
func (k Kind) String() string {
	switch k {
	case KindOverall:
		return "overall"
	case KindGenre:
		return "genre"
	case KindRisingStars:
		return "rising-stars"
	case KindCollaboration:
		return "collaboration"
	default:
		return "unknown"
	}
}

// ParseKind resolves a wire name to a chart kind.
// Unknown names yield a validation error.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "overall":
		return KindOverall, nil
	case "genre":
		return KindGenre, nil
	case "rising-stars":
		return KindRisingStars, nil
	case "collaboration":
		return KindCollaboration, nil
	default:
		return KindOverall, model.Validationf("unknown chart kind %q", s)
	}
}

// Params carries per-request chart options.
type Params struct {
	// Genre filters the genre chart. Required for KindGenre.
	Genre string `json:"genre,omitempty"`

	// Limit truncates the chart. Zero uses the configured default.
	Limit int `json:"limit,omitempty" validate:"min=0"`
}

// Config contains the chart generator parameters.
type Config struct {
	// DefaultLimit is the chart length when Params.Limit is zero.
	// Default: 50.
	DefaultLimit int `json:"default_limit" koanf:"default_limit" validate:"min=1"`

	// RisingWindow is the recent-activity window for the rising-stars
	// velocity metric; the prior window has the same length.
	// Default: 14 days.
	RisingWindow time.Duration `json:"rising_window" koanf:"rising_window" validate:"min=1"`
}

// DefaultConfig returns production defaults for the generator.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 50,
		RisingWindow: 14 * 24 * time.Hour,
	}
}

// Generator produces charts. Stateless and safe for concurrent use.
type Generator struct {
	cfg    Config
	scorer *trending.Scorer
}

// NewGenerator creates a generator backed by the given trending scorer.
func NewGenerator(cfg Config, scorer *trending.Scorer) *Generator {
	def := DefaultConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.RisingWindow <= 0 {
		cfg.RisingWindow = def.RisingWindow
	}
	return &Generator{cfg: cfg, scorer: scorer}
}

// Generate produces the chart of the given kind at the reference time.
// Empty input snapshots produce an empty chart, not an error.
func (g *Generator) Generate(kind Kind, songs []model.Song, users []model.User, params Params, now time.Time) ([]model.ChartEntry, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = g.cfg.DefaultLimit
	}

	switch kind {
	case KindOverall:
		return g.songChart(songs, now, limit, nil, useTotal)
	case KindGenre:
		if params.Genre == "" {
			return nil, model.Validationf("genre chart requires a genre")
		}
		genre := params.Genre
		return g.songChart(songs, now, limit, func(s *model.Song) bool { return s.Genre == genre }, useTotal)
	case KindCollaboration:
		return g.songChart(songs, now, limit, nil, useCollaboration)
	case KindRisingStars:
		return g.risingStars(songs, users, now, limit), nil
	default:
		return nil, model.Validationf("unknown chart kind %d", kind)
	}
}

// scoreSelector picks the ranking score out of a trending result.
type scoreSelector func(model.TrendingScore) float64

func useTotal(t model.TrendingScore) float64         { return t.Total }
func useCollaboration(t model.TrendingScore) float64 { return t.Breakdown.CollaborationScore }

// songChart scores, filters, orders and truncates a song chart.
func (g *Generator) songChart(songs []model.Song, now time.Time, limit int, keep func(*model.Song) bool, pick scoreSelector) ([]model.ChartEntry, error) {
	type scored struct {
		song     *model.Song
		trending model.TrendingScore
		score    float64
	}

	rows := make([]scored, 0, len(songs))
	for i := range songs {
		song := &songs[i]
		if keep != nil && !keep(song) {
			continue
		}
		t, err := g.scorer.Score(song, now)
		if err != nil {
			return nil, fmt.Errorf("score song %s: %w", song.ID, err)
		}
		rows = append(rows, scored{song: song, trending: t, score: pick(t)})
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

	if len(rows) > limit {
		rows = rows[:limit]
	}

	entries := make([]model.ChartEntry, len(rows))
	for i, r := range rows {
		t := r.trending
		entries[i] = model.ChartEntry{
			Rank:     i + 1,
			SongID:   r.song.ID,
			Title:    r.song.Title,
			Score:    r.score,
			Trending: &t,
		}
	}
	return entries, nil
}

// risingStars ranks artists by activity velocity: events on their songs in
// the recent window, plus a bonus for growth over the prior window of equal
// length. Artists with no recent activity are excluded.
func (g *Generator) risingStars(songs []model.Song, users []model.User, now time.Time, limit int) []model.ChartEntry {
	recentStart := now.Add(-g.cfg.RisingWindow)
	priorStart := now.Add(-2 * g.cfg.RisingWindow)

	recent := make(map[string]int)
	prior := make(map[string]int)

	countEvent := func(owner string, at time.Time) {
		switch {
		case at.After(now):
		case at.After(recentStart) || at.Equal(recentStart):
			recent[owner]++
		case at.After(priorStart) || at.Equal(priorStart):
			prior[owner]++
		}
	}

	for i := range songs {
		song := &songs[i]
		if song.OwnerID == "" {
			continue
		}
		for _, v := range song.Votes {
			countEvent(song.OwnerID, v.CreatedAt)
		}
		for _, c := range song.Collaborations {
			countEvent(song.OwnerID, c.CreatedAt)
		}
		for _, c := range song.Comments {
			countEvent(song.OwnerID, c.CreatedAt)
		}
	}

	type ranked struct {
		user     *model.User
		velocity float64
	}

	rows := make([]ranked, 0, len(recent))
	for i := range users {
		user := &users[i]
		r := recent[user.ID]
		if r == 0 {
			continue
		}
		velocity := float64(r)
		if growth := r - prior[user.ID]; growth > 0 {
			velocity += float64(growth)
		}
		rows = append(rows, ranked{user: user, velocity: velocity})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].velocity != rows[j].velocity {
			return rows[i].velocity > rows[j].velocity
		}
		if rows[i].user.Reputation != rows[j].user.Reputation {
			return rows[i].user.Reputation > rows[j].user.Reputation
		}
		return rows[i].user.ID < rows[j].user.ID
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}

	entries := make([]model.ChartEntry, len(rows))
	for i, r := range rows {
		title := r.user.DisplayName
		if title == "" {
			title = r.user.Username
		}
		entries[i] = model.ChartEntry{
			Rank:   i + 1,
			UserID: r.user.ID,
			Title:  title,
			Score:  r.velocity,
		}
	}
	return entries
}
