// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package trending computes the bounded popularity score for a single song
// from its embedded votes, collaborations and recency.
//
// The total score is a weighted blend of three components, each normalized
// to [0, 100] through a saturating curve so no single signal can dominate:
//
//	total = clamp(voteWeight*vote + collabWeight*collab + recencyWeight*recency, 0, 100)
//
// Weights conventionally sum to 1.0 so the clamp is rarely exercised; the
// clamp still guards against misconfiguration.
package trending

import (
	"math"
	"time"

	"github.com/tristanhayes/riffline/internal/discovery/model"
)

// Weights defines the relative contribution of each score component.
type Weights struct {
	// Vote is the weight for the vote component.
	Vote float64 `json:"vote" koanf:"vote" validate:"min=0,max=1"`

	// Collaboration is the weight for the collaboration component.
	Collaboration float64 `json:"collaboration" koanf:"collaboration" validate:"min=0,max=1"`

	// Recency is the weight for the recency component.
	Recency float64 `json:"recency" koanf:"recency" validate:"min=0,max=1"`
}

// Normalize returns a copy with weights scaled to sum to 1.0.
// All-zero weights normalize to an equal split.
func (w Weights) Normalize() Weights {
	sum := w.Vote + w.Collaboration + w.Recency
	if sum == 0 {
		const equal = 1.0 / 3.0
		return Weights{Vote: equal, Collaboration: equal, Recency: equal}
	}
	return Weights{
		Vote:          w.Vote / sum,
		Collaboration: w.Collaboration / sum,
		Recency:       w.Recency / sum,
	}
}

// Config contains the trending scorer parameters.
type Config struct {
	// Weights blends the three components.
	Weights Weights `json:"weights" koanf:"weights"`

	// RecencyHalfLife is the decay window: a song this old scores
	// halfway between the recency floor and 100.
	// Default: 72h.
	RecencyHalfLife time.Duration `json:"recency_half_life" koanf:"recency_half_life" validate:"min=1"`

	// RecencyFloor is the score old songs decay toward.
	// Default: 5.
	RecencyFloor float64 `json:"recency_floor" koanf:"recency_floor" validate:"min=0,max=100"`

	// VoteSaturation is the weighted-vote sum at which the vote
	// component reaches half of its cap. Default: 10.
	VoteSaturation float64 `json:"vote_saturation" koanf:"vote_saturation" validate:"min=0"`

	// CollabSaturation is the collaboration signal at which the
	// collaboration component reaches half of its cap. Default: 5.
	CollabSaturation float64 `json:"collab_saturation" koanf:"collab_saturation" validate:"min=0"`
}

// DefaultConfig returns production defaults for the scorer.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Vote:          0.5,
			Collaboration: 0.3,
			Recency:       0.2,
		},
		RecencyHalfLife:  72 * time.Hour,
		RecencyFloor:     5,
		VoteSaturation:   10,
		CollabSaturation: 5,
	}
}

// Scorer computes trending scores. The zero value is not usable; construct
// with NewScorer. Scorer is stateless and safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given configuration.
// Zero saturation and half-life values fall back to defaults.
func NewScorer(cfg Config) *Scorer {
	def := DefaultConfig()
	if cfg.VoteSaturation <= 0 {
		cfg.VoteSaturation = def.VoteSaturation
	}
	if cfg.CollabSaturation <= 0 {
		cfg.CollabSaturation = def.CollabSaturation
	}
	if cfg.RecencyHalfLife <= 0 {
		cfg.RecencyHalfLife = def.RecencyHalfLife
	}
	if cfg.RecencyFloor < 0 || cfg.RecencyFloor > 100 {
		cfg.RecencyFloor = def.RecencyFloor
	}
	return &Scorer{cfg: cfg}
}

// Config returns the scorer's configuration.
func (s *Scorer) Config() Config {
	return s.cfg
}

// Score computes the trending score for one song at the given reference
// time. It fails only when the song is missing its identity fields.
func (s *Scorer) Score(song *model.Song, now time.Time) (model.TrendingScore, error) {
	if song == nil {
		return model.TrendingScore{}, model.Validationf("song is required")
	}
	if song.ID == "" {
		return model.TrendingScore{}, model.Validationf("song id is required")
	}
	if song.CreatedAt.IsZero() {
		return model.TrendingScore{}, model.Validationf("song %s has no created_at", song.ID)
	}

	breakdown := model.ScoreBreakdown{
		VoteScore:          s.voteScore(song.Votes),
		CollaborationScore: s.collaborationScore(song.Collaborations),
		RecencyScore:       s.recencyScore(song.CreatedAt, now),
	}

	w := s.cfg.Weights.Normalize()
	total := w.Vote*breakdown.VoteScore +
		w.Collaboration*breakdown.CollaborationScore +
		w.Recency*breakdown.RecencyScore

	if math.IsNaN(total) || math.IsInf(total, 0) {
		return model.TrendingScore{}, model.Computationf("trending total for song %s is not finite", song.ID)
	}

	return model.TrendingScore{
		SongID:    song.ID,
		Total:     clamp(total, 0, 100),
		Breakdown: breakdown,
	}, nil
}

// voteScore sums value*weight over all votes and passes the result through
// a ratio-to-cap curve. The curve is strictly increasing in the raw sum, so
// adding a positive-weight vote never decreases the component.
func (s *Scorer) voteScore(votes []model.Vote) float64 {
	var raw float64
	for _, v := range votes {
		raw += float64(v.Value) * v.EffectiveWeight()
	}
	if raw <= 0 {
		return 0
	}
	return 100 * raw / (raw + s.cfg.VoteSaturation)
}

// collaborationScore combines distinct-contributor count and contribution
// diversity through the same saturating curve.
func (s *Scorer) collaborationScore(collabs []model.Collaboration) float64 {
	if len(collabs) == 0 {
		return 0
	}

	contributors := make(map[string]struct{}, len(collabs))
	types := make(map[string]struct{}, len(collabs))
	for _, c := range collabs {
		contributors[c.UserID] = struct{}{}
		if c.ContributionType != "" {
			types[c.ContributionType] = struct{}{}
		}
	}

	raw := float64(len(contributors)) + 0.5*float64(len(types))
	return 100 * raw / (raw + s.cfg.CollabSaturation)
}

// recencyScore decays exponentially from 100 toward the floor with the
// configured half-life. Songs created in the future score the maximum.
func (s *Scorer) recencyScore(createdAt, now time.Time) float64 {
	age := now.Sub(createdAt)
	if age <= 0 {
		return 100
	}

	halfLives := float64(age) / float64(s.cfg.RecencyHalfLife)
	floor := s.cfg.RecencyFloor
	return floor + (100-floor)*math.Exp2(-halfLives)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
