// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package match finds and scores collaboration opportunities by matching a
// user's declared skills against the skill needs stated on open songs.
//
// Songs with zero matching skills are excluded outright, not low-scored:
// an opportunity the user cannot contribute to is not an opportunity.
package match

import (
	"fmt"
	"sort"
	"time"

	"github.com/tristanhayes/riffline/internal/discovery/model"
	"github.com/tristanhayes/riffline/internal/discovery/trending"
)

// Config contains the collaboration matcher parameters.
type Config struct {
	// Limit truncates the opportunity list. Default: 20.
	Limit int `json:"limit" koanf:"limit" validate:"min=1"`

	// SkillWeight, ConfidenceWeight and TrendWeight blend the skill
	// ratio, the reputation-scaled skill ratio and the song's trending
	// score into the match score. Defaults: 0.5 / 0.2 / 0.3.
	SkillWeight      float64 `json:"skill_weight" koanf:"skill_weight" validate:"min=0,max=1"`
	ConfidenceWeight float64 `json:"confidence_weight" koanf:"confidence_weight" validate:"min=0,max=1"`
	TrendWeight      float64 `json:"trend_weight" koanf:"trend_weight" validate:"min=0,max=1"`
}

// DefaultConfig returns production defaults for the matcher.
func DefaultConfig() Config {
	return Config{
		Limit:            20,
		SkillWeight:      0.5,
		ConfidenceWeight: 0.2,
		TrendWeight:      0.3,
	}
}

// Matcher scores collaboration opportunities. Stateless and safe for
// concurrent use.
type Matcher struct {
	cfg    Config
	scorer *trending.Scorer
}

// NewMatcher creates a matcher backed by the given trending scorer.
func NewMatcher(cfg Config, scorer *trending.Scorer) *Matcher {
	def := DefaultConfig()
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.SkillWeight <= 0 && cfg.ConfidenceWeight <= 0 && cfg.TrendWeight <= 0 {
		cfg.SkillWeight = def.SkillWeight
		cfg.ConfidenceWeight = def.ConfidenceWeight
		cfg.TrendWeight = def.TrendWeight
	}
	return &Matcher{cfg: cfg, scorer: scorer}
}

// Config returns the matcher's configuration.
func (m *Matcher) Config() Config {
	return m.cfg
}

// FindOpportunities returns scored opportunities for userID. Candidate
// songs are open for collaboration, state at least one need, are not owned
// by the user, and do not already list the user as a contributor, either
// in the song's collaboration records or in the interaction log.
func (m *Matcher) FindOpportunities(userID string, songs []model.Song, users []model.User, interactions []model.Interaction, now time.Time) ([]model.Opportunity, error) {
	if userID == "" {
		return nil, model.Validationf("user id is required")
	}

	user, ok := findUser(userID, users)
	if !ok {
		return nil, model.NotFoundf("user %s not in snapshot", userID)
	}

	contributed := make(map[string]struct{})
	for _, in := range interactions {
		if in.UserID == userID && in.Type == model.InteractionCollaboration {
			contributed[in.SongID] = struct{}{}
		}
	}

	skills := make(map[string]struct{}, len(user.Skills))
	for _, s := range user.Skills {
		skills[s] = struct{}{}
	}

	confidence := reputationConfidence(user.Reputation)

	type row struct {
		song *model.Song
		opp  model.Opportunity
	}

	rows := make([]row, 0, len(songs))
	for i := range songs {
		song := &songs[i]
		if !song.OpenForCollaboration || len(song.CollaborationNeeded) == 0 {
			continue
		}
		if song.OwnerID == userID || isContributor(song, userID) {
			continue
		}
		if _, ok := contributed[song.ID]; ok {
			continue
		}

		matching := intersect(skills, song.CollaborationNeeded)
		if len(matching) == 0 {
			continue
		}

		t, err := m.scorer.Score(song, now)
		if err != nil {
			return nil, fmt.Errorf("score song %s: %w", song.ID, err)
		}

		ratio := float64(len(matching)) / float64(len(song.CollaborationNeeded))
		score := 100 * (m.cfg.SkillWeight*ratio +
			m.cfg.ConfidenceWeight*confidence*ratio +
			m.cfg.TrendWeight*(t.Total/100))

		rows = append(rows, row{
			song: song,
			opp: model.Opportunity{
				SongID:         song.ID,
				Title:          song.Title,
				OwnerID:        song.OwnerID,
				MatchingSkills: matching,
				MatchScore:     clamp(score, 0, 100),
				Difficulty:     difficulty(song),
				TimeCommitment: timeCommitment(song.CollaborationNeeded),
			},
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].opp.MatchScore != rows[j].opp.MatchScore {
			return rows[i].opp.MatchScore > rows[j].opp.MatchScore
		}
		if !rows[i].song.CreatedAt.Equal(rows[j].song.CreatedAt) {
			return rows[i].song.CreatedAt.After(rows[j].song.CreatedAt)
		}
		return rows[i].song.ID < rows[j].song.ID
	})

	if len(rows) > m.cfg.Limit {
		rows = rows[:m.cfg.Limit]
	}

	opps := make([]model.Opportunity, len(rows))
	for i, r := range rows {
		opps[i] = r.opp
	}
	return opps, nil
}

// reputationConfidence maps reputation to [0, 1) with diminishing returns.
func reputationConfidence(reputation int) float64 {
	if reputation <= 0 {
		return 0
	}
	r := float64(reputation)
	return r / (r + 100)
}

// difficulty estimates the contribution demands from the number of
// outstanding needs and the song's tempo.
func difficulty(song *model.Song) model.Difficulty {
	needs := len(song.CollaborationNeeded)
	switch {
	case needs >= 3 || song.Tempo > 140:
		return model.DifficultyHigh
	case needs == 2 || song.Tempo > 100:
		return model.DifficultyMedium
	default:
		return model.DifficultyLow
	}
}

// longCommitmentSkills lists contribution types that span a whole project.
var longCommitmentSkills = map[string]struct{}{
	"production":  {},
	"mixing":      {},
	"mastering":   {},
	"songwriting": {},
}

// mediumCommitmentSkills lists contribution types for a full part.
var mediumCommitmentSkills = map[string]struct{}{
	"vocals": {},
	"guitar": {},
	"bass":   {},
	"drums":  {},
	"keys":   {},
	"lyrics": {},
}

// timeCommitment derives the effort estimate from the heaviest needed
// contribution type.
func timeCommitment(needed []string) model.TimeCommitment {
	commitment := model.CommitmentShort
	for _, skill := range needed {
		if _, ok := longCommitmentSkills[skill]; ok {
			return model.CommitmentLong
		}
		if _, ok := mediumCommitmentSkills[skill]; ok {
			commitment = model.CommitmentMedium
		}
	}
	return commitment
}

// isContributor reports whether userID already appears in the song's
// collaboration records.
func isContributor(song *model.Song, userID string) bool {
	for _, c := range song.Collaborations {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// intersect returns the needed tags present in the skill set, preserving
// the order of needed.
func intersect(skills map[string]struct{}, needed []string) []string {
	out := make([]string, 0, len(needed))
	for _, s := range needed {
		if _, ok := skills[s]; ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
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

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
