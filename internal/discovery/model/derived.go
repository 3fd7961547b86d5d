// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package model

// ActivityLevel buckets a user's recent interaction volume.
type ActivityLevel int

const (
	// ActivityLow indicates little or no recent activity.
	ActivityLow ActivityLevel = iota
	// ActivityMedium indicates moderate recent activity.
	ActivityMedium
	// ActivityHigh indicates heavy recent activity.
	ActivityHigh
)

// String returns a human-readable name for the activity level.
func (l ActivityLevel) String() string {
	switch l {
	case ActivityLow:
		return "low"
	case ActivityMedium:
		return "medium"
	case ActivityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// UserProfile is the derived taste and activity summary for a user.
// It is computed fresh per call and never persisted by the engine.
type UserProfile struct {
	// UserID is the profiled user.
	UserID string `json:"user_id"`

	// DeclaredSkills is carried verbatim from the User record.
	DeclaredSkills []string `json:"declared_skills,omitempty"`

	// DeclaredGenres is carried verbatim from the User record.
	DeclaredGenres []string `json:"declared_genres,omitempty"`

	// InferredGenres maps genre tag to affinity weight normalized to
	// [0, 1]. Inferred data augments but never overrides declared data.
	InferredGenres map[string]float64 `json:"inferred_genres,omitempty"`

	// ActivityLevel buckets interaction volume in the trailing window.
	ActivityLevel ActivityLevel `json:"activity_level"`

	// InteractionCount is the number of interactions inside the window.
	InteractionCount int `json:"interaction_count"`
}

// GenreAffinity returns the user's affinity for a genre tag, checking
// inferred affinities first and falling back to declared genres.
func (p *UserProfile) GenreAffinity(genre string) float64 {
	if genre == "" {
		return 0
	}
	if a, ok := p.InferredGenres[genre]; ok {
		return a
	}
	for _, g := range p.DeclaredGenres {
		if g == genre {
			return 1.0
		}
	}
	return 0
}

// ScoreBreakdown holds the unweighted trending score components.
// Each component is in [0, 100]; the weighted sum reproduces the total.
type ScoreBreakdown struct {
	VoteScore          float64 `json:"vote_score"`
	CollaborationScore float64 `json:"collaboration_score"`
	RecencyScore       float64 `json:"recency_score"`
}

// TrendingScore is the bounded popularity metric for one song.
type TrendingScore struct {
	// SongID is the scored song.
	SongID string `json:"song_id"`

	// Total is the blended score, always clamped to [0, 100].
	Total float64 `json:"total"`

	// Breakdown holds the unweighted components behind Total.
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// ChartEntry is one ranked row of a chart. Song charts set SongID; the
// rising-stars chart ranks artists and sets UserID instead.
type ChartEntry struct {
	// Rank is the 1-based position in the chart.
	Rank int `json:"rank"`

	// SongID is set for song charts.
	SongID string `json:"song_id,omitempty"`

	// UserID is set for artist charts.
	UserID string `json:"user_id,omitempty"`

	// Title is the song title or artist display name.
	Title string `json:"title"`

	// Score is the ranking score for this entry.
	Score float64 `json:"score"`

	// Trending carries the full trending breakdown for song charts.
	Trending *TrendingScore `json:"trending,omitempty"`
}

// Recommendation is one ranked candidate song for a user.
type Recommendation struct {
	// SongID is the recommended song.
	SongID string `json:"song_id"`

	// Title is the song title.
	Title string `json:"title"`

	// Genre is the song's genre tag.
	Genre string `json:"genre,omitempty"`

	// Score is the blended ranking score.
	Score float64 `json:"score"`

	// TrendingScore is the song's global trending total.
	TrendingScore float64 `json:"trending_score"`

	// ProfileMatch is the profile-overlap component in [0, 1].
	ProfileMatch float64 `json:"profile_match"`
}

// Difficulty estimates how demanding a collaboration is.
type Difficulty int

const (
	// DifficultyLow marks an easy contribution.
	DifficultyLow Difficulty = iota
	// DifficultyMedium marks a moderately demanding contribution.
	DifficultyMedium
	// DifficultyHigh marks a demanding contribution.
	DifficultyHigh
)

// String returns a human-readable name for the difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyLow:
		return "low"
	case DifficultyMedium:
		return "medium"
	case DifficultyHigh:
		return "high"
	default:
		return "unknown"
	}
}

// TimeCommitment estimates the effort window for a contribution.
type TimeCommitment int

const (
	// CommitmentShort marks a quick contribution.
	CommitmentShort TimeCommitment = iota
	// CommitmentMedium marks a contribution of moderate length.
	CommitmentMedium
	// CommitmentLong marks a long-running contribution.
	CommitmentLong
)

// String returns a human-readable name for the time commitment.
func (c TimeCommitment) String() string {
	switch c {
	case CommitmentShort:
		return "short"
	case CommitmentMedium:
		return "medium"
	case CommitmentLong:
		return "long"
	default:
		return "unknown"
	}
}

// Opportunity is a scored collaboration match for a user.
type Opportunity struct {
	// SongID is the song open for contribution.
	SongID string `json:"song_id"`

	// Title is the song title.
	Title string `json:"title"`

	// OwnerID is the song owner.
	OwnerID string `json:"owner_id"`

	// MatchingSkills is the intersection of the user's declared skills
	// and the song's stated needs. Never empty: zero-match songs are
	// excluded, not low-scored.
	MatchingSkills []string `json:"matching_skills"`

	// MatchScore is the match quality in [0, 100].
	MatchScore float64 `json:"match_score"`

	// Difficulty estimates the contribution's demands.
	Difficulty Difficulty `json:"difficulty"`

	// TimeCommitment estimates the contribution's effort window.
	TimeCommitment TimeCommitment `json:"time_commitment"`
}

// SearchResult is one ranked hit of a faceted search.
type SearchResult struct {
	// ID is the matched record's identifier.
	ID string `json:"id"`

	// Title is the display text (song title, or username for users).
	Title string `json:"title"`

	// Relevance is the query-token overlap count.
	Relevance int `json:"relevance"`

	// Trending is the trending total for song-backed results, zero for
	// user results.
	Trending float64 `json:"trending,omitempty"`
}

// Facets maps a filterable dimension (e.g. "genre", "skill") to counts of
// matching records per distinct value. Counts are taken over the
// post-text-match, pre-filter result set to drive incremental filter UIs.
type Facets map[string]map[string]int
