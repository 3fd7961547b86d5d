// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package search executes filtered, faceted text queries and autocomplete
// lookups over the discovery snapshot.
//
// Text matching is case-insensitive token overlap between the query and a
// record's indexed fields. Facet counts are taken over the post-text-match,
// pre-filter result set so incremental filter UIs can show what each
// filter value would leave. Filters then apply as hard predicates.
package search

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/tristanhayes/riffline/internal/discovery/model"
	"github.com/tristanhayes/riffline/internal/discovery/trending"
)

// Kind identifies a searchable collection.
type Kind int

const (
	// KindSongs searches song titles and descriptions.
	KindSongs Kind = iota
	// KindUsers searches usernames, display names and bios.
	KindUsers
	// KindOpportunities searches open songs with stated skill needs.
	KindOpportunities
)

// String returns the wire name for the search kind.
func (k Kind) String() string {
	switch k {
	case KindSongs:
		return "songs"
	case KindUsers:
		return "users"
	case KindOpportunities:
		return "collaboration-opportunities"
	default:
		return "unknown"
	}
}

// ParseKind resolves a wire name to a search kind.
// Unknown names yield a validation error.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "songs":
		return KindSongs, nil
	case "users":
		return KindUsers, nil
	case "collaboration-opportunities":
		return KindOpportunities, nil
	default:
		return KindSongs, model.Validationf("unknown search kind %q", s)
	}
}

// Filters are hard predicates layered after text matching. Empty slices
// leave the corresponding dimension unfiltered.
type Filters struct {
	// Genres restricts songs to these genre tags, or users to accounts
	// declaring one of them.
	Genres []string `json:"genres,omitempty"`

	// Moods restricts songs to these mood tags.
	Moods []string `json:"moods,omitempty"`

	// Skills restricts songs/opportunities to those needing one of these
	// skills, or users to accounts declaring one of them.
	Skills []string `json:"skills,omitempty"`
}

// Config contains the search engine parameters.
type Config struct {
	// MaxResults truncates the search result list. Default: 50.
	MaxResults int `json:"max_results" koanf:"max_results" validate:"min=1"`

	// AutocompleteLimit truncates suggestion lists. Default: 10.
	AutocompleteLimit int `json:"autocomplete_limit" koanf:"autocomplete_limit" validate:"min=1"`
}

// DefaultConfig returns production defaults for the engine.
func DefaultConfig() Config {
	return Config{
		MaxResults:        50,
		AutocompleteLimit: 10,
	}
}

// Result pairs the ranked hits with their facet breakdown.
type Result struct {
	Results []model.SearchResult `json:"results"`
	Facets  model.Facets         `json:"facets"`
	Total   int                  `json:"total"`
}

// Engine executes search queries. Stateless and safe for concurrent use.
type Engine struct {
	cfg    Config
	scorer *trending.Scorer
}

// NewEngine creates a search engine backed by the given trending scorer.
func NewEngine(cfg Config, scorer *trending.Scorer) *Engine {
	def := DefaultConfig()
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.AutocompleteLimit <= 0 {
		cfg.AutocompleteLimit = def.AutocompleteLimit
	}
	return &Engine{cfg: cfg, scorer: scorer}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Search runs a faceted query over the snapshot at the reference time.
// An empty query matches every record with zero relevance, which allows
// pure filter browsing.
func (e *Engine) Search(kind Kind, query string, filters Filters, songs []model.Song, users []model.User, now time.Time) (*Result, error) {
	switch kind {
	case KindSongs:
		return e.searchSongs(query, filters, songs, now, false)
	case KindOpportunities:
		return e.searchSongs(query, filters, songs, now, true)
	case KindUsers:
		return e.searchUsers(query, filters, users), nil
	default:
		return nil, model.Validationf("unknown search kind %d", kind)
	}
}

// searchSongs handles both the songs and collaboration-opportunities
// kinds; opportunitiesOnly narrows candidates to open songs with needs.
func (e *Engine) searchSongs(query string, filters Filters, songs []model.Song, now time.Time, opportunitiesOnly bool) (*Result, error) {
	tokens := tokenize(query)

	type hit struct {
		song      *model.Song
		relevance int
		trending  float64
	}

	var matched []hit
	facets := model.Facets{"genre": {}, "mood": {}, "skill": {}}

	for i := range songs {
		song := &songs[i]
		if opportunitiesOnly && (!song.OpenForCollaboration || len(song.CollaborationNeeded) == 0) {
			continue
		}

		relevance := overlap(tokens, song.Title+" "+song.Description)
		if len(tokens) > 0 && relevance == 0 {
			continue
		}

		countFacet(facets["genre"], song.Genre)
		countFacet(facets["mood"], song.Mood)
		for _, s := range song.CollaborationNeeded {
			countFacet(facets["skill"], s)
		}

		if !matchesAny(song.Genre, filters.Genres) || !matchesAny(song.Mood, filters.Moods) {
			continue
		}
		if len(filters.Skills) > 0 && !anyOverlap(song.CollaborationNeeded, filters.Skills) {
			continue
		}

		t, err := e.scorer.Score(song, now)
		if err != nil {
			return nil, fmt.Errorf("score song %s: %w", song.ID, err)
		}
		matched = append(matched, hit{song: song, relevance: relevance, trending: t.Total})
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].relevance != matched[j].relevance {
			return matched[i].relevance > matched[j].relevance
		}
		if matched[i].trending != matched[j].trending {
			return matched[i].trending > matched[j].trending
		}
		return matched[i].song.ID < matched[j].song.ID
	})

	total := len(matched)
	if len(matched) > e.cfg.MaxResults {
		matched = matched[:e.cfg.MaxResults]
	}

	results := make([]model.SearchResult, len(matched))
	for i, h := range matched {
		results[i] = model.SearchResult{
			ID:        h.song.ID,
			Title:     h.song.Title,
			Relevance: h.relevance,
			Trending:  h.trending,
		}
	}
	return &Result{Results: results, Facets: facets, Total: total}, nil
}

// searchUsers matches against username, display name and bio.
func (e *Engine) searchUsers(query string, filters Filters, users []model.User) *Result {
	tokens := tokenize(query)

	type hit struct {
		user      *model.User
		relevance int
	}

	var matched []hit
	facets := model.Facets{"skill": {}, "genre": {}}

	for i := range users {
		user := &users[i]

		relevance := overlap(tokens, user.Username+" "+user.DisplayName+" "+user.Bio)
		if len(tokens) > 0 && relevance == 0 {
			continue
		}

		for _, s := range user.Skills {
			countFacet(facets["skill"], s)
		}
		for _, g := range user.Genres {
			countFacet(facets["genre"], g)
		}

		if len(filters.Skills) > 0 && !anyOverlap(user.Skills, filters.Skills) {
			continue
		}
		if len(filters.Genres) > 0 && !anyOverlap(user.Genres, filters.Genres) {
			continue
		}

		matched = append(matched, hit{user: user, relevance: relevance})
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].relevance != matched[j].relevance {
			return matched[i].relevance > matched[j].relevance
		}
		return matched[i].user.ID < matched[j].user.ID
	})

	total := len(matched)
	if len(matched) > e.cfg.MaxResults {
		matched = matched[:e.cfg.MaxResults]
	}

	results := make([]model.SearchResult, len(matched))
	for i, h := range matched {
		results[i] = model.SearchResult{
			ID:        h.user.ID,
			Title:     h.user.Username,
			Relevance: h.relevance,
		}
	}
	return &Result{Results: results, Facets: facets, Total: total}
}

// tokenize lowercases and splits on non-alphanumeric runes.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// overlap counts how many distinct query tokens appear in the text.
func overlap(queryTokens []string, text string) int {
	if len(queryTokens) == 0 {
		return 0
	}

	textTokens := tokenize(text)
	set := make(map[string]struct{}, len(textTokens))
	for _, t := range textTokens {
		set[t] = struct{}{}
	}

	seen := make(map[string]struct{}, len(queryTokens))
	count := 0
	for _, t := range queryTokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			count++
		}
	}
	return count
}

// matchesAny reports whether value passes a single-value filter dimension.
// An empty filter always passes.
func matchesAny(value string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// anyOverlap reports whether the two tag sets share at least one value.
func anyOverlap(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, s := range have {
		set[s] = struct{}{}
	}
	for _, s := range want {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

func countFacet(counts map[string]int, value string) {
	if value != "" {
		counts[value]++
	}
}
