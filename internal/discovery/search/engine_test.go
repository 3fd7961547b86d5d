// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package search

import (
	"testing"
	"time"

	"github.com/tristanhayes/riffline/internal/discovery/model"
	"github.com/tristanhayes/riffline/internal/discovery/trending"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig(), trending.NewScorer(trending.DefaultConfig()))
}

// fixtureSongs is a small catalog with overlapping titles so relevance,
// trending and facet behavior are all observable in one query.
func fixtureSongs() []model.Song {
	dream := model.Song{
		ID:          "s-dream",
		Title:       "Electric Dreams",
		Description: "late night electronic jam",
		Genre:       "electronic",
		Mood:        "dreamy",
		CreatedAt:   testNow.Add(-2 * time.Hour),
	}
	dream.Votes = []model.Vote{{UserID: "v", Value: 1, CreatedAt: testNow}}

	pulse := model.Song{
		ID:                   "s-pulse",
		Title:                "Midnight Pulse",
		Description:          "driving electronic track, needs vocals",
		Genre:                "electronic",
		Mood:                 "dark",
		OpenForCollaboration: true,
		CollaborationNeeded:  []string{"vocals"},
		CreatedAt:            testNow.Add(-48 * time.Hour),
	}

	ballad := model.Song{
		ID:        "s-ballad",
		Title:     "Autumn Ballad",
		Genre:     "folk",
		Mood:      "calm",
		CreatedAt: testNow.Add(-24 * time.Hour),
	}

	return []model.Song{dream, pulse, ballad}
}

func fixtureUsers() []model.User {
	return []model.User{
		{ID: "u-ada", Username: "ada", DisplayName: "Ada", Bio: "electronic producer", Skills: []string{"production"}, Genres: []string{"electronic"}},
		{ID: "u-ben", Username: "ben", Bio: "folk guitarist", Skills: []string{"guitar"}, Genres: []string{"folk"}},
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "songs", want: KindSongs},
		{in: "users", want: KindUsers},
		{in: "collaboration-opportunities", want: KindOpportunities},
		{in: "albums", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if model.KindOf(err) != model.KindValidation {
					t.Errorf("ParseKind(%q) error kind = %v, want validation", tt.in, model.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEngine_Search_Songs(t *testing.T) {
	e := newTestEngine()

	res, err := e.Search(KindSongs, "electronic", Filters{}, fixtureSongs(), nil, testNow)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2 (description tokens match)", res.Total)
	}
	// Equal relevance: the fresher, voted song wins on trending.
	if res.Results[0].ID != "s-dream" || res.Results[1].ID != "s-pulse" {
		t.Errorf("order = [%s %s], want [s-dream s-pulse]", res.Results[0].ID, res.Results[1].ID)
	}
	if res.Results[0].Trending <= res.Results[1].Trending {
		t.Errorf("trending tie-break violated: %f <= %f", res.Results[0].Trending, res.Results[1].Trending)
	}
}

func TestEngine_Search_RelevanceOrdering(t *testing.T) {
	e := newTestEngine()

	res, err := e.Search(KindSongs, "electric dreams", Filters{}, fixtureSongs(), nil, testNow)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Results) == 0 || res.Results[0].ID != "s-dream" {
		t.Fatalf("results = %+v, want s-dream first with both tokens matched", res.Results)
	}
	if res.Results[0].Relevance != 2 {
		t.Errorf("Relevance = %d, want 2", res.Results[0].Relevance)
	}
}

func TestEngine_Search_CaseInsensitive(t *testing.T) {
	e := newTestEngine()

	res, err := e.Search(KindSongs, "ELECTRIC", Filters{}, fixtureSongs(), nil, testNow)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Total != 1 || res.Results[0].ID != "s-dream" {
		t.Errorf("results = %+v, want single s-dream hit", res.Results)
	}
}

func TestEngine_Search_EmptyQueryBrowsesAll(t *testing.T) {
	e := newTestEngine()

	res, err := e.Search(KindSongs, "", Filters{Genres: []string{"folk"}}, fixtureSongs(), nil, testNow)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Total != 1 || res.Results[0].ID != "s-ballad" {
		t.Errorf("results = %+v, want filter-only browse yielding s-ballad", res.Results)
	}
	if res.Results[0].Relevance != 0 {
		t.Errorf("Relevance = %d, want 0 for empty query", res.Results[0].Relevance)
	}
}

func TestEngine_Search_FacetsCountedBeforeFilters(t *testing.T) {
	e := newTestEngine()

	res, err := e.Search(KindSongs, "", Filters{Genres: []string{"electronic"}}, fixtureSongs(), nil, testNow)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// The genre filter narrows results but not the facet counts.
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	if got := res.Facets["genre"]["folk"]; got != 1 {
		t.Errorf("facet genre/folk = %d, want 1 (pre-filter count)", got)
	}
	if got := res.Facets["genre"]["electronic"]; got != 2 {
		t.Errorf("facet genre/electronic = %d, want 2", got)
	}
	if got := res.Facets["skill"]["vocals"]; got != 1 {
		t.Errorf("facet skill/vocals = %d, want 1", got)
	}
}

func TestEngine_Search_MoodAndSkillFilters(t *testing.T) {
	e := newTestEngine()

	t.Run("mood filter", func(t *testing.T) {
		res, err := e.Search(KindSongs, "", Filters{Moods: []string{"dark"}}, fixtureSongs(), nil, testNow)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if res.Total != 1 || res.Results[0].ID != "s-pulse" {
			t.Errorf("results = %+v, want s-pulse only", res.Results)
		}
	})

	t.Run("skill filter", func(t *testing.T) {
		res, err := e.Search(KindSongs, "", Filters{Skills: []string{"vocals"}}, fixtureSongs(), nil, testNow)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if res.Total != 1 || res.Results[0].ID != "s-pulse" {
			t.Errorf("results = %+v, want s-pulse only", res.Results)
		}
	})
}

func TestEngine_Search_Opportunities(t *testing.T) {
	e := newTestEngine()

	res, err := e.Search(KindOpportunities, "", Filters{}, fixtureSongs(), nil, testNow)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Total != 1 || res.Results[0].ID != "s-pulse" {
		t.Errorf("results = %+v, want only the open song with stated needs", res.Results)
	}
}

func TestEngine_Search_Users(t *testing.T) {
	e := newTestEngine()

	t.Run("bio text match", func(t *testing.T) {
		res, err := e.Search(KindUsers, "electronic", Filters{}, nil, fixtureUsers(), testNow)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if res.Total != 1 || res.Results[0].ID != "u-ada" {
			t.Errorf("results = %+v, want u-ada", res.Results)
		}
		if res.Results[0].Title != "ada" {
			t.Errorf("Title = %q, want username", res.Results[0].Title)
		}
	})

	t.Run("skill filter", func(t *testing.T) {
		res, err := e.Search(KindUsers, "", Filters{Skills: []string{"guitar"}}, nil, fixtureUsers(), testNow)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if res.Total != 1 || res.Results[0].ID != "u-ben" {
			t.Errorf("results = %+v, want u-ben", res.Results)
		}
	})

	t.Run("user facets", func(t *testing.T) {
		res, err := e.Search(KindUsers, "", Filters{}, nil, fixtureUsers(), testNow)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if got := res.Facets["skill"]["production"]; got != 1 {
			t.Errorf("facet skill/production = %d, want 1", got)
		}
		if got := res.Facets["genre"]["folk"]; got != 1 {
			t.Errorf("facet genre/folk = %d, want 1", got)
		}
	})
}

func TestEngine_Search_GenreQueryWithGenreFilter(t *testing.T) {
	e := newTestEngine()

	songs := []model.Song{
		{ID: "s-elec", Title: "Neon Nights", Description: "electronic anthem", Genre: "electronic", CreatedAt: testNow.Add(-time.Hour)},
		{ID: "s-rock", Title: "Stone Road", Genre: "rock", CreatedAt: testNow.Add(-time.Hour)},
		{ID: "s-folk", Title: "River Song", Genre: "folk", CreatedAt: testNow.Add(-time.Hour)},
	}

	res, err := e.Search(KindSongs, "electronic", Filters{Genres: []string{"electronic"}}, songs, nil, testNow)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Total != 1 || res.Results[0].ID != "s-elec" {
		t.Errorf("results = %+v, want exactly s-elec", res.Results)
	}
}

func TestEngine_Search_MaxResults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxResults = 2
	e := NewEngine(cfg, trending.NewScorer(trending.DefaultConfig()))

	res, err := e.Search(KindSongs, "", Filters{}, fixtureSongs(), nil, testNow)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Results) != 2 {
		t.Errorf("len(results) = %d, want 2", len(res.Results))
	}
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3 (total reports pre-truncation size)", res.Total)
	}
}
