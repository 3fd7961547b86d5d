// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package profile

import (
	"math"
	"testing"
	"time"

	"github.com/tristanhayes/riffline/internal/discovery/model"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testUsers() []model.User {
	return []model.User{
		{
			ID:       "u1",
			Username: "ada",
			Skills:   []string{"vocals", "mixing"},
			Genres:   []string{"jazz"},
		},
		{ID: "u2", Username: "ben"},
	}
}

func testSongs() []model.Song {
	return []model.Song{
		{ID: "s-elec", Genre: "electronic", CreatedAt: testNow.Add(-time.Hour)},
		{ID: "s-jazz", Genre: "jazz", CreatedAt: testNow.Add(-time.Hour)},
		{ID: "s-none", CreatedAt: testNow.Add(-time.Hour)},
	}
}

func interaction(userID, songID string, typ model.InteractionType, age time.Duration) model.Interaction {
	return model.Interaction{
		UserID:    userID,
		SongID:    songID,
		Type:      typ,
		CreatedAt: testNow.Add(-age),
	}
}

func TestBuilder_Build_Errors(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	t.Run("empty user id", func(t *testing.T) {
		_, err := b.Build("", testUsers(), nil, nil, testNow)
		if model.KindOf(err) != model.KindValidation {
			t.Errorf("error kind = %v, want validation", model.KindOf(err))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := b.Build("ghost", testUsers(), nil, nil, testNow)
		if model.KindOf(err) != model.KindNotFound {
			t.Errorf("error kind = %v, want not_found", model.KindOf(err))
		}
	})
}

func TestBuilder_Build_DeclaredAttributes(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	prof, err := b.Build("u1", testUsers(), testSongs(), nil, testNow)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(prof.DeclaredSkills) != 2 || prof.DeclaredSkills[0] != "vocals" {
		t.Errorf("DeclaredSkills = %v, want [vocals mixing]", prof.DeclaredSkills)
	}
	if len(prof.DeclaredGenres) != 1 || prof.DeclaredGenres[0] != "jazz" {
		t.Errorf("DeclaredGenres = %v, want [jazz]", prof.DeclaredGenres)
	}
	if prof.InferredGenres == nil {
		t.Error("InferredGenres = nil, want empty map")
	}
	if prof.ActivityLevel != model.ActivityLow {
		t.Errorf("ActivityLevel = %v, want low", prof.ActivityLevel)
	}
}

func TestBuilder_Build_InferenceWeighting(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	// One collaboration on electronic outweighs one view on jazz.
	interactions := []model.Interaction{
		interaction("u1", "s-elec", model.InteractionCollaboration, time.Hour),
		interaction("u1", "s-jazz", model.InteractionView, time.Hour),
		interaction("u2", "s-jazz", model.InteractionCollaboration, time.Hour),
	}

	prof, err := b.Build("u1", testUsers(), testSongs(), interactions, testNow)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := prof.InferredGenres["electronic"]; got != 1.0 {
		t.Errorf("electronic affinity = %f, want 1.0 (strongest genre normalizes to 1)", got)
	}
	jazz := prof.InferredGenres["jazz"]
	want := model.InteractionView.Weight() / model.InteractionCollaboration.Weight()
	if math.Abs(jazz-want) > 1e-9 {
		t.Errorf("jazz affinity = %f, want %f", jazz, want)
	}
}

func TestBuilder_Build_IgnoresOtherUsersAndUnknownSongs(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	interactions := []model.Interaction{
		interaction("u2", "s-elec", model.InteractionCollaboration, time.Hour),
		interaction("u1", "missing-song", model.InteractionVote, time.Hour),
		interaction("u1", "s-none", model.InteractionVote, time.Hour),
	}

	prof, err := b.Build("u1", testUsers(), testSongs(), interactions, testNow)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(prof.InferredGenres) != 0 {
		t.Errorf("InferredGenres = %v, want empty", prof.InferredGenres)
	}
	if prof.InteractionCount != 2 {
		t.Errorf("InteractionCount = %d, want 2 (u2's interactions excluded)", prof.InteractionCount)
	}
}

func TestBuilder_Build_ActivityBuckets(t *testing.T) {
	b := NewBuilder(Config{
		ActivityWindow:     30 * 24 * time.Hour,
		ActivityThresholds: Thresholds{Medium: 5, High: 20},
	})

	tests := []struct {
		name  string
		count int
		want  model.ActivityLevel
	}{
		{name: "zero interactions", count: 0, want: model.ActivityLow},
		{name: "below medium", count: 4, want: model.ActivityLow},
		{name: "at medium threshold", count: 5, want: model.ActivityMedium},
		{name: "below high", count: 19, want: model.ActivityMedium},
		{name: "at high threshold", count: 20, want: model.ActivityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interactions := make([]model.Interaction, tt.count)
			for i := range interactions {
				interactions[i] = interaction("u1", "s-jazz", model.InteractionView, time.Hour)
			}

			prof, err := b.Build("u1", testUsers(), testSongs(), interactions, testNow)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if prof.ActivityLevel != tt.want {
				t.Errorf("ActivityLevel = %v, want %v", prof.ActivityLevel, tt.want)
			}
			if prof.InteractionCount != tt.count {
				t.Errorf("InteractionCount = %d, want %d", prof.InteractionCount, tt.count)
			}
		})
	}
}

func TestBuilder_Build_WindowExcludesOldInteractions(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	interactions := []model.Interaction{
		interaction("u1", "s-jazz", model.InteractionView, time.Hour),
		interaction("u1", "s-jazz", model.InteractionView, 45*24*time.Hour),
	}

	prof, err := b.Build("u1", testUsers(), testSongs(), interactions, testNow)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if prof.InteractionCount != 1 {
		t.Errorf("InteractionCount = %d, want 1 (outside-window interaction excluded)", prof.InteractionCount)
	}
	// Genre inference still counts the old interaction: taste is durable,
	// activity is windowed.
	if prof.InferredGenres["jazz"] != 1.0 {
		t.Errorf("jazz affinity = %f, want 1.0", prof.InferredGenres["jazz"])
	}
}

func TestBuilder_Build_DefensiveCopies(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	users := testUsers()

	prof, err := b.Build("u1", users, nil, nil, testNow)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	prof.DeclaredSkills[0] = "mutated"
	if users[0].Skills[0] != "vocals" {
		t.Error("mutating the profile leaked into the user record")
	}
}

func TestNewBuilder_Defaults(t *testing.T) {
	b := NewBuilder(Config{ActivityThresholds: Thresholds{Medium: 10, High: 3}})

	cfg := b.Config()
	if cfg.ActivityWindow != DefaultConfig().ActivityWindow {
		t.Errorf("ActivityWindow = %v, want default", cfg.ActivityWindow)
	}
	if cfg.ActivityThresholds.High <= cfg.ActivityThresholds.Medium {
		t.Errorf("thresholds = %+v, want high > medium after defaulting", cfg.ActivityThresholds)
	}
}
