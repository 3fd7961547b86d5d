// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package search

import (
	"strings"

	"github.com/tristanhayes/riffline/internal/cache"
	"github.com/tristanhayes/riffline/internal/discovery/model"
)

// Autocomplete fields.
const (
	// FieldTitle suggests song titles.
	FieldTitle = "title"
	// FieldGenre suggests genre tags from songs and user declarations.
	FieldGenre = "genre"
	// FieldMood suggests song mood tags.
	FieldMood = "mood"
	// FieldUsername suggests usernames.
	FieldUsername = "username"
	// FieldSkill suggests skill tags from user declarations and song needs.
	FieldSkill = "skill"
)

// Suggest returns ranked prefix-match suggestions for one field of the
// snapshot. Results are ordered by occurrence count descending, then
// lexicographically, and truncated to the configured limit. An empty or
// whitespace-only prefix yields an empty list, not an error.
func (e *Engine) Suggest(prefix, field string, songs []model.Song, users []model.User) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return []string{}, nil
	}

	trie := cache.NewTrie()
	switch field {
	case FieldTitle:
		for i := range songs {
			trie.Insert(songs[i].Title)
		}
	case FieldGenre:
		for i := range songs {
			trie.Insert(songs[i].Genre)
		}
		for i := range users {
			for _, g := range users[i].Genres {
				trie.Insert(g)
			}
		}
	case FieldMood:
		for i := range songs {
			trie.Insert(songs[i].Mood)
		}
	case FieldUsername:
		for i := range users {
			trie.Insert(users[i].Username)
		}
	case FieldSkill:
		for i := range users {
			for _, s := range users[i].Skills {
				trie.Insert(s)
			}
		}
		for i := range songs {
			for _, s := range songs[i].CollaborationNeeded {
				trie.Insert(s)
			}
		}
	default:
		return nil, model.Validationf("unknown autocomplete field %q", field)
	}

	suggestions := trie.Suggest(prefix, e.cfg.AutocompleteLimit)
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Value
	}
	return out, nil
}
