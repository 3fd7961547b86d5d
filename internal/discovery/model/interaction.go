// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package model

import "time"

// InteractionType classifies user-song interaction events for implicit
// feedback. The ordering view < vote < comment < collaboration reflects
// increasing preference signal strength.
type InteractionType int

const (
	// InteractionView indicates the user viewed or streamed the song.
	InteractionView InteractionType = iota
	// InteractionVote indicates the user voted on the song.
	InteractionVote
	// InteractionComment indicates the user commented on the song.
	InteractionComment
	// InteractionCollaboration indicates the user contributed to the song.
	InteractionCollaboration
)

// String returns a human-readable name for the interaction type.
func (t InteractionType) String() string {
	switch t {
	case InteractionView:
		return "view"
	case InteractionVote:
		return "vote"
	case InteractionComment:
		return "comment"
	case InteractionCollaboration:
		return "collaboration"
	default:
		return "unknown"
	}
}

// Weight returns the genre-affinity weight for this interaction type.
// Higher values indicate stronger taste signal.
func (t InteractionType) Weight() float64 {
	switch t {
	case InteractionCollaboration:
		return 1.0
	case InteractionComment:
		return 0.7
	case InteractionVote:
		return 0.5
	case InteractionView:
		return 0.2
	default:
		return 0.0
	}
}

// ParseInteractionType resolves a wire name to an InteractionType.
func ParseInteractionType(s string) (InteractionType, bool) {
	switch s {
	case "view":
		return InteractionView, true
	case "vote":
		return InteractionVote, true
	case "comment":
		return InteractionComment, true
	case "collaboration":
		return InteractionCollaboration, true
	default:
		return InteractionView, false
	}
}

// Interaction is a raw user-song event from the activity log. It is the
// input to profile inference and recommendation filtering, distinct from
// the per-song activity embedded in Song that trending scoring reads.
type Interaction struct {
	// UserID is the acting user.
	UserID string `json:"user_id" validate:"required"`

	// SongID is the target song.
	SongID string `json:"song_id" validate:"required"`

	// Type classifies the event.
	Type InteractionType `json:"type"`

	// Value is an optional event payload (e.g. vote value).
	Value float64 `json:"value,omitempty"`

	// CreatedAt is when the event occurred.
	CreatedAt time.Time `json:"created_at"`
}
