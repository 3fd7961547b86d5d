// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package model

import "time"

// Song is a content item with its denormalized activity embedded.
// The embedded votes, collaborations and comments are what the trending
// scorer reads; the engine does not fetch activity itself.
type Song struct {
	// ID is the unique song identifier.
	ID string `json:"id" validate:"required"`

	// Title is the song title.
	Title string `json:"title"`

	// Description is free-form text shown on the song page.
	Description string `json:"description,omitempty"`

	// Genre is the primary genre tag.
	Genre string `json:"genre,omitempty"`

	// Mood is the declared mood tag.
	Mood string `json:"mood,omitempty"`

	// Key is the musical key (e.g. "C#m").
	Key string `json:"key,omitempty"`

	// Tempo is the tempo in BPM.
	Tempo int `json:"tempo,omitempty" validate:"min=0"`

	// OwnerID is the ID of the user who published the song.
	OwnerID string `json:"owner_id"`

	// OpenForCollaboration marks the song as accepting contributions.
	OpenForCollaboration bool `json:"open_for_collaboration"`

	// CollaborationNeeded lists the skill tags the owner is looking for.
	CollaborationNeeded []string `json:"collaboration_needed,omitempty"`

	// CreatedAt is the publication time.
	CreatedAt time.Time `json:"created_at" validate:"required"`

	// Votes is the song's denormalized vote activity.
	Votes []Vote `json:"votes,omitempty"`

	// Collaborations is the song's denormalized contribution activity.
	Collaborations []Collaboration `json:"collaborations,omitempty"`

	// Comments is the song's denormalized comment activity.
	Comments []Comment `json:"comments,omitempty"`
}

// Vote is a weighted up/down vote embedded in a Song.
type Vote struct {
	// UserID is the voter.
	UserID string `json:"user_id"`

	// Value is +1 or -1.
	Value int `json:"value" validate:"oneof=-1 1"`

	// Weight scales the vote's influence. Zero is treated as the
	// default weight of 1.0.
	Weight float64 `json:"weight" validate:"min=0"`

	// CreatedAt is when the vote was cast.
	CreatedAt time.Time `json:"created_at"`
}

// EffectiveWeight returns the vote weight with the 1.0 default applied.
func (v Vote) EffectiveWeight() float64 {
	if v.Weight <= 0 {
		return 1.0
	}
	return v.Weight
}

// Collaboration is a contribution record embedded in a Song.
type Collaboration struct {
	// UserID is the contributor.
	UserID string `json:"user_id"`

	// ContributionType is the skill tag of the contribution
	// (e.g. "vocals", "mixing").
	ContributionType string `json:"contribution_type"`

	// CreatedAt is when the contribution landed.
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a comment record embedded in a Song.
type Comment struct {
	// UserID is the comment author.
	UserID string `json:"user_id"`

	// Content is the comment body.
	Content string `json:"content"`

	// CreatedAt is when the comment was posted.
	CreatedAt time.Time `json:"created_at"`
}

// User is a platform account with declared attributes.
type User struct {
	// ID is the unique user identifier.
	ID string `json:"id" validate:"required"`

	// Username is the unique handle.
	Username string `json:"username"`

	// DisplayName is the public display name.
	DisplayName string `json:"display_name,omitempty"`

	// Bio is free-form profile text.
	Bio string `json:"bio,omitempty"`

	// Skills is the set of declared skill tags.
	Skills []string `json:"skills,omitempty"`

	// Genres is the set of declared genre tags.
	Genres []string `json:"genres,omitempty"`

	// Reputation is the accumulated reputation score.
	Reputation int `json:"reputation" validate:"min=0"`

	// CreatedAt is the account creation time.
	CreatedAt time.Time `json:"created_at"`
}
