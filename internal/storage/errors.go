// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package storage

import "fmt"

// NotFoundError reports that an entity referenced by id does not exist.
// The API layer maps it to 404.
type NotFoundError struct {
	Kind string // "film", "user", "genre", "mpa rating"
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

// NewFilmNotFound builds a NotFoundError for a film id.
func NewFilmNotFound(id int) *NotFoundError {
	return &NotFoundError{Kind: "film", ID: id}
}

// NewUserNotFound builds a NotFoundError for a user id.
func NewUserNotFound(id int) *NotFoundError {
	return &NotFoundError{Kind: "user", ID: id}
}

// NewGenreNotFound builds a NotFoundError for a genre id.
func NewGenreNotFound(id int) *NotFoundError {
	return &NotFoundError{Kind: "genre", ID: id}
}

// NewMpaNotFound builds a NotFoundError for an MPA rating id.
func NewMpaNotFound(id int) *NotFoundError {
	return &NotFoundError{Kind: "mpa rating", ID: id}
}

// LikeNotFoundError reports an attempt to remove a like that was never
// placed. Unlike missing entities this is a client mistake about relation
// state, so the API layer maps it to 400.
type LikeNotFoundError struct {
	FilmID int
	UserID int
}

func (e *LikeNotFoundError) Error() string {
	return fmt.Sprintf("user %d has not liked film %d", e.UserID, e.FilmID)
}
