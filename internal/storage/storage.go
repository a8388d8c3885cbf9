// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package storage

import (
	"context"

	"github.com/filmorate/filmorate/internal/models"
)

// FilmStore persists film aggregates.
//
// Create assigns a fresh id from a monotonic counter that never reuses
// values, even after deletes. Update replaces every scalar field and the
// genre set but preserves the like relation. Delete returns the removed
// film as it stood, in one storage call. All returned films carry the
// derived rate (like count) and sorted likes/genres.
type FilmStore interface {
	CreateFilm(ctx context.Context, film *models.Film) (*models.Film, error)
	UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error)
	GetFilm(ctx context.Context, id int) (*models.Film, error)
	DeleteFilm(ctx context.Context, id int) (*models.Film, error)
	AllFilms(ctx context.Context) ([]*models.Film, error)
	FilmExists(ctx context.Context, id int) (bool, error)
}

// UserStore persists user aggregates. Semantics mirror FilmStore: fresh
// monotonic ids on create, full replace on update with the friendship
// relation preserved. Blank display names are defaulted to the login on
// both create and update.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	DeleteUser(ctx context.Context, id int) (*models.User, error)
	AllUsers(ctx context.Context) ([]*models.User, error)
	UserExists(ctx context.Context, id int) (bool, error)
}

// LikeStore manages the like relation between users and films.
//
// Like is idempotent. Unlike returns *LikeNotFoundError when the pair is
// absent. MostPopular orders by like count descending, then film id
// ascending; count is assumed positive (validated by the service layer).
type LikeStore interface {
	Like(ctx context.Context, filmID, userID int) (*models.Film, error)
	Unlike(ctx context.Context, filmID, userID int) (*models.Film, error)
	MostPopular(ctx context.Context, count int) ([]*models.Film, error)
}

// FriendStore manages the symmetric friendship relation.
//
// AddFriend links both directions and is idempotent; it returns both
// affected users. RemoveFriend is a no-op when the pair is absent.
type FriendStore interface {
	AddFriend(ctx context.Context, userID, friendID int) ([]*models.User, error)
	RemoveFriend(ctx context.Context, userID, friendID int) ([]*models.User, error)
	Friends(ctx context.Context, userID int) ([]*models.User, error)
	CommonFriends(ctx context.Context, userID, otherID int) ([]*models.User, error)
}

// ReferenceStore serves the static genre and MPA rating catalogs.
type ReferenceStore interface {
	AllGenres(ctx context.Context) ([]models.Genre, error)
	Genre(ctx context.Context, id int) (models.Genre, error)
	AllMpa(ctx context.Context) ([]models.Mpa, error)
	Mpa(ctx context.Context, id int) (models.Mpa, error)
}

// Storage is the full persistence contract a backend must satisfy.
type Storage interface {
	FilmStore
	UserStore
	LikeStore
	FriendStore
	ReferenceStore

	// Ping verifies the backend is reachable; used by the readiness probe.
	Ping(ctx context.Context) error
	Close() error
}
