// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package service

import (
	"context"

	"github.com/filmorate/filmorate/internal/logging"
	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
	"github.com/filmorate/filmorate/internal/validation"
)

// FilmService carries film CRUD, the like relation and the popularity
// ranking.
type FilmService struct {
	store storage.Storage
}

// NewFilmService builds a FilmService on the given backend.
func NewFilmService(store storage.Storage) *FilmService {
	return &FilmService{store: store}
}

// Create validates and stores a new film. The client-supplied id and rate
// are ignored; the store assigns a fresh id.
func (s *FilmService) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := validation.ValidateStruct(film); err != nil {
		return nil, err
	}
	created, err := s.store.CreateFilm(ctx, film)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int("film_id", created.ID).Str("name", created.Name).Msg("film created")
	return created, nil
}

// Update validates and replaces an existing film. Likes survive the update.
func (s *FilmService) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := validation.ValidateStruct(film); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateFilm(ctx, film)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int("film_id", updated.ID).Msg("film updated")
	return updated, nil
}

// Get returns one film by id.
func (s *FilmService) Get(ctx context.Context, id int) (*models.Film, error) {
	return s.store.GetFilm(ctx, id)
}

// Delete removes a film and its likes, returning the removed record.
func (s *FilmService) Delete(ctx context.Context, id int) (*models.Film, error) {
	removed, err := s.store.DeleteFilm(ctx, id)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int("film_id", id).Msg("film deleted")
	return removed, nil
}

// All returns every film, ordered by id.
func (s *FilmService) All(ctx context.Context) ([]*models.Film, error) {
	return s.store.AllFilms(ctx)
}

// Like records a like; repeating it is a no-op.
func (s *FilmService) Like(ctx context.Context, filmID, userID int) (*models.Film, error) {
	film, err := s.store.Like(ctx, filmID, userID)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().Int("film_id", filmID).Int("user_id", userID).Msg("like added")
	return film, nil
}

// Unlike removes a like; removing one that was never placed is an error.
func (s *FilmService) Unlike(ctx context.Context, filmID, userID int) (*models.Film, error) {
	film, err := s.store.Unlike(ctx, filmID, userID)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().Int("film_id", filmID).Int("user_id", userID).Msg("like removed")
	return film, nil
}

// Popular returns the count best-rated films, like count descending with
// ties broken by ascending id. A non-positive count is rejected.
func (s *FilmService) Popular(ctx context.Context, count int) ([]*models.Film, error) {
	if count <= 0 {
		return nil, &InvalidCountError{Count: count}
	}
	return s.store.MostPopular(ctx, count)
}

// Genres returns the full genre catalog.
func (s *FilmService) Genres(ctx context.Context) ([]models.Genre, error) {
	return s.store.AllGenres(ctx)
}

// Genre returns one genre by id.
func (s *FilmService) Genre(ctx context.Context, id int) (models.Genre, error) {
	return s.store.Genre(ctx, id)
}

// MpaRatings returns the full MPA rating catalog.
func (s *FilmService) MpaRatings(ctx context.Context) ([]models.Mpa, error) {
	return s.store.AllMpa(ctx)
}

// MpaRating returns one MPA rating by id.
func (s *FilmService) MpaRating(ctx context.Context, id int) (models.Mpa, error) {
	return s.store.Mpa(ctx, id)
}
