// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package storage

import (
	"context"
	"time"

	"github.com/filmorate/filmorate/internal/metrics"
	"github.com/filmorate/filmorate/internal/models"
)

// Instrumented wraps a Storage and records Prometheus metrics for every
// operation. The backend label distinguishes memory from duckdb.
type Instrumented struct {
	inner   Storage
	backend string
}

var _ Storage = (*Instrumented)(nil)

// Instrument wraps store so every call reports duration and errors under
// the given backend label.
func Instrument(store Storage, backend string) *Instrumented {
	return &Instrumented{inner: store, backend: backend}
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	metrics.RecordStorageOperation(op, s.backend, time.Since(start), err)
}

func (s *Instrumented) CreateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	start := time.Now()
	created, err := s.inner.CreateFilm(ctx, film)
	s.observe("create_film", start, err)
	if err == nil {
		metrics.FilmsTotal.Inc()
	}
	return created, err
}

func (s *Instrumented) UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	start := time.Now()
	updated, err := s.inner.UpdateFilm(ctx, film)
	s.observe("update_film", start, err)
	return updated, err
}

func (s *Instrumented) GetFilm(ctx context.Context, id int) (*models.Film, error) {
	start := time.Now()
	film, err := s.inner.GetFilm(ctx, id)
	s.observe("get_film", start, err)
	return film, err
}

func (s *Instrumented) DeleteFilm(ctx context.Context, id int) (*models.Film, error) {
	start := time.Now()
	removed, err := s.inner.DeleteFilm(ctx, id)
	s.observe("delete_film", start, err)
	if err == nil {
		metrics.FilmsTotal.Dec()
	}
	return removed, err
}

func (s *Instrumented) AllFilms(ctx context.Context) ([]*models.Film, error) {
	start := time.Now()
	films, err := s.inner.AllFilms(ctx)
	s.observe("all_films", start, err)
	return films, err
}

func (s *Instrumented) FilmExists(ctx context.Context, id int) (bool, error) {
	start := time.Now()
	ok, err := s.inner.FilmExists(ctx, id)
	s.observe("film_exists", start, err)
	return ok, err
}

func (s *Instrumented) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	start := time.Now()
	created, err := s.inner.CreateUser(ctx, user)
	s.observe("create_user", start, err)
	if err == nil {
		metrics.UsersTotal.Inc()
	}
	return created, err
}

func (s *Instrumented) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	start := time.Now()
	updated, err := s.inner.UpdateUser(ctx, user)
	s.observe("update_user", start, err)
	return updated, err
}

func (s *Instrumented) GetUser(ctx context.Context, id int) (*models.User, error) {
	start := time.Now()
	user, err := s.inner.GetUser(ctx, id)
	s.observe("get_user", start, err)
	return user, err
}

func (s *Instrumented) DeleteUser(ctx context.Context, id int) (*models.User, error) {
	start := time.Now()
	removed, err := s.inner.DeleteUser(ctx, id)
	s.observe("delete_user", start, err)
	if err == nil {
		metrics.UsersTotal.Dec()
	}
	return removed, err
}

func (s *Instrumented) AllUsers(ctx context.Context) ([]*models.User, error) {
	start := time.Now()
	users, err := s.inner.AllUsers(ctx)
	s.observe("all_users", start, err)
	return users, err
}

func (s *Instrumented) UserExists(ctx context.Context, id int) (bool, error) {
	start := time.Now()
	ok, err := s.inner.UserExists(ctx, id)
	s.observe("user_exists", start, err)
	return ok, err
}

func (s *Instrumented) Like(ctx context.Context, filmID, userID int) (*models.Film, error) {
	start := time.Now()
	film, err := s.inner.Like(ctx, filmID, userID)
	s.observe("like", start, err)
	return film, err
}

func (s *Instrumented) Unlike(ctx context.Context, filmID, userID int) (*models.Film, error) {
	start := time.Now()
	film, err := s.inner.Unlike(ctx, filmID, userID)
	s.observe("unlike", start, err)
	return film, err
}

func (s *Instrumented) MostPopular(ctx context.Context, count int) ([]*models.Film, error) {
	start := time.Now()
	films, err := s.inner.MostPopular(ctx, count)
	s.observe("most_popular", start, err)
	return films, err
}

func (s *Instrumented) AddFriend(ctx context.Context, userID, friendID int) ([]*models.User, error) {
	start := time.Now()
	users, err := s.inner.AddFriend(ctx, userID, friendID)
	s.observe("add_friend", start, err)
	return users, err
}

func (s *Instrumented) RemoveFriend(ctx context.Context, userID, friendID int) ([]*models.User, error) {
	start := time.Now()
	users, err := s.inner.RemoveFriend(ctx, userID, friendID)
	s.observe("remove_friend", start, err)
	return users, err
}

func (s *Instrumented) Friends(ctx context.Context, userID int) ([]*models.User, error) {
	start := time.Now()
	users, err := s.inner.Friends(ctx, userID)
	s.observe("friends", start, err)
	return users, err
}

func (s *Instrumented) CommonFriends(ctx context.Context, userID, otherID int) ([]*models.User, error) {
	start := time.Now()
	users, err := s.inner.CommonFriends(ctx, userID, otherID)
	s.observe("common_friends", start, err)
	return users, err
}

func (s *Instrumented) AllGenres(ctx context.Context) ([]models.Genre, error) {
	start := time.Now()
	genres, err := s.inner.AllGenres(ctx)
	s.observe("all_genres", start, err)
	return genres, err
}

func (s *Instrumented) Genre(ctx context.Context, id int) (models.Genre, error) {
	start := time.Now()
	genre, err := s.inner.Genre(ctx, id)
	s.observe("genre", start, err)
	return genre, err
}

func (s *Instrumented) AllMpa(ctx context.Context) ([]models.Mpa, error) {
	start := time.Now()
	ratings, err := s.inner.AllMpa(ctx)
	s.observe("all_mpa", start, err)
	return ratings, err
}

func (s *Instrumented) Mpa(ctx context.Context, id int) (models.Mpa, error) {
	start := time.Now()
	rating, err := s.inner.Mpa(ctx, id)
	s.observe("mpa", start, err)
	return rating, err
}

func (s *Instrumented) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *Instrumented) Close() error {
	return s.inner.Close()
}
