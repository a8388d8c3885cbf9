// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package memory

import (
	"context"
	"sort"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// filmView builds the external view of a stored film: a deep copy with
// the like set rendered as a sorted slice and the rate derived from it.
// Caller holds at least a read lock.
func (s *Store) filmView(film *models.Film) *models.Film {
	view := film.Clone()
	view.Likes = sortedIDs(s.likes[film.ID])
	view.Rate = len(view.Likes)
	return view
}

// CreateFilm implements storage.FilmStore.
func (s *Store) CreateFilm(_ context.Context, film *models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := film.Clone()
	stored.NormalizeGenres()
	if err := s.resolveRefs(stored); err != nil {
		return nil, err
	}

	s.nextFilmID++
	stored.ID = s.nextFilmID
	stored.Likes = nil
	stored.Rate = 0
	s.films[stored.ID] = stored
	s.likes[stored.ID] = make(map[int]struct{})

	return s.filmView(stored), nil
}

// UpdateFilm implements storage.FilmStore. Every scalar field and the
// genre set are replaced; the like relation is left untouched.
func (s *Store) UpdateFilm(_ context.Context, film *models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return nil, storage.NewFilmNotFound(film.ID)
	}

	stored := film.Clone()
	stored.NormalizeGenres()
	if err := s.resolveRefs(stored); err != nil {
		return nil, err
	}
	stored.Likes = nil
	stored.Rate = 0
	s.films[stored.ID] = stored

	return s.filmView(stored), nil
}

// GetFilm implements storage.FilmStore.
func (s *Store) GetFilm(_ context.Context, id int) (*models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return nil, storage.NewFilmNotFound(id)
	}
	return s.filmView(film), nil
}

// DeleteFilm implements storage.FilmStore. Likes on the film go with it;
// the removed film is returned as it stood.
func (s *Store) DeleteFilm(_ context.Context, id int) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	film, ok := s.films[id]
	if !ok {
		return nil, storage.NewFilmNotFound(id)
	}
	removed := s.filmView(film)
	delete(s.films, id)
	delete(s.likes, id)
	return removed, nil
}

// AllFilms implements storage.FilmStore. Films are returned ordered by id.
func (s *Store) AllFilms(_ context.Context) ([]*models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*models.Film, 0, len(s.films))
	for _, film := range s.films {
		views = append(views, s.filmView(film))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

// FilmExists implements storage.FilmStore.
func (s *Store) FilmExists(_ context.Context, id int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.films[id]
	return ok, nil
}
