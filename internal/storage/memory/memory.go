// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

// Package memory implements storage.Storage on mutex-guarded maps.
// It is the default backend: zero setup, state lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

var _ storage.Storage = (*Store)(nil)

// Store is an in-memory storage backend. The zero value is not usable;
// call New.
//
// Films and users are held without their derived relation views; likes
// and friendships live in separate adjacency maps and views are built on
// read. A single RWMutex guards all state, which keeps cross-entity
// operations (cascade deletes, symmetric friend links) atomic.
type Store struct {
	mu sync.RWMutex

	films map[int]*models.Film
	users map[int]*models.User

	// likes[filmID] is the set of user ids that liked the film.
	likes map[int]map[int]struct{}
	// friends[userID] is the set of friend ids; kept symmetric.
	friends map[int]map[int]struct{}

	genres map[int]models.Genre
	mpa    map[int]models.Mpa

	// Id counters only grow. Deleted ids are never reissued.
	nextFilmID int
	nextUserID int
}

// New returns an empty in-memory store with the reference catalogs loaded.
func New() *Store {
	s := &Store{
		films:   make(map[int]*models.Film),
		users:   make(map[int]*models.User),
		likes:   make(map[int]map[int]struct{}),
		friends: make(map[int]map[int]struct{}),
		genres:  make(map[int]models.Genre),
		mpa:     make(map[int]models.Mpa),
	}
	for _, g := range storage.SeedGenres() {
		s.genres[g.ID] = g
	}
	for _, m := range storage.SeedMpa() {
		s.mpa[m.ID] = m
	}
	return s
}

// Ping implements storage.Storage.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close implements storage.Storage.
func (s *Store) Close() error { return nil }

// AllGenres implements storage.ReferenceStore.
func (s *Store) AllGenres(_ context.Context) ([]models.Genre, error) {
	return storage.SeedGenres(), nil
}

// Genre implements storage.ReferenceStore.
func (s *Store) Genre(_ context.Context, id int) (models.Genre, error) {
	g, ok := s.genres[id]
	if !ok {
		return models.Genre{}, storage.NewGenreNotFound(id)
	}
	return g, nil
}

// AllMpa implements storage.ReferenceStore.
func (s *Store) AllMpa(_ context.Context) ([]models.Mpa, error) {
	return storage.SeedMpa(), nil
}

// Mpa implements storage.ReferenceStore.
func (s *Store) Mpa(_ context.Context, id int) (models.Mpa, error) {
	m, ok := s.mpa[id]
	if !ok {
		return models.Mpa{}, storage.NewMpaNotFound(id)
	}
	return m, nil
}

// resolveRefs fills genre and MPA names from the catalogs, erroring on
// unknown ids. Caller holds the lock.
func (s *Store) resolveRefs(film *models.Film) error {
	if film.Mpa != nil {
		m, ok := s.mpa[film.Mpa.ID]
		if !ok {
			return storage.NewMpaNotFound(film.Mpa.ID)
		}
		film.Mpa = &models.Mpa{ID: m.ID, Name: m.Name}
	}
	for i, g := range film.Genres {
		known, ok := s.genres[g.ID]
		if !ok {
			return storage.NewGenreNotFound(g.ID)
		}
		film.Genres[i] = known
	}
	return nil
}

func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
