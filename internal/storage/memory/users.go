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

// userView builds the external view of a stored user with the friend set
// rendered as a sorted slice. Caller holds at least a read lock.
func (s *Store) userView(user *models.User) *models.User {
	view := user.Clone()
	view.Friends = sortedIDs(s.friends[user.ID])
	return view
}

// CreateUser implements storage.UserStore.
func (s *Store) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := user.Clone()
	stored.DefaultName()

	s.nextUserID++
	stored.ID = s.nextUserID
	stored.Friends = nil
	s.users[stored.ID] = stored
	s.friends[stored.ID] = make(map[int]struct{})

	return s.userView(stored), nil
}

// UpdateUser implements storage.UserStore. Scalar fields are replaced;
// the friendship relation is left untouched. A blank name is defaulted
// to the login here too.
func (s *Store) UpdateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return nil, storage.NewUserNotFound(user.ID)
	}

	stored := user.Clone()
	stored.DefaultName()
	stored.Friends = nil
	s.users[stored.ID] = stored

	return s.userView(stored), nil
}

// GetUser implements storage.UserStore.
func (s *Store) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.NewUserNotFound(id)
	}
	return s.userView(user), nil
}

// DeleteUser implements storage.UserStore. The user's likes and both
// sides of their friendships are removed with them; the removed user is
// returned as they stood.
func (s *Store) DeleteUser(_ context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.NewUserNotFound(id)
	}
	removed := s.userView(user)
	delete(s.users, id)
	for friendID := range s.friends[id] {
		delete(s.friends[friendID], id)
	}
	delete(s.friends, id)
	for filmID := range s.likes {
		delete(s.likes[filmID], id)
	}
	return removed, nil
}

// AllUsers implements storage.UserStore. Users are returned ordered by id.
func (s *Store) AllUsers(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		views = append(views, s.userView(user))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

// UserExists implements storage.UserStore.
func (s *Store) UserExists(_ context.Context, id int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok, nil
}
