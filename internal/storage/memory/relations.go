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

// Like implements storage.LikeStore. Liking twice is a no-op.
func (s *Store) Like(_ context.Context, filmID, userID int) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	film, ok := s.films[filmID]
	if !ok {
		return nil, storage.NewFilmNotFound(filmID)
	}
	if _, ok := s.users[userID]; !ok {
		return nil, storage.NewUserNotFound(userID)
	}
	s.likes[filmID][userID] = struct{}{}
	return s.filmView(film), nil
}

// Unlike implements storage.LikeStore. Removing an absent like is an
// error, not a no-op.
func (s *Store) Unlike(_ context.Context, filmID, userID int) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	film, ok := s.films[filmID]
	if !ok {
		return nil, storage.NewFilmNotFound(filmID)
	}
	if _, ok := s.users[userID]; !ok {
		return nil, storage.NewUserNotFound(userID)
	}
	if _, ok := s.likes[filmID][userID]; !ok {
		return nil, &storage.LikeNotFoundError{FilmID: filmID, UserID: userID}
	}
	delete(s.likes[filmID], userID)
	return s.filmView(film), nil
}

// MostPopular implements storage.LikeStore. Ties on like count break by
// ascending film id.
func (s *Store) MostPopular(_ context.Context, count int) ([]*models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*models.Film, 0, len(s.films))
	for _, film := range s.films {
		views = append(views, s.filmView(film))
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Rate != views[j].Rate {
			return views[i].Rate > views[j].Rate
		}
		return views[i].ID < views[j].ID
	})
	if count < len(views) {
		views = views[:count]
	}
	return views, nil
}

// AddFriend implements storage.FriendStore. The link is written in both
// directions; repeating it changes nothing. Both affected users are
// returned, requester first.
func (s *Store) AddFriend(_ context.Context, userID, friendID int) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, storage.NewUserNotFound(userID)
	}
	friend, ok := s.users[friendID]
	if !ok {
		return nil, storage.NewUserNotFound(friendID)
	}
	s.friends[userID][friendID] = struct{}{}
	s.friends[friendID][userID] = struct{}{}
	return []*models.User{s.userView(user), s.userView(friend)}, nil
}

// RemoveFriend implements storage.FriendStore. Removing an absent
// friendship succeeds without effect.
func (s *Store) RemoveFriend(_ context.Context, userID, friendID int) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, storage.NewUserNotFound(userID)
	}
	friend, ok := s.users[friendID]
	if !ok {
		return nil, storage.NewUserNotFound(friendID)
	}
	delete(s.friends[userID], friendID)
	delete(s.friends[friendID], userID)
	return []*models.User{s.userView(user), s.userView(friend)}, nil
}

// Friends implements storage.FriendStore. The list is ordered by user id.
func (s *Store) Friends(_ context.Context, userID int) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, storage.NewUserNotFound(userID)
	}
	views := make([]*models.User, 0, len(s.friends[userID]))
	for _, id := range sortedIDs(s.friends[userID]) {
		views = append(views, s.userView(s.users[id]))
	}
	return views, nil
}

// CommonFriends implements storage.FriendStore. The intersection of both
// users' friend sets, ordered by user id.
func (s *Store) CommonFriends(_ context.Context, userID, otherID int) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, storage.NewUserNotFound(userID)
	}
	if _, ok := s.users[otherID]; !ok {
		return nil, storage.NewUserNotFound(otherID)
	}

	common := make(map[int]struct{})
	for id := range s.friends[userID] {
		if _, ok := s.friends[otherID][id]; ok {
			common[id] = struct{}{}
		}
	}
	views := make([]*models.User, 0, len(common))
	for _, id := range sortedIDs(common) {
		views = append(views, s.userView(s.users[id]))
	}
	return views, nil
}
