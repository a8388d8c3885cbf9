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

// UserService carries user CRUD and the symmetric friendship relation.
type UserService struct {
	store storage.Storage
}

// NewUserService builds a UserService on the given backend.
func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

// Create validates and stores a new user. A blank display name is
// defaulted to the login by the store.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validation.ValidateStruct(user); err != nil {
		return nil, err
	}
	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int("user_id", created.ID).Str("login", created.Login).Msg("user created")
	return created, nil
}

// Update validates and replaces an existing user. Friendships survive
// the update.
func (s *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validation.ValidateStruct(user); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// Delete removes a user along with their likes and friendships,
// returning the removed record.
func (s *UserService) Delete(ctx context.Context, id int) (*models.User, error) {
	removed, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int("user_id", id).Msg("user deleted")
	return removed, nil
}

// All returns every user, ordered by id.
func (s *UserService) All(ctx context.Context) ([]*models.User, error) {
	return s.store.AllUsers(ctx)
}

// AddFriend links two users symmetrically. The self-friendship check runs
// before any existence check, so befriending yourself fails the same way
// whether or not the id exists.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int) ([]*models.User, error) {
	if userID == friendID {
		return nil, &SelfFriendshipError{UserID: userID}
	}
	affected, err := s.store.AddFriend(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().Int("user_id", userID).Int("friend_id", friendID).Msg("friendship added")
	return affected, nil
}

// RemoveFriend unlinks two users. An absent friendship is a no-op.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int) ([]*models.User, error) {
	affected, err := s.store.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().Int("user_id", userID).Int("friend_id", friendID).Msg("friendship removed")
	return affected, nil
}

// Friends lists a user's friends ordered by id.
func (s *UserService) Friends(ctx context.Context, userID int) ([]*models.User, error) {
	return s.store.Friends(ctx, userID)
}

// CommonFriends lists the friends two users share, ordered by id.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int) ([]*models.User, error) {
	return s.store.CommonFriends(ctx, userID, otherID)
}
