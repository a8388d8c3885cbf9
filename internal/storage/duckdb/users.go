// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// scanUsers runs a user query selecting id, email, login, name, birthday
// and hydrates each user's friend list.
func (db *DB) scanUsers(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []*models.User
	byID := make(map[int]*models.User)
	for rows.Next() {
		user := &models.User{Friends: []int{}}
		var birthday sql.NullTime
		if err := rows.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &birthday); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if birthday.Valid {
			user.Birthday = models.Date{Time: birthday.Time}
		}
		users = append(users, user)
		byID[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	if len(users) == 0 {
		return []*models.User{}, nil
	}

	ids := make([]int, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	if err := db.hydrateFriends(ctx, byID, ids); err != nil {
		return nil, err
	}
	return users, nil
}

func (db *DB) hydrateFriends(ctx context.Context, byID map[int]*models.User, ids []int) error {
	marks, args := idPlaceholders(ids)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT user_id, friend_id FROM friendships
		WHERE user_id IN (`+marks+`)
		ORDER BY user_id, friend_id`, args...)
	if err != nil {
		return fmt.Errorf("query friendships: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var userID, friendID int
		if err := rows.Scan(&userID, &friendID); err != nil {
			return fmt.Errorf("scan friendship: %w", err)
		}
		if user, ok := byID[userID]; ok {
			user.Friends = append(user.Friends, friendID)
		}
	}
	return rows.Err()
}

// birthdayArg maps the zero date to NULL.
func birthdayArg(u *models.User) interface{} {
	if u.Birthday.IsZero() {
		return nil
	}
	return u.Birthday.Time
}

// CreateUser implements storage.UserStore.
func (db *DB) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	stored := user.Clone()
	stored.DefaultName()

	var id int
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO users (email, login, name, birthday)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		stored.Email, stored.Login, stored.Name, birthdayArg(stored),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return db.GetUser(ctx, id)
}

// UpdateUser implements storage.UserStore. Friendships are untouched; a
// blank name is defaulted to the login here too.
func (db *DB) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	stored := user.Clone()
	stored.DefaultName()

	res, err := db.conn.ExecContext(ctx, `
		UPDATE users SET email = ?, login = ?, name = ?, birthday = ? WHERE id = ?`,
		stored.Email, stored.Login, stored.Name, birthdayArg(stored), stored.ID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update user rows affected: %w", err)
	}
	if affected == 0 {
		return nil, storage.NewUserNotFound(stored.ID)
	}
	return db.GetUser(ctx, stored.ID)
}

// GetUser implements storage.UserStore.
func (db *DB) GetUser(ctx context.Context, id int) (*models.User, error) {
	users, err := db.scanUsers(ctx, `
		SELECT id, email, login, name, birthday FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, storage.NewUserNotFound(id)
	}
	return users[0], nil
}

// DeleteUser implements storage.UserStore. The user's likes and both
// directions of their friendships cascade; the removed user is returned
// from the same storage call.
func (db *DB) DeleteUser(ctx context.Context, id int) (*models.User, error) {
	removed, err := db.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE user_id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete user likes: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM friendships WHERE user_id = ? OR friend_id = ?`, id, id); err != nil {
		return nil, fmt.Errorf("delete user friendships: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		// Lost a race with a concurrent delete.
		return nil, storage.NewUserNotFound(id)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit user delete: %w", err)
	}
	return removed, nil
}

// AllUsers implements storage.UserStore.
func (db *DB) AllUsers(ctx context.Context) ([]*models.User, error) {
	return db.scanUsers(ctx, `
		SELECT id, email, login, name, birthday FROM users ORDER BY id`)
}

// UserExists implements storage.UserStore.
func (db *DB) UserExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}
	return exists, nil
}
