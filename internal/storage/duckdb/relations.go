// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// requireFilm returns a typed not-found error when the film is absent.
func (db *DB) requireFilm(ctx context.Context, id int) error {
	exists, err := db.FilmExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return storage.NewFilmNotFound(id)
	}
	return nil
}

func (db *DB) requireUser(ctx context.Context, id int) error {
	exists, err := db.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return storage.NewUserNotFound(id)
	}
	return nil
}

// Like implements storage.LikeStore. The primary key on (film_id, user_id)
// plus ON CONFLICT DO NOTHING makes repeats no-ops.
func (db *DB) Like(ctx context.Context, filmID, userID int) (*models.Film, error) {
	if err := db.requireFilm(ctx, filmID); err != nil {
		return nil, err
	}
	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	stmt, err := db.getStmt(ctx,
		`INSERT INTO likes (film_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING`)
	if err != nil {
		return nil, err
	}
	if _, err := stmt.ExecContext(ctx, filmID, userID); err != nil {
		return nil, fmt.Errorf("insert like: %w", err)
	}
	return db.GetFilm(ctx, filmID)
}

// Unlike implements storage.LikeStore. Zero rows affected means the like
// was never placed.
func (db *DB) Unlike(ctx context.Context, filmID, userID int) (*models.Film, error) {
	if err := db.requireFilm(ctx, filmID); err != nil {
		return nil, err
	}
	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	stmt, err := db.getStmt(ctx,
		`DELETE FROM likes WHERE film_id = ? AND user_id = ?`)
	if err != nil {
		return nil, err
	}
	res, err := stmt.ExecContext(ctx, filmID, userID)
	if err != nil {
		return nil, fmt.Errorf("delete like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete like rows affected: %w", err)
	}
	if affected == 0 {
		return nil, &storage.LikeNotFoundError{FilmID: filmID, UserID: userID}
	}
	return db.GetFilm(ctx, filmID)
}

// MostPopular implements storage.LikeStore. The ranking happens in SQL;
// genre and like views are hydrated afterwards.
func (db *DB) MostPopular(ctx context.Context, count int) ([]*models.Film, error) {
	return db.scanFilms(ctx, `
		SELECT `+filmColumns+`
		FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		LEFT JOIN likes l ON l.film_id = f.id
		GROUP BY f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name
		ORDER BY COUNT(l.user_id) DESC, f.id ASC
		LIMIT ?`, count)
}

// AddFriend implements storage.FriendStore. Both directions are written
// in one transaction so the relation can never be observed half-linked.
func (db *DB) AddFriend(ctx context.Context, userID, friendID int) ([]*models.User, error) {
	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := db.requireUser(ctx, friendID); err != nil {
		return nil, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, pair := range [][2]int{{userID, friendID}, {friendID, userID}} {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO friendships (user_id, friend_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			pair[0], pair[1])
		if err != nil {
			return nil, fmt.Errorf("insert friendship: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit friendship: %w", err)
	}

	return db.affectedUsers(ctx, userID, friendID)
}

// RemoveFriend implements storage.FriendStore. Deleting an absent pair
// affects zero rows and is not an error.
func (db *DB) RemoveFriend(ctx context.Context, userID, friendID int) ([]*models.User, error) {
	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := db.requireUser(ctx, friendID); err != nil {
		return nil, err
	}

	_, err := db.conn.ExecContext(ctx, `
		DELETE FROM friendships
		WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)`,
		userID, friendID, friendID, userID)
	if err != nil {
		return nil, fmt.Errorf("delete friendship: %w", err)
	}

	return db.affectedUsers(ctx, userID, friendID)
}

func (db *DB) affectedUsers(ctx context.Context, userID, friendID int) ([]*models.User, error) {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	friend, err := db.GetUser(ctx, friendID)
	if err != nil {
		return nil, err
	}
	return []*models.User{user, friend}, nil
}

// Friends implements storage.FriendStore.
func (db *DB) Friends(ctx context.Context, userID int) ([]*models.User, error) {
	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return db.scanUsers(ctx, `
		SELECT u.id, u.email, u.login, u.name, u.birthday
		FROM users u
		JOIN friendships f ON f.friend_id = u.id
		WHERE f.user_id = ?
		ORDER BY u.id`, userID)
}

// CommonFriends implements storage.FriendStore.
func (db *DB) CommonFriends(ctx context.Context, userID, otherID int) ([]*models.User, error) {
	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := db.requireUser(ctx, otherID); err != nil {
		return nil, err
	}
	return db.scanUsers(ctx, `
		SELECT u.id, u.email, u.login, u.name, u.birthday
		FROM users u
		JOIN friendships a ON a.friend_id = u.id AND a.user_id = ?
		JOIN friendships b ON b.friend_id = u.id AND b.user_id = ?
		ORDER BY u.id`, userID, otherID)
}

// AllGenres implements storage.ReferenceStore.
func (db *DB) AllGenres(ctx context.Context) ([]models.Genre, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// Genre implements storage.ReferenceStore.
func (db *DB) Genre(ctx context.Context, id int) (models.Genre, error) {
	var g models.Genre
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name FROM genres WHERE id = ?`, id).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Genre{}, storage.NewGenreNotFound(id)
	}
	if err != nil {
		return models.Genre{}, fmt.Errorf("query genre: %w", err)
	}
	return g, nil
}

// AllMpa implements storage.ReferenceStore.
func (db *DB) AllMpa(ctx context.Context) ([]models.Mpa, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM mpa_ratings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query mpa ratings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ratings []models.Mpa
	for rows.Next() {
		var m models.Mpa
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan mpa rating: %w", err)
		}
		ratings = append(ratings, m)
	}
	return ratings, rows.Err()
}

// Mpa implements storage.ReferenceStore.
func (db *DB) Mpa(ctx context.Context, id int) (models.Mpa, error) {
	var m models.Mpa
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name FROM mpa_ratings WHERE id = ?`, id).Scan(&m.ID, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Mpa{}, storage.NewMpaNotFound(id)
	}
	if err != nil {
		return models.Mpa{}, fmt.Errorf("query mpa rating: %w", err)
	}
	return m, nil
}
