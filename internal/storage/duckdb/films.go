// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

// idPlaceholders builds a "?, ?, ..." list and its argument slice for an
// IN clause over the given ids.
func idPlaceholders(ids []int) (string, []interface{}) {
	marks := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	return strings.Join(marks, ", "), args
}

// filmColumns is the select list every film query must produce, in the
// order scanFilms expects.
const filmColumns = `f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name`

// scanFilms runs a film query selecting filmColumns and hydrates the
// genre and like views for every returned film.
func (db *DB) scanFilms(ctx context.Context, query string, args ...interface{}) ([]*models.Film, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query films: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var films []*models.Film
	byID := make(map[int]*models.Film)
	for rows.Next() {
		film := &models.Film{Mpa: &models.Mpa{}, Genres: []models.Genre{}, Likes: []int{}}
		var release time.Time
		if err := rows.Scan(&film.ID, &film.Name, &film.Description, &release,
			&film.Duration, &film.Mpa.ID, &film.Mpa.Name); err != nil {
			return nil, fmt.Errorf("scan film: %w", err)
		}
		film.ReleaseDate = models.Date{Time: release}
		films = append(films, film)
		byID[film.ID] = film
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate films: %w", err)
	}
	if len(films) == 0 {
		return []*models.Film{}, nil
	}

	ids := make([]int, 0, len(films))
	for _, film := range films {
		ids = append(ids, film.ID)
	}
	if err := db.hydrateGenres(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := db.hydrateLikes(ctx, byID, ids); err != nil {
		return nil, err
	}
	return films, nil
}

func (db *DB) hydrateGenres(ctx context.Context, byID map[int]*models.Film, ids []int) error {
	marks, args := idPlaceholders(ids)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT fg.film_id, g.id, g.name
		FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id IN (`+marks+`)
		ORDER BY fg.film_id, g.id`, args...)
	if err != nil {
		return fmt.Errorf("query film genres: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var filmID int
		var genre models.Genre
		if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return fmt.Errorf("scan film genre: %w", err)
		}
		if film, ok := byID[filmID]; ok {
			film.Genres = append(film.Genres, genre)
		}
	}
	return rows.Err()
}

func (db *DB) hydrateLikes(ctx context.Context, byID map[int]*models.Film, ids []int) error {
	marks, args := idPlaceholders(ids)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT film_id, user_id FROM likes
		WHERE film_id IN (`+marks+`)
		ORDER BY film_id, user_id`, args...)
	if err != nil {
		return fmt.Errorf("query likes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var filmID, userID int
		if err := rows.Scan(&filmID, &userID); err != nil {
			return fmt.Errorf("scan like: %w", err)
		}
		if film, ok := byID[filmID]; ok {
			film.Likes = append(film.Likes, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, film := range byID {
		film.Rate = len(film.Likes)
	}
	return nil
}

// checkFilmRefs verifies the MPA rating and every genre id exist, using
// the transaction so creates and updates see a consistent catalog.
func checkFilmRefs(ctx context.Context, tx *sql.Tx, film *models.Film) error {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM mpa_ratings WHERE id = ?)`, film.Mpa.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check mpa rating: %w", err)
	}
	if !exists {
		return storage.NewMpaNotFound(film.Mpa.ID)
	}
	for _, g := range film.Genres {
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM genres WHERE id = ?)`, g.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check genre: %w", err)
		}
		if !exists {
			return storage.NewGenreNotFound(g.ID)
		}
	}
	return nil
}

func insertFilmGenres(ctx context.Context, tx *sql.Tx, filmID int, genres []models.Genre) error {
	for _, g := range genres {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			filmID, g.ID)
		if err != nil {
			return fmt.Errorf("insert film genre: %w", err)
		}
	}
	return nil
}

// CreateFilm implements storage.FilmStore.
func (db *DB) CreateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	stored := film.Clone()
	stored.NormalizeGenres()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkFilmRefs(ctx, tx, stored); err != nil {
		return nil, err
	}

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		stored.Name, stored.Description, stored.ReleaseDate.Time, stored.Duration, stored.Mpa.ID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert film: %w", err)
	}

	if err := insertFilmGenres(ctx, tx, id, stored.Genres); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit film insert: %w", err)
	}

	return db.GetFilm(ctx, id)
}

// UpdateFilm implements storage.FilmStore. Scalars and the genre set are
// replaced; rows in likes are untouched.
func (db *DB) UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	stored := film.Clone()
	stored.NormalizeGenres()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkFilmRefs(ctx, tx, stored); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE films
		SET name = ?, description = ?, release_date = ?, duration = ?, mpa_id = ?
		WHERE id = ?`,
		stored.Name, stored.Description, stored.ReleaseDate.Time, stored.Duration,
		stored.Mpa.ID, stored.ID)
	if err != nil {
		return nil, fmt.Errorf("update film: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update film rows affected: %w", err)
	}
	if affected == 0 {
		return nil, storage.NewFilmNotFound(stored.ID)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM film_genres WHERE film_id = ?`, stored.ID); err != nil {
		return nil, fmt.Errorf("clear film genres: %w", err)
	}
	if err := insertFilmGenres(ctx, tx, stored.ID, stored.Genres); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit film update: %w", err)
	}

	return db.GetFilm(ctx, stored.ID)
}

// GetFilm implements storage.FilmStore.
func (db *DB) GetFilm(ctx context.Context, id int) (*models.Film, error) {
	films, err := db.scanFilms(ctx, `
		SELECT `+filmColumns+`
		FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		WHERE f.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, storage.NewFilmNotFound(id)
	}
	return films[0], nil
}

// DeleteFilm implements storage.FilmStore. Genre links and likes cascade;
// the film is read and removed in one call so the returned record is the
// state the delete observed.
func (db *DB) DeleteFilm(ctx context.Context, id int) (*models.Film, error) {
	removed, err := db.GetFilm(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE film_id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete film likes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete film genres: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM films WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("delete film: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete film rows affected: %w", err)
	}
	if affected == 0 {
		// Lost a race with a concurrent delete.
		return nil, storage.NewFilmNotFound(id)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit film delete: %w", err)
	}
	return removed, nil
}

// AllFilms implements storage.FilmStore.
func (db *DB) AllFilms(ctx context.Context) ([]*models.Film, error) {
	return db.scanFilms(ctx, `
		SELECT `+filmColumns+`
		FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		ORDER BY f.id`)
}

// FilmExists implements storage.FilmStore.
func (db *DB) FilmExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM films WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check film existence: %w", err)
	}
	return exists, nil
}
