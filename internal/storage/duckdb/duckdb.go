// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

// Package duckdb implements storage.Storage on an embedded DuckDB database
// accessed through database/sql.
//
// Ids come from sequences so they are never reused after deletes. The
// symmetric friendship relation is stored as two rows, one per direction,
// which keeps every friend query a plain equality filter. Idempotent
// relation writes use INSERT ... ON CONFLICT DO NOTHING.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/filmorate/filmorate/internal/logging"
	"github.com/filmorate/filmorate/internal/storage"
)

// Config holds DuckDB backend settings.
type Config struct {
	// Path is the database file, or ":memory:" for an ephemeral database.
	Path string

	// MaxMemory caps DuckDB's memory use, e.g. "512MB". Empty for default.
	MaxMemory string

	// Threads is the DuckDB worker thread count. Zero means NumCPU.
	Threads int
}

var _ storage.Storage = (*DB)(nil)

// DB is a DuckDB-backed storage.Storage implementation.
type DB struct {
	conn *sql.DB
	path string

	// Prepared statement cache for the hot relation paths.
	stmtCache   map[string]*sql.Stmt
	stmtCacheMu sync.RWMutex
}

// Open opens (creating if needed) the database at cfg.Path and initializes
// the schema and reference data.
func Open(cfg Config) (*DB, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "512MB"
	}

	// Ensure the parent directory exists for file-backed databases.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dbDir, err)
			}
		}
	}

	// Auto-install/auto-load of extensions stays off; nothing here needs
	// them and it avoids network access in restricted environments.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, threads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := &DB{
		conn:      conn,
		path:      cfg.Path,
		stmtCache: make(map[string]*sql.Stmt),
	}
	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	logging.Debug().Str("path", cfg.Path).Int("threads", threads).Msg("duckdb storage opened")
	return db, nil
}

// configureConnectionPool sets connection pool parameters.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates the schema and seeds the reference catalogs.
func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.createSchema(ctx); err != nil {
		return err
	}
	if err := db.seedReferenceData(ctx); err != nil {
		return err
	}

	// Flush the WAL so a crash right after startup does not have to
	// replay schema statements.
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("checkpoint after schema initialization failed")
	}
	return nil
}

func (db *DB) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE SEQUENCE IF NOT EXISTS films_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS mpa_ratings (
			id INTEGER PRIMARY KEY,
			name VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS genres (
			id INTEGER PRIMARY KEY,
			name VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS films (
			id INTEGER PRIMARY KEY DEFAULT nextval('films_id_seq'),
			name VARCHAR NOT NULL,
			description VARCHAR NOT NULL DEFAULT '',
			release_date DATE NOT NULL,
			duration INTEGER NOT NULL,
			mpa_id INTEGER NOT NULL REFERENCES mpa_ratings(id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY DEFAULT nextval('users_id_seq'),
			email VARCHAR NOT NULL,
			login VARCHAR NOT NULL,
			name VARCHAR NOT NULL,
			birthday DATE
		)`,
		`CREATE TABLE IF NOT EXISTS film_genres (
			film_id INTEGER NOT NULL,
			genre_id INTEGER NOT NULL REFERENCES genres(id),
			PRIMARY KEY (film_id, genre_id)
		)`,
		`CREATE TABLE IF NOT EXISTS likes (
			film_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			PRIMARY KEY (film_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			user_id INTEGER NOT NULL,
			friend_id INTEGER NOT NULL,
			PRIMARY KEY (user_id, friend_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (db *DB) seedReferenceData(ctx context.Context) error {
	for _, g := range storage.SeedGenres() {
		_, err := db.conn.ExecContext(ctx,
			`INSERT INTO genres (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`, g.ID, g.Name)
		if err != nil {
			return fmt.Errorf("seed genres: %w", err)
		}
	}
	for _, m := range storage.SeedMpa() {
		_, err := db.conn.ExecContext(ctx,
			`INSERT INTO mpa_ratings (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`, m.ID, m.Name)
		if err != nil {
			return fmt.Errorf("seed mpa ratings: %w", err)
		}
	}
	return nil
}

// getStmt returns a cached prepared statement for the query, preparing it
// on first use.
func (db *DB) getStmt(ctx context.Context, query string) (*sql.Stmt, error) {
	db.stmtCacheMu.RLock()
	stmt, ok := db.stmtCache[query]
	db.stmtCacheMu.RUnlock()
	if ok {
		return stmt, nil
	}

	db.stmtCacheMu.Lock()
	defer db.stmtCacheMu.Unlock()
	if stmt, ok := db.stmtCache[query]; ok {
		return stmt, nil
	}
	stmt, err := db.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	db.stmtCache[query] = stmt
	return stmt, nil
}

// Checkpoint forces a WAL checkpoint.
func (db *DB) Checkpoint(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// Ping implements storage.Storage.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close closes prepared statements and the connection, checkpointing
// first so the next startup does not replay the WAL.
func (db *DB) Close() error {
	db.stmtCacheMu.Lock()
	for _, stmt := range db.stmtCache {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
	db.stmtCache = make(map[string]*sql.Stmt)
	db.stmtCacheMu.Unlock()

	if db.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("checkpoint before close failed")
	}
	return db.conn.Close()
}
