// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

// Package storage defines the persistence contract for films, users and
// their relations, the typed errors backends report, and the static
// genre and MPA reference data shared by every backend.
//
// Two implementations exist: storage/memory (mutex-guarded maps) and
// storage/duckdb (embedded DuckDB via database/sql). Both satisfy the
// same Storage interface so the rest of the application is
// backend-agnostic.
package storage
