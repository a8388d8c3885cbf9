// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

// Package service implements the application's business rules on top of a
// storage.Storage backend.
//
// Each operation checks in a fixed order: structural validation first,
// then entity existence, then relation state. Self-friendship is the one
// exception; it is rejected before any existence check.
package service
