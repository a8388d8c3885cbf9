// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

// Package models defines the domain types shared across the application:
// Film and User aggregates, the Genre and MPA reference types, the
// calendar Date wire type, and the API error body.
package models
