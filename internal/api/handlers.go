// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package api

import (
	"github.com/filmorate/filmorate/internal/service"
	"github.com/filmorate/filmorate/internal/storage"
)

// Handler bundles the request handlers for all API endpoints.
type Handler struct {
	films *service.FilmService
	users *service.UserService
	store storage.Storage

	// defaultPopularCount is used when GET /films/popular has no count
	// parameter.
	defaultPopularCount int
}

// NewHandler creates a Handler backed by the given services. The store
// is only used for readiness probes.
func NewHandler(films *service.FilmService, users *service.UserService, store storage.Storage, defaultPopularCount int) *Handler {
	if defaultPopularCount <= 0 {
		defaultPopularCount = 10
	}
	return &Handler{
		films:               films,
		users:               users,
		store:               store,
		defaultPopularCount: defaultPopularCount,
	}
}
