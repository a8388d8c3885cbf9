// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package api

import "net/http"

// ListGenres handles GET /genres.
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.films.Genres(r.Context())
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, genres)
}

// GetGenre handles GET /genres/{id}.
func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	genre, err := h.films.Genre(r.Context(), id)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, genre)
}

// ListMpa handles GET /mpa.
func (h *Handler) ListMpa(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.films.MpaRatings(r.Context())
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ratings)
}

// GetMpa handles GET /mpa/{id}.
func (h *Handler) GetMpa(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rating, err := h.films.MpaRating(r.Context(), id)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rating)
}
