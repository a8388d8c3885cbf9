// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package api

import (
	"net/http"
	"strconv"

	"github.com/filmorate/filmorate/internal/models"
)

// CreateFilm handles POST /films.
func (h *Handler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := decodeBody(r, &film); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.films.Create(r.Context(), &film)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

// UpdateFilm handles PUT /films. The film id comes from the body, not
// the URL, and must refer to an existing film.
func (h *Handler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := decodeBody(r, &film); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.films.Update(r.Context(), &film)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// ListFilms handles GET /films.
func (h *Handler) ListFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.films.All(r.Context())
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, films)
}

// GetFilm handles GET /films/{id}.
func (h *Handler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	film, err := h.films.Get(r.Context(), id)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, film)
}

// DeleteFilm handles DELETE /films/{id}. The removed film is echoed
// back to the client.
func (h *Handler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := h.films.Delete(r.Context(), id)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, removed)
}

// LikeFilm handles PUT /films/{id}/like/{userId}.
func (h *Handler) LikeFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	film, err := h.films.Like(r.Context(), filmID, userID)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, film)
}

// UnlikeFilm handles DELETE /films/{id}/like/{userId}.
func (h *Handler) UnlikeFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	film, err := h.films.Unlike(r.Context(), filmID, userID)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, film)
}

// PopularFilms handles GET /films/popular?count=N. Without a count
// parameter the configured default applies.
func (h *Handler) PopularFilms(w http.ResponseWriter, r *http.Request) {
	count := h.defaultPopularCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "invalid count: "+strconv.Quote(raw)+" is not an integer")
			return
		}
		count = parsed
	}

	films, err := h.films.Popular(r.Context(), count)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, films)
}
