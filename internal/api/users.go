// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package api

import (
	"net/http"

	"github.com/filmorate/filmorate/internal/models"
)

// CreateUser handles POST /users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.users.Create(r.Context(), &user)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

// UpdateUser handles PUT /users.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.users.Update(r.Context(), &user)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.All(r.Context())
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}. The removed user is echoed
// back to the client.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := h.users.Delete(r.Context(), id)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, removed)
}

// AddFriend handles PUT /users/{id}/friends/{friendId}.
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	friendID, err := urlParamInt(r, "friendId")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.users.AddFriend(r.Context(), userID, friendID)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// RemoveFriend handles DELETE /users/{id}/friends/{friendId}.
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	friendID, err := urlParamInt(r, "friendId")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.users.RemoveFriend(r.Context(), userID, friendID)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// ListFriends handles GET /users/{id}/friends.
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	friends, err := h.users.Friends(r.Context(), userID)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, friends)
}

// CommonFriends handles GET /users/{id}/friends/common/{otherId}.
func (h *Handler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	otherID, err := urlParamInt(r, "otherId")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	common, err := h.users.CommonFriends(r.Context(), userID, otherID)
	if err != nil {
		mapError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, common)
}
