// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/filmorate/filmorate/internal/logging"
	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/service"
	"github.com/filmorate/filmorate/internal/storage"
	"github.com/filmorate/filmorate/internal/validation"
)

// sanitizeLogValue replaces control characters so attacker-controlled
// strings cannot forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an error body {"error": message} with the given status.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().
			Int("status", status).
			Str("message", sanitizeLogValue(message)).
			Msg("API error")
	}
	respondJSON(w, status, &models.ErrorResponse{Error: message})
}

// mapError translates a domain error into the HTTP response for it.
func mapError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound    *storage.NotFoundError
		likeMissing *storage.LikeNotFoundError
		selfFriend  *service.SelfFriendshipError
		badCount    *service.InvalidCountError
		invalid     *validation.RequestValidationError
	)
	switch {
	case errors.As(err, &notFound):
		respondError(w, r, http.StatusNotFound, notFound.Error())
	case errors.As(err, &likeMissing):
		respondError(w, r, http.StatusBadRequest, likeMissing.Error())
	case errors.As(err, &selfFriend):
		respondError(w, r, http.StatusBadRequest, selfFriend.Error())
	case errors.As(err, &badCount):
		respondError(w, r, http.StatusBadRequest, badCount.Error())
	case errors.As(err, &invalid):
		respondError(w, r, http.StatusBadRequest, invalid.Error())
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Unhandled API error")
		respondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// urlParamInt parses a chi URL parameter as an integer.
func urlParamInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", name, raw)
	}
	return id, nil
}

// decodeBody decodes the request body into v, rejecting malformed JSON.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
