// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package api

import "net/http"

type healthStatus struct {
	Status string `json:"status"`
}

// HealthLive handles GET /health/live. It answers as soon as the
// process can serve requests, regardless of storage state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthStatus{Status: "ok"})
}

// HealthReady handles GET /health/ready. Readiness requires the
// storage backend to answer a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, healthStatus{Status: "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, healthStatus{Status: "ok"})
}
