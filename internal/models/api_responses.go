// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package models

// ErrorResponse is the error body returned by every failing endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
