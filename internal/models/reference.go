// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package models

// Genre is a fixed classification tag attached to films.
// The genre table is static reference data; clients reference genres by id.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Mpa is a fixed MPA content-classification rating (G, PG, PG-13, R, NC-17).
type Mpa struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
