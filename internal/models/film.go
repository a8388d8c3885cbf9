// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package models

import "sort"

// Film is the film aggregate.
//
// Rate is derived from the Like relation (always len(Likes)); it is never
// accepted from clients. Likes and Genres are presented sorted by id so
// responses are deterministic.
//
// Validation tags follow go-playground/validator v10 syntax; releasedatefloor
// and notfuture are custom validators registered by the validation package.
type Film struct {
	ID          int     `json:"id"`
	Name        string  `json:"name" validate:"required,notblank"`
	Description string  `json:"description" validate:"max=200"`
	ReleaseDate Date    `json:"releaseDate" validate:"required,releasedatefloor,notfuture"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Rate        int     `json:"rate"`
	Mpa         *Mpa    `json:"mpa" validate:"required"`
	Genres      []Genre `json:"genres"`
	Likes       []int   `json:"likes"`
}

// NormalizeGenres deduplicates the genre list by id and sorts it ascending.
// Genre sets are order-insignificant for equality but presented sorted.
func (f *Film) NormalizeGenres() {
	if len(f.Genres) == 0 {
		f.Genres = []Genre{}
		return
	}
	seen := make(map[int]bool, len(f.Genres))
	out := f.Genres[:0]
	for _, g := range f.Genres {
		if !seen[g.ID] {
			seen[g.ID] = true
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	f.Genres = out
}

// Clone returns a deep copy of the film.
// Storage backends hand out clones so callers cannot mutate stored state.
func (f *Film) Clone() *Film {
	clone := *f
	if f.Mpa != nil {
		mpa := *f.Mpa
		clone.Mpa = &mpa
	}
	clone.Genres = append([]Genre{}, f.Genres...)
	clone.Likes = append([]int{}, f.Likes...)
	return &clone
}
