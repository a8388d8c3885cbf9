// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package models

import "strings"

// User is the user aggregate.
//
// Name is a display name; when blank it is defaulted to Login by the entity
// store on create and update. Friends is the derived view of the symmetric
// friendship relation, presented sorted by id.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,nowhitespace"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" validate:"omitempty,notfuture"`
	Friends  []int  `json:"friends"`
}

// DefaultName substitutes the login for a blank display name.
func (u *User) DefaultName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	clone := *u
	clone.Friends = append([]int{}, u.Friends...)
	return &clone
}
