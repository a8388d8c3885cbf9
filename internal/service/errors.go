// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package service

import "fmt"

// SelfFriendshipError reports an attempt by a user to befriend themselves.
// The API layer maps it to 400. It is raised before any existence check,
// so the id involved may not belong to a real user.
type SelfFriendshipError struct {
	UserID int
}

func (e *SelfFriendshipError) Error() string {
	return fmt.Sprintf("user %d cannot befriend themselves", e.UserID)
}

// InvalidCountError reports a non-positive popular-films count.
type InvalidCountError struct {
	Count int
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("count must be positive, got %d", e.Count)
}
