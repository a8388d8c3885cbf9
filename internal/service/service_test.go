// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
	"github.com/filmorate/filmorate/internal/storage/memory"
	"github.com/filmorate/filmorate/internal/validation"
)

func newServices(t *testing.T) (*FilmService, *UserService) {
	t.Helper()
	store := memory.New()
	t.Cleanup(func() { _ = store.Close() })
	return NewFilmService(store), NewUserService(store)
}

func seedFilm(t *testing.T, films *FilmService) *models.Film {
	t.Helper()
	film, err := films.Create(context.Background(), &models.Film{
		Name:        "labore nulla",
		Description: "Duis in consequat esse",
		ReleaseDate: models.NewDate(1979, time.April, 17),
		Duration:    100,
		Mpa:         &models.Mpa{ID: 1},
	})
	if err != nil {
		t.Fatalf("Create(film) error = %v", err)
	}
	return film
}

func seedUser(t *testing.T, users *UserService, login string) *models.User {
	t.Helper()
	user, err := users.Create(context.Background(), &models.User{
		Email:    login + "@mail.ru",
		Login:    login,
		Birthday: models.NewDate(1976, time.September, 20),
	})
	if err != nil {
		t.Fatalf("Create(user %q) error = %v", login, err)
	}
	return user
}

func TestFilmCreateRejectsInvalid(t *testing.T) {
	films, _ := newServices(t)

	bad := &models.Film{
		Name:        "",
		ReleaseDate: models.NewDate(2000, time.January, 1),
		Duration:    90,
		Mpa:         &models.Mpa{ID: 1},
	}
	var ve *validation.RequestValidationError
	if _, err := films.Create(context.Background(), bad); !errors.As(err, &ve) {
		t.Fatalf("Create(invalid) error = %v, want RequestValidationError", err)
	}

	// Nothing must be stored after a validation failure.
	all, err := films.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("invalid film was stored: %v", all)
	}
}

func TestFilmCreateRejectsUnknownMpa(t *testing.T) {
	films, _ := newServices(t)

	var nf *storage.NotFoundError
	_, err := films.Create(context.Background(), &models.Film{
		Name:        "bad ref",
		ReleaseDate: models.NewDate(2000, time.January, 1),
		Duration:    90,
		Mpa:         &models.Mpa{ID: 77},
	})
	if !errors.As(err, &nf) || nf.Kind != "mpa rating" {
		t.Errorf("Create(unknown mpa) error = %v, want mpa rating NotFoundError", err)
	}
}

func TestPopularCountValidation(t *testing.T) {
	films, _ := newServices(t)
	ctx := context.Background()

	var ice *InvalidCountError
	if _, err := films.Popular(ctx, 0); !errors.As(err, &ice) {
		t.Errorf("Popular(0) error = %v, want InvalidCountError", err)
	}
	if _, err := films.Popular(ctx, -5); !errors.As(err, &ice) {
		t.Errorf("Popular(-5) error = %v, want InvalidCountError", err)
	}

	got, err := films.Popular(ctx, 10)
	if err != nil {
		t.Fatalf("Popular(10) on empty store error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Popular on empty store = %v, want empty", got)
	}
}

func TestSelfFriendshipRejectedBeforeExistence(t *testing.T) {
	_, users := newServices(t)
	ctx := context.Background()

	// Id 1 does not exist yet; the self check must still win.
	var sfe *SelfFriendshipError
	if _, err := users.AddFriend(ctx, 1, 1); !errors.As(err, &sfe) {
		t.Fatalf("AddFriend(1, 1) on empty store error = %v, want SelfFriendshipError", err)
	}

	// Same outcome once the user exists.
	alice := seedUser(t, users, "alice")
	if _, err := users.AddFriend(ctx, alice.ID, alice.ID); !errors.As(err, &sfe) {
		t.Errorf("AddFriend(self) error = %v, want SelfFriendshipError", err)
	}
}

func TestAddFriendUnknownUsers(t *testing.T) {
	_, users := newServices(t)
	ctx := context.Background()
	alice := seedUser(t, users, "alice")

	var nf *storage.NotFoundError
	if _, err := users.AddFriend(ctx, alice.ID, 999); !errors.As(err, &nf) {
		t.Errorf("AddFriend(known, unknown) error = %v, want NotFoundError", err)
	}
	if _, err := users.AddFriend(ctx, 999, alice.ID); !errors.As(err, &nf) {
		t.Errorf("AddFriend(unknown, known) error = %v, want NotFoundError", err)
	}
}

// Full like lifecycle: create, like from two users, peek ranking, unlike.
func TestLikeLifecycle(t *testing.T) {
	films, users := newServices(t)
	ctx := context.Background()

	film := seedFilm(t, films)
	other, err := films.Create(ctx, &models.Film{
		Name:        "second film",
		ReleaseDate: models.NewDate(1985, time.July, 3),
		Duration:    113,
		Mpa:         &models.Mpa{ID: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	if _, err := films.Like(ctx, other.ID, alice.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := films.Like(ctx, other.ID, bob.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := films.Like(ctx, film.ID, alice.ID); err != nil {
		t.Fatal(err)
	}

	popular, err := films.Popular(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(popular) != 2 || popular[0].ID != other.ID || popular[1].ID != film.ID {
		t.Fatalf("unexpected ranking: %v", popular)
	}

	unliked, err := films.Unlike(ctx, other.ID, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	if unliked.Rate != 1 {
		t.Errorf("Rate after unlike = %d, want 1", unliked.Rate)
	}

	var lnf *storage.LikeNotFoundError
	if _, err := films.Unlike(ctx, other.ID, bob.ID); !errors.As(err, &lnf) {
		t.Errorf("second Unlike error = %v, want LikeNotFoundError", err)
	}
}

// Friendship lifecycle across three users, including the common-friends view.
func TestFriendshipLifecycle(t *testing.T) {
	_, users := newServices(t)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	carol := seedUser(t, users, "carol")

	if _, err := users.AddFriend(ctx, alice.ID, carol.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := users.AddFriend(ctx, bob.ID, carol.ID); err != nil {
		t.Fatal(err)
	}

	common, err := users.CommonFriends(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(common) != 1 || common[0].ID != carol.ID {
		t.Fatalf("CommonFriends = %v, want [carol]", common)
	}

	// Removal from either side clears both directions.
	if _, err := users.RemoveFriend(ctx, carol.ID, alice.ID); err != nil {
		t.Fatal(err)
	}
	aliceFriends, err := users.Friends(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(aliceFriends) != 0 {
		t.Errorf("alice still has friends after removal: %v", aliceFriends)
	}

	// Absent pair removal stays a no-op.
	if _, err := users.RemoveFriend(ctx, alice.ID, carol.ID); err != nil {
		t.Errorf("RemoveFriend(absent) error = %v, want nil", err)
	}
}

func TestUserUpdatePreservesFriends(t *testing.T) {
	_, users := newServices(t)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	if _, err := users.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	alice.Name = "Alice A."
	updated, err := users.Update(ctx, alice)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Friends) != 1 || updated.Friends[0] != bob.ID {
		t.Errorf("friends lost across update: %v", updated.Friends)
	}
}
