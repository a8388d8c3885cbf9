// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/storage"
)

func testFilm(name string) *models.Film {
	return &models.Film{
		Name:        name,
		Description: "test film",
		ReleaseDate: models.NewDate(1999, time.March, 31),
		Duration:    120,
		Mpa:         &models.Mpa{ID: 3},
	}
}

func testUser(login string) *models.User {
	return &models.User{
		Email:    login + "@mail.ru",
		Login:    login,
		Birthday: models.NewDate(1990, time.January, 15),
	}
}

func mustCreateFilm(t *testing.T, s *Store, name string) *models.Film {
	t.Helper()
	film, err := s.CreateFilm(context.Background(), testFilm(name))
	if err != nil {
		t.Fatalf("CreateFilm(%q) error = %v", name, err)
	}
	return film
}

func mustCreateUser(t *testing.T, s *Store, login string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), testUser(login))
	if err != nil {
		t.Fatalf("CreateUser(%q) error = %v", login, err)
	}
	return user
}

func TestCreateFilmAssignsMonotonicIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := mustCreateFilm(t, s, "first")
	second := mustCreateFilm(t, s, "second")
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}

	removed, err := s.DeleteFilm(ctx, second.ID)
	if err != nil {
		t.Fatalf("DeleteFilm() error = %v", err)
	}
	if removed.ID != second.ID || removed.Name != second.Name {
		t.Errorf("DeleteFilm() = %+v, want the removed film", removed)
	}
	third := mustCreateFilm(t, s, "third")
	if third.ID != 3 {
		t.Errorf("id after delete = %d; want 3 (deleted ids are never reused)", third.ID)
	}
}

func TestCreateFilmResolvesReferenceNames(t *testing.T) {
	s := New()
	in := testFilm("named refs")
	in.Genres = []models.Genre{{ID: 4}, {ID: 1}, {ID: 4}}

	film, err := s.CreateFilm(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateFilm() error = %v", err)
	}
	if film.Mpa.Name != "PG-13" {
		t.Errorf("Mpa.Name = %q, want PG-13", film.Mpa.Name)
	}
	want := []models.Genre{{ID: 1, Name: "Comedy"}, {ID: 4, Name: "Thriller"}}
	if len(film.Genres) != len(want) {
		t.Fatalf("got %d genres, want %d", len(film.Genres), len(want))
	}
	for i := range want {
		if film.Genres[i] != want[i] {
			t.Errorf("genre[%d] = %+v, want %+v", i, film.Genres[i], want[i])
		}
	}
}

func TestCreateFilmUnknownReferences(t *testing.T) {
	s := New()
	ctx := context.Background()

	badMpa := testFilm("bad mpa")
	badMpa.Mpa = &models.Mpa{ID: 99}
	var nf *storage.NotFoundError
	if _, err := s.CreateFilm(ctx, badMpa); !errors.As(err, &nf) || nf.Kind != "mpa rating" {
		t.Errorf("CreateFilm(bad mpa) error = %v, want mpa rating NotFoundError", err)
	}

	badGenre := testFilm("bad genre")
	badGenre.Genres = []models.Genre{{ID: 42}}
	if _, err := s.CreateFilm(ctx, badGenre); !errors.As(err, &nf) || nf.Kind != "genre" {
		t.Errorf("CreateFilm(bad genre) error = %v, want genre NotFoundError", err)
	}
}

func TestUpdateFilmPreservesLikes(t *testing.T) {
	s := New()
	ctx := context.Background()
	film := mustCreateFilm(t, s, "original")
	user := mustCreateUser(t, s, "liker")

	if _, err := s.Like(ctx, film.ID, user.ID); err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	film.Name = "updated"
	film.Rate = 0 // client-supplied rate must be ignored
	updated, err := s.UpdateFilm(ctx, film)
	if err != nil {
		t.Fatalf("UpdateFilm() error = %v", err)
	}
	if updated.Name != "updated" {
		t.Errorf("Name = %q, want updated", updated.Name)
	}
	if updated.Rate != 1 || len(updated.Likes) != 1 || updated.Likes[0] != user.ID {
		t.Errorf("likes not preserved across update: rate=%d likes=%v", updated.Rate, updated.Likes)
	}
}

func TestUpdateFilmUnknownID(t *testing.T) {
	s := New()
	ghost := testFilm("ghost")
	ghost.ID = 9999

	var nf *storage.NotFoundError
	if _, err := s.UpdateFilm(context.Background(), ghost); !errors.As(err, &nf) || nf.Kind != "film" {
		t.Errorf("UpdateFilm(unknown) error = %v, want film NotFoundError", err)
	}
}

func TestLikeIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	film := mustCreateFilm(t, s, "liked")
	user := mustCreateUser(t, s, "liker")

	for i := 0; i < 3; i++ {
		got, err := s.Like(ctx, film.ID, user.ID)
		if err != nil {
			t.Fatalf("Like() #%d error = %v", i+1, err)
		}
		if got.Rate != 1 {
			t.Fatalf("Rate after Like #%d = %d, want 1", i+1, got.Rate)
		}
	}
}

func TestUnlikeAbsentLike(t *testing.T) {
	s := New()
	ctx := context.Background()
	film := mustCreateFilm(t, s, "film")
	user := mustCreateUser(t, s, "user")

	var lnf *storage.LikeNotFoundError
	if _, err := s.Unlike(ctx, film.ID, user.ID); !errors.As(err, &lnf) {
		t.Fatalf("Unlike(absent) error = %v, want LikeNotFoundError", err)
	}

	if _, err := s.Like(ctx, film.ID, user.ID); err != nil {
		t.Fatalf("Like() error = %v", err)
	}
	got, err := s.Unlike(ctx, film.ID, user.ID)
	if err != nil {
		t.Fatalf("Unlike() error = %v", err)
	}
	if got.Rate != 0 {
		t.Errorf("Rate after Unlike = %d, want 0", got.Rate)
	}
}

func TestMostPopularOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Three films, three users. Film 2 gets two likes, films 1 and 3 one
	// like each, so the tie between 1 and 3 breaks by ascending id.
	films := make([]*models.Film, 3)
	users := make([]*models.User, 3)
	for i := 0; i < 3; i++ {
		films[i] = mustCreateFilm(t, s, fmt.Sprintf("film-%d", i+1))
		users[i] = mustCreateUser(t, s, fmt.Sprintf("user%d", i+1))
	}
	for _, pair := range [][2]int{{2, 1}, {2, 2}, {1, 1}, {3, 3}} {
		if _, err := s.Like(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("Like(%d, %d) error = %v", pair[0], pair[1], err)
		}
	}

	got, err := s.MostPopular(ctx, 10)
	if err != nil {
		t.Fatalf("MostPopular() error = %v", err)
	}
	wantOrder := []int{2, 1, 3}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d films, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("popular[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}

	top, err := s.MostPopular(ctx, 1)
	if err != nil {
		t.Fatalf("MostPopular(1) error = %v", err)
	}
	if len(top) != 1 || top[0].ID != 2 {
		t.Errorf("MostPopular(1) = %v, want just film 2", top)
	}
}

func TestFriendshipSymmetry(t *testing.T) {
	s := New()
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	affected, err := s.AddFriend(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("AddFriend() error = %v", err)
	}
	if len(affected) != 2 {
		t.Fatalf("AddFriend returned %d users, want 2", len(affected))
	}

	aliceFriends, err := s.Friends(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Friends(alice) error = %v", err)
	}
	bobFriends, err := s.Friends(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Friends(bob) error = %v", err)
	}
	if len(aliceFriends) != 1 || aliceFriends[0].ID != bob.ID {
		t.Errorf("alice's friends = %v, want [bob]", aliceFriends)
	}
	if len(bobFriends) != 1 || bobFriends[0].ID != alice.ID {
		t.Errorf("bob's friends = %v, want [alice]", bobFriends)
	}

	// Idempotent.
	if _, err := s.AddFriend(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("AddFriend(repeat) error = %v", err)
	}
	aliceFriends, _ = s.Friends(ctx, alice.ID)
	if len(aliceFriends) != 1 {
		t.Errorf("repeat AddFriend grew the friend list: %v", aliceFriends)
	}
}

func TestRemoveFriendAbsentPairIsNoop(t *testing.T) {
	s := New()
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	if _, err := s.RemoveFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("RemoveFriend(absent pair) error = %v, want nil", err)
	}

	if _, err := s.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("AddFriend() error = %v", err)
	}
	if _, err := s.RemoveFriend(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("RemoveFriend() error = %v", err)
	}
	friends, err := s.Friends(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Friends() error = %v", err)
	}
	if len(friends) != 0 {
		t.Errorf("friendship not removed from both sides: %v", friends)
	}
}

func TestCommonFriends(t *testing.T) {
	s := New()
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")

	common, err := s.CommonFriends(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("CommonFriends() error = %v", err)
	}
	if len(common) != 0 {
		t.Fatalf("CommonFriends with no links = %v, want empty", common)
	}

	if _, err := s.AddFriend(ctx, alice.ID, carol.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddFriend(ctx, bob.ID, carol.ID); err != nil {
		t.Fatal(err)
	}
	common, err = s.CommonFriends(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("CommonFriends() error = %v", err)
	}
	if len(common) != 1 || common[0].ID != carol.ID {
		t.Errorf("CommonFriends = %v, want [carol]", common)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	film := mustCreateFilm(t, s, "film")
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	if _, err := s.Like(ctx, film.ID, alice.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	removed, err := s.DeleteUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if removed.ID != alice.ID || removed.Login != alice.Login {
		t.Errorf("DeleteUser() = %+v, want the removed user", removed)
	}

	got, err := s.GetFilm(ctx, film.ID)
	if err != nil {
		t.Fatalf("GetFilm() error = %v", err)
	}
	if got.Rate != 0 {
		t.Errorf("deleted user's like survived: rate = %d", got.Rate)
	}
	bobFriends, err := s.Friends(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Friends(bob) error = %v", err)
	}
	if len(bobFriends) != 0 {
		t.Errorf("deleted user still in bob's friends: %v", bobFriends)
	}
}

func TestCreateUserDefaultsBlankName(t *testing.T) {
	s := New()
	in := testUser("dolore")
	in.Name = "  "

	user, err := s.CreateUser(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.Name != "dolore" {
		t.Errorf("Name = %q, want login %q", user.Name, "dolore")
	}
}

func TestViewsAreIsolatedCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	film := mustCreateFilm(t, s, "immutable")

	view, err := s.GetFilm(ctx, film.ID)
	if err != nil {
		t.Fatal(err)
	}
	view.Name = "mutated"
	view.Mpa.ID = 1

	again, err := s.GetFilm(ctx, film.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Name != "immutable" || again.Mpa.ID != 3 {
		t.Errorf("mutating a returned view changed stored state: %+v", again)
	}
}

func TestConcurrentLikes(t *testing.T) {
	s := New()
	ctx := context.Background()
	film := mustCreateFilm(t, s, "contested")

	const users = 50
	ids := make([]int, users)
	for i := range ids {
		ids[i] = mustCreateUser(t, s, fmt.Sprintf("u%d", i)).ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			if _, err := s.Like(ctx, film.ID, userID); err != nil {
				t.Errorf("Like(%d) error = %v", userID, err)
			}
		}(id)
	}
	wg.Wait()

	got, err := s.GetFilm(ctx, film.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rate != users {
		t.Errorf("Rate = %d, want %d", got.Rate, users)
	}
}
