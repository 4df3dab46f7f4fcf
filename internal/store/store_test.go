package store

import (
	"context"
	"errors"
	"testing"

	"github.com/userhub/userhub/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", "") // in-memory
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testUser(email string) *model.User {
	return &model.User{
		Email:        email,
		PasswordHash: "$2a$10$fakehashfortesting",
		FirstName:    "Test",
		LastName:     "User",
		IsActive:     true,
	}
}

func TestCreateUserAssignsID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("a@example.com")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Error("expected a generated ID")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testUser("dup@example.com")
	if err := s.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	second := testUser("dup@example.com")
	err := s.CreateUser(ctx, second)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// The original record must be untouched.
	got, err := s.GetUserByEmail(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("original record modified: got ID %q, want %q", got.ID, first.ID)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("byid@example.com")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Email != "byid@example.com" {
		t.Errorf("Email: got %q", got.Email)
	}

	if _, err := s.GetUserByID(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing ID, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("update@example.com")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u.FirstName = "Changed"
	u.IsActive = false
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.FirstName != "Changed" {
		t.Errorf("FirstName: got %q, want %q", got.FirstName, "Changed")
	}
	if got.IsActive {
		t.Error("expected IsActive false after update")
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testUser("a@example.com")
	b := testUser("b@example.com")
	if err := s.CreateUser(ctx, a); err != nil {
		t.Fatalf("CreateUser a: %v", err)
	}
	if err := s.CreateUser(ctx, b); err != nil {
		t.Fatalf("CreateUser b: %v", err)
	}

	b.Email = "a@example.com"
	if err := s.UpdateUser(ctx, b); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	s := newTestStore(t)

	u := testUser("gone@example.com")
	u.ID = "nonexistent"
	if err := s.UpdateUser(context.Background(), u); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("delete@example.com")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := s.GetUserByID(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteUser(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"u1@example.com", "u2@example.com", "u3@example.com"} {
		if err := s.CreateUser(ctx, testUser(email)); err != nil {
			t.Fatalf("CreateUser %s: %v", email, err)
		}
	}

	users, total, err := s.ListUsers(ctx, 0, 2)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("page size: got %d, want 2", len(users))
	}

	// Offset past the end yields an empty slice, not an error.
	users, total, err = s.ListUsers(ctx, 10, 2)
	if err != nil {
		t.Fatalf("ListUsers past end: %v", err)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3", total)
	}
	if len(users) != 0 {
		t.Errorf("expected empty page past the end, got %d records", len(users))
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "dsn"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
