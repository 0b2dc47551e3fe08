package identity

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterAndFind(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcrypt.MinCost)

	ctx := context.Background()
	user, err := svc.Register(ctx, " Alice ", " Alice@Example.com ", "correct horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.Name != "Alice" {
		t.Fatalf("expected trimmed name, got %q", user.Name)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	found, err := repo.FindByEmail(ctx, "ALICE@example.COM")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected %s, got %s", user.ID, found.ID)
	}
}

func TestRegisterRejectsDuplicateEmailInAnyCase(t *testing.T) {
	svc := NewService(NewMemoryRepository(), bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Bob", "bob@example.com", "password1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "Bobby", "BOB@example.com", "password2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewService(NewMemoryRepository(), bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "x@example.com", "password1"); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := svc.Register(ctx, "X", "x@example.com", "short"); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestFindByEmailNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	if _, err := repo.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByEmailFirstMatchWins(t *testing.T) {
	repo := &memoryRepository{users: []User{
		{ID: "1", Name: "First", Email: "Dup@example.com"},
		{ID: "2", Name: "Second", Email: "dup@EXAMPLE.com"},
	}}

	user, err := repo.FindByEmail(context.Background(), "dup@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if user.ID != "1" {
		t.Fatalf("expected first record, got %s", user.ID)
	}
}

func TestTrimStripsOnlyASCIIControlAndSpace(t *testing.T) {
	cases := map[string]string{
		" \t\x00alice\r\n\x1f": "alice",
		"\u00a0alice\u00a0":    "\u00a0alice\u00a0",
		"\x7falice":            "\x7falice",
		"":                     "",
	}
	for in, want := range cases {
		if got := Trim(in); got != want {
			t.Fatalf("Trim(%q) = %q, want %q", in, got, want)
		}
	}
	if got := NormalizeEmail("\x00 Alice@Example.COM\n"); got != "alice@example.com" {
		t.Fatalf("unexpected normalized email %q", got)
	}
}
