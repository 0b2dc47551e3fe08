package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/acme/login-api/internal/identity"
	"github.com/acme/login-api/internal/notification"
)

type countingFinder struct {
	mu      sync.Mutex
	inner   identity.Repository
	lookups int
}

func (f *countingFinder) FindByEmail(ctx context.Context, email string) (identity.User, error) {
	f.mu.Lock()
	f.lookups++
	f.mu.Unlock()
	return f.inner.FindByEmail(ctx, email)
}

func (f *countingFinder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookups
}

type recordingDispatcher struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (d *recordingDispatcher) Dispatch(message notification.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, message)
}

func (d *recordingDispatcher) sent() []notification.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notification.Message(nil), d.messages...)
}

// seedAlice stores the record used throughout: Alice / alice@example.com / secret.
func seedAlice(t *testing.T) identity.Repository {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := identity.NewMemoryRepository()
	err = repo.Create(context.Background(), identity.User{
		ID:           "8d6f5f0e-1d6b-4e55-9a5a-0c1f0b8c2a11",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}
