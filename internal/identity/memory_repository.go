package identity

import (
	"context"
	"strings"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users []User
}

// NewMemoryRepository builds an in-memory user store for development and tests.
// Lookups scan in insertion order, so the earliest registration wins.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	for _, existing := range r.users {
		if strings.ToLower(existing.Email) == key {
			return ErrEmailTaken
		}
	}
	r.users = append(r.users, user)
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := strings.ToLower(email)
	for _, user := range r.users {
		if strings.ToLower(user.Email) == key {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}
