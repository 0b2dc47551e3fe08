package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Service manages user registration.
type Service struct {
	repo Repository
	cost int
}

// NewService creates a new identity service hashing passwords at the given bcrypt cost.
func NewService(repo Repository, cost int) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, cost: cost}
}

// Register stores a new user with a bcrypt hash of the password. The email is
// stored lowercased so it doubles as the canonical form returned on login.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	name = Trim(name)
	email = NormalizeEmail(email)
	password = Trim(password)

	if name == "" || email == "" {
		return User{}, errors.New("name and email are required")
	}
	if len(password) < minPasswordLength {
		return User{}, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}
