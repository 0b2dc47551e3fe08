package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/acme/login-api/internal/identity"
	"github.com/acme/login-api/internal/notification"
)

// dummyPassword is hashed once per Service so unknown emails cost one bcrypt comparison too.
const dummyPassword = "login-api-timing-equaliser"

// UserFinder is the read side of the user store used for login.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (identity.User, error)
}

// Service authenticates credentials against the user store and announces
// successful logins to the notification dispatcher.
type Service struct {
	users      UserFinder
	dispatcher notification.Dispatcher
	logger     *slog.Logger
	dummyHash  []byte
}

// NewService builds an authentication service. cost should match the cost
// used for stored hashes so rejected lookups take comparable time.
func NewService(users UserFinder, dispatcher notification.Dispatcher, logger *slog.Logger, cost int) (*Service, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Service{users: users, dispatcher: dispatcher, logger: logger, dummyHash: hash}, nil
}

// Authenticate looks the email up case-insensitively and verifies the password.
// Callers pass values already trimmed by ValidateCredentials. The returned error
// is an *AuthenticationError for rejected credentials and a wrapped store error otherwise.
func (s *Service) Authenticate(ctx context.Context, email, password string) (UserInfo, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return UserInfo{}, s.reject(email, ReasonNotFound)
		}
		return UserInfo{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("stored password hash unusable", "user_id", user.ID, "error", err)
		}
		return UserInfo{}, s.reject(email, ReasonMismatch)
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(notification.Message{Email: user.Email, Message: notification.LoginSucceeded})
	}

	return UserInfo{Name: user.Name, Email: user.Email}, nil
}

func (s *Service) reject(email string, reason Reason) error {
	s.logger.Info("login rejected", "email", maskEmail(email), "reason", reason.String())
	return &AuthenticationError{Reason: reason}
}

// maskEmail keeps the first rune of the local part and the domain.
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	r, _ := utf8.DecodeRuneInString(local)
	return string(r) + "***@" + domain
}
