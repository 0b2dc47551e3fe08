package auth

import (
	"errors"
	"strings"
)

// ErrInvalidCredentials is the only failure a client sees for a rejected login,
// whether the email is unknown or the password is wrong.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// ValidationError reports which credential fields are missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, " and ") + " must not be empty"
}

// Reason records why authentication failed. It is for logs only.
type Reason int

const (
	ReasonNotFound Reason = iota + 1
	ReasonMismatch
)

func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "not_found"
	case ReasonMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// AuthenticationError is returned by Service.Authenticate for rejected credentials.
// Its message is identical for every Reason.
type AuthenticationError struct {
	Reason Reason
}

func (e *AuthenticationError) Error() string {
	return ErrInvalidCredentials.Error()
}

func (e *AuthenticationError) Unwrap() error {
	return ErrInvalidCredentials
}
