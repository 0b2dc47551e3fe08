package identity

import "time"

// User is a persisted credential record. Email keeps the casing it was
// registered with; lookups compare it case-insensitively.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
