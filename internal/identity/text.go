package identity

import "strings"

// Trim strips leading and trailing ASCII control characters and spaces
// (every rune <= U+0020). Unicode spaces such as U+00A0 are kept.
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

// NormalizeEmail trims the address and lowercases it for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(Trim(email))
}
