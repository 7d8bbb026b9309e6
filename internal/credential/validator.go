package credential

import (
	"strings"
	"unicode"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// ValidateEmail performs a syntactic smoke test on a raw email.
// It only requires an '@' and a '.' somewhere in the string and no control
// characters once surrounding whitespace is trimmed. Full RFC 5322
// validation is not attempted.
func ValidateEmail(email string) error {
	if email == "" {
		return Validation("Email cannot be empty")
	}

	// NUL and friends are not storable in a TEXT column.
	if strings.ContainsFunc(strings.TrimSpace(email), unicode.IsControl) {
		return InvalidEmail(email)
	}

	if !strings.Contains(email, "@") {
		return InvalidEmail(email)
	}

	if !strings.Contains(email, ".") {
		return InvalidEmail(email)
	}

	return nil
}

// ValidatePassword checks length and character classes.
// Only the first failing rule is reported.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return Validation("Password must be at least 8 characters long")
	}

	if !strings.ContainsFunc(password, isASCIIUpper) {
		return Validation("Password must contain at least one uppercase letter")
	}

	if !strings.ContainsFunc(password, isASCIILower) {
		return Validation("Password must contain at least one lowercase letter")
	}

	if !strings.ContainsFunc(password, isASCIIDigit) {
		return Validation("Password must contain at least one digit")
	}

	return nil
}

// NormalizeEmail returns the canonical form used as storage and lookup key.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
