package secret

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for bcrypt hashes.
const BcryptCost = 12

// Bcrypt hashes passwords with bcrypt. The salt is generated per call and
// embedded in the output.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a Bcrypt hasher using BcryptCost.
func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: BcryptCost}
}

// Hash generates a salted bcrypt hash.
func (b *Bcrypt) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(out), nil
}

// Verify compares a password with a bcrypt hash.
// A mismatch is reported as (false, nil); a malformed hash as ErrInvalidHash.
func (b *Bcrypt) Verify(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrInvalidHash
	}
}
