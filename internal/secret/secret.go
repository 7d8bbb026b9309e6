// Package secret provides one-way password hashing.
package secret

import (
	"errors"
	"fmt"
)

// Supported algorithm names.
const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

var (
	// ErrInvalidHash indicates the hash format is invalid.
	ErrInvalidHash = errors.New("invalid hash format")
	// ErrIncompatibleVersion indicates the hash version is not supported.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	// ErrUnknownAlgorithm indicates an unsupported algorithm name.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
)

// Hasher hashes passwords with a slow, salted algorithm and verifies them
// in constant time.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, encodedHash string) (bool, error)
}

// New returns the Hasher for the named algorithm.
func New(algorithm string) (Hasher, error) {
	switch algorithm {
	case AlgorithmArgon2id, "":
		return NewArgon2id(), nil
	case AlgorithmBcrypt:
		return NewBcrypt(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}
