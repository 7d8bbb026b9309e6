// Package credential implements registration and lookup of email/password
// credentials: validation, normalization, hashing, persistence and the
// classified error taxonomy returned to the transport layer.
package credential

import (
	"context"
	"time"
)

// Redacted replaces every secret in values returned to callers.
const Redacted = "[REDACTED]"

// Resource is the name used for missing credentials in responses.
const Resource = "User"

// Credential is the persisted record. SecretHash never leaves this package's
// callers through a View.
type Credential struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	SecretHash string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// View is the redacted representation returned to callers.
type View struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

// newView builds a fresh redacted view for a canonical email.
func newView(email string) *View {
	return &View{Email: email, Secret: Redacted}
}

// RegistrationRequest carries raw caller input. The password is used once
// for hashing and is not retained.
type RegistrationRequest struct {
	Email    string
	Password string
}

// Store persists credentials keyed by canonical email.
//
// Insert must wrap ErrUniqueViolation when the email already exists and
// ErrCheckViolation when a store-side check rejects the email.
// FindByEmail returns (nil, nil) when no credential exists.
type Store interface {
	Insert(ctx context.Context, email, secretHash string, createdAt time.Time) (*Credential, error)
	FindByEmail(ctx context.Context, email string) (*Credential, error)
}

// Hasher turns a plaintext password into a salted one-way hash.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// ViewCache caches lookup results by canonical email.
//
// Get reports a cached view, or missing=true when the email is known to be
// unregistered. Both zero values mean a cache miss. A positive entry takes
// precedence over a marker written after it.
type ViewCache interface {
	Get(ctx context.Context, email string) (view *View, missing bool, err error)
	Set(ctx context.Context, view *View) error
	SetMissing(ctx context.Context, email string) error
	Forget(ctx context.Context, email string) error
}
