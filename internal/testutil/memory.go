package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/credvault/credvault/internal/credential"
)

// MemoryStore is an in-memory credential.Store that enforces the same
// unique and check constraints as the credentials table.
type MemoryStore struct {
	mu      sync.Mutex
	byEmail map[string]credential.Credential

	// FailWith, when set, is returned by every call.
	FailWith error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]credential.Credential)}
}

// Insert stores a credential.
func (m *MemoryStore) Insert(ctx context.Context, email, secretHash string, createdAt time.Time) (*credential.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if !emailCheck(email) {
		return nil, fmt.Errorf("%w: credentials_email_check", credential.ErrCheckViolation)
	}
	if _, ok := m.byEmail[email]; ok {
		return nil, fmt.Errorf("%w: credentials_email_key", credential.ErrUniqueViolation)
	}

	cred := credential.Credential{
		ID:         ulid.Make().String(),
		Email:      email,
		SecretHash: secretHash,
		CreatedAt:  createdAt,
	}
	m.byEmail[email] = cred

	return &cred, nil
}

// FindByEmail returns the credential for email, or nil when absent.
func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*credential.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	cred, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}

// Get returns the stored record including its hash.
func (m *MemoryStore) Get(email string) (credential.Credential, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cred, ok := m.byEmail[email]
	return cred, ok
}

// Len returns the number of stored credentials.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byEmail)
}

// emailCheck mirrors credentials_email_check:
// email LIKE '%_@_%._%' AND email = lower(btrim(email)).
func emailCheck(email string) bool {
	if email != strings.ToLower(strings.Trim(email, " ")) {
		return false
	}
	for i := 1; i < len(email); i++ {
		if email[i] != '@' {
			continue
		}
		rest := email[i+1:]
		for k := 1; k < len(rest)-1; k++ {
			if rest[k] == '.' {
				return true
			}
		}
	}
	return false
}

// StaticHasher returns a fixed hash or error. The output is derived from a
// counter so repeated hashes differ.
type StaticHasher struct {
	mu    sync.Mutex
	n     int
	Err   error
	Calls int
}

// Hash implements credential.Hasher.
func (h *StaticHasher) Hash(plaintext string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls++
	if h.Err != nil {
		return "", h.Err
	}
	h.n++
	return fmt.Sprintf("$static$%d", h.n), nil
}

// ErrStoreDown is a generic store failure for tests.
var ErrStoreDown = errors.New("connection refused")

// MemoryViewCache is an in-memory credential.ViewCache.
type MemoryViewCache struct {
	mu      sync.Mutex
	views   map[string]credential.View
	missing map[string]bool

	// GetErr, when set, is returned by Get.
	GetErr error
	// SetErr, when set, is returned by Set.
	SetErr error
}

// NewMemoryViewCache returns an empty MemoryViewCache.
func NewMemoryViewCache() *MemoryViewCache {
	return &MemoryViewCache{
		views:   make(map[string]credential.View),
		missing: make(map[string]bool),
	}
}

// Get implements credential.ViewCache.
func (c *MemoryViewCache) Get(ctx context.Context, email string) (*credential.View, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return nil, false, c.GetErr
	}
	if view, ok := c.views[email]; ok {
		return &view, false, nil
	}
	return nil, c.missing[email], nil
}

// Set implements credential.ViewCache.
func (c *MemoryViewCache) Set(ctx context.Context, view *credential.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SetErr != nil {
		return c.SetErr
	}
	c.views[view.Email] = *view
	delete(c.missing, view.Email)
	return nil
}

// SetMissing implements credential.ViewCache.
func (c *MemoryViewCache) SetMissing(ctx context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.missing[email] = true
	return nil
}

// Forget implements credential.ViewCache.
func (c *MemoryViewCache) Forget(ctx context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, email)
	delete(c.missing, email)
	return nil
}

// Cached reports whether email has a positive entry.
func (c *MemoryViewCache) Cached(email string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.views[email]
	return ok
}

// IsMissing reports whether email carries a negative marker.
func (c *MemoryViewCache) IsMissing(email string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.missing[email]
}
