package cache

import (
	"strings"
	"testing"
	"time"
)

func TestCredentialKey_Deterministic(t *testing.T) {
	t.Parallel()

	email := "user@example.com"

	key1 := credentialKey(email)
	key2 := credentialKey(email)

	if key1 != key2 {
		t.Error("Same email should produce same key")
	}
}

func TestCredentialKey_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
	}{
		{"simple", "user@example.com"},
		{"subdomain", "a.b@mail.example.org"},
		{"plus tag", "user+tag@example.com"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			key := credentialKey(tt.email)
			if !strings.HasPrefix(key, credentialKeyPrefix) {
				t.Errorf("credentialKey(%q) = %q, missing prefix", tt.email, key)
			}
			// first 8 bytes of SHA256, encoded as 16 hex chars
			if got := len(key) - len(credentialKeyPrefix); got != 16 {
				t.Errorf("credentialKey(%q) hash length = %d, want 16", tt.email, got)
			}
			if tt.email != "" && strings.Contains(key, tt.email) {
				t.Errorf("credentialKey(%q) leaks the raw email", tt.email)
			}
		})
	}
}

func TestCredentialKey_Different(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		email1 string
		email2 string
	}{
		{"different local part", "a@example.com", "b@example.com"},
		{"different domain", "user@example.com", "user@example.org"},
		{"case differs", "user@example.com", "User@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if credentialKey(tt.email1) == credentialKey(tt.email2) {
				t.Errorf("Different emails should produce different keys: %q and %q", tt.email1, tt.email2)
			}
		})
	}
}

func TestNewViewCache_DefaultTTLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		viewTTL         time.Duration
		negativeTTL     time.Duration
		wantViewTTL     time.Duration
		wantNegativeTTL time.Duration
	}{
		{"zero falls back", 0, 0, DefaultViewTTL, DefaultNegativeTTL},
		{"negative falls back", -time.Second, -time.Second, DefaultViewTTL, DefaultNegativeTTL},
		{"explicit", 10 * time.Minute, 5 * time.Second, 10 * time.Minute, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			vc := NewViewCache(&Cache{}, tt.viewTTL, tt.negativeTTL)
			if vc.viewTTL != tt.wantViewTTL {
				t.Errorf("viewTTL = %v, want %v", vc.viewTTL, tt.wantViewTTL)
			}
			if vc.negativeTTL != tt.wantNegativeTTL {
				t.Errorf("negativeTTL = %v, want %v", vc.negativeTTL, tt.wantNegativeTTL)
			}
		})
	}
}
