package secret

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestArgon2id_HashFormat(t *testing.T) {
	t.Parallel()

	hash, err := NewArgon2id().Hash("Abcdefg1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
	if !strings.HasPrefix(hash, "$argon2id$v=") {
		t.Errorf("Hash should be in PHC format, got: %s", hash)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash should have 6 parts, got: %d", len(parts))
	}
	if parts[2] != "v=19" {
		t.Errorf("Expected v=19, got: %s", parts[2])
	}
	if parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("Expected m=65536,t=3,p=4, got: %s", parts[3])
	}
}

func TestArgon2id_NeverReturnsPlaintext(t *testing.T) {
	t.Parallel()

	password := "Abcdefg1"
	hash, err := NewArgon2id().Hash(password)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if strings.Contains(hash, password) {
		t.Error("Hash output must not contain the plaintext")
	}
}

func TestArgon2id_Uniqueness(t *testing.T) {
	t.Parallel()

	h := NewArgon2id()
	password := "The_same_password_12345"

	hash1, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	hash2, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	// Same password should produce different hashes (different salts)
	if hash1 == hash2 {
		t.Error("Same password should produce different hashes due to random salt")
	}

	match1, _ := h.Verify(password, hash1)
	match2, _ := h.Verify(password, hash2)
	if !match1 || !match2 {
		t.Error("Both hashes should verify correctly")
	}
}

func TestArgon2id_VerifyIncorrect(t *testing.T) {
	t.Parallel()

	h := NewArgon2id()
	hash, err := h.Hash("Correct1Horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	match, err := h.Verify("Wrong1Horse", hash)
	if err != nil {
		t.Fatalf("Verify should not return error for wrong password: %v", err)
	}
	if match {
		t.Error("Wrong password should not match")
	}
}

func TestArgon2id_VerifyInvalidHashFormat(t *testing.T) {
	t.Parallel()

	// Well-formed salt and key so only the parameters are at fault.
	salt16 := base64.RawStdEncoding.EncodeToString(make([]byte, 16))
	key32 := base64.RawStdEncoding.EncodeToString(make([]byte, 32))

	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{"empty", "", ErrInvalidHash},
		{"wrong format", "not-a-hash", ErrInvalidHash},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$salt$hash", ErrInvalidHash},
		{"missing parts", "$argon2id$v=19$m=65536", ErrInvalidHash},
		{"bad params", "$argon2id$v=19$m=x,t=3,p=4$c2FsdA$aGFzaA", ErrInvalidHash},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=4$c29tZXNhbHRoZXJl$c29tZWhhc2hoZXJl", ErrIncompatibleVersion},
		{"zero parallelism", "$argon2id$v=19$m=65536,t=3,p=0$" + salt16 + "$" + key32, ErrInvalidHash},
		{"zero time", "$argon2id$v=19$m=65536,t=0,p=4$" + salt16 + "$" + key32, ErrInvalidHash},
		{"memory too large", "$argon2id$v=19$m=4294967295,t=3,p=4$" + salt16 + "$" + key32, ErrInvalidHash},
		{"memory below lanes", "$argon2id$v=19$m=8,t=3,p=4$" + salt16 + "$" + key32, ErrInvalidHash},
		{"time too large", "$argon2id$v=19$m=65536,t=1000000,p=4$" + salt16 + "$" + key32, ErrInvalidHash},
		{"empty key", "$argon2id$v=19$m=65536,t=3,p=4$" + salt16 + "$", ErrInvalidHash},
		{"short salt", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$" + key32, ErrInvalidHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			match, err := NewArgon2id().Verify("password", tt.hash)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify(%q) error = %v, want %v", tt.hash, err, tt.wantErr)
			}
			if match {
				t.Error("Malformed hash should never match")
			}
		})
	}
}

func TestArgon2id_EntropyFailure(t *testing.T) {
	t.Parallel()

	h := &Argon2id{rand: failingReader{}}

	hash, err := h.Hash("Abcdefg1")
	if err == nil {
		t.Fatal("expected error when salt generation fails")
	}
	if hash != "" {
		t.Errorf("expected empty hash on failure, got %q", hash)
	}
	if strings.Contains(err.Error(), "Abcdefg1") {
		t.Error("error must not contain the plaintext")
	}
}
