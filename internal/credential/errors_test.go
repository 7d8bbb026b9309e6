package credential

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKind_Code(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		code string
	}{
		{KindValidation, "VALIDATION_ERROR"},
		{KindInvalidEmail, "INVALID_EMAIL"},
		{KindNotFound, "RESOURCE_NOT_FOUND"},
		{KindConflict, "RESOURCE_CONFLICT"},
		{KindHashingFailure, "PASSWORD_HASHING_ERROR"},
		{KindDatabase, "DATABASE_ERROR"},
		{KindInternal, "INTERNAL_SERVER_ERROR"},
	}

	seen := make(map[string]bool)
	for _, tt := range tests {
		if got := tt.kind.Code(); got != tt.code {
			t.Errorf("%v.Code() = %q, want %q", tt.kind, got, tt.code)
		}
		if seen[tt.code] {
			t.Errorf("code %q used by more than one kind", tt.code)
		}
		seen[tt.code] = true
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}

	conflict := Conflict("taken")
	if got := Classify(fmt.Errorf("wrapped: %w", conflict)); got != conflict {
		t.Errorf("Classify should unwrap to the classified error, got %v", got)
	}

	got := Classify(context.Canceled)
	if got.Kind != KindInternal {
		t.Errorf("unclassified error kind = %v, want internal", got.Kind)
	}
	if !errors.Is(got, context.Canceled) {
		t.Error("Internal should keep the cause for logging")
	}
}

func TestClassifyStoreError(t *testing.T) {
	t.Parallel()

	raw := errors.New(`pq: password hash "$argon2id$..." rejected by trigger`)

	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantMsg  string
	}{
		{"unique", fmt.Errorf("%w: credentials_email_key", ErrUniqueViolation), KindConflict, "Email address already exists"},
		{"check", fmt.Errorf("%w: credentials_email_check", ErrCheckViolation), KindValidation, "Email format is invalid"},
		{"other", raw, KindDatabase, "A database error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifyStoreError(tt.err)
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMsg)
			}
			if got.Details != nil {
				t.Errorf("store errors must not expose details, got %v", got.Details)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	t.Parallel()

	err := NotFound(Resource)
	if err.Message != "User not found" {
		t.Errorf("message = %q, want %q", err.Message, "User not found")
	}
	if err.Resource != "User" {
		t.Errorf("resource = %q, want User", err.Resource)
	}
}
