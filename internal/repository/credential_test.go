package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credvault/credvault/internal/credential"
)

func TestConstraintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "credentials_email_key"},
			sentinel: credential.ErrUniqueViolation,
			contains: "credentials_email_key",
		},
		{
			name:     "check violation",
			err:      &pgconn.PgError{Code: "23514", ConstraintName: "credentials_email_check"},
			sentinel: credential.ErrCheckViolation,
			contains: "credentials_email_check",
		},
		{
			name:     "untranslatable character",
			err:      &pgconn.PgError{Code: "22021", Message: "invalid byte sequence for encoding \"UTF8\": 0x00"},
			sentinel: credential.ErrCheckViolation,
		},
		{
			name:     "wrapped unique violation",
			err:      fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}),
			sentinel: credential.ErrUniqueViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := constraintError(tt.err)
			require.Error(t, got)
			assert.ErrorIs(t, got, tt.sentinel)
			assert.Contains(t, got.Error(), tt.contains)
		})
	}
}

func TestConstraintError_Passthrough(t *testing.T) {
	assert.NoError(t, constraintError(&pgconn.PgError{Code: "40001"}))
	assert.NoError(t, constraintError(errors.New("connection reset")))
}
