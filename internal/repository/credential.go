package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"

	"github.com/credvault/credvault/internal/credential"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"

	// Raised for NUL bytes in text values.
	pgCharacterNotInRepertoire = "22021"
)

// InsertCredential stores a new credential and returns the persisted row.
// Constraint violations are wrapped with credential.ErrUniqueViolation or
// credential.ErrCheckViolation.
func (r *Repository) InsertCredential(ctx context.Context, email, secretHash string, createdAt time.Time) (*credential.Credential, error) {
	query := `
		INSERT INTO credentials (id, email, password, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, created_at
	`

	var cred credential.Credential
	err := r.pool.QueryRow(ctx, query,
		ulid.Make().String(),
		email,
		secretHash,
		createdAt,
	).Scan(
		&cred.ID,
		&cred.Email,
		&cred.SecretHash,
		&cred.CreatedAt,
	)

	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("failed to insert credential: %w", err)
	}

	return &cred, nil
}

// FindCredentialByEmail retrieves a credential by canonical email.
// Returns (nil, nil) when no row matches.
func (r *Repository) FindCredentialByEmail(ctx context.Context, email string) (*credential.Credential, error) {
	query := `
		SELECT id, email, password, created_at
		FROM credentials
		WHERE email = $1
	`

	var cred credential.Credential
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&cred.ID,
		&cred.Email,
		&cred.SecretHash,
		&cred.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get credential by email: %w", err)
	}

	return &cred, nil
}

// CredentialStore adapts Repository to credential.Store.
type CredentialStore struct {
	repo *Repository
}

// NewCredentialStore creates a credential.Store backed by repo.
func NewCredentialStore(repo *Repository) *CredentialStore {
	return &CredentialStore{repo: repo}
}

// Insert implements credential.Store.
func (s *CredentialStore) Insert(ctx context.Context, email, secretHash string, createdAt time.Time) (*credential.Credential, error) {
	return s.repo.InsertCredential(ctx, email, secretHash, createdAt)
}

// FindByEmail implements credential.Store.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*credential.Credential, error) {
	return s.repo.FindCredentialByEmail(ctx, email)
}

// constraintError maps PostgreSQL constraint violations to store errors.
// It returns nil for any other error.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", credential.ErrUniqueViolation, pgErr.ConstraintName)
	case pgCheckViolation, pgCharacterNotInRepertoire:
		return fmt.Errorf("%w: %s", credential.ErrCheckViolation, pgErr.ConstraintName)
	default:
		return nil
	}
}
