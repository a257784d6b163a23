// Package repository provides data persistence for credential repositories.
// The credential list is stored as a single JSON document on the owning row, so
// the repository is read and written as a unit. Both PostgreSQL and MySQL are
// supported.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/cooltech/credvault/internal/credential/domain"
	"github.com/cooltech/credvault/internal/database"
	apperrors "github.com/cooltech/credvault/internal/errors"
)

// PostgreSQLCredentialStore handles credential repository persistence for PostgreSQL.
type PostgreSQLCredentialStore struct {
	db *sql.DB
}

// NewPostgreSQLCredentialStore creates a new PostgreSQLCredentialStore.
func NewPostgreSQLCredentialStore(db *sql.DB) *PostgreSQLCredentialStore {
	return &PostgreSQLCredentialStore{db: db}
}

// Create inserts a credential repository for a division. Used when divisions
// are created.
func (s *PostgreSQLCredentialStore) Create(
	ctx context.Context,
	repo *domain.CredentialRepository,
) error {
	querier := database.GetTx(ctx, s.db)

	payload, err := encodeCredentials(repo.Credentials)
	if err != nil {
		return err
	}

	query := `INSERT INTO credential_repositories (id, division_id, credentials, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())`

	if _, err := querier.ExecContext(ctx, query, repo.ID, repo.DivisionID, payload); err != nil {
		return apperrors.Wrap(err, "failed to create credential repository")
	}
	return nil
}

// GetByDivision retrieves the credential repository owned by a division.
func (s *PostgreSQLCredentialStore) GetByDivision(
	ctx context.Context,
	divisionID uuid.UUID,
) (*domain.CredentialRepository, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, division_id, credentials
			  FROM credential_repositories WHERE division_id = $1`

	var repo domain.CredentialRepository
	var payload []byte
	err := querier.QueryRowContext(ctx, query, divisionID).Scan(
		&repo.ID, &repo.DivisionID, &payload,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRepositoryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential repository")
	}

	credentials, err := decodeCredentials(payload)
	if err != nil {
		return nil, err
	}
	repo.Credentials = credentials

	return &repo, nil
}

// Save writes the repository's whole credential list back to its row.
func (s *PostgreSQLCredentialStore) Save(
	ctx context.Context,
	repo *domain.CredentialRepository,
) error {
	querier := database.GetTx(ctx, s.db)

	payload, err := encodeCredentials(repo.Credentials)
	if err != nil {
		return err
	}

	query := `UPDATE credential_repositories SET credentials = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, payload, repo.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to save credential repository")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrRepositoryNotFound
	}

	return nil
}

func encodeCredentials(credentials []domain.Credential) ([]byte, error) {
	if credentials == nil {
		credentials = []domain.Credential{}
	}
	payload, err := json.Marshal(credentials)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode credentials")
	}
	return payload, nil
}

func decodeCredentials(payload []byte) ([]domain.Credential, error) {
	credentials := []domain.Credential{}
	if len(payload) == 0 {
		return credentials, nil
	}
	if err := json.Unmarshal(payload, &credentials); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode credentials")
	}
	return credentials, nil
}
