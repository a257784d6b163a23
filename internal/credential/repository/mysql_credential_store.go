package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/cooltech/credvault/internal/credential/domain"
	"github.com/cooltech/credvault/internal/database"
	apperrors "github.com/cooltech/credvault/internal/errors"
)

// MySQLCredentialStore handles credential repository persistence for MySQL.
type MySQLCredentialStore struct {
	db *sql.DB
}

// NewMySQLCredentialStore creates a new MySQLCredentialStore.
func NewMySQLCredentialStore(db *sql.DB) *MySQLCredentialStore {
	return &MySQLCredentialStore{db: db}
}

// Create inserts a credential repository for a division. Used when divisions
// are created.
func (s *MySQLCredentialStore) Create(
	ctx context.Context,
	repo *domain.CredentialRepository,
) error {
	querier := database.GetTx(ctx, s.db)

	payload, err := encodeCredentials(repo.Credentials)
	if err != nil {
		return err
	}

	query := `INSERT INTO credential_repositories (id, division_id, credentials, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	if _, err := querier.ExecContext(ctx, query, repo.ID, repo.DivisionID, payload); err != nil {
		return apperrors.Wrap(err, "failed to create credential repository")
	}
	return nil
}

// GetByDivision retrieves the credential repository owned by a division.
func (s *MySQLCredentialStore) GetByDivision(
	ctx context.Context,
	divisionID uuid.UUID,
) (*domain.CredentialRepository, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, division_id, credentials
			  FROM credential_repositories WHERE division_id = ?`

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
func (s *MySQLCredentialStore) Save(
	ctx context.Context,
	repo *domain.CredentialRepository,
) error {
	querier := database.GetTx(ctx, s.db)

	payload, err := encodeCredentials(repo.Credentials)
	if err != nil {
		return err
	}

	query := `UPDATE credential_repositories SET credentials = ?, updated_at = NOW() WHERE id = ?`

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
