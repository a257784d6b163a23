// Package repository provides data persistence implementations for the
// organizational hierarchy. Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cooltech/credvault/internal/database"
	apperrors "github.com/cooltech/credvault/internal/errors"
	"github.com/cooltech/credvault/internal/hierarchy/domain"
)

// PostgreSQLHierarchyRepository handles OU and division persistence for PostgreSQL.
type PostgreSQLHierarchyRepository struct {
	db *sql.DB
}

// NewPostgreSQLHierarchyRepository creates a new PostgreSQLHierarchyRepository.
func NewPostgreSQLHierarchyRepository(db *sql.DB) *PostgreSQLHierarchyRepository {
	return &PostgreSQLHierarchyRepository{db: db}
}

// CreateOU inserts a new organizational unit. Used by seeding.
func (r *PostgreSQLHierarchyRepository) CreateOU(ctx context.Context, ou *domain.OU) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO ous (id, name, created_at) VALUES ($1, $2, NOW())`
	if _, err := querier.ExecContext(ctx, query, ou.ID, ou.Name); err != nil {
		return apperrors.Wrap(err, "failed to create ou")
	}
	return nil
}

// CreateDivision inserts a new division under its OU. Used by seeding.
func (r *PostgreSQLHierarchyRepository) CreateDivision(
	ctx context.Context,
	division *domain.Division,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO divisions (id, name, ou_id, created_at) VALUES ($1, $2, $3, NOW())`
	if _, err := querier.ExecContext(ctx, query, division.ID, division.Name, division.OUID); err != nil {
		return apperrors.Wrap(err, "failed to create division")
	}
	return nil
}

// GetDivision retrieves a division by ID.
func (r *PostgreSQLHierarchyRepository) GetDivision(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Division, error) {
	var division domain.Division
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, ou_id FROM divisions WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&division.ID, &division.Name, &division.OUID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDivisionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get division")
	}

	return &division, nil
}

// ListOUs retrieves all OUs ordered by name, each with its division ids.
// Division ids keep their creation order within the OU.
func (r *PostgreSQLHierarchyRepository) ListOUs(ctx context.Context) ([]*domain.OU, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, name FROM ous ORDER BY name`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list ous")
	}
	defer rows.Close()

	var ous []*domain.OU
	byID := map[uuid.UUID]*domain.OU{}
	for rows.Next() {
		ou := &domain.OU{DivisionIDs: []uuid.UUID{}}
		if err := rows.Scan(&ou.ID, &ou.Name); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan ou")
		}
		ous = append(ous, ou)
		byID[ou.ID] = ou
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate ous")
	}

	divisionRows, err := querier.QueryContext(
		ctx, `SELECT id, ou_id FROM divisions ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list ou divisions")
	}
	defer divisionRows.Close()

	for divisionRows.Next() {
		var divisionID, ouID uuid.UUID
		if err := divisionRows.Scan(&divisionID, &ouID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan ou division")
		}
		if ou, ok := byID[ouID]; ok {
			ou.DivisionIDs = append(ou.DivisionIDs, divisionID)
		}
	}
	if err := divisionRows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate ou divisions")
	}

	return ous, nil
}

// ListDivisions retrieves all divisions ordered by name.
func (r *PostgreSQLHierarchyRepository) ListDivisions(ctx context.Context) ([]*domain.Division, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, name, ou_id FROM divisions ORDER BY name`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list divisions")
	}
	defer rows.Close()

	var divisions []*domain.Division
	for rows.Next() {
		var division domain.Division
		if err := rows.Scan(&division.ID, &division.Name, &division.OUID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan division")
		}
		divisions = append(divisions, &division)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate divisions")
	}

	return divisions, nil
}

// DivisionsExist reports whether every given division id exists.
func (r *PostgreSQLHierarchyRepository) DivisionsExist(
	ctx context.Context,
	ids []uuid.UUID,
) (bool, error) {
	return r.allExist(ctx, "divisions", ids)
}

// OUsExist reports whether every given OU id exists.
func (r *PostgreSQLHierarchyRepository) OUsExist(
	ctx context.Context,
	ids []uuid.UUID,
) (bool, error) {
	return r.allExist(ctx, "ous", ids)
}

func (r *PostgreSQLHierarchyRepository) allExist(
	ctx context.Context,
	table string,
	ids []uuid.UUID,
) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	querier := database.GetTx(ctx, r.db)

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	// Duplicate ids in the input would break a plain COUNT comparison
	query := fmt.Sprintf(
		`SELECT COUNT(DISTINCT id) FROM %s WHERE id IN (%s)`,
		table, strings.Join(placeholders, ", "),
	)

	var count int
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.Wrap(err, "failed to check id existence")
	}

	return count == len(uniqueIDs(ids)), nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
