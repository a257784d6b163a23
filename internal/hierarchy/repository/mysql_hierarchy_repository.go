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

// MySQLHierarchyRepository handles OU and division persistence for MySQL.
type MySQLHierarchyRepository struct {
	db *sql.DB
}

// NewMySQLHierarchyRepository creates a new MySQLHierarchyRepository.
func NewMySQLHierarchyRepository(db *sql.DB) *MySQLHierarchyRepository {
	return &MySQLHierarchyRepository{db: db}
}

// CreateOU inserts a new organizational unit. Used by seeding.
func (r *MySQLHierarchyRepository) CreateOU(ctx context.Context, ou *domain.OU) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO ous (id, name, created_at) VALUES (?, ?, NOW())`
	if _, err := querier.ExecContext(ctx, query, ou.ID, ou.Name); err != nil {
		return apperrors.Wrap(err, "failed to create ou")
	}
	return nil
}

// CreateDivision inserts a new division under its OU. Used by seeding.
func (r *MySQLHierarchyRepository) CreateDivision(
	ctx context.Context,
	division *domain.Division,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO divisions (id, name, ou_id, created_at) VALUES (?, ?, ?, NOW())`
	if _, err := querier.ExecContext(ctx, query, division.ID, division.Name, division.OUID); err != nil {
		return apperrors.Wrap(err, "failed to create division")
	}
	return nil
}

// GetDivision retrieves a division by ID.
func (r *MySQLHierarchyRepository) GetDivision(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Division, error) {
	var division domain.Division
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, ou_id FROM divisions WHERE id = ?`

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
func (r *MySQLHierarchyRepository) ListOUs(ctx context.Context) ([]*domain.OU, error) {
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
func (r *MySQLHierarchyRepository) ListDivisions(ctx context.Context) ([]*domain.Division, error) {
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
func (r *MySQLHierarchyRepository) DivisionsExist(
	ctx context.Context,
	ids []uuid.UUID,
) (bool, error) {
	return r.allExist(ctx, "divisions", ids)
}

// OUsExist reports whether every given OU id exists.
func (r *MySQLHierarchyRepository) OUsExist(
	ctx context.Context,
	ids []uuid.UUID,
) (bool, error) {
	return r.allExist(ctx, "ous", ids)
}

func (r *MySQLHierarchyRepository) allExist(
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
		placeholders[i] = "?"
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
