// Package repository provides data persistence implementations for identity entities.
// Repositories support both PostgreSQL and MySQL; membership is stored in join
// tables and loaded alongside the user row.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/cooltech/credvault/internal/database"
	apperrors "github.com/cooltech/credvault/internal/errors"
	"github.com/cooltech/credvault/internal/identity/domain"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new user with empty membership.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, password_digest, role, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, user.ID, user.Username, user.PasswordDigest, user.Role)
	if err != nil {
		// Check for unique constraint violation (duplicate username)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID, including their division/OU membership.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password_digest, role
			  FROM users WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.PasswordDigest, &user.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	if err := r.loadMembership(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByUsername retrieves a user by username, including their membership.
func (r *PostgreSQLUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password_digest, role
			  FROM users WHERE username = $1`

	err := querier.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordDigest, &user.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}

	if err := r.loadMembership(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// List retrieves all users ordered by username, including membership.
func (r *PostgreSQLUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password_digest, role
			  FROM users ORDER BY username`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordDigest, &user.Role); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	for _, user := range users {
		if err := r.loadMembership(ctx, user); err != nil {
			return nil, err
		}
	}

	return users, nil
}

// ReplaceMembership replaces the user's division and OU membership wholesale.
// Callers wrap this in a transaction so the delete+insert pair is atomic.
func (r *PostgreSQLUserRepository) ReplaceMembership(
	ctx context.Context,
	userID uuid.UUID,
	divisionIDs []uuid.UUID,
	ouIDs []uuid.UUID,
) error {
	querier := database.GetTx(ctx, r.db)

	if _, err := querier.ExecContext(
		ctx, `DELETE FROM user_divisions WHERE user_id = $1`, userID,
	); err != nil {
		return apperrors.Wrap(err, "failed to clear division membership")
	}
	for _, divisionID := range divisionIDs {
		if _, err := querier.ExecContext(
			ctx,
			`INSERT INTO user_divisions (user_id, division_id) VALUES ($1, $2)`,
			userID, divisionID,
		); err != nil {
			return apperrors.Wrap(err, "failed to insert division membership")
		}
	}

	if _, err := querier.ExecContext(
		ctx, `DELETE FROM user_ous WHERE user_id = $1`, userID,
	); err != nil {
		return apperrors.Wrap(err, "failed to clear ou membership")
	}
	for _, ouID := range ouIDs {
		if _, err := querier.ExecContext(
			ctx,
			`INSERT INTO user_ous (user_id, ou_id) VALUES ($1, $2)`,
			userID, ouID,
		); err != nil {
			return apperrors.Wrap(err, "failed to insert ou membership")
		}
	}

	return nil
}

// UpdateRole replaces the user's role wholesale.
func (r *PostgreSQLUserRepository) UpdateRole(
	ctx context.Context,
	userID uuid.UUID,
	role domain.Role,
) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`,
		role, userID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update role")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// loadMembership populates the user's division and OU id sets.
func (r *PostgreSQLUserRepository) loadMembership(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	divisionIDs, err := scanIDs(querier.QueryContext(
		ctx,
		`SELECT division_id FROM user_divisions WHERE user_id = $1 ORDER BY division_id`,
		user.ID,
	))
	if err != nil {
		return apperrors.Wrap(err, "failed to load division membership")
	}
	user.DivisionIDs = divisionIDs

	ouIDs, err := scanIDs(querier.QueryContext(
		ctx,
		`SELECT ou_id FROM user_ous WHERE user_id = $1 ORDER BY ou_id`,
		user.ID,
	))
	if err != nil {
		return apperrors.Wrap(err, "failed to load ou membership")
	}
	user.OUIDs = ouIDs

	return nil
}

// scanIDs collects a single-UUID-column result set.
func scanIDs(rows *sql.Rows, err error) ([]uuid.UUID, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// isPostgreSQLUniqueViolation checks for a unique constraint violation error.
func isPostgreSQLUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
