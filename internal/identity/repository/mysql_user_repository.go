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

// MySQLUserRepository handles user persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new user with empty membership.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, password_digest, role, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, user.ID, user.Username, user.PasswordDigest, user.Role)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID, including their division/OU membership.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password_digest, role
			  FROM users WHERE id = ?`

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
func (r *MySQLUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password_digest, role
			  FROM users WHERE username = ?`

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
func (r *MySQLUserRepository) List(ctx context.Context) ([]*domain.User, error) {
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
func (r *MySQLUserRepository) ReplaceMembership(
	ctx context.Context,
	userID uuid.UUID,
	divisionIDs []uuid.UUID,
	ouIDs []uuid.UUID,
) error {
	querier := database.GetTx(ctx, r.db)

	if _, err := querier.ExecContext(
		ctx, `DELETE FROM user_divisions WHERE user_id = ?`, userID,
	); err != nil {
		return apperrors.Wrap(err, "failed to clear division membership")
	}
	for _, divisionID := range divisionIDs {
		if _, err := querier.ExecContext(
			ctx,
			`INSERT INTO user_divisions (user_id, division_id) VALUES (?, ?)`,
			userID, divisionID,
		); err != nil {
			return apperrors.Wrap(err, "failed to insert division membership")
		}
	}

	if _, err := querier.ExecContext(
		ctx, `DELETE FROM user_ous WHERE user_id = ?`, userID,
	); err != nil {
		return apperrors.Wrap(err, "failed to clear ou membership")
	}
	for _, ouID := range ouIDs {
		if _, err := querier.ExecContext(
			ctx,
			`INSERT INTO user_ous (user_id, ou_id) VALUES (?, ?)`,
			userID, ouID,
		); err != nil {
			return apperrors.Wrap(err, "failed to insert ou membership")
		}
	}

	return nil
}

// UpdateRole replaces the user's role wholesale.
func (r *MySQLUserRepository) UpdateRole(
	ctx context.Context,
	userID uuid.UUID,
	role domain.Role,
) error {
	querier := database.GetTx(ctx, r.db)

	// The MySQL driver reports changed rows, not matched rows, so setting a
	// user's current role affects zero rows even though the user exists.
	// Callers check existence with GetByID; the affected count is not usable
	// as a not-found signal here.
	_, err := querier.ExecContext(
		ctx,
		`UPDATE users SET role = ?, updated_at = NOW() WHERE id = ?`,
		role, userID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update role")
	}

	return nil
}

// loadMembership populates the user's division and OU id sets.
func (r *MySQLUserRepository) loadMembership(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	divisionIDs, err := scanIDs(querier.QueryContext(
		ctx,
		`SELECT division_id FROM user_divisions WHERE user_id = ? ORDER BY division_id`,
		user.ID,
	))
	if err != nil {
		return apperrors.Wrap(err, "failed to load division membership")
	}
	user.DivisionIDs = divisionIDs

	ouIDs, err := scanIDs(querier.QueryContext(
		ctx,
		`SELECT ou_id FROM user_ous WHERE user_id = ? ORDER BY ou_id`,
		user.ID,
	))
	if err != nil {
		return apperrors.Wrap(err, "failed to load ou membership")
	}
	user.OUIDs = ouIDs

	return nil
}

// isMySQLUniqueViolation checks for a unique constraint violation error (1062).
func isMySQLUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
