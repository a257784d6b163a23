package domain

import (
	"github.com/cooltech/credvault/internal/errors"
)

// Domain-specific errors for identity operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same username already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidCredentials indicates a failed login. It deliberately does not
	// distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidRole indicates a role outside the user/manager/admin domain.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "role must be one of: user, manager, admin")
)
