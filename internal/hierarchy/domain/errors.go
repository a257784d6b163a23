package domain

import (
	"github.com/cooltech/credvault/internal/errors"
)

// Domain-specific errors for hierarchy operations.
var (
	// ErrOUNotFound indicates the requested organizational unit does not exist.
	ErrOUNotFound = errors.Wrap(errors.ErrNotFound, "ou not found")

	// ErrDivisionNotFound indicates the requested division does not exist.
	ErrDivisionNotFound = errors.Wrap(errors.ErrNotFound, "division not found")
)
