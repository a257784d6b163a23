package domain

import (
	"github.com/cooltech/credvault/internal/errors"
)

// Domain-specific errors for credential operations.
var (
	// ErrCredentialNotFound indicates the requested credential does not exist in
	// the division's repository.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrRepositoryNotFound indicates the division has no credential repository,
	// which implies the division itself does not exist.
	ErrRepositoryNotFound = errors.Wrap(errors.ErrNotFound, "credential repository not found")
)
