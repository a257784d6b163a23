package domain

import (
	"github.com/cooltech/credvault/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrUnauthenticated indicates a missing, malformed, or unverifiable token.
	ErrUnauthenticated = errors.Wrap(errors.ErrUnauthorized, "authentication required")

	// ErrTokenExpired indicates the token's expiry is in the past.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrTokenInvalid indicates the token failed signature or claims validation.
	ErrTokenInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrRoleForbidden indicates the caller's role does not reach the operation's minimum.
	ErrRoleForbidden = errors.Wrap(errors.ErrForbidden, "insufficient role for this operation")

	// ErrNotDivisionMember indicates the membership gate failed for a division-scoped operation.
	ErrNotDivisionMember = errors.Wrap(errors.ErrForbidden, "not a member of this division")
)
