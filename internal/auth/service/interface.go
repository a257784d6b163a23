// Package service implements token issuance and verification for the auth layer.
package service

import (
	"github.com/google/uuid"

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

// TokenService issues and verifies signed access tokens. Tokens are opaque to
// callers and embed the user's role and membership snapshot at issuance time.
type TokenService interface {
	// Issue signs a token carrying the given identity snapshot.
	Issue(
		userID uuid.UUID,
		role identitydomain.Role,
		divisionIDs []uuid.UUID,
		ouIDs []uuid.UUID,
	) (string, error)

	// Verify checks the token's signature and expiry and returns its claims.
	// Verification fails closed: any mismatch yields an error, never partial claims.
	Verify(token string) (*authdomain.Claims, error)
}
