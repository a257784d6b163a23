// Package domain defines the authorization model: token claims, operations,
// and the decision logic that gates every request.
package domain

import (
	"time"

	"github.com/google/uuid"

	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

// Claims is the verified payload of an access token. It snapshots the user's
// role and division/OU membership at issuance time; later admin changes do not
// affect an outstanding token until it expires and the user logs in again.
type Claims struct {
	UserID      uuid.UUID
	Role        identitydomain.Role
	DivisionIDs []uuid.UUID
	OUIDs       []uuid.UUID
	ExpiresAt   time.Time
}

// MemberOf reports whether the claims' division snapshot includes the division.
func (c *Claims) MemberOf(divisionID uuid.UUID) bool {
	for _, id := range c.DivisionIDs {
		if id == divisionID {
			return true
		}
	}
	return false
}
