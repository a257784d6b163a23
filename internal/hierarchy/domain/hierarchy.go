// Package domain defines the organizational hierarchy: OUs and their divisions.
package domain

import (
	"github.com/google/uuid"
)

// OU is an organizational unit, the top level of the hierarchy. Each OU owns an
// ordered set of divisions.
type OU struct {
	ID          uuid.UUID
	Name        string
	DivisionIDs []uuid.UUID
}

// Division belongs to exactly one OU and owns one credential repository.
type Division struct {
	ID   uuid.UUID
	Name string
	OUID uuid.UUID
}
