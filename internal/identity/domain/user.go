// Package domain defines the core identity entities: users, roles, and membership.
package domain

import (
	"github.com/google/uuid"
)

// Role is the access level a user holds across the whole system.
type Role string

const (
	// RoleUser can read and create credentials in divisions they are a member of.
	RoleUser Role = "user"

	// RoleManager can additionally update and delete credentials in their divisions.
	RoleManager Role = "manager"

	// RoleAdmin can manage users, membership, and roles system-wide. Admin does not
	// bypass the division membership check on credential operations.
	RoleAdmin Role = "admin"
)

// ParseRole validates and converts a string to a Role.
// An empty string defaults to RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleManager, RoleAdmin:
		return Role(s), nil
	case "":
		return RoleUser, nil
	default:
		return "", ErrInvalidRole
	}
}

// AtLeast reports whether the role grants at least the access level of min.
// The ordering is user < manager < admin.
func (r Role) AtLeast(min Role) bool {
	return r.rank() >= min.rank()
}

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// User represents a registered user with role and division/OU membership.
// Membership and role are mutated only through the admin workflow; tokens issued
// before a mutation keep the old snapshot until they expire.
type User struct {
	ID             uuid.UUID
	Username       string
	PasswordDigest string
	Role           Role
	DivisionIDs    []uuid.UUID
	OUIDs          []uuid.UUID
}

// IsMemberOf reports whether the user's stored membership includes the division.
func (u *User) IsMemberOf(divisionID uuid.UUID) bool {
	for _, id := range u.DivisionIDs {
		if id == divisionID {
			return true
		}
	}
	return false
}
