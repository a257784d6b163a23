package domain

import (
	"github.com/google/uuid"

	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

// Operation identifies a gated action against the system.
type Operation string

const (
	// OpReadDivision reads a division's metadata. Any authenticated role.
	OpReadDivision Operation = "division_read"

	// OpListCredentials lists a division's credentials. Any role, membership required.
	OpListCredentials Operation = "credential_list"

	// OpCreateCredential adds a credential. Any role, membership required.
	OpCreateCredential Operation = "credential_create"

	// OpUpdateCredential updates a credential. Manager or admin, membership required.
	OpUpdateCredential Operation = "credential_update"

	// OpDeleteCredential removes a credential. Manager or admin, membership required.
	OpDeleteCredential Operation = "credential_delete"

	// OpListAll lists all users, OUs, and divisions. Admin only, system-wide.
	OpListAll Operation = "admin_list_all"

	// OpAssignMembership replaces a user's division/OU membership. Admin only.
	OpAssignMembership Operation = "admin_assign_membership"

	// OpChangeRole replaces a user's role. Admin only.
	OpChangeRole Operation = "admin_change_role"
)

// minimumRole maps each operation to the lowest role allowed to perform it.
var minimumRole = map[Operation]identitydomain.Role{
	OpReadDivision:     identitydomain.RoleUser,
	OpListCredentials:  identitydomain.RoleUser,
	OpCreateCredential: identitydomain.RoleUser,
	OpUpdateCredential: identitydomain.RoleManager,
	OpDeleteCredential: identitydomain.RoleManager,
	OpListAll:          identitydomain.RoleAdmin,
	OpAssignMembership: identitydomain.RoleAdmin,
	OpChangeRole:       identitydomain.RoleAdmin,
}

// divisionScoped marks operations that additionally require the target division
// to be present in the caller's membership snapshot. Admin management operations
// are system-wide and carry no membership check; division reads are open to any
// authenticated user so members can resolve division names.
var divisionScoped = map[Operation]bool{
	OpListCredentials:  true,
	OpCreateCredential: true,
	OpUpdateCredential: true,
	OpDeleteCredential: true,
}

// Authorize evaluates the decision table for one request. Checks run in a fixed
// order and the first failing check wins:
//
//  1. authentication: nil claims deny with ErrUnauthenticated
//  2. role gate: the claims' role must reach the operation's minimum role
//  3. membership gate: division-scoped operations require the division id in
//     the claims' snapshot; the admin role does NOT bypass this check
//
// Existence of the target resource is checked by the calling use case against
// fresh store state; Authorize itself is pure and reads nothing.
func Authorize(claims *Claims, op Operation, divisionID uuid.UUID) error {
	if claims == nil {
		return ErrUnauthenticated
	}

	min, ok := minimumRole[op]
	if !ok {
		// Unknown operations fail closed.
		return ErrRoleForbidden
	}
	if !claims.Role.AtLeast(min) {
		return ErrRoleForbidden
	}

	if divisionScoped[op] && !claims.MemberOf(divisionID) {
		return ErrNotDivisionMember
	}

	return nil
}
