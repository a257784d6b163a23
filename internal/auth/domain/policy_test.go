package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/cooltech/credvault/internal/errors"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

func claimsWith(role identitydomain.Role, divisions ...uuid.UUID) *Claims {
	return &Claims{
		UserID:      uuid.Must(uuid.NewV7()),
		Role:        role,
		DivisionIDs: divisions,
	}
}

func TestAuthorize_NilClaims(t *testing.T) {
	err := Authorize(nil, OpListCredentials, uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestAuthorize_MembershipGate_DeniesRegardlessOfRole(t *testing.T) {
	division := uuid.Must(uuid.NewV7())
	other := uuid.Must(uuid.NewV7())

	// Admin role alone does not grant access to a division the token is not a member of.
	for _, role := range []identitydomain.Role{
		identitydomain.RoleUser,
		identitydomain.RoleManager,
		identitydomain.RoleAdmin,
	} {
		claims := claimsWith(role, other)
		for _, op := range []Operation{OpListCredentials, OpCreateCredential} {
			err := Authorize(claims, op, division)
			assert.ErrorIs(t, err, ErrNotDivisionMember, "role=%s op=%s", role, op)
			assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
		}
	}
}

func TestAuthorize_RoleGate_UpdateDelete(t *testing.T) {
	division := uuid.Must(uuid.NewV7())

	// A plain user is denied even with membership.
	user := claimsWith(identitydomain.RoleUser, division)
	assert.ErrorIs(t, Authorize(user, OpUpdateCredential, division), ErrRoleForbidden)
	assert.ErrorIs(t, Authorize(user, OpDeleteCredential, division), ErrRoleForbidden)

	// Manager and admin with membership succeed.
	manager := claimsWith(identitydomain.RoleManager, division)
	assert.NoError(t, Authorize(manager, OpUpdateCredential, division))
	assert.NoError(t, Authorize(manager, OpDeleteCredential, division))

	admin := claimsWith(identitydomain.RoleAdmin, division)
	assert.NoError(t, Authorize(admin, OpUpdateCredential, division))
	assert.NoError(t, Authorize(admin, OpDeleteCredential, division))
}

func TestAuthorize_RoleGate_BeforeMembershipGate(t *testing.T) {
	division := uuid.Must(uuid.NewV7())

	// User lacking both role and membership gets the role denial (first failing check wins).
	user := claimsWith(identitydomain.RoleUser)
	assert.ErrorIs(t, Authorize(user, OpUpdateCredential, division), ErrRoleForbidden)
}

func TestAuthorize_ReadAndCreate_AnyRoleWithMembership(t *testing.T) {
	division := uuid.Must(uuid.NewV7())

	user := claimsWith(identitydomain.RoleUser, division)
	assert.NoError(t, Authorize(user, OpListCredentials, division))
	assert.NoError(t, Authorize(user, OpCreateCredential, division))
}

func TestAuthorize_DivisionRead_NoMembershipRequired(t *testing.T) {
	division := uuid.Must(uuid.NewV7())

	// Any authenticated user can resolve a division's name.
	user := claimsWith(identitydomain.RoleUser)
	assert.NoError(t, Authorize(user, OpReadDivision, division))
}

func TestAuthorize_AdminOperations(t *testing.T) {
	ops := []Operation{OpListAll, OpAssignMembership, OpChangeRole}

	admin := claimsWith(identitydomain.RoleAdmin)
	manager := claimsWith(identitydomain.RoleManager)
	user := claimsWith(identitydomain.RoleUser)

	for _, op := range ops {
		// Admin operations are system-wide: no membership check even with empty snapshot.
		assert.NoError(t, Authorize(admin, op, uuid.Nil))
		assert.ErrorIs(t, Authorize(manager, op, uuid.Nil), ErrRoleForbidden)
		assert.ErrorIs(t, Authorize(user, op, uuid.Nil), ErrRoleForbidden)
	}
}

func TestAuthorize_UnknownOperationFailsClosed(t *testing.T) {
	admin := claimsWith(identitydomain.RoleAdmin)
	assert.ErrorIs(t, Authorize(admin, Operation("mystery"), uuid.Nil), ErrRoleForbidden)
}

func TestClaims_MemberOf(t *testing.T) {
	division := uuid.Must(uuid.NewV7())
	claims := claimsWith(identitydomain.RoleUser, division)

	assert.True(t, claims.MemberOf(division))
	assert.False(t, claims.MemberOf(uuid.Must(uuid.NewV7())))
}
