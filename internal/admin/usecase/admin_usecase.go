// Package usecase implements the administration workflow: system-wide listing,
// membership assignment, and role changes.
package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
	"github.com/cooltech/credvault/internal/database"
	apperrors "github.com/cooltech/credvault/internal/errors"
	hierarchydomain "github.com/cooltech/credvault/internal/hierarchy/domain"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

// AssignMembershipInput contains the input data for a membership assignment.
type AssignMembershipInput struct {
	UserID      uuid.UUID
	DivisionIDs []uuid.UUID
	OUIDs       []uuid.UUID
}

// ChangeRoleInput contains the input data for a role change.
type ChangeRoleInput struct {
	UserID uuid.UUID
	Role   string
}

// ReassignInput contains the input data for the two-step reassignment workflow:
// a membership assignment followed by a role change.
type ReassignInput struct {
	UserID      uuid.UUID
	DivisionIDs []uuid.UUID
	OUIDs       []uuid.UUID
	Role        string
}

// ListAllOutput is the full administrative view of the system.
type ListAllOutput struct {
	Users     []*identitydomain.User
	OUs       []*hierarchydomain.OU
	Divisions []*hierarchydomain.Division
}

// UseCase defines the interface for administration business logic operations
type UseCase interface {
	ListAll(ctx context.Context, claims *authdomain.Claims) (*ListAllOutput, error)
	AssignMembership(
		ctx context.Context,
		claims *authdomain.Claims,
		input AssignMembershipInput,
	) (*identitydomain.User, error)
	ChangeRole(
		ctx context.Context,
		claims *authdomain.Claims,
		input ChangeRoleInput,
	) (*identitydomain.User, error)
	Reassign(
		ctx context.Context,
		claims *authdomain.Claims,
		input ReassignInput,
	) (*identitydomain.User, error)
}

// UserRepository interface defines the user repository operations used by administration
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identitydomain.User, error)
	List(ctx context.Context) ([]*identitydomain.User, error)
	ReplaceMembership(ctx context.Context, userID uuid.UUID, divisionIDs, ouIDs []uuid.UUID) error
	UpdateRole(ctx context.Context, userID uuid.UUID, role identitydomain.Role) error
}

// HierarchyRepository interface defines the hierarchy repository operations used by administration
type HierarchyRepository interface {
	ListOUs(ctx context.Context) ([]*hierarchydomain.OU, error)
	ListDivisions(ctx context.Context) ([]*hierarchydomain.Division, error)
	DivisionsExist(ctx context.Context, ids []uuid.UUID) (bool, error)
	OUsExist(ctx context.Context, ids []uuid.UUID) (bool, error)
}

// AdminUseCase handles administration business logic
type AdminUseCase struct {
	txManager     database.TxManager
	userRepo      UserRepository
	hierarchyRepo HierarchyRepository
}

// NewAdminUseCase creates a new AdminUseCase
func NewAdminUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	hierarchyRepo HierarchyRepository,
) UseCase {
	return &AdminUseCase{
		txManager:     txManager,
		userRepo:      userRepo,
		hierarchyRepo: hierarchyRepo,
	}
}

// ListAll returns every user, OU, and division in the system.
// Requires the admin role; no membership gate applies.
func (uc *AdminUseCase) ListAll(
	ctx context.Context,
	claims *authdomain.Claims,
) (*ListAllOutput, error) {
	if err := authdomain.Authorize(claims, authdomain.OpListAll, uuid.Nil); err != nil {
		return nil, err
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	ous, err := uc.hierarchyRepo.ListOUs(ctx)
	if err != nil {
		return nil, err
	}

	divisions, err := uc.hierarchyRepo.ListDivisions(ctx)
	if err != nil {
		return nil, err
	}

	return &ListAllOutput{Users: users, OUs: ous, Divisions: divisions}, nil
}

// AssignMembership replaces the target user's division and OU membership
// wholesale. The assignment is atomic: the old membership either fully remains
// or is fully replaced.
//
// Tokens the target user already holds keep their old membership snapshot until
// they expire.
func (uc *AdminUseCase) AssignMembership(
	ctx context.Context,
	claims *authdomain.Claims,
	input AssignMembershipInput,
) (*identitydomain.User, error) {
	if err := authdomain.Authorize(claims, authdomain.OpAssignMembership, uuid.Nil); err != nil {
		return nil, err
	}

	if err := uc.validateAssignInput(ctx, input); err != nil {
		return nil, err
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.userRepo.ReplaceMembership(ctx, input.UserID, input.DivisionIDs, input.OUIDs)
	})
	if err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, input.UserID)
}

// ChangeRole replaces the target user's role wholesale.
func (uc *AdminUseCase) ChangeRole(
	ctx context.Context,
	claims *authdomain.Claims,
	input ChangeRoleInput,
) (*identitydomain.User, error) {
	if err := authdomain.Authorize(claims, authdomain.OpChangeRole, uuid.Nil); err != nil {
		return nil, err
	}

	role, err := identitydomain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	// Existence is checked up front; the repositories cannot distinguish an
	// unknown user from a no-op role update.
	if _, err := uc.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateRole(ctx, input.UserID, role); err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, input.UserID)
}

// Reassign runs the two-step workflow: membership assignment followed by a role
// change. The steps are independent writes with no shared transaction; the role
// step is attempted even when the membership step failed, and a failure in
// either step leaves the other step's outcome in place. Errors from both steps
// are joined so the caller can see exactly which step failed.
func (uc *AdminUseCase) Reassign(
	ctx context.Context,
	claims *authdomain.Claims,
	input ReassignInput,
) (*identitydomain.User, error) {
	if err := authdomain.Authorize(claims, authdomain.OpAssignMembership, uuid.Nil); err != nil {
		return nil, err
	}

	var membershipErr, roleErr error

	if err := uc.validateAssignInput(ctx, AssignMembershipInput{
		UserID:      input.UserID,
		DivisionIDs: input.DivisionIDs,
		OUIDs:       input.OUIDs,
	}); err != nil {
		membershipErr = err
	} else {
		membershipErr = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
			return uc.userRepo.ReplaceMembership(ctx, input.UserID, input.DivisionIDs, input.OUIDs)
		})
	}
	if membershipErr != nil {
		membershipErr = apperrors.Wrap(membershipErr, "membership step failed")
	}

	role, roleErr := identitydomain.ParseRole(input.Role)
	if roleErr == nil {
		roleErr = uc.userRepo.UpdateRole(ctx, input.UserID, role)
	}
	if roleErr != nil {
		roleErr = apperrors.Wrap(roleErr, "role step failed")
	}

	if err := apperrors.Join(membershipErr, roleErr); err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, input.UserID)
}

// validateAssignInput checks that the target user and every referenced division
// and OU id exist before membership is replaced.
func (uc *AdminUseCase) validateAssignInput(
	ctx context.Context,
	input AssignMembershipInput,
) error {
	if err := validation.Validate(input.UserID,
		validation.Required.Error("user_id is required"),
	); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	if _, err := uc.userRepo.GetByID(ctx, input.UserID); err != nil {
		return err
	}

	ok, err := uc.hierarchyRepo.DivisionsExist(ctx, input.DivisionIDs)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "one or more division ids do not exist")
	}

	ok, err = uc.hierarchyRepo.OUsExist(ctx, input.OUIDs)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "one or more ou ids do not exist")
	}

	return nil
}
