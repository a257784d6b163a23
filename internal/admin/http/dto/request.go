// Package dto contains request/response types for the administration HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/cooltech/credvault/internal/admin/usecase"
	appValidation "github.com/cooltech/credvault/internal/validation"
)

// AssignRequest is the payload for POST /v1/admin/assign. When Role is set the
// request runs the two-step reassignment workflow (membership then role);
// otherwise only membership is replaced.
type AssignRequest struct {
	UserID      string   `json:"user_id"`
	DivisionIDs []string `json:"division_ids"`
	OUIDs       []string `json:"ou_ids"`
	Role        string   `json:"role"`
}

// Validate checks the structural validity of the request.
func (r AssignRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID,
			validation.Required.Error("user_id is required"),
			appValidation.UUID,
		),
		validation.Field(&r.DivisionIDs, appValidation.UUIDSlice{}),
		validation.Field(&r.OUIDs, appValidation.UUIDSlice{}),
	)
}

// ToAssignInput converts the request to a membership assignment input.
func (r AssignRequest) ToAssignInput() (usecase.AssignMembershipInput, error) {
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return usecase.AssignMembershipInput{}, err
	}
	divisionIDs, err := parseIDs(r.DivisionIDs)
	if err != nil {
		return usecase.AssignMembershipInput{}, err
	}
	ouIDs, err := parseIDs(r.OUIDs)
	if err != nil {
		return usecase.AssignMembershipInput{}, err
	}
	return usecase.AssignMembershipInput{
		UserID:      userID,
		DivisionIDs: divisionIDs,
		OUIDs:       ouIDs,
	}, nil
}

// ToReassignInput converts the request to a two-step reassignment input.
func (r AssignRequest) ToReassignInput() (usecase.ReassignInput, error) {
	assign, err := r.ToAssignInput()
	if err != nil {
		return usecase.ReassignInput{}, err
	}
	return usecase.ReassignInput{
		UserID:      assign.UserID,
		DivisionIDs: assign.DivisionIDs,
		OUIDs:       assign.OUIDs,
		Role:        r.Role,
	}, nil
}

// ChangeRoleRequest is the payload for POST /v1/admin/role.
type ChangeRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Validate checks the structural validity of the request.
func (r ChangeRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID,
			validation.Required.Error("user_id is required"),
			appValidation.UUID,
		),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
		),
	)
}

// ToChangeRoleInput converts the request to a role change input.
func (r ChangeRoleRequest) ToChangeRoleInput() (usecase.ChangeRoleInput, error) {
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return usecase.ChangeRoleInput{}, err
	}
	return usecase.ChangeRoleInput{UserID: userID, Role: r.Role}, nil
}

func parseIDs(values []string) ([]uuid.UUID, error) {
	if values == nil {
		return []uuid.UUID{}, nil
	}
	ids := make([]uuid.UUID, len(values))
	for i, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
