package dto

import (
	"github.com/google/uuid"

	"github.com/cooltech/credvault/internal/identity/domain"
	"github.com/cooltech/credvault/internal/identity/usecase"
)

// ToRegisterInput converts a RegisterRequest to a use case input.
func ToRegisterInput(req RegisterRequest) usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	}
}

// ToLoginInput converts a LoginRequest to a use case input.
func ToLoginInput(req LoginRequest) usecase.LoginInput {
	return usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}
}

// ToUserResponse converts a domain user to its public representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Role:        string(user.Role),
		DivisionIDs: idsToStrings(user.DivisionIDs),
		OUIDs:       idsToStrings(user.OUIDs),
	}
}

// ToAuthResponse converts an authentication result to a response DTO.
func ToAuthResponse(result *usecase.AuthResult) AuthResponse {
	return AuthResponse{
		Token: result.Token,
		User:  ToUserResponse(result.User),
	}
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
