// Package usecase implements the identity business logic: registration and login.
package usecase

import (
	"context"
	"errors"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	authservice "github.com/cooltech/credvault/internal/auth/service"
	apperrors "github.com/cooltech/credvault/internal/errors"
	"github.com/cooltech/credvault/internal/identity/domain"
	appValidation "github.com/cooltech/credvault/internal/validation"
)

// RegisterInput contains the input data for user registration.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput contains the input data for login.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is the outcome of a successful registration or login: the user and
// a signed token carrying a snapshot of their role and membership.
type AuthResult struct {
	Token string
	User  *domain.User
}

// UseCase defines the interface for identity business logic operations
type UseCase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserUseCase handles registration and login
type UserUseCase struct {
	userRepo       UserRepository
	tokenService   authservice.TokenService
	passwordHasher *pwdhash.PasswordHasher
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	userRepo UserRepository,
	tokenService authservice.TokenService,
) (UseCase, error) {
	// Interactive policy: login-path hashing must stay fast
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &UserUseCase{
		userRepo:       userRepo,
		tokenService:   tokenService,
		passwordHasher: hasher,
	}, nil
}

func (uc *UserUseCase) validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			validation.Length(3, 64).Error("username must be between 3 and 64 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new user with the default role and no membership, then
// issues a token for the fresh account.
//
// New users cannot reach any division's credentials until an admin assigns
// membership through the administration workflow.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	digest, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:             uuid.Must(uuid.NewV7()),
		Username:       strings.TrimSpace(input.Username),
		PasswordDigest: digest,
		Role:           domain.RoleUser,
		DivisionIDs:    []uuid.UUID{},
		OUIDs:          []uuid.UUID{},
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.tokenService.Issue(user.ID, user.Role, user.DivisionIDs, user.OUIDs)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies the username/password pair and issues a token snapshotting the
// user's current role and membership.
//
// Unknown usernames and wrong passwords both map to ErrInvalidCredentials so the
// response does not reveal which usernames exist.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username, validation.Required.Error("username is required")),
		validation.Field(&input.Password, validation.Required.Error("password is required")),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(input.Password), user.PasswordDigest)
	if err != nil || !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokenService.Issue(user.ID, user.Role, user.DivisionIDs, user.OUIDs)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GetUserByID retrieves a user by ID
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
