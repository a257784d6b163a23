// Package usecase implements credential repository operations: list, create,
// update, and delete, each guarded by the access control engine.
package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
	"github.com/cooltech/credvault/internal/credential/domain"
	"github.com/cooltech/credvault/internal/database"
	appValidation "github.com/cooltech/credvault/internal/validation"
)

// CreateCredentialInput contains the input data for creating a credential.
type CreateCredentialInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UpdateCredentialInput contains the input data for updating a credential.
// Empty fields leave the current value unchanged.
type UpdateCredentialInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UseCase defines the interface for credential business logic operations
type UseCase interface {
	List(ctx context.Context, claims *authdomain.Claims, divisionID uuid.UUID) ([]domain.Credential, error)
	Create(
		ctx context.Context,
		claims *authdomain.Claims,
		divisionID uuid.UUID,
		input CreateCredentialInput,
	) ([]domain.Credential, error)
	Update(
		ctx context.Context,
		claims *authdomain.Claims,
		divisionID uuid.UUID,
		credentialID uuid.UUID,
		input UpdateCredentialInput,
	) (*domain.Credential, error)
	Delete(
		ctx context.Context,
		claims *authdomain.Claims,
		divisionID uuid.UUID,
		credentialID uuid.UUID,
	) error
}

// CredentialStore interface defines credential repository persistence operations
type CredentialStore interface {
	Create(ctx context.Context, repo *domain.CredentialRepository) error
	GetByDivision(ctx context.Context, divisionID uuid.UUID) (*domain.CredentialRepository, error)
	Save(ctx context.Context, repo *domain.CredentialRepository) error
}

// CredentialUseCase handles credential business logic.
//
// Every operation authorizes against the caller's claims before touching
// storage: the role gate and the division membership gate both run first, so a
// caller without access cannot learn whether a division or credential exists.
// Mutations run the read-modify-write cycle inside a transaction so concurrent
// writers to the same division serialize on the repository row.
type CredentialUseCase struct {
	txManager       database.TxManager
	credentialStore CredentialStore
}

// NewCredentialUseCase creates a new CredentialUseCase
func NewCredentialUseCase(
	txManager database.TxManager,
	credentialStore CredentialStore,
) UseCase {
	return &CredentialUseCase{
		txManager:       txManager,
		credentialStore: credentialStore,
	}
}

func (uc *CredentialUseCase) validateCreateInput(input CreateCredentialInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Value,
			validation.Required.Error("value is required"),
			validation.Length(1, 4096).Error("value must be between 1 and 4096 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

func (uc *CredentialUseCase) validateUpdateInput(input UpdateCredentialInput) error {
	// Empty fields are allowed: they leave the current value unchanged
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Length(0, 255).Error("name must be at most 255 characters"),
		),
		validation.Field(&input.Value,
			validation.Length(0, 4096).Error("value must be at most 4096 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// List returns all credentials in the division's repository.
// Requires the user role and membership in the division.
func (uc *CredentialUseCase) List(
	ctx context.Context,
	claims *authdomain.Claims,
	divisionID uuid.UUID,
) ([]domain.Credential, error) {
	if err := authdomain.Authorize(claims, authdomain.OpListCredentials, divisionID); err != nil {
		return nil, err
	}

	repo, err := uc.credentialStore.GetByDivision(ctx, divisionID)
	if err != nil {
		return nil, err
	}

	return repo.Credentials, nil
}

// Create adds a credential to the division's repository and returns the
// updated credential list.
// Requires the user role and membership in the division.
func (uc *CredentialUseCase) Create(
	ctx context.Context,
	claims *authdomain.Claims,
	divisionID uuid.UUID,
	input CreateCredentialInput,
) ([]domain.Credential, error) {
	if err := authdomain.Authorize(claims, authdomain.OpCreateCredential, divisionID); err != nil {
		return nil, err
	}

	if err := uc.validateCreateInput(input); err != nil {
		return nil, err
	}

	var credentials []domain.Credential
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		repo, err := uc.credentialStore.GetByDivision(ctx, divisionID)
		if err != nil {
			return err
		}

		repo.Add(input.Name, input.Value, time.Now().UTC())

		if err := uc.credentialStore.Save(ctx, repo); err != nil {
			return err
		}

		credentials = repo.Credentials
		return nil
	})
	if err != nil {
		return nil, err
	}

	return credentials, nil
}

// Update modifies a credential in the division's repository. Empty name or
// value fields leave the stored fields unchanged.
// Requires the manager role and membership in the division.
func (uc *CredentialUseCase) Update(
	ctx context.Context,
	claims *authdomain.Claims,
	divisionID uuid.UUID,
	credentialID uuid.UUID,
	input UpdateCredentialInput,
) (*domain.Credential, error) {
	if err := authdomain.Authorize(claims, authdomain.OpUpdateCredential, divisionID); err != nil {
		return nil, err
	}

	if err := uc.validateUpdateInput(input); err != nil {
		return nil, err
	}

	var updated domain.Credential
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		repo, err := uc.credentialStore.GetByDivision(ctx, divisionID)
		if err != nil {
			return err
		}

		credential, err := repo.Update(credentialID, input.Name, input.Value, time.Now().UTC())
		if err != nil {
			return err
		}
		updated = *credential

		return uc.credentialStore.Save(ctx, repo)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a credential from the division's repository.
// Requires the manager role and membership in the division.
func (uc *CredentialUseCase) Delete(
	ctx context.Context,
	claims *authdomain.Claims,
	divisionID uuid.UUID,
	credentialID uuid.UUID,
) error {
	if err := authdomain.Authorize(claims, authdomain.OpDeleteCredential, divisionID); err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		repo, err := uc.credentialStore.GetByDivision(ctx, divisionID)
		if err != nil {
			return err
		}

		if err := repo.Remove(credentialID); err != nil {
			return err
		}

		return uc.credentialStore.Save(ctx, repo)
	})
}
