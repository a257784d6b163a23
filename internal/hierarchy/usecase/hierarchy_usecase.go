// Package usecase implements hierarchy read operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
	"github.com/cooltech/credvault/internal/hierarchy/domain"
)

// UseCase defines the interface for hierarchy business logic operations
type UseCase interface {
	GetDivision(ctx context.Context, claims *authdomain.Claims, id uuid.UUID) (*domain.Division, error)
}

// HierarchyRepository interface defines hierarchy repository operations
type HierarchyRepository interface {
	GetDivision(ctx context.Context, id uuid.UUID) (*domain.Division, error)
	ListOUs(ctx context.Context) ([]*domain.OU, error)
	ListDivisions(ctx context.Context) ([]*domain.Division, error)
}

// HierarchyUseCase handles hierarchy reads
type HierarchyUseCase struct {
	hierarchyRepo HierarchyRepository
}

// NewHierarchyUseCase creates a new HierarchyUseCase
func NewHierarchyUseCase(hierarchyRepo HierarchyRepository) UseCase {
	return &HierarchyUseCase{hierarchyRepo: hierarchyRepo}
}

// GetDivision retrieves a division by ID.
//
// Any authenticated user may read division metadata; no division membership is
// required for this operation.
func (uc *HierarchyUseCase) GetDivision(
	ctx context.Context,
	claims *authdomain.Claims,
	id uuid.UUID,
) (*domain.Division, error) {
	if err := authdomain.Authorize(claims, authdomain.OpReadDivision, id); err != nil {
		return nil, err
	}

	return uc.hierarchyRepo.GetDivision(ctx, id)
}
