package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
	"github.com/cooltech/credvault/internal/credential/domain"
	"github.com/cooltech/credvault/internal/metrics"
)

// credentialUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", operation, status)
	c.metrics.RecordDuration(ctx, "credentials", operation, time.Since(start), status)
}

// List records metrics for credential list operations.
func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	claims *authdomain.Claims,
	divisionID uuid.UUID,
) ([]domain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.List(ctx, claims, divisionID)
	c.record(ctx, "credential_list", start, err)
	return credentials, err
}

// Create records metrics for credential creation operations.
func (c *credentialUseCaseWithMetrics) Create(
	ctx context.Context,
	claims *authdomain.Claims,
	divisionID uuid.UUID,
	input CreateCredentialInput,
) ([]domain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.Create(ctx, claims, divisionID, input)
	c.record(ctx, "credential_create", start, err)
	return credentials, err
}

// Update records metrics for credential update operations.
func (c *credentialUseCaseWithMetrics) Update(
	ctx context.Context,
	claims *authdomain.Claims,
	divisionID uuid.UUID,
	credentialID uuid.UUID,
	input UpdateCredentialInput,
) (*domain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Update(ctx, claims, divisionID, credentialID, input)
	c.record(ctx, "credential_update", start, err)
	return credential, err
}

// Delete records metrics for credential deletion operations.
func (c *credentialUseCaseWithMetrics) Delete(
	ctx context.Context,
	claims *authdomain.Claims,
	divisionID uuid.UUID,
	credentialID uuid.UUID,
) error {
	start := time.Now()
	err := c.next.Delete(ctx, claims, divisionID, credentialID)
	c.record(ctx, "credential_delete", start, err)
	return err
}
