// Package http provides HTTP handlers for credential repository operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authhttp "github.com/cooltech/credvault/internal/auth/http"
	"github.com/cooltech/credvault/internal/credential/http/dto"
	"github.com/cooltech/credvault/internal/credential/usecase"
	"github.com/cooltech/credvault/internal/httputil"
)

// CredentialHandler handles credential-related HTTP requests.
type CredentialHandler struct {
	credentialUseCase usecase.UseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new CredentialHandler.
func NewCredentialHandler(credentialUseCase usecase.UseCase, logger *slog.Logger) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

// ListHandler lists all credentials in a division's repository.
// GET /v1/credentials/:divisionId - Requires membership in the division.
// Returns 200 OK with the credential list.
func (h *CredentialHandler) ListHandler(c *gin.Context) {
	divisionID, ok := h.divisionID(c)
	if !ok {
		return
	}

	claims, _ := authhttp.GetClaims(c.Request.Context())

	credentials, err := h.credentialUseCase.List(c.Request.Context(), claims, divisionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListCredentialsResponse(credentials))
}

// CreateHandler adds a credential to a division's repository.
// POST /v1/credentials/:divisionId - Requires membership in the division.
// Returns 201 Created with the updated credential list.
func (h *CredentialHandler) CreateHandler(c *gin.Context) {
	divisionID, ok := h.divisionID(c)
	if !ok {
		return
	}

	var req dto.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	claims, _ := authhttp.GetClaims(c.Request.Context())

	credentials, err := h.credentialUseCase.Create(
		c.Request.Context(), claims, divisionID,
		usecase.CreateCredentialInput{Name: req.Name, Value: req.Value},
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToListCredentialsResponse(credentials))
}

// UpdateHandler modifies a credential in a division's repository.
// PUT /v1/credentials/:divisionId/:credentialId - Requires the manager role and
// membership in the division.
// Returns 200 OK with the updated credential.
func (h *CredentialHandler) UpdateHandler(c *gin.Context) {
	divisionID, ok := h.divisionID(c)
	if !ok {
		return
	}
	credentialID, ok := h.credentialID(c)
	if !ok {
		return
	}

	var req dto.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	claims, _ := authhttp.GetClaims(c.Request.Context())

	credential, err := h.credentialUseCase.Update(
		c.Request.Context(), claims, divisionID, credentialID,
		usecase.UpdateCredentialInput{Name: req.Name, Value: req.Value},
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCredentialResponse(credential))
}

// DeleteHandler removes a credential from a division's repository.
// DELETE /v1/credentials/:divisionId/:credentialId - Requires the manager role
// and membership in the division.
// Returns 204 No Content.
func (h *CredentialHandler) DeleteHandler(c *gin.Context) {
	divisionID, ok := h.divisionID(c)
	if !ok {
		return
	}
	credentialID, ok := h.credentialID(c)
	if !ok {
		return
	}

	claims, _ := authhttp.GetClaims(c.Request.Context())

	if err := h.credentialUseCase.Delete(
		c.Request.Context(), claims, divisionID, credentialID,
	); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CredentialHandler) divisionID(c *gin.Context) (uuid.UUID, bool) {
	divisionID, err := uuid.Parse(c.Param("divisionId"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid division ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return divisionID, true
}

func (h *CredentialHandler) credentialID(c *gin.Context) (uuid.UUID, bool) {
	credentialID, err := uuid.Parse(c.Param("credentialId"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid credential ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return credentialID, true
}
