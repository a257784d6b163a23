// Package http provides HTTP handlers for the administration workflow.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cooltech/credvault/internal/admin/http/dto"
	"github.com/cooltech/credvault/internal/admin/usecase"
	authhttp "github.com/cooltech/credvault/internal/auth/http"
	"github.com/cooltech/credvault/internal/httputil"
	customValidation "github.com/cooltech/credvault/internal/validation"
)

// AdminHandler handles administration HTTP requests.
type AdminHandler struct {
	adminUseCase usecase.UseCase
	logger       *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminUseCase usecase.UseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

// ListAllHandler returns every user, OU, and division.
// GET /v1/admin/all - Requires the admin role.
// Returns 200 OK with the full listing.
func (h *AdminHandler) ListAllHandler(c *gin.Context) {
	claims, _ := authhttp.GetClaims(c.Request.Context())

	output, err := h.adminUseCase.ListAll(c.Request.Context(), claims)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAllResponse(output))
}

// AssignHandler replaces a user's membership; when the payload carries a role
// it runs the two-step reassignment workflow instead.
// POST /v1/admin/assign - Requires the admin role.
// Returns 200 OK with the updated user.
func (h *AdminHandler) AssignHandler(c *gin.Context) {
	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	claims, _ := authhttp.GetClaims(c.Request.Context())

	if req.Role != "" {
		input, err := req.ToReassignInput()
		if err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}

		user, err := h.adminUseCase.Reassign(c.Request.Context(), claims, input)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}

		c.JSON(http.StatusOK, dto.ToUserResponse(user))
		return
	}

	input, err := req.ToAssignInput()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.adminUseCase.AssignMembership(c.Request.Context(), claims, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ChangeRoleHandler replaces a user's role.
// POST /v1/admin/role - Requires the admin role.
// Returns 200 OK with the updated user.
func (h *AdminHandler) ChangeRoleHandler(c *gin.Context) {
	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input, err := req.ToChangeRoleInput()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	claims, _ := authhttp.GetClaims(c.Request.Context())

	user, err := h.adminUseCase.ChangeRole(c.Request.Context(), claims, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
