// Package http provides HTTP handlers for registration and login.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cooltech/credvault/internal/httputil"
	"github.com/cooltech/credvault/internal/identity/http/dto"
	"github.com/cooltech/credvault/internal/identity/usecase"
)

// AuthHandler handles registration and login HTTP requests.
type AuthHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userUseCase usecase.UseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates a new account and returns a token for it.
// POST /v1/auth/register - No authentication required.
// Returns 201 Created with the token and the new user.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	result, err := h.userUseCase.Register(c.Request.Context(), dto.ToRegisterInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuthResponse(result))
}

// LoginHandler verifies credentials and returns a token snapshotting the user's
// current role and membership.
// POST /v1/auth/login - No authentication required, rate limited per IP.
// Returns 200 OK with the token and the user.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	result, err := h.userUseCase.Login(c.Request.Context(), dto.ToLoginInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(result))
}
