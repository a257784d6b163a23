// Package http provides HTTP handlers for hierarchy reads.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authhttp "github.com/cooltech/credvault/internal/auth/http"
	"github.com/cooltech/credvault/internal/hierarchy/http/dto"
	"github.com/cooltech/credvault/internal/hierarchy/usecase"
	"github.com/cooltech/credvault/internal/httputil"
)

// DivisionHandler handles division-related HTTP requests.
type DivisionHandler struct {
	hierarchyUseCase usecase.UseCase
	logger           *slog.Logger
}

// NewDivisionHandler creates a new DivisionHandler.
func NewDivisionHandler(hierarchyUseCase usecase.UseCase, logger *slog.Logger) *DivisionHandler {
	return &DivisionHandler{
		hierarchyUseCase: hierarchyUseCase,
		logger:           logger,
	}
}

// GetHandler retrieves a division by ID.
// GET /v1/divisions/:id - Requires authentication; membership is not required.
// Returns 200 OK with the division.
func (h *DivisionHandler) GetHandler(c *gin.Context) {
	divisionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid division ID format: must be a valid UUID"),
			h.logger)
		return
	}

	claims, _ := authhttp.GetClaims(c.Request.Context())

	division, err := h.hierarchyUseCase.GetDivision(c.Request.Context(), claims, divisionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToDivisionResponse(division))
}
