package app

import (
	"fmt"
	"log/slog"

	adminHTTP "github.com/cooltech/credvault/internal/admin/http"
	credentialHTTP "github.com/cooltech/credvault/internal/credential/http"
	hierarchyHTTP "github.com/cooltech/credvault/internal/hierarchy/http"
	"github.com/cooltech/credvault/internal/http"
	identityHTTP "github.com/cooltech/credvault/internal/identity/http"
)

// initHandlers builds the per-context HTTP handlers wired into the router.
func (c *Container) initHandlers(logger *slog.Logger) (http.Handlers, error) {
	userUseCase, err := c.UserUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get user use case for handlers: %w", err)
	}

	hierarchyUseCase, err := c.HierarchyUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get hierarchy use case for handlers: %w", err)
	}

	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get credential use case for handlers: %w", err)
	}

	adminUseCase, err := c.AdminUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get admin use case for handlers: %w", err)
	}

	return http.Handlers{
		Auth:       identityHTTP.NewAuthHandler(userUseCase, logger),
		Division:   hierarchyHTTP.NewDivisionHandler(hierarchyUseCase, logger),
		Credential: credentialHTTP.NewCredentialHandler(credentialUseCase, logger),
		Admin:      adminHTTP.NewAdminHandler(adminUseCase, logger),
	}, nil
}
