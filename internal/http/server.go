// Package http provides the HTTP server, routing, and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adminhttp "github.com/cooltech/credvault/internal/admin/http"
	authhttp "github.com/cooltech/credvault/internal/auth/http"
	authservice "github.com/cooltech/credvault/internal/auth/service"
	"github.com/cooltech/credvault/internal/config"
	credentialhttp "github.com/cooltech/credvault/internal/credential/http"
	hierarchyhttp "github.com/cooltech/credvault/internal/hierarchy/http"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
	identityhttp "github.com/cooltech/credvault/internal/identity/http"
)

// Handlers groups the per-context HTTP handlers wired into the router.
type Handlers struct {
	Auth       *identityhttp.AuthHandler
	Division   *hierarchyhttp.DivisionHandler
	Credential *credentialhttp.CredentialHandler
	Admin      *adminhttp.AdminHandler
}

// Server represents the HTTP API server.
type Server struct {
	cfg          *config.Config
	db           *sql.DB
	tokenService authservice.TokenService
	handlers     Handlers
	logger       *slog.Logger
	server       *http.Server
}

// NewServer creates a new HTTP API server.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	tokenService authservice.TokenService,
	handlers Handlers,
	logger *slog.Logger,
) *Server {
	s := &Server{
		cfg:          cfg,
		db:           db,
		tokenService: tokenService,
		handlers:     handlers,
		logger:       logger,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      s.setupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRouter builds the gin engine with middleware and all routes.
func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Unauthenticated endpoints
	auth := v1.Group("/auth")
	auth.POST("/register", s.handlers.Auth.RegisterHandler)
	login := []gin.HandlerFunc{}
	if s.cfg.RateLimitLoginEnabled {
		login = append(login, authhttp.LoginRateLimitMiddleware(
			s.cfg.RateLimitLoginRequestsPerSec, s.cfg.RateLimitLoginBurst, s.logger,
		))
	}
	login = append(login, s.handlers.Auth.LoginHandler)
	auth.POST("/login", login...)

	// Authenticated endpoints
	authenticated := v1.Group("/", authhttp.AuthenticationMiddleware(s.tokenService, s.logger))
	authenticated.GET("/divisions/:id", s.handlers.Division.GetHandler)
	authenticated.GET("/credentials/:divisionId", s.handlers.Credential.ListHandler)
	authenticated.POST("/credentials/:divisionId", s.handlers.Credential.CreateHandler)
	authenticated.PUT("/credentials/:divisionId/:credentialId", s.handlers.Credential.UpdateHandler)
	authenticated.DELETE("/credentials/:divisionId/:credentialId", s.handlers.Credential.DeleteHandler)

	// Admin endpoints: the role gate runs here, the use cases authorize again
	admin := authenticated.Group(
		"/admin", authhttp.RequireRoleMiddleware(identitydomain.RoleAdmin, s.logger),
	)
	admin.GET("/all", s.handlers.Admin.ListAllHandler)
	admin.POST("/assign", s.handlers.Admin.AssignHandler)
	admin.POST("/role", s.handlers.Admin.ChangeRoleHandler)

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can take traffic: the database
// must be reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}
	status := http.StatusOK

	if s.db == nil {
		components["database"] = "error"
		status = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			components["database"] = "error"
			status = http.StatusServiceUnavailable
		}
	}

	statusText := "ready"
	if status != http.StatusOK {
		statusText = "not_ready"
	}

	c.JSON(status, gin.H{"status": statusText, "components": components})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
