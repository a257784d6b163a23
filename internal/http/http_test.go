package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	adminhttp "github.com/cooltech/credvault/internal/admin/http"
	authservice "github.com/cooltech/credvault/internal/auth/service"
	"github.com/cooltech/credvault/internal/config"
	credentialhttp "github.com/cooltech/credvault/internal/credential/http"
	hierarchyhttp "github.com/cooltech/credvault/internal/hierarchy/http"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
	identityhttp "github.com/cooltech/credvault/internal/identity/http"
	"github.com/cooltech/credvault/internal/metrics"
)

// TestMain sets Gin to test mode and verifies no goroutines leak. The login
// rate limiter keeps a long-lived cleanup goroutine per middleware instance, so
// it is excluded from the check.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction(
		"github.com/cooltech/credvault/internal/auth/http.(*loginRateLimiterStore).cleanupStale",
	))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestServer creates a server with nil use cases behind the handlers:
// the tests below only reach routes that fail before any handler logic runs.
func createTestServer(t *testing.T) *Server {
	t.Helper()

	logger := testLogger()
	tokenService, err := authservice.NewJWTTokenService([]byte("http-test-key"), time.Hour)
	require.NoError(t, err)

	cfg := &config.Config{
		ServerHost:                   "localhost",
		ServerPort:                   8080,
		RateLimitLoginEnabled:        true,
		RateLimitLoginRequestsPerSec: 5,
		RateLimitLoginBurst:          10,
	}

	handlers := Handlers{
		Auth:       identityhttp.NewAuthHandler(nil, logger),
		Division:   hierarchyhttp.NewDivisionHandler(nil, logger),
		Credential: credentialhttp.NewCredentialHandler(nil, logger),
		Admin:      adminhttp.NewAdminHandler(nil, logger),
	}

	return NewServer(cfg, nil, tokenService, handlers, logger)
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler_NotReady_NilDB(t *testing.T) {
	server := createTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/ready", nil)
	server.GetHandler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", components["database"])
}

func TestProtectedRoutesRequireAuthentication(t *testing.T) {
	server := createTestServer(t)

	divisionID := uuid.Must(uuid.NewV7()).String()
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/divisions/" + divisionID},
		{http.MethodGet, "/v1/credentials/" + divisionID},
		{http.MethodPost, "/v1/credentials/" + divisionID},
		{http.MethodGet, "/v1/admin/all"},
		{http.MethodPost, "/v1/admin/assign"},
		{http.MethodPost, "/v1/admin/role"},
	}

	for _, tt := range paths {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(tt.method, tt.path, nil)
		server.GetHandler().ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	server := createTestServer(t)

	// Same signing key as createTestServer, so the token verifies
	tokenService, err := authservice.NewJWTTokenService([]byte("http-test-key"), time.Hour)
	require.NoError(t, err)
	token, err := tokenService.Issue(
		uuid.Must(uuid.NewV7()),
		identitydomain.RoleUser,
		[]uuid.UUID{uuid.Must(uuid.NewV7())},
		nil,
	)
	require.NoError(t, err)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/admin/all"},
		{http.MethodPost, "/v1/admin/assign"},
		{http.MethodPost, "/v1/admin/role"},
	}

	// Authenticated but non-admin callers are rejected before any handler runs
	for _, tt := range paths {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(tt.method, tt.path, nil)
		r.Header.Set("Authorization", "Bearer "+token)
		server.GetHandler().ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestUnknownRoute(t *testing.T) {
	server := createTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/unknown", nil)
	server.GetHandler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(testLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(testLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/panic", nil)

	// Should not panic - Recovery middleware catches it
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMetricsServer(t *testing.T) {
	provider, err := metrics.NewProvider("credvault_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = provider.Shutdown(t.Context())
	})

	server := NewMetricsServer("localhost", 8081, testLogger(), provider)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetHandler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
