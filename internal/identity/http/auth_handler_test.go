package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cooltech/credvault/internal/identity/domain"
	"github.com/cooltech/credvault/internal/identity/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// MockUserUseCase is a mock implementation of usecase.UseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(
	ctx context.Context,
	input usecase.RegisterInput,
) (*usecase.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}

func (m *MockUserUseCase) Login(
	ctx context.Context,
	input usecase.LoginInput,
) (*usecase.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}

func (m *MockUserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newAuthRouter(uc usecase.UseCase) *gin.Engine {
	handler := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := gin.New()
	router.POST("/v1/auth/register", handler.RegisterHandler)
	router.POST("/v1/auth/login", handler.LoginHandler)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	uc := new(MockUserUseCase)
	router := newAuthRouter(uc)

	user := &domain.User{
		ID:          uuid.Must(uuid.NewV7()),
		Username:    "alice",
		Role:        domain.RoleUser,
		DivisionIDs: []uuid.UUID{},
		OUIDs:       []uuid.UUID{},
	}
	uc.On("Register", mock.Anything, usecase.RegisterInput{
		Username: "alice",
		Password: "SuperSecret1",
	}).Return(&usecase.AuthResult{Token: "signed-token", User: user}, nil)

	w := postJSON(router, "/v1/auth/register", gin.H{
		"username": "alice",
		"password": "SuperSecret1",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "user", resp.User.Role)
	assert.NotContains(t, w.Body.String(), "password")
	uc.AssertExpectations(t)
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	uc := new(MockUserUseCase)
	router := newAuthRouter(uc)

	uc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrUserAlreadyExists)

	w := postJSON(router, "/v1/auth/register", gin.H{
		"username": "alice",
		"password": "SuperSecret1",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	uc := new(MockUserUseCase)
	router := newAuthRouter(uc)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader([]byte("{not json")))
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	uc.AssertNotCalled(t, "Register")
}

func TestAuthHandler_Login(t *testing.T) {
	uc := new(MockUserUseCase)
	router := newAuthRouter(uc)

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "alice",
		Role:     domain.RoleManager,
	}
	uc.On("Login", mock.Anything, usecase.LoginInput{
		Username: "alice",
		Password: "SuperSecret1",
	}).Return(&usecase.AuthResult{Token: "signed-token", User: user}, nil)

	w := postJSON(router, "/v1/auth/login", gin.H{
		"username": "alice",
		"password": "SuperSecret1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	uc := new(MockUserUseCase)
	router := newAuthRouter(uc)

	uc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	w := postJSON(router, "/v1/auth/login", gin.H{
		"username": "alice",
		"password": "WrongPassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
