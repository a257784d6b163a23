package http

import (
	"context"
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

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
	authhttp "github.com/cooltech/credvault/internal/auth/http"
	"github.com/cooltech/credvault/internal/hierarchy/domain"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// MockHierarchyUseCase is a mock implementation of usecase.UseCase
type MockHierarchyUseCase struct {
	mock.Mock
}

func (m *MockHierarchyUseCase) GetDivision(
	ctx context.Context,
	claims *authdomain.Claims,
	id uuid.UUID,
) (*domain.Division, error) {
	args := m.Called(ctx, claims, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Division), args.Error(1)
}

// newDivisionRouter injects claims directly instead of running the full
// authentication middleware.
func newDivisionRouter(uc *MockHierarchyUseCase, claims *authdomain.Claims) *gin.Engine {
	handler := NewDivisionHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := gin.New()
	router.GET("/v1/divisions/:id", func(c *gin.Context) {
		if claims != nil {
			c.Request = c.Request.WithContext(authhttp.WithClaims(c.Request.Context(), claims))
		}
		handler.GetHandler(c)
	})
	return router
}

func TestDivisionHandler_Get(t *testing.T) {
	uc := new(MockHierarchyUseCase)
	claims := &authdomain.Claims{
		UserID: uuid.Must(uuid.NewV7()),
		Role:   identitydomain.RoleUser,
	}
	router := newDivisionRouter(uc, claims)

	divisionID := uuid.Must(uuid.NewV7())
	ouID := uuid.Must(uuid.NewV7())
	uc.On("GetDivision", mock.Anything, claims, divisionID).
		Return(&domain.Division{ID: divisionID, Name: "Platform", OUID: ouID}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/divisions/"+divisionID.String(), nil)
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Platform")
	assert.Contains(t, w.Body.String(), ouID.String())
	uc.AssertExpectations(t)
}

func TestDivisionHandler_Get_InvalidID(t *testing.T) {
	uc := new(MockHierarchyUseCase)
	router := newDivisionRouter(uc, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/divisions/not-a-uuid", nil)
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	uc.AssertNotCalled(t, "GetDivision")
}

func TestDivisionHandler_Get_NotFound(t *testing.T) {
	uc := new(MockHierarchyUseCase)
	claims := &authdomain.Claims{
		UserID: uuid.Must(uuid.NewV7()),
		Role:   identitydomain.RoleUser,
	}
	router := newDivisionRouter(uc, claims)

	divisionID := uuid.Must(uuid.NewV7())
	uc.On("GetDivision", mock.Anything, claims, divisionID).
		Return(nil, domain.ErrDivisionNotFound)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/divisions/"+divisionID.String(), nil)
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
