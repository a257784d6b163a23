package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
	apperrors "github.com/cooltech/credvault/internal/errors"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

var testSigningKey = []byte("test-signing-key-for-unit-tests")

func newTestService(t *testing.T, expiration time.Duration) TokenService {
	t.Helper()

	svc, err := NewJWTTokenService(testSigningKey, expiration)
	require.NoError(t, err)
	return svc
}

func TestNewJWTTokenService_Validation(t *testing.T) {
	_, err := NewJWTTokenService(nil, time.Hour)
	assert.Error(t, err)

	_, err = NewJWTTokenService(testSigningKey, 0)
	assert.Error(t, err)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	userID := uuid.Must(uuid.NewV7())
	divisions := []uuid.UUID{uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())}
	ous := []uuid.UUID{uuid.Must(uuid.NewV7())}

	token, err := svc.Issue(userID, identitydomain.RoleManager, divisions, ous)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	// Verify returns exactly what Issue embedded
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, identitydomain.RoleManager, claims.Role)
	assert.Equal(t, divisions, claims.DivisionIDs)
	assert.Equal(t, ous, claims.OUIDs)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestVerify_EmptyMembership(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.Issue(uuid.Must(uuid.NewV7()), identitydomain.RoleUser, nil, nil)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Empty(t, claims.DivisionIDs)
	assert.Empty(t, claims.OUIDs)
}

func TestVerify_Expired(t *testing.T) {
	svc := newTestService(t, time.Millisecond)

	token, err := svc.Issue(uuid.Must(uuid.NewV7()), identitydomain.RoleAdmin, nil, nil)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, authdomain.ErrTokenExpired)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestVerify_WrongKey(t *testing.T) {
	svc := newTestService(t, time.Hour)

	other, err := NewJWTTokenService([]byte("a-completely-different-key"), time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(uuid.Must(uuid.NewV7()), identitydomain.RoleUser, nil, nil)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, authdomain.ErrTokenInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	svc := newTestService(t, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		claims, err := svc.Verify(token)
		assert.Nil(t, claims)
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	}
}

func TestVerify_RejectsUnexpectedSigningMethod(t *testing.T) {
	svc := newTestService(t, time.Hour)

	// Token signed with "none" must be rejected even with a valid payload shape.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   uuid.Must(uuid.NewV7()).String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, authdomain.ErrTokenInvalid)
}

func TestVerify_RejectsForeignIssuer(t *testing.T) {
	svc := newTestService(t, time.Hour)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   uuid.Must(uuid.NewV7()).String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := foreign.SignedString(testSigningKey)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, authdomain.ErrTokenInvalid)
}

func TestVerify_RejectsInvalidRole(t *testing.T) {
	svc := newTestService(t, time.Hour)

	bad := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: "superadmin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   uuid.Must(uuid.NewV7()).String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := bad.SignedString(testSigningKey)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, authdomain.ErrTokenInvalid)
}
