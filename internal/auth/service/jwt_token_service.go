package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
	apperrors "github.com/cooltech/credvault/internal/errors"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

const issuer = "credvault"

// tokenClaims is the JWT payload. Membership ids travel as strings on the wire
// and are parsed back to UUIDs during verification.
type tokenClaims struct {
	Role        string   `json:"role"`
	DivisionIDs []string `json:"divisions"`
	OUIDs       []string `json:"ous"`
	jwt.RegisteredClaims
}

// jwtTokenService implements TokenService using HS256-signed JWTs.
type jwtTokenService struct {
	signingKey []byte
	expiration time.Duration
}

// NewJWTTokenService creates a TokenService signing with the given HMAC key.
// Tokens expire after the configured duration (no revocation: a token stays
// valid to its natural expiry even if the user's role or membership changes).
func NewJWTTokenService(signingKey []byte, expiration time.Duration) (TokenService, error) {
	if len(signingKey) == 0 {
		return nil, apperrors.New("token signing key is required")
	}
	if expiration <= 0 {
		return nil, apperrors.New("token expiration must be greater than zero")
	}
	return &jwtTokenService{signingKey: signingKey, expiration: expiration}, nil
}

// Issue signs a token carrying the given identity snapshot.
func (s *jwtTokenService) Issue(
	userID uuid.UUID,
	role identitydomain.Role,
	divisionIDs []uuid.UUID,
	ouIDs []uuid.UUID,
) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Role:        string(role),
		DivisionIDs: uuidsToStrings(divisionIDs),
		OUIDs:       uuidsToStrings(ouIDs),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns its claims.
func (s *jwtTokenService) Verify(token string) (*authdomain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, authdomain.ErrTokenInvalid
		}
		return s.signingKey, nil
	})
	if err != nil {
		if apperrors.Is(err, jwt.ErrTokenExpired) {
			return nil, authdomain.ErrTokenExpired
		}
		return nil, authdomain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, authdomain.ErrTokenInvalid
	}

	return s.toDomainClaims(claims)
}

// toDomainClaims validates the payload fields and converts them to domain claims.
func (s *jwtTokenService) toDomainClaims(claims *tokenClaims) (*authdomain.Claims, error) {
	if claims.Issuer != issuer || claims.ExpiresAt == nil {
		return nil, authdomain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authdomain.ErrTokenInvalid
	}

	role, err := identitydomain.ParseRole(claims.Role)
	if err != nil {
		return nil, authdomain.ErrTokenInvalid
	}

	divisionIDs, err := stringsToUUIDs(claims.DivisionIDs)
	if err != nil {
		return nil, authdomain.ErrTokenInvalid
	}

	ouIDs, err := stringsToUUIDs(claims.OUIDs)
	if err != nil {
		return nil, authdomain.ErrTokenInvalid
	}

	return &authdomain.Claims{
		UserID:      userID,
		Role:        role,
		DivisionIDs: divisionIDs,
		OUIDs:       ouIDs,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func stringsToUUIDs(values []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
