package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
	authservice "github.com/cooltech/credvault/internal/auth/service"
	"github.com/cooltech/credvault/internal/httputil"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

// AuthenticationMiddleware verifies the Bearer token in the Authorization header
// and stores the resulting claims in the request context.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
//
// Error handling:
//   - Missing/malformed Authorization header → 401 Unauthorized
//   - Invalid signature or expired token → 401 Unauthorized
//
// The claims carry the membership snapshot taken at login; downstream gates read
// that snapshot, not the live user record.
func AuthenticationMiddleware(tokenService authservice.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, authdomain.ErrUnauthenticated, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, authdomain.ErrUnauthenticated, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, authdomain.ErrUnauthenticated, logger)
			c.Abort()
			return
		}

		claims, err := tokenService.Verify(token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store verified claims in context
		ctx := WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", claims.UserID.String()),
			slog.String("role", string(claims.Role)))

		c.Next()
	}
}

// RequireRoleMiddleware denies requests whose claims do not reach the minimum role.
//
// MUST be used after AuthenticationMiddleware. This covers only the role gate;
// the division membership gate for credential operations is evaluated in the use
// case layer where the target division is known.
func RequireRoleMiddleware(min identitydomain.Role, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok || claims == nil {
			logger.Debug("authorization failed: no claims in context")
			httputil.HandleErrorGin(c, authdomain.ErrUnauthenticated, logger)
			c.Abort()
			return
		}

		if !claims.Role.AtLeast(min) {
			logger.Debug("authorization failed: insufficient role",
				slog.String("user_id", claims.UserID.String()),
				slog.String("role", string(claims.Role)),
				slog.String("required", string(min)))
			httputil.HandleErrorGin(c, authdomain.ErrRoleForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
