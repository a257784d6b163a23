// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"context"

	authdomain "github.com/cooltech/credvault/internal/auth/domain"
)

// claimsKey is a context key type for storing verified token claims.
type claimsKey struct{}

// WithClaims stores verified token claims in the context.
// This is typically called by the authentication middleware after token verification.
func WithClaims(ctx context.Context, claims *authdomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified token claims from the context.
// Returns (claims, true) if claims are present, or (nil, false) if none were set.
func GetClaims(ctx context.Context) (*authdomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authdomain.Claims)
	return claims, ok
}
