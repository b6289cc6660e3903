// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const adminKey ctxKey = "admin"

// TokenValidator resolves a bearer token to its session.
type TokenValidator interface {
	// Validate reports the token's admin flag and whether the token is
	// known at all.
	Validate(token string) (isAdmin bool, ok bool)
}

// BearerAuth enforces bearer-token authentication.
//
// It expects an "Authorization: Bearer <token>" header and rejects the
// request with 401 when the header is missing, malformed, or carries an
// unknown token. On success the session's admin flag is stored in the
// request context for downstream permission checks.
func BearerAuth(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			isAdmin, ok := v.Validate(token)
			if !ok {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), adminKey, isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsAdminFromContext reports the admin flag stored by BearerAuth.
// Returns false if the request never passed through the middleware.
func IsAdminFromContext(ctx context.Context) bool {
	val := ctx.Value(adminKey)
	if b, ok := val.(bool); ok {
		return b
	}
	return false
}
