package httpx

import (
	"net/http"
	"strings"

	"bookstore/internal/platform/crypto"
)

// AuthMiddleware verifies the bearer token and stores the principal in
// the request context. A missing or malformed header is a 401; a token
// that fails verification is a 400 with code INVALID_TOKEN.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "No token, authorization denied", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := crypto.ParseToken(secret, token)
			if err != nil {
				JSONError(w, r, http.StatusBadRequest, "INVALID_TOKEN", "Invalid token", nil)
				return
			}

			ctx := ContextWithUser(r.Context(), claims.Sub, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects any principal without the ADMIN role. It must run
// after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFrom(r) != "ADMIN" {
			JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "Access denied. Admins only.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
