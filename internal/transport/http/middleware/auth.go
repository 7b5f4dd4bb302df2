package middleware

import (
	"context"
	"net/http"

	"devconnector/internal/httputil"
	"devconnector/internal/service"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
)

// TokenHeader is the request header carrying the raw session token.
// No "Bearer" scheme; the header value is the token itself.
const TokenHeader = "x-auth-token"

// AuthMiddleware gates protected routes. It extracts the token from the
// x-auth-token header, verifies it, and re-confirms the claimed user still
// exists before attaching the user id to the request context. A token for a
// deleted account is treated exactly like a bad token.
//
// The gate keeps no state between requests; it is safe per-request.
func AuthMiddleware(auth *service.AuthService, users *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				httputil.WriteUnauthorized(w, "No token, authorization denied")
				return
			}

			userID, err := auth.VerifyToken(tokenString)
			if err != nil {
				httputil.WriteUnauthorized(w, "Token is not valid")
				return
			}

			exists, err := users.ExistsByID(r.Context(), userID)
			if err != nil {
				httputil.WriteInternalError(w)
				return
			}
			if !exists {
				httputil.WriteUnauthorized(w, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the user ID from the request context.
// Returns the user ID and true if found, or 0 and false if not found.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
