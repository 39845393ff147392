package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// Using a package-private type prevents collisions: only THIS package can
// create a key of type contextKey, so only this package can read or write
// the user ID stored in the context.
type contextKey string

const userIDKey contextKey = "userID"

// TokenValidator is the part of TokenService the middleware needs.
// Tests can swap in a fake.
type TokenValidator interface {
	Validate(token string) (int64, error)
}

var errNoBearer = errors.New("auth: missing bearer token")

// RequireAuth is a middleware that enforces authentication on protected routes.
//
// It reads the JWT from the "Authorization: Bearer <token>" header, validates
// it, and stores the user ID in the request context. If the header is missing,
// malformed, or the token is invalid or expired, it answers 401 with an empty
// body and stops the request chain. A client cannot tell which of those cases
// happened.
//
// MIDDLEWARE PATTERN IN GO:
//
//	func Middleware(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        // ... before ...
//	        next.ServeHTTP(w, r)
//	        // ... after ...
//	    })
//	}
func RequireAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
// RequireAuth uses it; handler tests use it to skip token plumbing.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext retrieves the authenticated user's ID from the request context.
//
// Returns (0, false) if no valid identity was stored. Handlers behind
// RequireAuth treat that as 401.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// extractUserID reads the bearer token and validates it.
func extractUserID(r *http.Request, tokens TokenValidator) (int64, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return 0, errNoBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errNoBearer
	}

	return tokens.Validate(token)
}
