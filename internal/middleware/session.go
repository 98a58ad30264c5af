// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"net/http"
	"strings"
)

// TokenValidator reports whether a bearer token belongs to a live session.
type TokenValidator interface {
	Valid(token string) bool
}

// SessionAuth is a middleware that enforces the shared-password gate.
//
// It checks the Authorization header for a bearer token issued by the
// login endpoint. The /api/login endpoint is excluded so users can obtain
// a token in the first place.
func SessionAuth(sessions TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/login" {
				// Allow login without a session
				next.ServeHTTP(w, r)
				return
			}
			token := bearerToken(r)
			if token == "" || !sessions.Valid(token) {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
