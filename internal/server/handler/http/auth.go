// Package http provides the HTTP handlers of the card collection API:
// login, card catalog, loan ledger, deck checking, and exports.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/cardvault/cardvault/internal/auth"
)

// AuthHandler handles the shared-password login and logout endpoints.
type AuthHandler struct {
	// PasswordHash is the configured bcrypt hash of the shared password.
	PasswordHash string
	// Sessions issues and revokes session tokens.
	Sessions *auth.SessionStore
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	// Password is the shared access password.
	Password string `json:"password"`
}

// Login handles POST /api/login requests.
// It expects a JSON body with a non-empty "password" field; on a correct
// password it responds with a bearer token for the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := auth.CheckPassword(h.PasswordHash, req.Password); err != nil {
		http.Error(w, "wrong password", http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]string{"token": h.Sessions.Issue()})
}

// Logout handles POST /api/logout requests, revoking the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) {
		h.Sessions.Revoke(header[len(prefix):])
	}
	w.WriteHeader(http.StatusNoContent)
}
