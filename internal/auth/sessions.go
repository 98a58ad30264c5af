// Package auth implements the shared-password gate: bcrypt password
// verification and an in-memory session token store.
package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CheckPassword compares the configured bcrypt hash against a submitted
// password. Returns a non-nil error on mismatch.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// HashPassword produces a bcrypt hash for configuration bootstrap.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SessionStore issues and validates opaque bearer tokens. Tokens expire
// after the configured TTL and are held only in memory, so a restart
// logs everyone out.
type SessionStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionStore creates a SessionStore whose tokens live for ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates and returns a new session token.
func (s *SessionStore) Issue() string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = s.now().Add(s.ttl)
	return token
}

// Valid reports whether the token is known and unexpired. Expired tokens
// are dropped on the way out.
func (s *SessionStore) Valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.tokens[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.tokens, token)
		return false
	}
	return true
}

// Revoke drops the token, ending its session.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
