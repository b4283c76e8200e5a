package service

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccessDenied        = errors.New("access denied")
	ErrAccessNotConfigured = errors.New("access secret not configured")
)

// AccessGate compares a submitted secret with the configured shared secret.
// It is a placeholder gate, not a credential store.
type AccessGate struct {
	secret []byte
	hash   []byte
}

// NewAccessGate prefers a bcrypt hash when one is configured.
func NewAccessGate(secret, bcryptHash string) (*AccessGate, error) {
	hash := strings.TrimSpace(bcryptHash)
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, err
		}
		return &AccessGate{hash: []byte(hash)}, nil
	}
	if secret == "" {
		return nil, ErrAccessNotConfigured
	}
	return &AccessGate{secret: []byte(secret)}, nil
}

// Check returns ErrAccessDenied unless submitted matches exactly.
func (g *AccessGate) Check(submitted string) error {
	if g == nil {
		return ErrAccessNotConfigured
	}
	if submitted == "" {
		return ErrAccessDenied
	}
	if len(g.hash) > 0 {
		if err := bcrypt.CompareHashAndPassword(g.hash, []byte(submitted)); err != nil {
			return ErrAccessDenied
		}
		return nil
	}
	if subtle.ConstantTimeCompare(g.secret, []byte(submitted)) != 1 {
		return ErrAccessDenied
	}
	return nil
}
