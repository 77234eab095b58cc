// internal/auth/auth.go
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

var (
	ErrMissingHeader   = errors.New("authorization header required")
	ErrMalformedHeader = errors.New("authorization header format must be Bearer {token}")
	ErrInvalidToken    = errors.New("invalid token")
)

// TokenValidator checks bearer tokens against the single shared token the
// server was started with. A validator with an empty token accepts everything.
type TokenValidator struct {
	token []byte
}

// NewTokenValidator returns a validator for token. Pass "" to disable auth.
func NewTokenValidator(token string) *TokenValidator {
	return &TokenValidator{token: []byte(token)}
}

// Enabled reports whether requests must present a token.
func (v *TokenValidator) Enabled() bool {
	return v != nil && len(v.token) > 0
}

// Validate compares token with the configured one in constant time.
func (v *TokenValidator) Validate(token string) error {
	if !v.Enabled() {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), v.token) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// ParseBearer extracts the token from an Authorization header value of the form
// "Bearer <token>". The scheme is case-insensitive; the token is taken verbatim.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrMalformedHeader
	}
	return token, nil
}
