package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenTTL is how long a signed session cookie remains valid.
const SessionTokenTTL = 24 * time.Hour

// sessionClaims is the JWT payload identifying the authenticated caller.
type sessionClaims struct {
	jwt.RegisteredClaims
	Kind     Kind   `json:"kind"`
	Username string `json:"username"`
	Provider string `json:"provider,omitempty"`
}

// TokenSigner signs and verifies the session cookie's JWT using a single
// process-lifetime secret key (HMAC-SHA256).
type TokenSigner struct {
	secret []byte
}

// NewTokenSigner builds a TokenSigner from the configured secret key.
func NewTokenSigner(secretKey string) *TokenSigner {
	return &TokenSigner{secret: []byte(secretKey)}
}

// Sign produces a session token for id. id.Password is never embedded in
// the token; a basic-auth identity is re-verified only once, at login.
func (s *TokenSigner) Sign(id Identity) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Kind:     id.Kind,
		Username: id.Username,
		Provider: id.Provider,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, returning the Identity it
// carries. The returned Identity never has a Password set: a session token
// stands in for having already verified credentials once, at login.
func (s *TokenSigner) Verify(raw string) (Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("auth: invalid session token: %w", err)
	}
	if !token.Valid {
		return Identity{}, fmt.Errorf("auth: session token failed validation")
	}

	return Identity{
		Kind:     claims.Kind,
		Username: claims.Username,
		Provider: claims.Provider,
	}, nil
}
