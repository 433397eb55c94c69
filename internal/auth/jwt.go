// Package auth verifies identity tokens issued by the identity provider.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultLeeway = 30 * time.Second

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified identity carried by a token
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Verifier checks a raw token and returns its identity
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// MintToken signs an HS256 token for subject. Used for local development
// and tests where no external identity provider is configured.
func MintToken(subject, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return tok.SignedString([]byte(secret))
}

// HMACVerifier verifies HS256 tokens signed with a shared secret
type HMACVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewHMACVerifier creates a verifier for the given secret
func NewHMACVerifier(secret string) (*HMACVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be set")
	}
	return &HMACVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
			jwt.WithLeeway(defaultLeeway),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Verify parses and validates an HS256 token
func (v *HMACVerifier) Verify(_ context.Context, token string) (*Claims, error) {
	var tc tokenClaims
	t, err := v.parser.ParseWithClaims(token, &tc, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	if tc.Subject == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{Subject: tc.Subject, Email: tc.Email}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}
