package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSVerifier validates RS* tokens against the issuer's published key set
type JWKSVerifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewJWKSVerifier builds a verifier for issuer and audience. jwksURL
// defaults to the issuer's well-known key set, which is refreshed in the
// background.
func NewJWKSVerifier(issuer, audience, jwksURL string) (*JWKSVerifier, error) {
	issuer = normalizeIssuer(issuer)
	if issuer == "" {
		return nil, errors.New("issuer must be set")
	}
	if jwksURL == "" {
		jwksURL = issuer + ".well-known/jwks.json"
	}

	kf, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to init JWKS keyfunc: %w", err)
	}
	return NewJWKSVerifierWithKeyfunc(issuer, audience, kf.Keyfunc)
}

// NewJWKSVerifierWithKeyfunc builds a verifier around an existing key lookup
func NewJWKSVerifierWithKeyfunc(issuer, audience string, kf jwt.Keyfunc) (*JWKSVerifier, error) {
	issuer = normalizeIssuer(issuer)
	if issuer == "" {
		return nil, errors.New("issuer must be set")
	}
	if audience == "" {
		return nil, errors.New("audience must be set")
	}

	return &JWKSVerifier{
		keyfunc: kf,
		parser: jwt.NewParser(
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithLeeway(defaultLeeway),
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name, jwt.SigningMethodRS384.Name, jwt.SigningMethodRS512.Name}),
		),
	}, nil
}

// Verify parses and validates a JWT, returning extracted claims
func (v *JWKSVerifier) Verify(_ context.Context, token string) (*Claims, error) {
	var tc tokenClaims
	t, err := v.parser.ParseWithClaims(token, &tc, v.keyfunc)
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

func normalizeIssuer(issuer string) string {
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return ""
	}
	if !strings.HasSuffix(issuer, "/") {
		issuer += "/"
	}
	return issuer
}
