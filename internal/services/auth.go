package services

import (
	"context"
	stderrors "errors"

	"github.com/pratik-mahalle/fitcoach/internal/auth"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/metrics"
)

// Credentials are the tokens a request presented
type Credentials struct {
	Cookie string
	Bearer string
}

// AuthResolver turns request credentials into a stored user
type AuthResolver struct {
	verifier auth.Verifier
	users    user.Repository
	logger   *logger.Logger
}

// NewAuthResolver creates a new auth resolver
func NewAuthResolver(verifier auth.Verifier, users user.Repository, log *logger.Logger) *AuthResolver {
	return &AuthResolver{
		verifier: verifier,
		users:    users,
		logger:   log,
	}
}

// Identify verifies the session cookie first and falls back to the bearer
// token. Neither verifying gives Unauthorized.
func (r *AuthResolver) Identify(ctx context.Context, creds Credentials) (*auth.Claims, error) {
	for _, token := range []string{creds.Cookie, creds.Bearer} {
		if token == "" {
			continue
		}
		c, err := r.verifier.Verify(ctx, token)
		if err == nil {
			return c, nil
		}
		if !stderrors.Is(err, auth.ErrInvalidToken) {
			r.logger.WithError(err).Warn("Token verification failed")
		}
	}

	reason := "invalid_token"
	if creds.Cookie == "" && creds.Bearer == "" {
		reason = "missing_token"
	}
	metrics.RecordAuthFailure(reason)
	return nil, errors.Unauthorized("Authentication required")
}

// Resolve identifies the caller and loads their user row. A verified
// subject with no user row gives UserNotFound.
func (r *AuthResolver) Resolve(ctx context.Context, creds Credentials) (*user.User, error) {
	claims, err := r.Identify(ctx, creds)
	if err != nil {
		return nil, err
	}

	u, err := r.users.GetByAuthID(ctx, claims.Subject)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeUserNotFound) {
			metrics.RecordAuthFailure("user_not_found")
			return nil, errors.UserNotFound()
		}
		r.logger.ErrorWithErr(err, "Failed to load user for token subject")
		return nil, errors.UpstreamUnavailable("Failed to load user", err)
	}

	return u, nil
}
