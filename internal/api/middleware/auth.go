package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pratik-mahalle/fitcoach/internal/auth"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/services"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// UserKey is the context key for the authenticated user
	UserKey ContextKey = "user"
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "userID"
	// ClaimsKey is the context key for a verified identity
	ClaimsKey ContextKey = "claims"
)

// UserResolver turns request credentials into a stored user
type UserResolver interface {
	Resolve(ctx context.Context, creds services.Credentials) (*user.User, error)
}

// IdentityVerifier turns request credentials into a verified identity
// without requiring a user row
type IdentityVerifier interface {
	Identify(ctx context.Context, creds services.Credentials) (*auth.Claims, error)
}

// RequireIdentity returns a middleware that only verifies the caller's
// token. It guards the routes a signed-in identity uses before it has a
// user row.
func RequireIdentity(verifier IdentityVerifier, cookieName string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.Identify(r.Context(), credentials(r, cookieName))
			if err != nil {
				RespondError(w, r, log, err)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims extracts the verified identity from the request context
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	c, ok := r.Context().Value(ClaimsKey).(*auth.Claims)
	return c, ok && c != nil
}

// Authenticate returns a middleware that resolves the caller from the
// session cookie or the bearer token. Requests without a valid identity get
// 401, verified identities without a user row get 404 and store failures
// get 500.
func Authenticate(resolver UserResolver, cookieName string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := resolver.Resolve(r.Context(), credentials(r, cookieName))
			if err != nil {
				RespondError(w, r, log, err)
				return
			}

			// Add audit info to logs
			AddLogField(w, "user_id", u.ID)

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, u *user.User) context.Context {
	ctx = context.WithValue(ctx, UserKey, u)
	return context.WithValue(ctx, UserIDKey, u.ID)
}

func credentials(r *http.Request, cookieName string) services.Credentials {
	creds := services.Credentials{Bearer: bearerToken(r)}
	if cookie, err := r.Cookie(cookieName); err == nil {
		creds.Cookie = cookie.Value
	}
	return creds
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetUser extracts the authenticated user from the request context
func GetUser(r *http.Request) (*user.User, bool) {
	u, ok := r.Context().Value(UserKey).(*user.User)
	return u, ok && u != nil
}

// GetUserID extracts the user ID from the request context
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDKey).(int64)
	return userID, ok
}
