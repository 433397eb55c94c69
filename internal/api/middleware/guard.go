package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pratik-mahalle/fitcoach/internal/domain/coach"
	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
)

// AthleteAccessKey is the context key for the resolved athlete access
const AthleteAccessKey ContextKey = "athleteAccess"

// AthleteAccessChecker decides whether a user may read an athlete's data
type AthleteAccessChecker interface {
	CanAccessAthleteData(ctx context.Context, requester *user.User, athleteID int64) (*coach.AthleteAccess, error)
}

// RequireRole returns a middleware that admits only users holding one of
// roles. It must run after Authenticate.
func RequireRole(log *logger.Logger, roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := GetUser(r)
			if !ok {
				RespondError(w, r, log, errors.Unauthorized("Authentication required"))
				return
			}
			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			RespondError(w, r, log, errors.Forbidden("Insufficient permissions"))
		})
	}
}

// RequireAdmin is RequireRole for the admin role
func RequireAdmin(log *logger.Logger) func(http.Handler) http.Handler {
	return RequireRole(log, user.RoleAdmin)
}

// RequireFeature returns a middleware that admits only users entitled to
// feature. Denials are 403 with the checker's reason.
func RequireFeature(checker subscription.Checker, feature subscription.Feature, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := GetUser(r)
			if !ok {
				RespondError(w, r, log, errors.Unauthorized("Authentication required"))
				return
			}

			decision, err := checker.CheckAccess(r.Context(), u.ID, feature)
			if err != nil {
				RespondError(w, r, log, err)
				return
			}
			if !decision.HasAccess {
				RespondError(w, r, log, errors.Forbidden(decision.Reason).
					WithDetails(map[string]interface{}{"feature": feature}))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAthleteAccess returns a middleware that resolves the {param} URL
// parameter as an athlete id and admits the caller only when they may read
// that athlete's data
func RequireAthleteAccess(checker AthleteAccessChecker, param string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := GetUser(r)
			if !ok {
				RespondError(w, r, log, errors.Unauthorized("Authentication required"))
				return
			}

			athleteID, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
			if err != nil || athleteID <= 0 {
				RespondError(w, r, log, errors.InvalidInput("Invalid athlete id"))
				return
			}

			access, err := checker.CanAccessAthleteData(r.Context(), u, athleteID)
			if err != nil {
				RespondError(w, r, log, err)
				return
			}
			if !access.HasAccess {
				RespondError(w, r, log, errors.Forbidden("Access denied to this athlete's data"))
				return
			}

			ctx := context.WithValue(r.Context(), AthleteAccessKey, access)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAthleteAccess extracts the access resolved by RequireAthleteAccess
func GetAthleteAccess(r *http.Request) (*coach.AthleteAccess, bool) {
	a, ok := r.Context().Value(AthleteAccessKey).(*coach.AthleteAccess)
	return a, ok
}
