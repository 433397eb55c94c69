package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout returns a middleware that bounds each request's context by d.
// Store and provider calls made with the request context fail once the
// deadline passes and the handler reports them as upstream failures. A
// non-positive d disables the deadline.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
