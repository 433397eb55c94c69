package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pratik-mahalle/fitcoach/internal/api/handlers"
	"github.com/pratik-mahalle/fitcoach/internal/api/middleware"
	"github.com/pratik-mahalle/fitcoach/internal/config"
	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Access   *handlers.AccessHandler
	Admin    *handlers.AdminHandler
	Job      *handlers.JobHandler
	Workout  *handlers.WorkoutHandler
	Chat     *handlers.ChatHandler
	Checkout *handlers.CheckoutHandler
	User     *handlers.UserHandler
}

// Guards are the collaborators the authorization middleware consults
type Guards struct {
	Resolver middleware.UserResolver
	Identity middleware.IdentityVerifier
	Access   subscription.Checker
	Athletes middleware.AthleteAccessChecker
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers, g *Guards) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(metrics.Middleware)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
		r.Handle("/metrics", metrics.Handler())

		// Health checks
		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)

		// Stripe checkout return page
		r.Get("/api/stripe/verify-checkout-session", h.Checkout.VerifySession)
		r.Get("/api/stripe/product-type", h.Checkout.ProductType)
	})

	// First sign-in: a verified identity that may not have a user row yet
	r.With(middleware.RequireIdentity(g.Identity, cfg.Auth.SessionCookie, log)).
		Post("/api/users", h.User.CreateAccount)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(g.Resolver, cfg.Auth.SessionCookie, log))

		// Access checks
		r.Get("/api/access/{feature}", h.Access.Check)
		r.Get("/api/engine/check-access", h.Access.CheckFeature(subscription.FeatureEngine))
		r.Get("/api/appliedpower/check-access", h.Access.CheckFeature(subscription.FeatureAppliedPower))
		r.Get("/api/btn/check-access", h.Access.CheckFeature(subscription.FeatureBTN))

		// Admin
		r.Get("/api/admin/check-role", h.Admin.CheckRole)
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(log))
			r.Get("/users/search", h.Admin.SearchUsers)
			r.Get("/users", h.Admin.ListUsers)
			r.Patch("/users/{userId}", h.Admin.UpdateUser)
			r.Get("/subscriptions/stats", h.Admin.SubscriptionStats)
			r.Post("/workouts/import", h.Admin.ImportWorkouts)
			r.Get("/chat/conversations", h.Chat.Inbox)
			r.Get("/chat/conversations/{conversationId}/messages", h.Chat.Conversation)
			r.Post("/chat/conversations/{conversationId}/messages", h.Chat.Reply)
		})

		// AI jobs
		r.Route("/api/ai", func(r chi.Router) {
			r.Post("/enqueue", h.Job.Enqueue)
			r.Get("/jobs/latest", h.Job.Latest)
			r.Get("/last-refresh", h.Job.LastRefresh)
			r.Post("/refresh", h.Job.ForceRefresh)
		})

		// Workout catalog
		r.Get("/api/workouts/search", h.Workout.Search)

		// BTN
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireFeature(g.Access, subscription.FeatureBTN, log))
			r.Get("/api/btn/workouts", h.Workout.ListBTN)
			r.Post("/api/btn/workouts", h.Workout.SaveBTN)
			r.Post("/api/btn/log-result", h.Workout.LogResult)
		})
		r.With(middleware.RequireAthleteAccess(g.Athletes, "athleteId", log)).
			Get("/api/athletes/{athleteId}/btn/workouts", h.Workout.AthleteBTN)

		// Support chat
		r.Get("/api/chat/messages", h.Chat.Messages)
		r.Post("/api/chat/messages", h.Chat.Send)
	})

	return r
}
