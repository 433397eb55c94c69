package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/api/handlers"
	"github.com/pratik-mahalle/fitcoach/internal/api/router"
	"github.com/pratik-mahalle/fitcoach/internal/auth"
	"github.com/pratik-mahalle/fitcoach/internal/config"
	"github.com/pratik-mahalle/fitcoach/internal/domain/payment"
	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/validator"
	"github.com/pratik-mahalle/fitcoach/internal/providers"
	"github.com/pratik-mahalle/fitcoach/internal/repository/postgres"
	"github.com/pratik-mahalle/fitcoach/internal/services"
	"github.com/pratik-mahalle/fitcoach/internal/worker"

	_ "github.com/pratik-mahalle/fitcoach/docs"
)

// @title FitCoach API
// @version 1.0
// @description Coaching platform backend: subscription access, BTN workouts, AI jobs and support chat.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	log.WithFields(map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"driver":      cfg.Database.Driver,
	}).Info("Starting FitCoach API")

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	applied, err := postgres.Migrate(db, cfg.Database.Driver)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Infof("Applied %d migrations", applied)

	policy, err := loadPolicy(cfg.Access.EntitlementsFile)
	if err != nil {
		log.Fatalf("Failed to load entitlements: %v", err)
	}

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to configure token verification: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	workoutRepo := postgres.NewWorkoutRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	coachRepo := postgres.NewCoachRepository(db)

	// External providers
	var checkoutProvider payment.Provider
	if cfg.Billing.StripeSecretKey != "" {
		checkoutProvider = providers.NewStripeCheckout(cfg.Billing.StripeSecretKey)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, checkout verification disabled")
	}
	summarizer := providers.NewOpenAISummarizer(cfg.AI.OpenAIAPIKey, cfg.AI.Model, cfg.AI.MaxTokens)
	if !summarizer.Enabled() {
		log.Warn("OPENAI_API_KEY not set, context refreshes use a static summary")
	}

	// Services
	resolver := services.NewAuthResolver(verifier, userRepo, log)
	accessService := services.NewAccessService(userRepo, policy, log)
	permissionService := services.NewPermissionService(userRepo, coachRepo)
	userService := services.NewUserService(userRepo, log)
	jobService := services.NewJobService(jobRepo, cfg.Jobs.RefreshCooldown, log)
	workoutService := services.NewWorkoutService(workoutRepo, log)
	chatService := services.NewChatService(chatRepo, log)
	checkoutService := services.NewCheckoutService(checkoutProvider, cfg.Billing.PriceTiers, policy, log)

	val := validator.New()

	h := &router.Handlers{
		Health:   handlers.NewHealthHandler(db, log),
		Access:   handlers.NewAccessHandler(accessService, log),
		Admin:    handlers.NewAdminHandler(userService, permissionService, workoutService, log, val),
		Job:      handlers.NewJobHandler(jobService, log, val),
		Workout:  handlers.NewWorkoutHandler(workoutService, log, val),
		Chat:     handlers.NewChatHandler(chatService, log, val),
		Checkout: handlers.NewCheckoutHandler(checkoutService, log),
		User:     handlers.NewUserHandler(userService, log, val),
	}
	g := &router.Guards{
		Resolver: resolver,
		Identity: resolver,
		Access:   accessService,
		Athletes: permissionService,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runner *worker.JobRunner
	if cfg.Jobs.Enabled {
		runner = worker.NewJobRunner(jobRepo, summarizer, worker.RunnerConfig{
			Schedule:         cfg.Jobs.Schedule,
			BatchSize:        cfg.Jobs.BatchSize,
			ExecutionTimeout: cfg.Jobs.ExecutionTimeout,
		}, log)
		if err := runner.Start(ctx); err != nil {
			log.Fatalf("Failed to start job runner: %v", err)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h, g),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.ErrorWithErr(err, "HTTP server failed")
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdown(srv, runner, db, cfg.Server.ShutdownTimeout, log)
}

func loadPolicy(path string) (*subscription.Policy, error) {
	ec, err := config.LoadEntitlements(path)
	if err != nil {
		return nil, err
	}
	if ec == nil {
		return subscription.DefaultPolicy(), nil
	}
	return subscription.PolicyFromTable(ec.EntitledStatuses, ec.Features, ec.Aliases), nil
}

func newVerifier(cfg config.AuthConfig) (auth.Verifier, error) {
	if cfg.JWKSIssuer != "" {
		return auth.NewJWKSVerifier(cfg.JWKSIssuer, cfg.JWKSAudience, cfg.JWKSURL)
	}
	return auth.NewHMACVerifier(cfg.JWTSecret)
}

func shutdown(srv *http.Server, runner *worker.JobRunner, db *sql.DB, timeout time.Duration, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "HTTP server shutdown failed")
	}

	if runner != nil {
		if err := runner.Stop(); err != nil {
			log.ErrorWithErr(err, "Job runner shutdown failed")
		}
	}

	if err := db.Close(); err != nil {
		log.ErrorWithErr(err, "Failed to close database")
	}

	log.Info("Server stopped")
}
