package services

import (
	"context"
	"strings"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
)

// trialExpiryWindow is how far ahead a trial end counts as expiring
const trialExpiryWindow = 3 * 24 * time.Hour

// UserService implements user.Service
type UserService struct {
	repo   user.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, log *logger.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStoreError(err, "Failed to load user")
	}
	return u, nil
}

// Search returns up to user.SearchLimit users whose name or email contains
// query. Short queries return an empty list without touching the store.
func (s *UserService) Search(ctx context.Context, query string) ([]*user.User, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < user.SearchMinLength {
		return []*user.User{}, nil
	}

	users, err := s.repo.Search(ctx, query, user.SearchLimit)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to search users")
		return nil, errors.UpstreamUnavailable("Failed to search users", err)
	}
	if users == nil {
		users = []*user.User{}
	}
	return users, nil
}

// List returns one page of users. Unknown sort fields fall back to
// created_at and the limit is clamped to the pagination bounds.
func (s *UserService) List(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	if !user.SortFields[filter.SortBy] {
		filter.SortBy = "created_at"
	}
	if filter.Limit <= 0 {
		filter.Limit = utils.DefaultPageSize
	}
	if filter.Limit > utils.MaxPageSize {
		filter.Limit = utils.MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list users")
		return nil, 0, errors.UpstreamUnavailable("Failed to list users", err)
	}
	if users == nil {
		users = []*user.User{}
	}
	return users, total, nil
}

// SubscriptionStats aggregates subscription state across users
func (s *UserService) SubscriptionStats(ctx context.Context) (*user.SubscriptionStats, error) {
	now := s.now().UTC()
	stats, err := s.repo.Stats(ctx, now, now.Add(trialExpiryWindow))
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to compute subscription stats")
		return nil, errors.UpstreamUnavailable("Failed to load subscription stats", err)
	}
	return stats, nil
}

// Provision returns the stored user for authID, creating an athlete without
// a subscription when none exists yet
func (s *UserService) Provision(ctx context.Context, authID, email, name string) (*user.User, bool, error) {
	authID = strings.TrimSpace(authID)
	if authID == "" {
		return nil, false, errors.Unauthorized("Authentication required")
	}

	u, err := s.repo.GetByAuthID(ctx, authID)
	if err == nil {
		return u, false, nil
	}
	if !errors.HasCode(err, errors.ErrCodeUserNotFound) {
		return nil, false, wrapStoreError(err, "Failed to load user")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false, errors.InvalidInput("Email is required")
	}

	u = &user.User{
		AuthID:             authID,
		Email:              email,
		Name:               strings.TrimSpace(name),
		Role:               user.RoleAthlete,
		SubscriptionTier:   subscription.TierNone,
		SubscriptionStatus: subscription.StatusIncomplete,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// a concurrent first sign-in may have created it
		if errors.IsConflict(err) {
			if existing, getErr := s.repo.GetByAuthID(ctx, authID); getErr == nil {
				return existing, false, nil
			}
		}
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, false, wrapStoreError(err, "Failed to create user")
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("User provisioned")
	return u, true, nil
}

// UpdateAccess changes a user's role, tier or status. Tiers must be one of
// the current tiers or none.
func (s *UserService) UpdateAccess(ctx context.Context, id int64, update user.AccessUpdate) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStoreError(err, "Failed to load user")
	}

	updated := *u
	if update.Role != nil {
		if !update.Role.IsValid() {
			return nil, errors.InvalidInput("Invalid role")
		}
		updated.Role = *update.Role
	}
	if update.SubscriptionTier != nil {
		tier := subscription.ParseTier(string(*update.SubscriptionTier))
		if !tier.IsCurrent() && tier != subscription.TierNone {
			return nil, errors.InvalidInput("Invalid subscription tier")
		}
		updated.SubscriptionTier = tier
	}
	if update.SubscriptionStatus != nil {
		status := subscription.ParseStatus(string(*update.SubscriptionStatus))
		if !status.IsValid() {
			return nil, errors.InvalidInput("Invalid subscription status")
		}
		updated.SubscriptionStatus = status
	}
	u = &updated

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update user")
		return nil, wrapStoreError(err, "Failed to update user")
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"role":    u.Role,
		"tier":    u.SubscriptionTier,
		"status":  u.SubscriptionStatus,
	}).Info("User access updated")
	return u, nil
}

// wrapStoreError passes AppErrors through and hides anything else behind
// UpstreamUnavailable
func wrapStoreError(err error, message string) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.UpstreamUnavailable(message, err)
}
