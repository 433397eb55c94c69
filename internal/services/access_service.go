package services

import (
	"context"

	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/metrics"
)

// AccessService implements subscription.Checker
type AccessService struct {
	users  user.Repository
	policy *subscription.Policy
	logger *logger.Logger
}

// NewAccessService creates a new access service. A nil policy uses the
// built-in entitlement table.
func NewAccessService(users user.Repository, policy *subscription.Policy, log *logger.Logger) *AccessService {
	if policy == nil {
		policy = subscription.DefaultPolicy()
	}
	return &AccessService{
		users:  users,
		policy: policy,
		logger: log,
	}
}

// CheckAccess evaluates the user's current tier and status against the
// entitlement table. Denials are reported in the decision; the error is
// set only when the user could not be read.
func (s *AccessService) CheckAccess(ctx context.Context, userID int64, feature subscription.Feature) (*subscription.Decision, error) {
	if !s.policy.KnowsFeature(feature) {
		metrics.RecordAccessDecision("unknown", false)
		return &subscription.Decision{HasAccess: false, Reason: subscription.ReasonUnknownFeature}, nil
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeUserNotFound) {
			return nil, err
		}
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
			"feature": feature,
		}).ErrorWithErr(err, "Failed to load user for access check")
		return nil, errors.UpstreamUnavailable("Failed to check access", err)
	}

	decision := s.policy.Evaluate(u.SubscriptionTier, u.SubscriptionStatus, feature)
	metrics.RecordAccessDecision(string(feature), decision.HasAccess)

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"feature":    feature,
		"tier":       u.SubscriptionTier,
		"status":     u.SubscriptionStatus,
		"has_access": decision.HasAccess,
	}).Debug("Access checked")

	return &decision, nil
}
