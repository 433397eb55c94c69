package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/pratik-mahalle/fitcoach/internal/domain/payment"
	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/metrics"
)

// CheckoutService implements payment.Service
type CheckoutService struct {
	provider   payment.Provider
	priceTiers map[string]subscription.Tier
	policy     *subscription.Policy
	logger     *logger.Logger
}

// NewCheckoutService creates a new checkout service. priceTiers maps
// provider price ids to tier names; product labels are normalised through
// policy, or the built-in table when policy is nil.
func NewCheckoutService(provider payment.Provider, priceTiers map[string]string, policy *subscription.Policy, log *logger.Logger) *CheckoutService {
	if policy == nil {
		policy = subscription.DefaultPolicy()
	}
	tiers := make(map[string]subscription.Tier, len(priceTiers))
	for price, tier := range priceTiers {
		tiers[price] = policy.ProductTier(tier)
	}
	return &CheckoutService{
		provider:   provider,
		priceTiers: tiers,
		policy:     policy,
		logger:     log,
	}
}

// VerifyCheckoutSession looks up a completed checkout and reports who
// bought what
func (s *CheckoutService) VerifyCheckoutSession(ctx context.Context, sessionID string) (*payment.CheckoutSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errors.InvalidInput("Missing session_id")
	}
	if s.provider == nil {
		metrics.RecordCheckoutVerification("error")
		return nil, errors.UpstreamUnavailable("Payments are not configured", nil)
	}

	ps, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		if stderrors.Is(err, payment.ErrSessionNotFound) {
			metrics.RecordCheckoutVerification("invalid")
			return nil, errors.InvalidInput("Invalid session")
		}
		metrics.RecordCheckoutVerification("error")
		s.logger.With("session_id", sessionID).ErrorWithErr(err, "Failed to retrieve checkout session")
		return nil, errors.UpstreamUnavailable("Failed to verify session", err)
	}

	metrics.RecordCheckoutVerification("verified")
	return payment.FromProvider(ps, s.policy), nil
}

// ProductTypeForPrice maps a price id to a tier, defaulting to premium
func (s *CheckoutService) ProductTypeForPrice(priceID string) subscription.Tier {
	if tier, ok := s.priceTiers[strings.TrimSpace(priceID)]; ok {
		return tier
	}
	return subscription.TierPremium
}
