package payment

import (
	"context"

	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
)

// Provider retrieves checkout sessions from the payment processor
type Provider interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*ProviderSession, error)
}

// Service defines checkout operations
type Service interface {
	VerifyCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	ProductTypeForPrice(priceID string) subscription.Tier
}
