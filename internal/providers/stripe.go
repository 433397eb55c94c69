package providers

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/pratik-mahalle/fitcoach/internal/domain/payment"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

// StripeCheckout retrieves checkout sessions from Stripe. It holds its own
// key and backend instead of the package-level stripe.Key.
type StripeCheckout struct {
	sessions session.Client
}

// NewStripeCheckout creates a checkout provider for the live API
func NewStripeCheckout(secretKey string) *StripeCheckout {
	return NewStripeCheckoutWithBackend(secretKey, stripe.GetBackend(stripe.APIBackend))
}

// NewStripeCheckoutWithBackend creates a checkout provider on a custom
// backend, e.g. one pointed at a test server
func NewStripeCheckoutWithBackend(secretKey string, backend stripe.Backend) *StripeCheckout {
	return &StripeCheckout{
		sessions: session.Client{B: backend, Key: secretKey},
	}
}

// GetCheckoutSession implements payment.Provider
func (p *StripeCheckout) GetCheckoutSession(ctx context.Context, sessionID string) (*payment.ProviderSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := p.sessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if stderrors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, payment.ErrSessionNotFound
		}
		return nil, fmt.Errorf("stripe: retrieve checkout session: %w", err)
	}

	ps := &payment.ProviderSession{
		ID:            sess.ID,
		FallbackEmail: sess.CustomerEmail,
		Status:        string(sess.Status),
	}
	if sess.CustomerDetails != nil {
		ps.CustomerEmail = sess.CustomerDetails.Email
		ps.CustomerName = sess.CustomerDetails.Name
	}
	if sess.Metadata != nil {
		ps.Product = sess.Metadata["product"]
	}
	return ps, nil
}
