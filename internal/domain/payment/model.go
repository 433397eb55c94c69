package payment

import (
	stderrors "errors"

	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
)

// ErrSessionNotFound is returned by providers for unknown session ids
var ErrSessionNotFound = stderrors.New("checkout session not found")

// ProviderSession is a checkout session as reported by the payment provider
type ProviderSession struct {
	ID string
	// CustomerEmail is the email entered at checkout, if any
	CustomerEmail string
	// FallbackEmail is the email the session was created for
	FallbackEmail string
	CustomerName  string
	Product       string
	Status        string
}

// CheckoutSession is a verified checkout
type CheckoutSession struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	ProductType subscription.Tier `json:"productType"`
	Status      string            `json:"status"`
}

// FromProvider normalises a provider session. The email falls back to the
// session's own customer email; the product is mapped through policy and
// defaults to premium. A nil policy uses the built-in table.
func FromProvider(ps *ProviderSession, policy *subscription.Policy) *CheckoutSession {
	if policy == nil {
		policy = subscription.DefaultPolicy()
	}
	email := ps.CustomerEmail
	if email == "" {
		email = ps.FallbackEmail
	}
	return &CheckoutSession{
		ID:          ps.ID,
		Email:       email,
		Name:        ps.CustomerName,
		ProductType: policy.ProductTier(ps.Product),
		Status:      ps.Status,
	}
}
