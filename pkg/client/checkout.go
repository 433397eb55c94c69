package client

import (
	"context"
	"net/url"
)

// CheckoutService handles Stripe checkout calls
type CheckoutService struct {
	client *Client
}

// VerifySession looks up a completed checkout session
func (s *CheckoutService) VerifySession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	var cs CheckoutSession
	if err := s.client.doRequest(ctx, "GET", "/api/stripe/verify-checkout-session", url.Values{"session_id": {sessionID}}, nil, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// ProductType maps a price id to the tier it grants
func (s *CheckoutService) ProductType(ctx context.Context, priceID string) (string, error) {
	var resp struct {
		ProductType string `json:"productType"`
	}
	if err := s.client.doRequest(ctx, "GET", "/api/stripe/product-type", url.Values{"priceId": {priceID}}, nil, &resp); err != nil {
		return "", err
	}
	return resp.ProductType, nil
}
