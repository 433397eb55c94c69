package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/pratik-mahalle/fitcoach/internal/domain/payment"
	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/testutil"
)

func TestCheckoutService_VerifyCheckoutSession(t *testing.T) {
	provider := testutil.NewMockCheckoutProvider()
	provider.Sessions["cs_engine"] = &payment.ProviderSession{
		ID:            "cs_engine",
		CustomerEmail: "buyer@example.com",
		FallbackEmail: "other@example.com",
		CustomerName:  "Buyer",
		Product:       "engine",
		Status:        "complete",
	}
	provider.Sessions["cs_fallback"] = &payment.ProviderSession{
		ID:            "cs_fallback",
		FallbackEmail: "fallback@example.com",
		Status:        "complete",
	}
	provider.Sessions["cs_applied"] = &payment.ProviderSession{
		ID:            "cs_applied",
		CustomerEmail: "lifter@example.com",
		Product:       "applied-power",
	}
	provider.Sessions["cs_legacy"] = &payment.ProviderSession{
		ID:            "cs_legacy",
		CustomerEmail: "veteran@example.com",
		Product:       "full-program",
	}

	service := NewCheckoutService(provider, nil, nil, logger.Nop())
	ctx := context.Background()

	tests := []struct {
		name      string
		sessionID string
		wantEmail string
		wantTier  subscription.Tier
		wantCode  string
	}{
		{name: "customer details email", sessionID: "cs_engine", wantEmail: "buyer@example.com", wantTier: subscription.TierEngine},
		{name: "falls back to session email", sessionID: "cs_fallback", wantEmail: "fallback@example.com", wantTier: subscription.TierPremium},
		{name: "normalised product", sessionID: "cs_applied", wantEmail: "lifter@example.com", wantTier: subscription.TierAppliedPower},
		{name: "legacy product resolves", sessionID: "cs_legacy", wantEmail: "veteran@example.com", wantTier: subscription.TierEngine},
		{name: "unknown session", sessionID: "cs_missing", wantCode: errors.ErrCodeInvalidInput},
		{name: "missing id", sessionID: "", wantCode: errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.VerifyCheckoutSession(ctx, tt.sessionID)
			if tt.wantCode != "" {
				if !errors.HasCode(err, tt.wantCode) {
					t.Fatalf("VerifyCheckoutSession() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyCheckoutSession() error = %v", err)
			}
			if got.Email != tt.wantEmail {
				t.Errorf("Email = %q, want %q", got.Email, tt.wantEmail)
			}
			if got.ProductType != tt.wantTier {
				t.Errorf("ProductType = %q, want %q", got.ProductType, tt.wantTier)
			}
		})
	}
}

func TestCheckoutService_InvalidSessionMessage(t *testing.T) {
	service := NewCheckoutService(testutil.NewMockCheckoutProvider(), nil, nil, logger.Nop())
	_, err := service.VerifyCheckoutSession(context.Background(), "cs_nope")
	appErr, ok := errors.As(err)
	if !ok || appErr.Message != "Invalid session" {
		t.Errorf("error = %v, want Invalid session", err)
	}
}

func TestCheckoutService_ProviderFailure(t *testing.T) {
	provider := testutil.NewMockCheckoutProvider()
	provider.Err = stderrors.New("tls handshake timeout")
	service := NewCheckoutService(provider, nil, nil, logger.Nop())

	_, err := service.VerifyCheckoutSession(context.Background(), "cs_1")
	if !errors.HasCode(err, errors.ErrCodeUpstreamUnavailable) {
		t.Fatalf("error = %v, want UPSTREAM_UNAVAILABLE", err)
	}
}

func TestCheckoutService_ProductTypeForPrice(t *testing.T) {
	service := NewCheckoutService(nil, map[string]string{
		"price_btn":    "btn",
		"price_engine": "Engine",
		"price_legacy": "full-program",
	}, nil, logger.Nop())

	tests := []struct {
		price string
		want  subscription.Tier
	}{
		{"price_btn", subscription.TierBTN},
		{"price_engine", subscription.TierEngine},
		{"price_legacy", subscription.TierEngine},
		{"price_unknown", subscription.TierPremium},
		{"", subscription.TierPremium},
	}
	for _, tt := range tests {
		if got := service.ProductTypeForPrice(tt.price); got != tt.want {
			t.Errorf("ProductTypeForPrice(%q) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestCheckoutService_NoProvider(t *testing.T) {
	service := NewCheckoutService(nil, nil, nil, logger.Nop())

	_, err := service.VerifyCheckoutSession(context.Background(), "cs_1")
	appErr, ok := errors.As(err)
	if !ok || appErr.Code != errors.ErrCodeUpstreamUnavailable || appErr.StatusCode != 500 {
		t.Fatalf("error = %v, want 500 UPSTREAM_UNAVAILABLE", err)
	}
}
