package providers

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pratik-mahalle/fitcoach/internal/domain/payment"
	"github.com/stripe/stripe-go/v79"
)

func newStripeTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/checkout/sessions/cs_test_ok"):
			_, _ = w.Write([]byte(`{
				"id": "cs_test_ok",
				"object": "checkout.session",
				"customer_email": "session@example.com",
				"customer_details": {"email": "buyer@example.com", "name": "Jo Buyer"},
				"metadata": {"product": "engine"},
				"status": "complete"
			}`))
		case strings.HasSuffix(r.URL.Path, "/checkout/sessions/cs_test_bare"):
			_, _ = w.Write([]byte(`{
				"id": "cs_test_bare",
				"object": "checkout.session",
				"customer_email": "session@example.com",
				"status": "open"
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": {"code": "resource_missing", "message": "No such checkout.session", "type": "invalid_request_error"}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestCheckout(t *testing.T) *StripeCheckout {
	srv := newStripeTestServer(t)
	retries := int64(0)
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: &retries,
	})
	return NewStripeCheckoutWithBackend("sk_test_123", backend)
}

func TestStripeCheckout_GetCheckoutSession(t *testing.T) {
	p := newTestCheckout(t)
	ctx := context.Background()

	got, err := p.GetCheckoutSession(ctx, "cs_test_ok")
	if err != nil {
		t.Fatalf("GetCheckoutSession() error = %v", err)
	}
	if got.CustomerEmail != "buyer@example.com" || got.FallbackEmail != "session@example.com" {
		t.Errorf("emails = %q / %q", got.CustomerEmail, got.FallbackEmail)
	}
	if got.CustomerName != "Jo Buyer" || got.Product != "engine" || got.Status != "complete" {
		t.Errorf("session = %+v", got)
	}

	bare, err := p.GetCheckoutSession(ctx, "cs_test_bare")
	if err != nil {
		t.Fatalf("GetCheckoutSession() error = %v", err)
	}
	if bare.CustomerEmail != "" || bare.Product != "" {
		t.Errorf("bare session = %+v", bare)
	}
	if cs := payment.FromProvider(bare, nil); cs.Email != "session@example.com" {
		t.Errorf("fallback email = %q", cs.Email)
	}
}

func TestStripeCheckout_UnknownSession(t *testing.T) {
	p := newTestCheckout(t)

	_, err := p.GetCheckoutSession(context.Background(), "cs_test_missing")
	if !stderrors.Is(err, payment.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}
