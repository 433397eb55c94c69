package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/testutil"
)

func TestAuthResolver_Resolve(t *testing.T) {
	users := testutil.NewMockUserRepository()
	alice := users.Add(&user.User{AuthID: "auth|alice", Email: "alice@example.com", Role: user.RoleAthlete})
	bob := users.Add(&user.User{AuthID: "auth|bob", Email: "bob@example.com", Role: user.RoleAthlete})

	verifier := testutil.NewMockVerifier()
	verifier.Tokens["cookie-alice"] = "auth|alice"
	verifier.Tokens["bearer-bob"] = "auth|bob"
	verifier.Tokens["ghost"] = "auth|ghost"

	resolver := NewAuthResolver(verifier, users, logger.New(logger.Config{Level: "error", Format: "json"}))

	tests := []struct {
		name     string
		creds    Credentials
		wantID   int64
		wantCode string
	}{
		{
			name:   "cookie only",
			creds:  Credentials{Cookie: "cookie-alice"},
			wantID: alice.ID,
		},
		{
			name:   "bearer only",
			creds:  Credentials{Bearer: "bearer-bob"},
			wantID: bob.ID,
		},
		{
			name:   "cookie wins over bearer",
			creds:  Credentials{Cookie: "cookie-alice", Bearer: "bearer-bob"},
			wantID: alice.ID,
		},
		{
			name:   "invalid cookie falls back to bearer",
			creds:  Credentials{Cookie: "expired", Bearer: "bearer-bob"},
			wantID: bob.ID,
		},
		{
			name:     "no credentials",
			creds:    Credentials{},
			wantCode: errors.ErrCodeUnauthorized,
		},
		{
			name:     "both invalid",
			creds:    Credentials{Cookie: "bad", Bearer: "worse"},
			wantCode: errors.ErrCodeUnauthorized,
		},
		{
			name:     "verified subject without a user row",
			creds:    Credentials{Bearer: "ghost"},
			wantCode: errors.ErrCodeUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := resolver.Resolve(context.Background(), tt.creds)
			if tt.wantCode != "" {
				if !errors.HasCode(err, tt.wantCode) {
					t.Fatalf("Resolve() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if u.ID != tt.wantID {
				t.Errorf("Resolve() user = %d, want %d", u.ID, tt.wantID)
			}
		})
	}
}

func TestAuthResolver_StoreFailure(t *testing.T) {
	users := testutil.NewMockUserRepository()
	users.GetError = stderrors.New("connection refused")

	verifier := testutil.NewMockVerifier()
	verifier.Tokens["t"] = "auth|alice"

	resolver := NewAuthResolver(verifier, users, logger.Nop())

	_, err := resolver.Resolve(context.Background(), Credentials{Bearer: "t"})
	if !errors.HasCode(err, errors.ErrCodeUpstreamUnavailable) {
		t.Fatalf("Resolve() error = %v, want UPSTREAM_UNAVAILABLE", err)
	}
	if pub := errors.Public(err); pub.Message != "Internal server error" {
		t.Errorf("public message leaks detail: %q", pub.Message)
	}
}

func TestAuthResolver_DoesNotVerifyBearerWhenCookieValid(t *testing.T) {
	users := testutil.NewMockUserRepository()
	users.Add(&user.User{AuthID: "auth|alice"})

	verifier := testutil.NewMockVerifier()
	verifier.Tokens["c"] = "auth|alice"

	resolver := NewAuthResolver(verifier, users, logger.Nop())
	if _, err := resolver.Resolve(context.Background(), Credentials{Cookie: "c", Bearer: "b"}); err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if len(verifier.Calls) != 1 || verifier.Calls[0] != "c" {
		t.Errorf("verifier calls = %v, want [c]", verifier.Calls)
	}
}
