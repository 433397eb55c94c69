package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pratik-mahalle/fitcoach/internal/domain/coach"
	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/services"
	"github.com/pratik-mahalle/fitcoach/internal/testutil"
)

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fixture struct {
	users    *testutil.MockUserRepository
	resolver *services.AuthResolver
	access   *services.AccessService
	perms    *services.PermissionService
	coaches  *testutil.MockCoachRepository
	athlete  *user.User
	admin    *user.User
	coach    *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := testutil.NewMockUserRepository()
	athlete := users.Add(&user.User{AuthID: "auth|athlete", Role: user.RoleAthlete, SubscriptionTier: subscription.TierBTN, SubscriptionStatus: subscription.StatusActive})
	admin := users.Add(&user.User{AuthID: "auth|admin", Role: user.RoleAdmin})
	coachUser := users.Add(&user.User{AuthID: "auth|coach", Role: user.RoleCoach})
	users.Add(&user.User{AuthID: "auth|lapsed", Role: user.RoleAthlete, SubscriptionTier: subscription.TierBTN, SubscriptionStatus: subscription.StatusCanceled})

	verifier := testutil.NewMockVerifier()
	verifier.Tokens["athlete-token"] = "auth|athlete"
	verifier.Tokens["admin-token"] = "auth|admin"
	verifier.Tokens["coach-token"] = "auth|coach"
	verifier.Tokens["lapsed-token"] = "auth|lapsed"
	verifier.Tokens["ghost-token"] = "auth|ghost"

	coaches := testutil.NewMockCoachRepository()
	c := &coach.Coach{UserID: coachUser.ID, Status: coach.StatusApproved}
	_ = coaches.Create(context.Background(), c)
	_ = coaches.CreateRelationship(context.Background(), &coach.Relationship{
		CoachID: c.ID, AthleteID: athlete.ID, Status: coach.RelationshipActive, PermissionLevel: coach.PermissionView,
	})

	log := logger.Nop()
	return &fixture{
		users:    users,
		resolver: services.NewAuthResolver(verifier, users, log),
		access:   services.NewAccessService(users, nil, log),
		perms:    services.NewPermissionService(users, coaches),
		coaches:  coaches,
		athlete:  athlete,
		admin:    admin,
		coach:    coachUser,
	}
}

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		cookie     string
		bearer     string
		wantStatus int
		wantCode   string
	}{
		{name: "no credentials", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "invalid bearer", bearer: "nope", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "cookie", cookie: "athlete-token", wantStatus: http.StatusOK},
		{name: "bearer", bearer: "admin-token", wantStatus: http.StatusOK},
		{name: "invalid cookie valid bearer", cookie: "stale", bearer: "athlete-token", wantStatus: http.StatusOK},
		{name: "unknown subject", bearer: "ghost-token", wantStatus: http.StatusNotFound, wantCode: "USER_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			h := Authenticate(f.resolver, "accessToken", logger.Nop())(countingHandler(&calls))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/check-role", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "accessToken", Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if calls != 0 {
					t.Error("handler ran for a rejected request")
				}
				env := decodeEnvelope(t, rr)
				if env.Success || env.Error.Code != tt.wantCode {
					t.Errorf("envelope = %+v, want code %s", env, tt.wantCode)
				}
			} else if calls != 1 {
				t.Errorf("handler calls = %d, want 1", calls)
			}
		})
	}
}

func TestAuthenticate_HidesStoreErrors(t *testing.T) {
	f := newFixture(t)
	f.users.GetError = stderrors.New("pq: password authentication failed for user fitcoach")

	calls := 0
	h := Authenticate(f.resolver, "accessToken", logger.Nop())(countingHandler(&calls))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer athlete-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "password") {
		t.Errorf("response leaks internal error: %s", rr.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"athlete", "athlete-token", http.StatusForbidden},
		{"coach", "coach-token", http.StatusForbidden},
		{"admin", "admin-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			chain := Authenticate(f.resolver, "accessToken", logger.Nop())(
				RequireAdmin(logger.Nop())(countingHandler(&calls)))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			chain.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK && calls != 0 {
				t.Error("handler ran for a rejected request")
			}
		})
	}
}

func TestRequireFeature(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		token      string
		feature    subscription.Feature
		wantStatus int
		wantReason string
	}{
		{"entitled", "athlete-token", subscription.FeatureBTN, http.StatusOK, ""},
		{"wrong tier", "athlete-token", subscription.FeatureEngine, http.StatusForbidden, subscription.ReasonTierNotEntitled},
		{"lapsed", "lapsed-token", subscription.FeatureBTN, http.StatusForbidden, subscription.ReasonInactive},
		{"no subscription", "admin-token", subscription.FeatureBTN, http.StatusForbidden, subscription.ReasonNoSubscription},
		{"anonymous", "", subscription.FeatureBTN, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			chain := Authenticate(f.resolver, "accessToken", logger.Nop())(
				RequireFeature(f.access, tt.feature, logger.Nop())(countingHandler(&calls)))

			req := httptest.NewRequest(http.MethodGet, "/api/btn/workouts", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			chain.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantReason != "" {
				env := decodeEnvelope(t, rr)
				if env.Error.Code != "FORBIDDEN" || env.Error.Message != tt.wantReason {
					t.Errorf("error = %+v, want reason %q", env.Error, tt.wantReason)
				}
			}
		})
	}
}

func TestRequireFeature_StoreFailure(t *testing.T) {
	f := newFixture(t)

	// authenticate with a user injected directly so only the access check hits the failing store
	f.users.GetError = stderrors.New("connection reset")
	calls := 0
	h := RequireFeature(f.access, subscription.FeatureBTN, logger.Nop())(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), f.athlete))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError || calls != 0 {
		t.Errorf("status = %d calls = %d, want 500 and no handler call", rr.Code, calls)
	}
	if env := decodeEnvelope(t, rr); env.Error.Message != "Internal server error" {
		t.Errorf("message = %q", env.Error.Message)
	}
}

func TestRequireAthleteAccess(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		requester  *user.User
		athleteID  string
		wantStatus int
	}{
		{"self", f.athlete, "1", http.StatusOK},
		{"linked coach", f.coach, "1", http.StatusOK},
		{"admin", f.admin, "1", http.StatusOK},
		{"athlete reading another", f.athlete, "3", http.StatusForbidden},
		{"bad id", f.athlete, "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.With(RequireAthleteAccess(f.perms, "athleteId", logger.Nop())).
				Get("/api/athletes/{athleteId}/btn/workouts", func(w http.ResponseWriter, r *http.Request) {
					if _, ok := GetAthleteAccess(r); !ok {
						t.Error("athlete access missing from context")
					}
					w.WriteHeader(http.StatusOK)
				})

			req := httptest.NewRequest(http.MethodGet, "/api/athletes/"+tt.athleteID+"/btn/workouts", nil)
			req = req.WithContext(WithUser(req.Context(), tt.requester))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name        string
		bearer      string
		wantStatus  int
		wantSubject string
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", bearer: "nope", wantStatus: http.StatusUnauthorized},
		{name: "identity without user row", bearer: "ghost-token", wantStatus: http.StatusOK, wantSubject: "auth|ghost"},
		{name: "existing user", bearer: "athlete-token", wantStatus: http.StatusOK, wantSubject: "auth|athlete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subject string
			h := RequireIdentity(f.resolver, "accessToken", logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if c, ok := GetClaims(r); ok {
					subject = c.Subject
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus || subject != tt.wantSubject {
				t.Errorf("status = %d subject = %q, want %d %q", rr.Code, subject, tt.wantStatus, tt.wantSubject)
			}
		})
	}
}

func TestAuthenticate_AddsUserIDToRequestLog(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "info", Format: "json", Output: &buf})

	var calls int
	h := Logger(log)(Authenticate(f.resolver, "accessToken", logger.Nop())(countingHandler(&calls)))
	req := httptest.NewRequest("GET", "/api/btn/workouts", nil)
	req.Header.Set("Authorization", "Bearer athlete-token")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("request log is not one JSON line: %v (%q)", err, buf.String())
	}
	if line["message"] != "HTTP request" {
		t.Errorf("message = %v", line["message"])
	}
	if got, ok := line["user_id"].(float64); !ok || int64(got) != f.athlete.ID {
		t.Errorf("user_id = %v, want %d", line["user_id"], f.athlete.ID)
	}
}
