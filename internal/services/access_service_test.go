package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/pratik-mahalle/fitcoach/internal/domain/coach"
	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/testutil"
)

func TestAccessService_CheckAccess(t *testing.T) {
	users := testutil.NewMockUserRepository()
	add := func(tier subscription.Tier, status subscription.Status) int64 {
		return users.Add(&user.User{SubscriptionTier: tier, SubscriptionStatus: status}).ID
	}

	engineActive := add(subscription.TierEngine, subscription.StatusActive)
	premiumTrial := add(subscription.TierPremium, subscription.StatusTrialing)
	legacyActive := add(subscription.TierLegacyFullProgram, subscription.StatusActive)
	btnActive := add(subscription.TierBTN, subscription.StatusActive)
	engineCanceled := add(subscription.TierEngine, subscription.StatusCanceled)
	noTier := add(subscription.TierNone, "")

	svc := NewAccessService(users, nil, logger.Nop())

	tests := []struct {
		name       string
		userID     int64
		feature    subscription.Feature
		wantAccess bool
		wantReason string
	}{
		{"engine tier", engineActive, subscription.FeatureEngine, true, ""},
		{"premium trialing", premiumTrial, subscription.FeatureEngine, true, ""},
		{"legacy full-program", legacyActive, subscription.FeatureEngine, true, ""},
		{"btn tier lacks engine", btnActive, subscription.FeatureEngine, false, subscription.ReasonTierNotEntitled},
		{"canceled", engineCanceled, subscription.FeatureEngine, false, subscription.ReasonInactive},
		{"no subscription", noTier, subscription.FeatureBTN, false, subscription.ReasonNoSubscription},
		{"unknown feature", engineActive, subscription.Feature("rowing"), false, subscription.ReasonUnknownFeature},
		{"premium covers applied power", premiumTrial, subscription.FeatureAppliedPower, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := svc.CheckAccess(context.Background(), tt.userID, tt.feature)
			if err != nil {
				t.Fatalf("CheckAccess() unexpected error: %v", err)
			}
			if d.HasAccess != tt.wantAccess {
				t.Errorf("HasAccess = %v, want %v", d.HasAccess, tt.wantAccess)
			}
			if d.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", d.Reason, tt.wantReason)
			}
		})
	}
}

func TestAccessService_Errors(t *testing.T) {
	t.Run("store unavailable", func(t *testing.T) {
		users := testutil.NewMockUserRepository()
		users.GetError = stderrors.New("timeout")
		svc := NewAccessService(users, nil, logger.Nop())

		_, err := svc.CheckAccess(context.Background(), 1, subscription.FeatureBTN)
		if !errors.HasCode(err, errors.ErrCodeUpstreamUnavailable) {
			t.Errorf("error = %v, want UPSTREAM_UNAVAILABLE", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		svc := NewAccessService(testutil.NewMockUserRepository(), nil, logger.Nop())
		_, err := svc.CheckAccess(context.Background(), 42, subscription.FeatureBTN)
		if !errors.HasCode(err, errors.ErrCodeUserNotFound) {
			t.Errorf("error = %v, want USER_NOT_FOUND", err)
		}
	})
}

func TestAccessService_CustomPolicy(t *testing.T) {
	users := testutil.NewMockUserRepository()
	id := users.Add(&user.User{SubscriptionTier: subscription.TierEngine, SubscriptionStatus: subscription.StatusPastDue}).ID

	policy := subscription.PolicyFromTable([]string{"active", "trialing", "past_due"}, nil, nil)
	svc := NewAccessService(users, policy, logger.Nop())

	d, err := svc.CheckAccess(context.Background(), id, subscription.FeatureEngine)
	if err != nil {
		t.Fatalf("CheckAccess() unexpected error: %v", err)
	}
	if !d.HasAccess {
		t.Errorf("past_due should be entitled under the custom policy, got %+v", d)
	}
}

func TestPermissionService(t *testing.T) {
	users := testutil.NewMockUserRepository()
	admin := users.Add(&user.User{Role: user.RoleAdmin})
	coachUser := users.Add(&user.User{Role: user.RoleCoach})
	athlete := users.Add(&user.User{Role: user.RoleAthlete})
	other := users.Add(&user.User{Role: user.RoleAthlete})

	coaches := testutil.NewMockCoachRepository()
	c := &coach.Coach{UserID: coachUser.ID, Status: coach.StatusApproved}
	_ = coaches.Create(context.Background(), c)
	_ = coaches.CreateRelationship(context.Background(), &coach.Relationship{
		CoachID:         c.ID,
		AthleteID:       athlete.ID,
		Status:          coach.RelationshipActive,
		PermissionLevel: coach.PermissionView,
	})

	svc := NewPermissionService(users, coaches)
	ctx := context.Background()

	t.Run("IsAdmin", func(t *testing.T) {
		if !svc.IsAdmin(ctx, admin.ID) {
			t.Error("admin should be admin")
		}
		if svc.IsAdmin(ctx, athlete.ID) {
			t.Error("athlete should not be admin")
		}
		if svc.IsAdmin(ctx, 999) {
			t.Error("unknown user should not be admin")
		}
		// repeated calls give the same answer
		if !svc.IsAdmin(ctx, admin.ID) {
			t.Error("IsAdmin changed between calls")
		}
	})

	t.Run("HasRole", func(t *testing.T) {
		ok, err := svc.HasRole(ctx, coachUser.ID, user.RoleAdmin, user.RoleCoach)
		if err != nil || !ok {
			t.Errorf("HasRole() = %v, %v; want true", ok, err)
		}
	})

	tests := []struct {
		name       string
		requester  *user.User
		athleteID  int64
		wantAccess bool
		wantLevel  string
	}{
		{"self", athlete, athlete.ID, true, coach.PermissionSelf},
		{"admin", admin, athlete.ID, true, coach.PermissionEdit},
		{"linked coach", coachUser, athlete.ID, true, coach.PermissionView},
		{"unlinked coach", coachUser, other.ID, false, ""},
		{"other athlete", other, athlete.ID, false, ""},
	}
	for _, tt := range tests {
		t.Run("CanAccessAthleteData/"+tt.name, func(t *testing.T) {
			got, err := svc.CanAccessAthleteData(ctx, tt.requester, tt.athleteID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.HasAccess != tt.wantAccess || got.PermissionLevel != tt.wantLevel {
				t.Errorf("got %+v, want access=%v level=%q", got, tt.wantAccess, tt.wantLevel)
			}
		})
	}
}
