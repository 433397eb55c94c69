package postgres_test

import (
	"context"
	"testing"

	"github.com/pratik-mahalle/fitcoach/internal/domain/coach"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/repository/postgres"
	"github.com/pratik-mahalle/fitcoach/internal/testutil"
)

func TestCoachRepository_ActiveRelationship(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	users := postgres.NewUserRepository(db)
	repo := postgres.NewCoachRepository(db)
	ctx := context.Background()

	coachUser := createUser(t, users, "c1", "Coach", "coach@example.com")
	pendingUser := createUser(t, users, "c2", "Pending", "pending@example.com")
	athlete := createUser(t, users, "a1", "Athlete", "athlete@example.com")
	other := createUser(t, users, "a2", "Other", "other@example.com")

	approved := &coach.Coach{UserID: coachUser.ID, Name: "Coach", Status: coach.StatusApproved}
	pending := &coach.Coach{UserID: pendingUser.ID, Name: "Pending"}
	for _, c := range []*coach.Coach{approved, pending} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	rels := []*coach.Relationship{
		{CoachID: approved.ID, AthleteID: athlete.ID, Status: coach.RelationshipActive, PermissionLevel: coach.PermissionEdit},
		{CoachID: approved.ID, AthleteID: other.ID, Status: coach.RelationshipEnded},
		{CoachID: pending.ID, AthleteID: athlete.ID, Status: coach.RelationshipActive},
	}
	for _, rel := range rels {
		if err := repo.CreateRelationship(ctx, rel); err != nil {
			t.Fatalf("CreateRelationship() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		coachUser int64
		athlete   int64
		wantFound bool
	}{
		{"approved coach active link", coachUser.ID, athlete.ID, true},
		{"ended link", coachUser.ID, other.ID, false},
		{"coach not approved", pendingUser.ID, athlete.ID, false},
		{"not a coach", other.ID, athlete.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, err := repo.ActiveRelationship(ctx, tt.coachUser, tt.athlete)
			if tt.wantFound {
				if err != nil {
					t.Fatalf("ActiveRelationship() error = %v", err)
				}
				if rel.PermissionLevel != coach.PermissionEdit {
					t.Errorf("PermissionLevel = %q", rel.PermissionLevel)
				}
				return
			}
			if !errors.IsNotFound(err) {
				t.Errorf("ActiveRelationship() error = %v, want not found", err)
			}
		})
	}

	dup := &coach.Relationship{CoachID: approved.ID, AthleteID: athlete.ID}
	if err := repo.CreateRelationship(ctx, dup); !errors.IsConflict(err) {
		t.Errorf("duplicate CreateRelationship() error = %v", err)
	}
}
