package services

import (
	"context"

	"github.com/pratik-mahalle/fitcoach/internal/domain/coach"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
)

// PermissionService answers role and athlete-access questions. It keeps no
// state between calls.
type PermissionService struct {
	users   user.Repository
	coaches coach.Repository
}

// NewPermissionService creates a new permission service
func NewPermissionService(users user.Repository, coaches coach.Repository) *PermissionService {
	return &PermissionService{
		users:   users,
		coaches: coaches,
	}
}

// IsAdmin reports whether the user holds the admin role. Unknown users and
// store failures are not admins.
func (s *PermissionService) IsAdmin(ctx context.Context, userID int64) bool {
	ok, err := s.HasRole(ctx, userID, user.RoleAdmin)
	return err == nil && ok
}

// HasRole reports whether the user holds any of roles
func (s *PermissionService) HasRole(ctx context.Context, userID int64, roles ...user.Role) (bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, errors.UpstreamUnavailable("Failed to load user", err)
	}
	for _, r := range roles {
		if u.Role == r {
			return true, nil
		}
	}
	return false, nil
}

// CanAccessAthleteData decides whether requester may read athleteID's data.
// Users always see their own data and admins see everyone's; a coach needs
// an active relationship with the athlete.
func (s *PermissionService) CanAccessAthleteData(ctx context.Context, requester *user.User, athleteID int64) (*coach.AthleteAccess, error) {
	if requester.ID == athleteID {
		return &coach.AthleteAccess{HasAccess: true, PermissionLevel: coach.PermissionSelf}, nil
	}
	if requester.IsAdmin() {
		return &coach.AthleteAccess{HasAccess: true, PermissionLevel: coach.PermissionEdit}, nil
	}

	rel, err := s.coaches.ActiveRelationship(ctx, requester.ID, athleteID)
	if err != nil {
		if errors.IsNotFound(err) {
			return &coach.AthleteAccess{HasAccess: false}, nil
		}
		return nil, errors.UpstreamUnavailable("Failed to check coach access", err)
	}

	return &coach.AthleteAccess{
		HasAccess:       true,
		PermissionLevel: rel.PermissionLevel,
		IsCoach:         true,
	}, nil
}
