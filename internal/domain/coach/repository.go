package coach

import "context"

// Repository defines the coach relationship store
type Repository interface {
	GetByUserID(ctx context.Context, userID int64) (*Coach, error)
	Create(ctx context.Context, c *Coach) error
	CreateRelationship(ctx context.Context, rel *Relationship) error
	// ActiveRelationship returns the active relationship between an
	// approved coach (by user id) and an athlete, or NotFound
	ActiveRelationship(ctx context.Context, coachUserID, athleteID int64) (*Relationship, error)
}
