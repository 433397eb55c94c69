package user

import (
	"context"
	"time"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByAuthID retrieves a user by the identity provider's subject id
	GetByAuthID(ctx context.Context, authID string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, user *User) error

	// Search matches name or email case-insensitively, ordered by name
	Search(ctx context.Context, query string, limit int) ([]*User, error)

	// List retrieves users matching filter along with the total match count
	List(ctx context.Context, filter Filter) ([]*User, int64, error)

	// Stats aggregates subscription state; trials ending between now and
	// trialCutoff count as expiring
	Stats(ctx context.Context, now, trialCutoff time.Time) (*SubscriptionStats, error)
}
