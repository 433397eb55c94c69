package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// Search returns users matching query; queries shorter than
	// SearchMinLength return an empty result without a store call
	Search(ctx context.Context, query string) ([]*User, error)

	// List returns one page of users and the total match count
	List(ctx context.Context, filter Filter) ([]*User, int64, error)

	// SubscriptionStats aggregates subscription state across users
	SubscriptionStats(ctx context.Context) (*SubscriptionStats, error)

	// Provision returns the user for a verified identity, creating the
	// row on first sign-in. created reports whether a row was inserted.
	Provision(ctx context.Context, authID, email, name string) (u *User, created bool, err error)

	// UpdateAccess applies an admin change to role or subscription
	UpdateAccess(ctx context.Context, id int64, update AccessUpdate) (*User, error)
}
