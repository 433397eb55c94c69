package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/repository/postgres"
	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database with the real migrations
// applied
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if _, err := postgres.Migrate(db, "sqlite"); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}

// CreateTestUser inserts an athlete without a subscription and returns its id
func CreateTestUser(t *testing.T, db *sql.DB, authID, email string) int64 {
	t.Helper()

	u := &user.User{
		AuthID:             authID,
		Email:              email,
		Name:               email,
		Role:               user.RoleAthlete,
		SubscriptionTier:   subscription.TierNone,
		SubscriptionStatus: subscription.StatusIncomplete,
	}
	if err := postgres.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u.ID
}
