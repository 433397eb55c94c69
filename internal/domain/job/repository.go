package job

import (
	"context"
	"encoding/json"
	"time"
)

// Repository defines the AI job store
type Repository interface {
	// Enqueue inserts a pending job. A duplicate (user, type, dedupe key)
	// returns a Conflict error.
	Enqueue(ctx context.Context, job *AIJob) error
	GetByID(ctx context.Context, id string) (*AIJob, error)
	// Latest returns the newest job of the type for the user, or NotFound
	Latest(ctx context.Context, userID int64, jobType JobType) (*AIJob, error)
	// LatestForced returns the newest user-forced context refresh, or NotFound
	LatestForced(ctx context.Context, userID int64) (*AIJob, error)

	// ClaimDue moves up to limit due pending jobs to running, oldest first
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*AIJob, error)
	Complete(ctx context.Context, id string, result json.RawMessage) error
	Fail(ctx context.Context, id string, message string) error
}
