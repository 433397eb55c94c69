package workout

import (
	"context"
	"time"
)

// Repository defines the workout catalog and BTN store
type Repository interface {
	// Create inserts a catalog workout with its equipment tags. A duplicate
	// slug is a Conflict.
	Create(ctx context.Context, w *Workout) error
	Search(ctx context.Context, filter SearchFilter) ([]*Workout, int64, error)

	CreateBTN(ctx context.Context, w *BTNWorkout) error
	ListBTN(ctx context.Context, userID int64, filter BTNFilter) ([]*BTNWorkout, error)
	GetBTN(ctx context.Context, id int64) (*BTNWorkout, error)
	SaveBTNResult(ctx context.Context, id int64, score string, percentile int, tier, notes string, completedAt time.Time) error
}
