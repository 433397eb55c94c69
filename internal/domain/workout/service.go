package workout

import "context"

// Service defines workout operations
type Service interface {
	Search(ctx context.Context, filter SearchFilter) (*SearchResult, error)
	// Import adds catalog workouts, deriving equipment tags from exercises
	Import(ctx context.Context, workouts []*Workout) (*ImportResult, error)

	ListBTN(ctx context.Context, userID int64, filter BTNFilter) (*BTNList, error)
	SaveBTN(ctx context.Context, userID int64, workouts []*BTNWorkout) ([]*BTNWorkout, error)
	LogBTNResult(ctx context.Context, userID int64, req LogResultRequest) (*LogResult, error)
}
