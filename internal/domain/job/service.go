package job

import "context"

// Service defines the job queue operations exposed to callers
type Service interface {
	Enqueue(ctx context.Context, req EnqueueRequest) (*EnqueueResult, error)
	Latest(ctx context.Context, userID int64, jobType JobType) (*AIJob, error)
	LastRefresh(ctx context.Context, userID int64) (*RefreshStatus, error)
	ForceRefresh(ctx context.Context, userID int64) (*EnqueueResult, error)
}

// Runner executes queued jobs in the background
type Runner interface {
	Start(ctx context.Context) error
	Stop() error
	IsRunning() bool
	// RunDue claims and executes one batch of due jobs
	RunDue(ctx context.Context) (int, error)
}
