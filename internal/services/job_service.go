package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/job"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/metrics"
)

// DefaultRefreshCooldown is the minimum gap between user-forced refreshes
const DefaultRefreshCooldown = 24 * time.Hour

// JobService implements job.Service
type JobService struct {
	repo     job.Repository
	logger   *logger.Logger
	cooldown time.Duration
	now      func() time.Time
}

// NewJobService creates a new job service
func NewJobService(repo job.Repository, cooldown time.Duration, log *logger.Logger) *JobService {
	if cooldown <= 0 {
		cooldown = DefaultRefreshCooldown
	}
	return &JobService{
		repo:     repo,
		logger:   log,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Enqueue inserts a pending job. When a job with the same user, type and
// dedupe key already exists nothing is inserted and the result is marked
// deduplicated.
func (s *JobService) Enqueue(ctx context.Context, req job.EnqueueRequest) (*job.EnqueueResult, error) {
	if req.UserID == 0 || req.JobType == "" {
		return nil, errors.InvalidInput("userId and jobType required")
	}

	j := &job.AIJob{
		UserID:  req.UserID,
		JobType: req.JobType,
		Payload: req.Payload,
		Status:  job.StatusPending,
	}
	if req.DedupeKey != "" {
		key := req.DedupeKey
		j.DedupeKey = &key
	}
	if req.ScheduledFor != nil {
		j.ScheduledFor = req.ScheduledFor.UTC()
	}

	log := s.logger.WithFields(map[string]interface{}{
		"user_id":    req.UserID,
		"job_type":   req.JobType,
		"dedupe_key": req.DedupeKey,
	})

	if err := s.repo.Enqueue(ctx, j); err != nil {
		if errors.IsConflict(err) {
			metrics.RecordJobEnqueued(req.JobType.String(), true)
			log.Info("Duplicate job ignored")
			return &job.EnqueueResult{Deduplicated: true}, nil
		}
		log.ErrorWithErr(err, "Failed to enqueue job")
		return nil, errors.UpstreamUnavailable("Failed to enqueue job", err)
	}

	metrics.RecordJobEnqueued(req.JobType.String(), false)
	log.With("job_id", j.ID).Info("Job enqueued")

	return &job.EnqueueResult{JobID: j.ID}, nil
}

// Latest returns the newest job of the type for the user
func (s *JobService) Latest(ctx context.Context, userID int64, jobType job.JobType) (*job.AIJob, error) {
	if userID == 0 || jobType == "" {
		return nil, errors.InvalidInput("userId and jobType required")
	}
	j, err := s.repo.Latest(ctx, userID, jobType)
	if err != nil {
		return nil, wrapStoreError(err, "Failed to load job")
	}
	return j, nil
}

// LastRefresh summarises the user's most recent context refresh
func (s *JobService) LastRefresh(ctx context.Context, userID int64) (*job.RefreshStatus, error) {
	j, err := s.repo.Latest(ctx, userID, job.JobTypeContextRefresh)
	if err != nil {
		if errors.IsNotFound(err) {
			return &job.RefreshStatus{
				Status:        job.RefreshStatusNone,
				ChangeSummary: []string{},
			}, nil
		}
		return nil, wrapStoreError(err, "Failed to load refresh status")
	}

	at := j.CreatedAt
	if j.CompletedAt != nil {
		at = *j.CompletedAt
	}

	return &job.RefreshStatus{
		LastRefreshAt: &at,
		Status:        string(j.Status),
		ChangeSummary: j.ChangeSummary(),
	}, nil
}

// ForceRefresh enqueues a context refresh on the user's behalf. Forced
// refreshes are limited to one per cooldown window.
func (s *JobService) ForceRefresh(ctx context.Context, userID int64) (*job.EnqueueResult, error) {
	now := s.now().UTC()

	last, err := s.repo.LatestForced(ctx, userID)
	switch {
	case err == nil:
		next := last.CreatedAt.Add(s.cooldown)
		if now.Before(next) {
			return nil, errors.RateLimited("Context refresh already requested recently").
				WithDetails(map[string]interface{}{"nextAvailableAt": next.UTC()})
		}
	case !errors.IsNotFound(err):
		return nil, wrapStoreError(err, "Failed to check refresh history")
	}

	res, err := s.Enqueue(ctx, job.EnqueueRequest{
		UserID:    userID,
		JobType:   job.JobTypeContextRefresh,
		DedupeKey: job.ForcedRefreshDedupeKey(userID, now),
	})
	if err != nil {
		return nil, err
	}
	if res.Deduplicated {
		return nil, errors.RateLimited("Context refresh already requested today").
			WithDetails(map[string]interface{}{"nextAvailableAt": nextDay(now)})
	}
	return res, nil
}

func nextDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}
