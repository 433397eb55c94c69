package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/job"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/metrics"
	"github.com/robfig/cron/v3"
)

// ErrUnsupportedJob marks a known job type this runner does not execute.
// Such jobs fail instead of completing with an empty result.
var ErrUnsupportedJob = errors.New("job type not supported by this runner")

// Summarizer produces the change summary of a context refresh
type Summarizer interface {
	Summarize(ctx context.Context, userID int64, payload string) ([]string, error)
}

// RunnerConfig tunes the job runner
type RunnerConfig struct {
	// Schedule is a cron spec, e.g. "@every 30s"
	Schedule         string
	BatchSize        int
	ExecutionTimeout time.Duration
}

// JobRunner implements job.Runner. On every tick of its cron schedule it
// claims a batch of due jobs and runs them one after another.
type JobRunner struct {
	repo       job.Repository
	summarizer Summarizer
	cfg        RunnerConfig
	logger     *logger.Logger
	now        func() time.Time

	scheduler    *cron.Cron
	isRunning    bool
	runningMutex sync.RWMutex
	// tickMutex keeps ticks from overlapping
	tickMutex sync.Mutex
	baseCtx   context.Context
}

// NewJobRunner creates a new job runner
func NewJobRunner(repo job.Repository, summarizer Summarizer, cfg RunnerConfig, log *logger.Logger) *JobRunner {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 30s"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	if cfg.ExecutionTimeout <= 0 {
		cfg.ExecutionTimeout = 2 * time.Minute
	}
	return &JobRunner{
		repo:       repo,
		summarizer: summarizer,
		cfg:        cfg,
		logger:     log,
		now:        time.Now,
	}
}

// Start starts the cron scheduler
func (r *JobRunner) Start(ctx context.Context) error {
	r.runningMutex.Lock()
	defer r.runningMutex.Unlock()

	if r.isRunning {
		return fmt.Errorf("job runner is already running")
	}

	r.baseCtx = ctx
	r.scheduler = cron.New()
	if _, err := r.scheduler.AddFunc(r.cfg.Schedule, r.tick); err != nil {
		return fmt.Errorf("invalid job schedule %q: %w", r.cfg.Schedule, err)
	}

	r.scheduler.Start()
	r.isRunning = true

	r.logger.WithFields(map[string]interface{}{
		"schedule":   r.cfg.Schedule,
		"batch_size": r.cfg.BatchSize,
	}).Info("Job runner started")

	return nil
}

// Stop stops the scheduler and waits for a running tick to finish
func (r *JobRunner) Stop() error {
	r.runningMutex.Lock()
	defer r.runningMutex.Unlock()

	if !r.isRunning {
		return nil
	}

	<-r.scheduler.Stop().Done()
	r.isRunning = false

	r.logger.Info("Job runner stopped")

	return nil
}

// IsRunning returns whether the scheduler is running
func (r *JobRunner) IsRunning() bool {
	r.runningMutex.RLock()
	defer r.runningMutex.RUnlock()
	return r.isRunning
}

func (r *JobRunner) tick() {
	if !r.tickMutex.TryLock() {
		r.logger.Debug("Previous job batch still running, skipping tick")
		return
	}
	defer r.tickMutex.Unlock()

	ctx := r.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}

	if _, err := r.runDue(ctx); err != nil {
		r.logger.ErrorWithErr(err, "Failed to run due jobs")
	}
}

// RunDue claims one batch of due jobs and executes them. It returns the
// number of jobs claimed.
func (r *JobRunner) RunDue(ctx context.Context) (int, error) {
	r.tickMutex.Lock()
	defer r.tickMutex.Unlock()
	return r.runDue(ctx)
}

func (r *JobRunner) runDue(ctx context.Context) (int, error) {
	jobs, err := r.repo.ClaimDue(ctx, r.now().UTC(), r.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("claim due jobs: %w", err)
	}

	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		r.execute(ctx, j)
	}
	return len(jobs), nil
}

// execute runs one claimed job and records its outcome
func (r *JobRunner) execute(ctx context.Context, j *job.AIJob) {
	start := time.Now()
	log := r.logger.WithFields(map[string]interface{}{
		"job_id":   j.ID,
		"job_type": j.JobType,
		"user_id":  j.UserID,
	})
	log.Info("Job execution started")

	execCtx, cancel := context.WithTimeout(ctx, r.cfg.ExecutionTimeout)
	defer cancel()

	result, err := r.runJobLogic(execCtx, j)
	duration := time.Since(start)

	// outcome writes use the parent context so a timed-out job is still
	// recorded
	if err != nil {
		metrics.RecordJobExecution(j.JobType.String(), string(job.StatusFailed), duration)
		log.ErrorWithErr(err, "Job execution failed")
		if ferr := r.repo.Fail(ctx, j.ID, err.Error()); ferr != nil {
			log.ErrorWithErr(ferr, "Failed to record job failure")
		}
		return
	}

	metrics.RecordJobExecution(j.JobType.String(), string(job.StatusCompleted), duration)
	if cerr := r.repo.Complete(ctx, j.ID, result); cerr != nil {
		log.ErrorWithErr(cerr, "Failed to record job completion")
		return
	}
	log.With("duration_ms", duration.Milliseconds()).Info("Job execution completed")
}

// runJobLogic dispatches on the job type
func (r *JobRunner) runJobLogic(ctx context.Context, j *job.AIJob) (json.RawMessage, error) {
	switch j.JobType {
	case job.JobTypeContextRefresh:
		return r.runContextRefresh(ctx, j)
	case job.JobTypeProgramGeneration:
		// programs are generated by the training service, never here
		return nil, fmt.Errorf("%s: %w", j.JobType, ErrUnsupportedJob)
	case job.JobTypePreviewAction:
		return json.Marshal(map[string]interface{}{"preview": true})
	case job.JobTypeApplyAction:
		return r.runApplyAction(j)
	default:
		return nil, fmt.Errorf("unknown job type: %s", j.JobType)
	}
}

func (r *JobRunner) runContextRefresh(ctx context.Context, j *job.AIJob) (json.RawMessage, error) {
	summary, err := r.summarizer.Summarize(ctx, j.UserID, string(j.Payload))
	if err != nil {
		// the summarizer still returns a usable fallback
		r.logger.With("job_id", j.ID).WithError(err).Warn("Change summary fell back to default")
	}
	return json.Marshal(job.ContextRefreshResult{ChangeSummary: summary})
}

func (r *JobRunner) runApplyAction(j *job.AIJob) (json.RawMessage, error) {
	var payload job.ActionPayload
	if len(j.Payload) > 0 {
		if err := json.Unmarshal(j.Payload, &payload); err != nil {
			return nil, fmt.Errorf("invalid apply_action payload: %w", err)
		}
	}
	if payload.Action == "" {
		return nil, fmt.Errorf("apply_action requires payload.action")
	}
	return json.Marshal(map[string]interface{}{
		"applied": true,
		"action":  payload.Action,
	})
}
