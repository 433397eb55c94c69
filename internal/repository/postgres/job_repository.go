package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pratik-mahalle/fitcoach/internal/domain/job"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
)

const jobColumns = `id, user_id, job_type, payload, dedupe_key, status, scheduled_for, result, error_message, started_at, completed_at, created_at, updated_at`

// JobRepository implements job.Repository for PostgreSQL/SQLite
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Enqueue inserts a pending job
func (r *JobRepository) Enqueue(ctx context.Context, j *job.AIJob) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = j.CreatedAt
	if j.ScheduledFor.IsZero() {
		j.ScheduledFor = now
	}
	if len(j.Payload) == 0 {
		j.Payload = json.RawMessage(`{}`)
	}
	j.Status = job.StatusPending

	query := `
		INSERT INTO ai_jobs (id, user_id, job_type, payload, dedupe_key, status, scheduled_for, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var dedupe interface{}
	if j.DedupeKey != nil {
		dedupe = *j.DedupeKey
	}

	_, err := r.db.ExecContext(ctx, query,
		j.ID,
		j.UserID,
		string(j.JobType),
		string(j.Payload),
		dedupe,
		string(j.Status),
		j.ScheduledFor.UTC(),
		j.CreatedAt.UTC(),
		j.UpdatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return errors.Conflict("Job already queued")
	}
	if err != nil {
		return errors.DatabaseError("Failed to enqueue job", err)
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id string) (*job.AIJob, error) {
	query := `SELECT ` + jobColumns + ` FROM ai_jobs WHERE id = $1`

	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Job")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get job", err)
	}
	return j, nil
}

// Latest returns the newest job of jobType for the user
func (r *JobRepository) Latest(ctx context.Context, userID int64, jobType job.JobType) (*job.AIJob, error) {
	query := `SELECT ` + jobColumns + ` FROM ai_jobs
		WHERE user_id = $1 AND job_type = $2
		ORDER BY created_at DESC
		LIMIT 1`

	j, err := scanJob(r.db.QueryRowContext(ctx, query, userID, string(jobType)))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Job")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest job", err)
	}
	return j, nil
}

// LatestForced returns the newest user-forced context refresh
func (r *JobRepository) LatestForced(ctx context.Context, userID int64) (*job.AIJob, error) {
	query := `SELECT ` + jobColumns + ` FROM ai_jobs
		WHERE user_id = $1 AND job_type = $2 AND dedupe_key LIKE $3
		ORDER BY created_at DESC
		LIMIT 1`

	j, err := scanJob(r.db.QueryRowContext(ctx, query, userID, string(job.JobTypeContextRefresh), job.ForcedRefreshPrefix+"%"))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Job")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get forced refresh", err)
	}
	return j, nil
}

// ClaimDue moves up to limit due pending jobs to running. A job already
// claimed by another runner between select and update is skipped.
func (r *JobRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*job.AIJob, error) {
	now = now.UTC()

	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM ai_jobs
		WHERE status = $1 AND scheduled_for <= $2
		ORDER BY scheduled_for ASC, created_at ASC
		LIMIT $3`, string(job.StatusPending), now, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query due jobs", err)
	}

	var candidates []*job.AIJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			rows.Close()
			return nil, errors.DatabaseError("Failed to scan job", err)
		}
		candidates = append(candidates, j)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read due jobs", err)
	}

	claimed := make([]*job.AIJob, 0, len(candidates))
	for _, j := range candidates {
		res, err := r.db.ExecContext(ctx, `
			UPDATE ai_jobs SET status = $1, started_at = $2, updated_at = $3
			WHERE id = $4 AND status = $5
		`, string(job.StatusRunning), now, now, j.ID, string(job.StatusPending))
		if err != nil {
			return claimed, errors.DatabaseError("Failed to claim job", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue
		}
		j.Status = job.StatusRunning
		started := now
		j.StartedAt = &started
		claimed = append(claimed, j)
	}

	return claimed, nil
}

// Complete marks a job completed with its result
func (r *JobRepository) Complete(ctx context.Context, id string, result json.RawMessage) error {
	now := time.Now().UTC()
	var res interface{}
	if len(result) > 0 {
		res = string(result)
	}
	return r.finish(ctx, `
		UPDATE ai_jobs SET status = $1, result = $2, completed_at = $3, updated_at = $4
		WHERE id = $5
	`, string(job.StatusCompleted), res, now, now, id)
}

// Fail marks a job failed with an error message
func (r *JobRepository) Fail(ctx context.Context, id string, message string) error {
	now := time.Now().UTC()
	return r.finish(ctx, `
		UPDATE ai_jobs SET status = $1, error_message = $2, completed_at = $3, updated_at = $4
		WHERE id = $5
	`, string(job.StatusFailed), message, now, now, id)
}

func (r *JobRepository) finish(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.DatabaseError("Failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Job")
	}
	return nil
}

func scanJob(row rowScanner) (*job.AIJob, error) {
	var j job.AIJob
	var jobType, status string
	var payload, dedupe, result, errMsg sql.NullString
	var startedAt, completedAt sql.NullTime

	err := row.Scan(
		&j.ID,
		&j.UserID,
		&jobType,
		&payload,
		&dedupe,
		&status,
		&j.ScheduledFor,
		&result,
		&errMsg,
		&startedAt,
		&completedAt,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	j.JobType = job.JobType(jobType)
	j.Status = job.Status(status)
	if payload.Valid {
		j.Payload = json.RawMessage(payload.String)
	}
	if dedupe.Valid {
		key := dedupe.String
		j.DedupeKey = &key
	}
	if result.Valid {
		j.Result = json.RawMessage(result.String)
	}
	if errMsg.Valid {
		j.ErrorMessage = errMsg.String
	}
	if startedAt.Valid {
		j.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		j.CompletedAt = &completedAt.Time
	}

	return &j, nil
}
