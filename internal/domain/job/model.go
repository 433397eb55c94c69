package job

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AIJob is a unit of background AI work requested for a user
type AIJob struct {
	ID           string          `json:"id"`
	UserID       int64           `json:"user_id"`
	JobType      JobType         `json:"job_type"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	DedupeKey    *string         `json:"dedupe_key,omitempty"`
	Status       Status          `json:"status"`
	ScheduledFor time.Time       `json:"scheduled_for"`
	Result       json.RawMessage `json:"result,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// JobType identifies what a job does
type JobType string

const (
	JobTypeContextRefresh    JobType = "context_refresh"
	JobTypeProgramGeneration JobType = "program_generation"
	JobTypePreviewAction     JobType = "preview_action"
	JobTypeApplyAction       JobType = "apply_action"
)

// IsKnown reports whether the worker has a handler for the type
func (jt JobType) IsKnown() bool {
	switch jt {
	case JobTypeContextRefresh, JobTypeProgramGeneration, JobTypePreviewAction, JobTypeApplyAction:
		return true
	default:
		return false
	}
}

// String returns the string representation of the job type
func (jt JobType) String() string {
	return string(jt)
}

// Status is the lifecycle state of a job
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// IsTerminal checks if the status is completed or failed
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// EnqueueRequest carries the inputs of an enqueue call
type EnqueueRequest struct {
	UserID       int64
	JobType      JobType
	Payload      json.RawMessage
	DedupeKey    string
	ScheduledFor *time.Time
}

// EnqueueResult reports the outcome of an enqueue call. Deduplicated is set
// when an identical job already existed and nothing was inserted.
type EnqueueResult struct {
	JobID        string `json:"jobId,omitempty"`
	Deduplicated bool   `json:"deduplicated"`
}

// RefreshStatus summarises the user's most recent context refresh
type RefreshStatus struct {
	LastRefreshAt *time.Time `json:"lastRefreshAt"`
	Status        string     `json:"status"`
	ChangeSummary []string   `json:"changeSummary"`
}

// RefreshStatusNone is reported when the user has never been refreshed
const RefreshStatusNone = "none"

// ContextRefreshResult is stored as the result of a context_refresh job
type ContextRefreshResult struct {
	ChangeSummary []string `json:"change_summary"`
}

// ActionPayload is the payload shape of preview_action and apply_action jobs
type ActionPayload struct {
	Action string                 `json:"action"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// ForcedRefreshPrefix prefixes the dedupe key of user-forced refreshes
const ForcedRefreshPrefix = "context_refresh:forced:"

// ForcedRefreshDedupeKey returns the per-day dedupe key for a forced
// context refresh
func ForcedRefreshDedupeKey(userID int64, day time.Time) string {
	return fmt.Sprintf("%s%d:%s", ForcedRefreshPrefix, userID, day.UTC().Format("20060102"))
}

// IsForcedRefresh reports whether a job was forced by the user
func (j *AIJob) IsForcedRefresh() bool {
	return j.JobType == JobTypeContextRefresh && j.DedupeKey != nil &&
		strings.HasPrefix(*j.DedupeKey, ForcedRefreshPrefix)
}

// ChangeSummary decodes the change summary of a completed context refresh.
// Missing or malformed results give an empty list.
func (j *AIJob) ChangeSummary() []string {
	if len(j.Result) == 0 {
		return []string{}
	}
	var res ContextRefreshResult
	if err := json.Unmarshal(j.Result, &res); err != nil || res.ChangeSummary == nil {
		return []string{}
	}
	return res.ChangeSummary
}
