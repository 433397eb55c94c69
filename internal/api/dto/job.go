package dto

import (
	"encoding/json"
	"time"
)

// EnqueueJobRequest represents a job enqueue request. UserID defaults to the
// caller; only admins may enqueue for someone else.
type EnqueueJobRequest struct {
	UserID       *int64          `json:"userId,omitempty"`
	JobType      string          `json:"jobType" validate:"omitempty,max=64"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	DedupeKey    string          `json:"dedupeKey,omitempty" validate:"omitempty,max=255"`
	ScheduledFor *time.Time      `json:"scheduledFor,omitempty"`
}

// EnqueueJobResponse is the result of an enqueue request
type EnqueueJobResponse struct {
	JobID        string `json:"jobId,omitempty"`
	Deduplicated bool   `json:"deduplicated"`
}

// JobResponse represents an AI job in API responses
type JobResponse struct {
	ID           string          `json:"id"`
	JobType      string          `json:"jobType"`
	Status       string          `json:"status"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	ScheduledFor time.Time       `json:"scheduledFor"`
	CreatedAt    time.Time       `json:"createdAt"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
}
