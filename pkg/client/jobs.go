package client

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// JobService handles AI job calls
type JobService struct {
	client *Client
}

// EnqueueRequest represents a job enqueue request
type EnqueueRequest struct {
	UserID       *int64          `json:"userId,omitempty"`
	JobType      string          `json:"jobType"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	DedupeKey    string          `json:"dedupeKey,omitempty"`
	ScheduledFor *time.Time      `json:"scheduledFor,omitempty"`
}

// Enqueue queues a job
func (s *JobService) Enqueue(ctx context.Context, req EnqueueRequest) (*EnqueueResult, error) {
	var res EnqueueResult
	if err := s.client.doRequest(ctx, "POST", "/api/ai/enqueue", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Latest retrieves the newest job of jobType
func (s *JobService) Latest(ctx context.Context, jobType string) (*Job, error) {
	var j Job
	if err := s.client.doRequest(ctx, "GET", "/api/ai/jobs/latest", url.Values{"jobType": {jobType}}, nil, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// LastRefresh retrieves the latest context refresh status
func (s *JobService) LastRefresh(ctx context.Context) (*RefreshStatus, error) {
	var rs RefreshStatus
	if err := s.client.doRequest(ctx, "GET", "/api/ai/last-refresh", nil, nil, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// ForceRefresh queues a context refresh
func (s *JobService) ForceRefresh(ctx context.Context) (*EnqueueResult, error) {
	var res EnqueueResult
	if err := s.client.doRequest(ctx, "POST", "/api/ai/refresh", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
