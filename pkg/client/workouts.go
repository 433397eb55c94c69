package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// WorkoutService handles catalog search and BTN calls
type WorkoutService struct {
	client *Client
}

// SearchOptions contains catalog search filters
type SearchOptions struct {
	Query      string
	Level      string
	Format     string
	TimeDomain string
	Equipment  []string
	Sort       string // newest, name, popularity
	Gender     string
	Limit      int
	Offset     int
}

// Search searches the workout catalog
func (s *WorkoutService) Search(ctx context.Context, opts SearchOptions) (*WorkoutSearchResult, error) {
	query := url.Values{}
	setIf(query, "q", opts.Query)
	setIf(query, "level", opts.Level)
	setIf(query, "format", opts.Format)
	setIf(query, "time_domain", opts.TimeDomain)
	setIf(query, "equipment", strings.Join(opts.Equipment, ","))
	setIf(query, "sort", opts.Sort)
	setIf(query, "gender", opts.Gender)
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	var res WorkoutSearchResult
	if err := s.client.doRequest(ctx, "GET", "/api/workouts/search", query, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListBTN lists the caller's BTN workouts. status is all, completed or
// incomplete.
func (s *WorkoutService) ListBTN(ctx context.Context, status string, limit int) (*BTNList, error) {
	query := url.Values{}
	setIf(query, "status", status)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var list BTNList
	if err := s.client.doRequest(ctx, "GET", "/api/btn/workouts", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AthleteBTN lists an athlete's BTN workouts
func (s *WorkoutService) AthleteBTN(ctx context.Context, athleteID int64, status string) (*BTNList, error) {
	query := url.Values{}
	setIf(query, "status", status)

	var list BTNList
	path := "/api/athletes/" + strconv.FormatInt(athleteID, 10) + "/btn/workouts"
	if err := s.client.doRequest(ctx, "GET", path, query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// LogResult records a score for a BTN workout
func (s *WorkoutService) LogResult(ctx context.Context, workoutID int64, score, notes string) (*LogResult, error) {
	body := map[string]interface{}{
		"workoutId": workoutID,
		"userScore": score,
		"notes":     notes,
	}
	var res LogResult
	if err := s.client.doRequest(ctx, "POST", "/api/btn/log-result", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
