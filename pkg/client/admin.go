package client

import (
	"context"
	"net/url"
	"strconv"
)

// AdminService handles admin console calls
type AdminService struct {
	client *Client
}

// UserListOptions contains options for listing users
type UserListOptions struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	Tier      string
	Role      string
	SortBy    string
	SortOrder string // asc, desc
}

// CheckRole reports whether the caller is an admin
func (s *AdminService) CheckRole(ctx context.Context) (*RoleCheck, error) {
	var rc RoleCheck
	if err := s.client.doRequest(ctx, "GET", "/api/admin/check-role", nil, nil, &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

// SearchUsers finds users by name or email
func (s *AdminService) SearchUsers(ctx context.Context, q string) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	if err := s.client.doRequest(ctx, "GET", "/api/admin/users/search", url.Values{"q": {q}}, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ListUsers retrieves one page of users
func (s *AdminService) ListUsers(ctx context.Context, opts *UserListOptions) (*UserList, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}
		setIf(query, "search", opts.Search)
		setIf(query, "status", opts.Status)
		setIf(query, "tier", opts.Tier)
		setIf(query, "role", opts.Role)
		setIf(query, "sortBy", opts.SortBy)
		setIf(query, "sortOrder", opts.SortOrder)
	}

	var list UserList
	if err := s.client.doRequest(ctx, "GET", "/api/admin/users", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AccessUpdate changes a user's role or subscription. Nil fields are left
// unchanged.
type AccessUpdate struct {
	Role               *string `json:"role,omitempty"`
	SubscriptionTier   *string `json:"subscriptionTier,omitempty"`
	SubscriptionStatus *string `json:"subscriptionStatus,omitempty"`
}

// UpdateUserAccess sets a user's role, tier or status
func (s *AdminService) UpdateUserAccess(ctx context.Context, userID int64, update AccessUpdate) (*User, error) {
	var u User
	path := "/api/admin/users/" + strconv.FormatInt(userID, 10)
	if err := s.client.doRequest(ctx, "PATCH", path, nil, update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SubscriptionStats retrieves subscription counts
func (s *AdminService) SubscriptionStats(ctx context.Context) (*SubscriptionStats, error) {
	var stats SubscriptionStats
	if err := s.client.doRequest(ctx, "GET", "/api/admin/subscriptions/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ImportWorkouts loads catalog workouts
func (s *AdminService) ImportWorkouts(ctx context.Context, workouts []Workout) (*ImportResult, error) {
	body := map[string]interface{}{"workouts": workouts}
	var res ImportResult
	if err := s.client.doRequest(ctx, "POST", "/api/admin/workouts/import", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
