package client

import (
	"encoding/json"
	"time"
)

// User represents a user in the system
type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	SubscriptionTier   string     `json:"subscription_tier"`
	SubscriptionStatus string     `json:"subscription_status"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// AccessDecision reports whether the caller may use a feature
type AccessDecision struct {
	Feature   string `json:"feature"`
	HasAccess bool   `json:"hasAccess"`
	Reason    string `json:"reason,omitempty"`
}

// RoleCheck is the result of the admin role check
type RoleCheck struct {
	IsAdmin bool `json:"isAdmin"`
	User    User `json:"user"`
}

// Pagination describes one page of a list
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// UserList is one page of users
type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// SubscriptionStats aggregates subscription state across users
type SubscriptionStats struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	ByTier         map[string]int64 `json:"by_tier"`
	Trialing       int64            `json:"trialing"`
	ExpiringTrials int64            `json:"expiring_trials"`
}

// Job represents a background AI job
type Job struct {
	ID           string          `json:"id"`
	JobType      string          `json:"jobType"`
	Status       string          `json:"status"` // pending, running, completed, failed
	Payload      json.RawMessage `json:"payload,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	ScheduledFor time.Time       `json:"scheduledFor"`
	CreatedAt    time.Time       `json:"createdAt"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
}

// EnqueueResult is the outcome of queuing a job
type EnqueueResult struct {
	JobID        string `json:"jobId,omitempty"`
	Deduplicated bool   `json:"deduplicated"`
}

// RefreshStatus summarises the latest context refresh
type RefreshStatus struct {
	LastRefreshAt *time.Time `json:"lastRefreshAt"`
	Status        string     `json:"status"`
	ChangeSummary []string   `json:"changeSummary"`
}

// Workout is a catalog workout
type Workout struct {
	ID             int64     `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	EventName      string    `json:"event_name,omitempty"`
	EventYear      int       `json:"event_year,omitempty"`
	Level          string    `json:"level,omitempty"`
	Format         string    `json:"format,omitempty"`
	TimeDomain     string    `json:"time_domain,omitempty"`
	TimeCapSeconds *int      `json:"time_cap_seconds,omitempty"`
	Exercises      []string  `json:"exercises"`
	Equipment      []string  `json:"equipment"`
	AttemptsMale   int       `json:"attempts_male"`
	AttemptsFemale int       `json:"attempts_female"`
	CreatedAt      time.Time `json:"created_at"`
}

// WorkoutSearchResult is one page of catalog search results
type WorkoutSearchResult struct {
	Items  []Workout `json:"items"`
	Count  int64     `json:"count"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// ImportResult reports how many catalog workouts were inserted
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// BTNWorkout is a generated workout owned by one user
type BTNWorkout struct {
	ID              int64      `json:"id"`
	Name            string     `json:"workout_name"`
	Format          string     `json:"workout_format"`
	TimeDomain      string     `json:"time_domain,omitempty"`
	Exercises       []string   `json:"exercises"`
	MedianScore     string     `json:"median_score,omitempty"`
	ExcellentScore  string     `json:"excellent_score,omitempty"`
	UserScore       *string    `json:"user_score,omitempty"`
	Percentile      *int       `json:"percentile,omitempty"`
	PerformanceTier *string    `json:"performance_tier,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// BTNStats summarises completion across a BTN listing
type BTNStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Incomplete     int `json:"incomplete"`
	CompletionRate int `json:"completionRate"`
}

// BTNList is a BTN workout listing with stats
type BTNList struct {
	Workouts []BTNWorkout `json:"workouts"`
	Stats    BTNStats     `json:"stats"`
}

// LogResult is the scored outcome of a logged BTN result
type LogResult struct {
	Percentile      int    `json:"percentile"`
	PerformanceTier string `json:"performanceTier"`
	Benchmarks      struct {
		Median    string `json:"median"`
		Excellent string `json:"excellent"`
		YourScore string `json:"yourScore"`
	} `json:"benchmarks"`
}

// ChatMessage is one support chat message
type ChatMessage struct {
	ID          int64     `json:"id"`
	SenderType  string    `json:"sender_type"` // user, admin, system
	Content     string    `json:"content"`
	IsAutoReply bool      `json:"is_auto_reply"`
	CreatedAt   time.Time `json:"created_at"`
}

// SendResult is the outcome of sending a chat message
type SendResult struct {
	Message   *ChatMessage `json:"message"`
	AutoReply *ChatMessage `json:"autoReply"`
}

// CheckoutSession is a verified checkout
type CheckoutSession struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	ProductType string `json:"productType"`
	Status      string `json:"status"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}
