package workout

import "time"

// Workout is an entry in the competition workout catalog
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

// Catalog search bounds
const (
	SearchMinLength    = 2
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

// Catalog sort orders
const (
	SortNewest     = "newest"
	SortName       = "name"
	SortPopularity = "popularity"
)

// SearchFilter contains catalog search options
type SearchFilter struct {
	Query      string
	Level      string
	Format     string
	TimeDomain string
	// Equipment matches workouts sharing at least one tag
	Equipment []string
	Sort      string
	// Gender selects the attempt column used for popularity
	Gender string
	Limit  int
	Offset int
}

// SearchResult is one page of catalog results
type SearchResult struct {
	Items  []*Workout `json:"items"`
	Count  int64      `json:"count"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Workout formats
const (
	FormatForTime       = "For Time"
	FormatRoundsForTime = "Rounds For Time"
	FormatAMRAP         = "AMRAP"
)

// BTNWorkout is a generated workout owned by one user
type BTNWorkout struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
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

// IsCompleted reports whether a result has been logged
func (w *BTNWorkout) IsCompleted() bool {
	return w.CompletedAt != nil
}

// BTN list filters
const (
	FilterAll        = "all"
	FilterCompleted  = "completed"
	FilterIncomplete = "incomplete"
)

// DefaultBTNLimit caps a BTN workout listing
const DefaultBTNLimit = 100

// BTNFilter contains BTN workout listing options
type BTNFilter struct {
	Status string
	Limit  int
	Offset int
}

// BTNStats summarises a user's BTN history
type BTNStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Incomplete     int `json:"incomplete"`
	CompletionRate int `json:"completionRate"`
}

// BTNList is the response of a BTN workout listing
type BTNList struct {
	Workouts []*BTNWorkout `json:"workouts"`
	Stats    BTNStats      `json:"stats"`
}

// LogResultRequest carries a user's score for a BTN workout
type LogResultRequest struct {
	WorkoutID int64
	UserScore string
	Notes     string
}

// LogResult is the outcome of logging a score
type LogResult struct {
	Percentile      int         `json:"percentile"`
	PerformanceTier string      `json:"performanceTier"`
	Benchmarks      Benchmarks  `json:"benchmarks"`
	Calculation     Calculation `json:"calculation"`
}

// Benchmarks echoes the scores the percentile was computed from
type Benchmarks struct {
	Median    string `json:"median"`
	Excellent string `json:"excellent"`
	YourScore string `json:"yourScore"`
}

// Calculation exposes the parsed values behind a percentile
type Calculation struct {
	UserScoreValue float64   `json:"userScoreValue"`
	MedianValue    float64   `json:"medianValue"`
	ExcellentValue float64   `json:"excellentValue"`
	ScoreType      ScoreType `json:"scoreType"`
	LowerIsBetter  bool      `json:"lowerIsBetter"`
}

// ImportResult reports a catalog import
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}
