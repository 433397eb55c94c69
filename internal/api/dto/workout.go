package dto

import "time"

// ImportWorkoutsRequest carries catalog workouts to import
type ImportWorkoutsRequest struct {
	Workouts []ImportWorkout `json:"workouts" validate:"required,min=1,dive"`
}

// ImportWorkout is one catalog entry in an import
type ImportWorkout struct {
	Slug           string   `json:"slug" validate:"required,nonblank,max=128"`
	Name           string   `json:"name" validate:"required,nonblank,max=255"`
	EventName      string   `json:"event_name,omitempty"`
	EventYear      int      `json:"event_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Level          string   `json:"level,omitempty"`
	Format         string   `json:"format,omitempty"`
	TimeDomain     string   `json:"time_domain,omitempty"`
	TimeCapSeconds *int     `json:"time_cap_seconds,omitempty" validate:"omitempty,gt=0"`
	Exercises      []string `json:"exercises"`
	AttemptsMale   int      `json:"attempts_male" validate:"gte=0"`
	AttemptsFemale int      `json:"attempts_female" validate:"gte=0"`
}

// SaveBTNWorkoutsRequest carries generated workouts to store
type SaveBTNWorkoutsRequest struct {
	Workouts []SaveBTNWorkout `json:"workouts" validate:"dive"`
}

// SaveBTNWorkout is one generated workout
type SaveBTNWorkout struct {
	Name           string   `json:"name" validate:"required,nonblank"`
	Format         string   `json:"format" validate:"required,nonblank"`
	TimeDomain     string   `json:"timeDomain,omitempty"`
	Exercises      []string `json:"exercises"`
	MedianScore    string   `json:"medianScore,omitempty"`
	ExcellentScore string   `json:"excellentScore,omitempty"`
}

// LogResultRequest carries a score for a BTN workout
type LogResultRequest struct {
	WorkoutID int64  `json:"workoutId" validate:"gte=0"`
	UserScore string `json:"userScore" validate:"max=64"`
	Notes     string `json:"notes,omitempty" validate:"max=2000"`
}

// BTNWorkoutDTO represents a BTN workout in API responses
type BTNWorkoutDTO struct {
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
