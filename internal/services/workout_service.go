package services

import (
	"context"
	"strings"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/workout"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
)

// WorkoutService implements workout.Service
type WorkoutService struct {
	repo   workout.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewWorkoutService creates a new workout service
func NewWorkoutService(repo workout.Repository, log *logger.Logger) *WorkoutService {
	return &WorkoutService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Search queries the catalog. A present query must be at least
// workout.SearchMinLength characters.
func (s *WorkoutService) Search(ctx context.Context, filter workout.SearchFilter) (*workout.SearchResult, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Query != "" && len([]rune(filter.Query)) < workout.SearchMinLength {
		return nil, errors.InvalidInput("Search query must be at least 2 characters")
	}
	if filter.Limit <= 0 {
		filter.Limit = workout.DefaultSearchLimit
	}
	if filter.Limit > workout.MaxSearchLimit {
		filter.Limit = workout.MaxSearchLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	switch filter.Sort {
	case workout.SortNewest, workout.SortName, workout.SortPopularity:
	default:
		filter.Sort = workout.SortNewest
	}

	items, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to search workouts")
		return nil, errors.UpstreamUnavailable("Failed to search workouts", err)
	}
	if items == nil {
		items = []*workout.Workout{}
	}

	return &workout.SearchResult{
		Items:  items,
		Count:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Import adds catalog workouts. Equipment is derived from the exercise list;
// workouts whose slug already exists are skipped.
func (s *WorkoutService) Import(ctx context.Context, workouts []*workout.Workout) (*workout.ImportResult, error) {
	res := &workout.ImportResult{Skipped: []string{}}

	for _, w := range workouts {
		if strings.TrimSpace(w.Slug) == "" || strings.TrimSpace(w.Name) == "" {
			return nil, errors.InvalidInput("Every workout needs a slug and a name")
		}
		w.Equipment = workout.DetectEquipment(w.Exercises)
		if err := s.repo.Create(ctx, w); err != nil {
			if errors.IsConflict(err) {
				res.Skipped = append(res.Skipped, w.Slug)
				continue
			}
			s.logger.With("slug", w.Slug).ErrorWithErr(err, "Failed to import workout")
			return nil, errors.UpstreamUnavailable("Failed to import workouts", err)
		}
		res.Imported++
	}

	s.logger.WithFields(map[string]interface{}{
		"imported": res.Imported,
		"skipped":  len(res.Skipped),
	}).Info("Workout catalog imported")

	return res, nil
}

// ListBTN returns the user's BTN workouts with completion stats over the
// returned set
func (s *WorkoutService) ListBTN(ctx context.Context, userID int64, filter workout.BTNFilter) (*workout.BTNList, error) {
	switch filter.Status {
	case workout.FilterCompleted, workout.FilterIncomplete:
	default:
		filter.Status = workout.FilterAll
	}
	if filter.Limit <= 0 {
		filter.Limit = workout.DefaultBTNLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, err := s.repo.ListBTN(ctx, userID, filter)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list BTN workouts")
		return nil, errors.UpstreamUnavailable("Failed to list workouts", err)
	}
	if items == nil {
		items = []*workout.BTNWorkout{}
	}

	return &workout.BTNList{
		Workouts: items,
		Stats:    workout.Stats(items),
	}, nil
}

// SaveBTN stores generated workouts for the user
func (s *WorkoutService) SaveBTN(ctx context.Context, userID int64, workouts []*workout.BTNWorkout) ([]*workout.BTNWorkout, error) {
	if len(workouts) == 0 {
		return nil, errors.InvalidInput("Workouts array is required")
	}

	for _, w := range workouts {
		if strings.TrimSpace(w.Name) == "" || strings.TrimSpace(w.Format) == "" {
			return nil, errors.InvalidInput("Every workout needs a name and a format")
		}
		w.UserID = userID
		w.UserScore = nil
		w.Percentile = nil
		w.PerformanceTier = nil
		w.CompletedAt = nil
		if w.Exercises == nil {
			w.Exercises = []string{}
		}
		if err := s.repo.CreateBTN(ctx, w); err != nil {
			s.logger.ErrorWithErr(err, "Failed to save BTN workout")
			return nil, errors.UpstreamUnavailable("Failed to save workouts", err)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"count":   len(workouts),
	}).Info("BTN workouts saved")

	return workouts, nil
}

// LogBTNResult scores a result against the workout's benchmarks and stores
// it. Only the workout's owner may log a result.
func (s *WorkoutService) LogBTNResult(ctx context.Context, userID int64, req workout.LogResultRequest) (*workout.LogResult, error) {
	if req.WorkoutID == 0 || strings.TrimSpace(req.UserScore) == "" {
		return nil, errors.InvalidInput("workoutId and userScore are required")
	}

	w, err := s.repo.GetBTN(ctx, req.WorkoutID)
	if err != nil {
		return nil, wrapStoreError(err, "Failed to load workout")
	}
	if w.UserID != userID {
		return nil, errors.Forbidden("Workout belongs to another user")
	}
	if w.MedianScore == "" || w.ExcellentScore == "" {
		return nil, errors.InvalidInput("Workout missing benchmark data")
	}

	score, err := workout.ParseScore(req.UserScore, w.Format)
	if err != nil {
		return nil, errors.InvalidInput("Invalid score format")
	}
	median := workout.ParseBenchmark(w.MedianScore, w.Format)
	excellent := workout.ParseBenchmark(w.ExcellentScore, w.Format)
	lowerIsBetter := workout.IsLowerBetter(w.Format)

	percentile := workout.Percentile(score.Value, median, excellent, lowerIsBetter)
	tier := workout.PerformanceTier(percentile)

	if err := s.repo.SaveBTNResult(ctx, w.ID, strings.TrimSpace(req.UserScore), percentile, tier, req.Notes, s.now().UTC()); err != nil {
		s.logger.ErrorWithErr(err, "Failed to save BTN result")
		return nil, wrapStoreError(err, "Failed to save result")
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"workout_id": w.ID,
		"percentile": percentile,
	}).Info("BTN result logged")

	return &workout.LogResult{
		Percentile:      percentile,
		PerformanceTier: tier,
		Benchmarks: workout.Benchmarks{
			Median:    w.MedianScore,
			Excellent: w.ExcellentScore,
			YourScore: req.UserScore,
		},
		Calculation: workout.Calculation{
			UserScoreValue: score.Value,
			MedianValue:    median,
			ExcellentValue: excellent,
			ScoreType:      score.Type,
			LowerIsBetter:  lowerIsBetter,
		},
	}, nil
}
