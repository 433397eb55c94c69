package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/workout"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
)

const (
	workoutColumns = `id, slug, name, event_name, event_year, level, format, time_domain, time_cap_seconds, exercises, attempts_male, attempts_female, created_at`
	btnColumns     = `id, user_id, workout_name, workout_format, time_domain, exercises, median_score, excellent_score, user_score, percentile, performance_tier, notes, completed_at, created_at`
)

// WorkoutRepository implements workout.Repository
type WorkoutRepository struct {
	db *sql.DB
}

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(db *sql.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// Create inserts a catalog workout and its equipment tags in one transaction
func (r *WorkoutRepository) Create(ctx context.Context, w *workout.Workout) error {
	w.CreatedAt = time.Now().UTC()

	exercises, err := json.Marshal(nonNil(w.Exercises))
	if err != nil {
		return errors.Internal("Failed to encode exercises", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	var timeCap interface{}
	if w.TimeCapSeconds != nil {
		timeCap = *w.TimeCapSeconds
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO workouts (slug, name, event_name, event_year, level, format, time_domain, time_cap_seconds, exercises, attempts_male, attempts_female, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, w.Slug, w.Name, w.EventName, w.EventYear, w.Level, w.Format, w.TimeDomain, timeCap,
		string(exercises), w.AttemptsMale, w.AttemptsFemale, w.CreatedAt,
	).Scan(&w.ID)
	if isUniqueViolation(err) {
		return errors.Conflict(fmt.Sprintf("Workout %s already exists", w.Slug))
	}
	if err != nil {
		return errors.DatabaseError("Failed to create workout", err)
	}

	for _, tag := range w.Equipment {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO workout_equipment (workout_id, tag) VALUES ($1, $2)`, w.ID, tag,
		); err != nil {
			return errors.DatabaseError("Failed to tag workout", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit workout", err)
	}
	return nil
}

// Search returns one page of catalog workouts and the total match count
func (r *WorkoutRepository) Search(ctx context.Context, filter workout.SearchFilter) ([]*workout.Workout, int64, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		add("LOWER(w.name) LIKE $%d", "%"+strings.ToLower(q)+"%")
	}
	if filter.Level != "" {
		add("w.level = $%d", filter.Level)
	}
	if filter.Format != "" {
		add("w.format = $%d", filter.Format)
	}
	if filter.TimeDomain != "" {
		add("w.time_domain = $%d", filter.TimeDomain)
	}
	if len(filter.Equipment) > 0 {
		placeholders := make([]string, len(filter.Equipment))
		for i, tag := range filter.Equipment {
			args = append(args, tag)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM workout_equipment we WHERE we.workout_id = w.id AND we.tag IN (%s))",
			strings.Join(placeholders, ", ")))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts w`+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count workouts", err)
	}

	var orderBy string
	switch filter.Sort {
	case workout.SortName:
		orderBy = "w.name ASC"
	case workout.SortPopularity:
		if filter.Gender == "female" {
			orderBy = "w.attempts_female DESC, w.name ASC"
		} else {
			orderBy = "w.attempts_male DESC, w.name ASC"
		}
	default:
		orderBy = "w.event_year DESC, w.name ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM workouts w%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		prefixColumns("w", workoutColumns), where, orderBy, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to search workouts", err)
	}

	workouts := make([]*workout.Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			rows.Close()
			return nil, 0, errors.DatabaseError("Failed to scan workout", err)
		}
		workouts = append(workouts, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to read workouts", err)
	}

	if err := r.loadEquipment(ctx, workouts); err != nil {
		return nil, 0, err
	}
	return workouts, total, nil
}

func (r *WorkoutRepository) loadEquipment(ctx context.Context, workouts []*workout.Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	byID := make(map[int64]*workout.Workout, len(workouts))
	placeholders := make([]string, len(workouts))
	args := make([]interface{}, len(workouts))
	for i, w := range workouts {
		w.Equipment = []string{}
		byID[w.ID] = w
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = w.ID
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT workout_id, tag FROM workout_equipment WHERE workout_id IN (`+strings.Join(placeholders, ", ")+`) ORDER BY tag`,
		args...)
	if err != nil {
		return errors.DatabaseError("Failed to load equipment", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return errors.DatabaseError("Failed to scan equipment", err)
		}
		if w, ok := byID[id]; ok {
			w.Equipment = append(w.Equipment, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return errors.DatabaseError("Failed to read equipment", err)
	}
	return nil
}

// CreateBTN stores a generated workout for a user
func (r *WorkoutRepository) CreateBTN(ctx context.Context, w *workout.BTNWorkout) error {
	w.CreatedAt = time.Now().UTC()

	exercises, err := json.Marshal(nonNil(w.Exercises))
	if err != nil {
		return errors.Internal("Failed to encode exercises", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO btn_workouts (user_id, workout_name, workout_format, time_domain, exercises, median_score, excellent_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, w.UserID, w.Name, w.Format, w.TimeDomain, string(exercises), w.MedianScore, w.ExcellentScore, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		return errors.DatabaseError("Failed to save workout", err)
	}
	return nil
}

// ListBTN returns a user's BTN workouts, newest first
func (r *WorkoutRepository) ListBTN(ctx context.Context, userID int64, filter workout.BTNFilter) ([]*workout.BTNWorkout, error) {
	query := `SELECT ` + btnColumns + ` FROM btn_workouts WHERE user_id = $1`
	switch filter.Status {
	case workout.FilterCompleted:
		query += ` AND completed_at IS NOT NULL`
	case workout.FilterIncomplete:
		query += ` AND completed_at IS NULL`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list workouts", err)
	}
	defer rows.Close()

	workouts := make([]*workout.BTNWorkout, 0)
	for rows.Next() {
		w, err := scanBTN(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan workout", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read workouts", err)
	}
	return workouts, nil
}

// GetBTN retrieves a BTN workout by ID
func (r *WorkoutRepository) GetBTN(ctx context.Context, id int64) (*workout.BTNWorkout, error) {
	w, err := scanBTN(r.db.QueryRowContext(ctx, `SELECT `+btnColumns+` FROM btn_workouts WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Workout")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get workout", err)
	}
	return w, nil
}

// SaveBTNResult records a logged score
func (r *WorkoutRepository) SaveBTNResult(ctx context.Context, id int64, score string, percentile int, tier, notes string, completedAt time.Time) error {
	var n interface{}
	if notes != "" {
		n = notes
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE btn_workouts
		SET user_score = $1, percentile = $2, performance_tier = $3, notes = $4, completed_at = $5
		WHERE id = $6
	`, score, percentile, tier, n, completedAt.UTC(), id)
	if err != nil {
		return errors.DatabaseError("Failed to save result", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Workout")
	}
	return nil
}

func scanWorkout(row rowScanner) (*workout.Workout, error) {
	var w workout.Workout
	var timeCap sql.NullInt64
	var exercises string

	err := row.Scan(&w.ID, &w.Slug, &w.Name, &w.EventName, &w.EventYear, &w.Level, &w.Format, &w.TimeDomain,
		&timeCap, &exercises, &w.AttemptsMale, &w.AttemptsFemale, &w.CreatedAt)
	if err != nil {
		return nil, err
	}

	if timeCap.Valid {
		v := int(timeCap.Int64)
		w.TimeCapSeconds = &v
	}
	w.Exercises = decodeStrings(exercises)
	return &w, nil
}

func scanBTN(row rowScanner) (*workout.BTNWorkout, error) {
	var w workout.BTNWorkout
	var exercises string
	var userScore, tier, notes sql.NullString
	var percentile sql.NullInt64
	var completedAt sql.NullTime

	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Format, &w.TimeDomain, &exercises, &w.MedianScore, &w.ExcellentScore,
		&userScore, &percentile, &tier, &notes, &completedAt, &w.CreatedAt)
	if err != nil {
		return nil, err
	}

	w.Exercises = decodeStrings(exercises)
	if userScore.Valid {
		w.UserScore = &userScore.String
	}
	if percentile.Valid {
		p := int(percentile.Int64)
		w.Percentile = &p
	}
	if tier.Valid {
		w.PerformanceTier = &tier.String
	}
	if notes.Valid {
		w.Notes = &notes.String
	}
	if completedAt.Valid {
		w.CompletedAt = &completedAt.Time
	}
	return &w, nil
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func decodeStrings(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
