package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/coach"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
)

// CoachRepository implements coach.Repository
type CoachRepository struct {
	db *sql.DB
}

// NewCoachRepository creates a new coach repository
func NewCoachRepository(db *sql.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

// GetByUserID retrieves the coach profile of a user
func (r *CoachRepository) GetByUserID(ctx context.Context, userID int64) (*coach.Coach, error) {
	var c coach.Coach
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, coach_name, status, created_at FROM coaches WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Status, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Coach")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get coach", err)
	}
	return &c, nil
}

// Create registers a coach profile
func (r *CoachRepository) Create(ctx context.Context, c *coach.Coach) error {
	c.CreatedAt = time.Now().UTC()
	if c.Status == "" {
		c.Status = coach.StatusPending
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO coaches (user_id, coach_name, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.UserID, c.Name, c.Status, c.CreatedAt).Scan(&c.ID)
	if isUniqueViolation(err) {
		return errors.Conflict("Coach already exists")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create coach", err)
	}
	return nil
}

// CreateRelationship links a coach to an athlete
func (r *CoachRepository) CreateRelationship(ctx context.Context, rel *coach.Relationship) error {
	rel.CreatedAt = time.Now().UTC()
	if rel.Status == "" {
		rel.Status = coach.RelationshipPending
	}
	if rel.PermissionLevel == "" {
		rel.PermissionLevel = coach.PermissionView
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO coach_athletes (coach_id, athlete_id, status, permission_level, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, rel.CoachID, rel.AthleteID, rel.Status, rel.PermissionLevel, rel.CreatedAt).Scan(&rel.ID)
	if isUniqueViolation(err) {
		return errors.Conflict("Athlete already assigned to coach")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create relationship", err)
	}
	return nil
}

// ActiveRelationship finds an active link from an approved coach to an athlete
func (r *CoachRepository) ActiveRelationship(ctx context.Context, coachUserID, athleteID int64) (*coach.Relationship, error) {
	var rel coach.Relationship
	err := r.db.QueryRowContext(ctx, `
		SELECT ca.id, ca.coach_id, ca.athlete_id, ca.status, ca.permission_level, ca.created_at
		FROM coach_athletes ca
		JOIN coaches c ON c.id = ca.coach_id
		WHERE c.user_id = $1 AND c.status = $2 AND ca.athlete_id = $3 AND ca.status = $4
	`, coachUserID, coach.StatusApproved, athleteID, coach.RelationshipActive).Scan(
		&rel.ID, &rel.CoachID, &rel.AthleteID, &rel.Status, &rel.PermissionLevel, &rel.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Relationship")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get relationship", err)
	}
	return &rel, nil
}
