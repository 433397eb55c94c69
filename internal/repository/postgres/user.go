package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
)

const userColumns = `id, auth_id, email, name, role, subscription_tier, subscription_status, current_period_end, created_at, updated_at`

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = user.RoleAthlete
	}
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = subscription.TierNone
	}

	query := `
		INSERT INTO users (auth_id, email, name, role, subscription_tier, subscription_status, current_period_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		u.AuthID, u.Email, u.Name, string(u.Role), string(u.SubscriptionTier), string(u.SubscriptionStatus),
		nullTime(u.CurrentPeriodEnd), now, now,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return errors.Conflict("User already exists")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.UserNotFound()
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return u, nil
}

// GetByAuthID retrieves a user by identity provider subject
func (r *UserRepository) GetByAuthID(ctx context.Context, authID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, authID))
	if err == sql.ErrNoRows {
		return nil, errors.UserNotFound()
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return u, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET email = $1, name = $2, role = $3, subscription_tier = $4, subscription_status = $5,
			current_period_end = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.Name, string(u.Role), string(u.SubscriptionTier), string(u.SubscriptionStatus),
		nullTime(u.CurrentPeriodEnd), u.UpdatedAt, u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.UserNotFound()
	}

	return nil
}

// Search matches name or email case-insensitively
func (r *UserRepository) Search(ctx context.Context, q string, limit int) ([]*user.User, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"

	query := `SELECT ` + userColumns + ` FROM users
		WHERE LOWER(name) LIKE $1 OR LOWER(email) LIKE $2
		ORDER BY name ASC, id ASC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to search users", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// List retrieves one page of users matching filter
func (r *UserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	where, args := buildUserFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM users` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	sortBy := "created_at"
	if user.SortFields[filter.SortBy] {
		sortBy = filter.SortBy
	}
	order := "ASC"
	if filter.SortDesc {
		order = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		userColumns, where, sortBy, order, order, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Stats aggregates subscription state across all users
func (r *UserRepository) Stats(ctx context.Context, now, trialCutoff time.Time) (*user.SubscriptionStats, error) {
	stats := &user.SubscriptionStats{
		ByStatus: make(map[subscription.Status]int64),
		ByTier:   make(map[subscription.Tier]int64),
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT subscription_status, subscription_tier, COUNT(*)
		FROM users
		GROUP BY subscription_status, subscription_tier
	`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to aggregate subscriptions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status, tier string
		var n int64
		if err := rows.Scan(&status, &tier, &n); err != nil {
			return nil, errors.DatabaseError("Failed to scan subscription stats", err)
		}
		stats.Total += n
		if status != "" {
			stats.ByStatus[subscription.Status(status)] += n
		}
		stats.ByTier[subscription.ParseTier(tier)] += n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to aggregate subscriptions", err)
	}
	stats.Trialing = stats.ByStatus[subscription.StatusTrialing]

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users
		WHERE subscription_status = $1 AND current_period_end >= $2 AND current_period_end <= $3
	`, string(subscription.StatusTrialing), now.UTC(), trialCutoff.UTC()).Scan(&stats.ExpiringTrials)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count expiring trials", err)
	}

	return stats, nil
}

func buildUserFilter(filter user.Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	next := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		args = append(args, pattern, pattern)
		conds = append(conds, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)-1, len(args)))
	}
	if filter.Status != "" {
		next("subscription_status = $%d", string(filter.Status))
	}
	if filter.Tier != "" {
		next("subscription_tier = $%d", string(filter.Tier))
	}
	if filter.Role != "" {
		next("role = $%d", string(filter.Role))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var role, tier, status string
	var periodEnd sql.NullTime

	err := row.Scan(&u.ID, &u.AuthID, &u.Email, &u.Name, &role, &tier, &status, &periodEnd, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Role = user.Role(role)
	u.SubscriptionTier = subscription.ParseTier(tier)
	u.SubscriptionStatus = subscription.ParseStatus(status)
	if periodEnd.Valid {
		t := periodEnd.Time
		u.CurrentPeriodEnd = &t
	}
	return &u, nil
}

func collectUsers(rows *sql.Rows) ([]*user.User, error) {
	users := make([]*user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read users", err)
	}
	return users, nil
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}
