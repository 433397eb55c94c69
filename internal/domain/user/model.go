package user

import (
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
)

// User represents an athlete, coach or admin account
type User struct {
	ID                 int64               `json:"id"`
	AuthID             string              `json:"-"`
	Email              string              `json:"email"`
	Name               string              `json:"name"`
	Role               Role                `json:"role"`
	SubscriptionTier   subscription.Tier   `json:"subscription_tier"`
	SubscriptionStatus subscription.Status `json:"subscription_status"`
	CurrentPeriodEnd   *time.Time          `json:"current_period_end,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// Role is the user's permission level
type Role string

// User roles
const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAthlete, RoleCoach, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SearchMinLength is the shortest query the user search will run
const SearchMinLength = 2

// SearchLimit caps the number of search results
const SearchLimit = 15

// SortFields whitelists the columns a user list may be ordered by
var SortFields = map[string]bool{
	"name":                true,
	"email":               true,
	"subscription_status": true,
	"subscription_tier":   true,
	"created_at":          true,
}

// Filter contains user list filtering options
type Filter struct {
	Search   string
	Status   subscription.Status
	Tier     subscription.Tier
	Role     Role
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// SubscriptionStats summarises subscription states across all users
type SubscriptionStats struct {
	Total          int64                         `json:"total"`
	ByStatus       map[subscription.Status]int64 `json:"by_status"`
	ByTier         map[subscription.Tier]int64   `json:"by_tier"`
	Trialing       int64                         `json:"trialing"`
	ExpiringTrials int64                         `json:"expiring_trials"`
}

// AccessUpdate changes an account's role or subscription. Nil fields are
// left as they are.
type AccessUpdate struct {
	Role               *Role
	SubscriptionTier   *subscription.Tier
	SubscriptionStatus *subscription.Status
}
