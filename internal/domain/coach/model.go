package coach

import "time"

// Coach is a user who applied to coach athletes
type Coach struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"coach_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Coach statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Relationship links a coach to an athlete
type Relationship struct {
	ID              int64     `json:"id"`
	CoachID         int64     `json:"coach_id"`
	AthleteID       int64     `json:"athlete_id"`
	Status          string    `json:"status"`
	PermissionLevel string    `json:"permission_level"`
	CreatedAt       time.Time `json:"created_at"`
}

// Relationship statuses
const (
	RelationshipPending = "pending"
	RelationshipActive  = "active"
	RelationshipEnded   = "ended"
)

// Permission levels
const (
	PermissionSelf = "self"
	PermissionView = "view"
	PermissionEdit = "edit"
)

// AthleteAccess is the result of checking whether a requester may read an
// athlete's data
type AthleteAccess struct {
	HasAccess       bool   `json:"hasAccess"`
	PermissionLevel string `json:"permissionLevel,omitempty"`
	IsCoach         bool   `json:"isCoach"`
}
