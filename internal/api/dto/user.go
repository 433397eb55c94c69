package dto

import (
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	SubscriptionTier   string     `json:"subscription_tier"`
	SubscriptionStatus string     `json:"subscription_status"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// NewUserDTO converts a domain user
func NewUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               string(u.Role),
		SubscriptionTier:   string(u.SubscriptionTier),
		SubscriptionStatus: string(u.SubscriptionStatus),
		CurrentPeriodEnd:   u.CurrentPeriodEnd,
		CreatedAt:          u.CreatedAt,
	}
}

// NewUserDTOs converts a slice of domain users
func NewUserDTOs(users []*user.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserDTO(u))
	}
	return out
}

// CheckRoleResponse is returned by the admin role check
type CheckRoleResponse struct {
	IsAdmin bool    `json:"isAdmin"`
	User    UserDTO `json:"user"`
}

// UserSearchResponse is the admin user search result
type UserSearchResponse struct {
	Users []UserDTO `json:"users"`
}

// UserListResponse is one page of the admin user list
type UserListResponse struct {
	Users      []UserDTO        `json:"users"`
	Pagination utils.Pagination `json:"pagination"`
}

// CreateAccountRequest carries profile fields for first sign-in. The email
// is only used when the identity token has none.
type CreateAccountRequest struct {
	Email string `json:"email" validate:"omitempty,email,max=320"`
	Name  string `json:"name" validate:"max=200"`
}

// UpdateUserAccessRequest is an admin change to a user's role or plan
type UpdateUserAccessRequest struct {
	Role               *string `json:"role,omitempty"`
	SubscriptionTier   *string `json:"subscriptionTier,omitempty"`
	SubscriptionStatus *string `json:"subscriptionStatus,omitempty"`
}
