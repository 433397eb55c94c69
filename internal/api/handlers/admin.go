package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pratik-mahalle/fitcoach/internal/api/dto"
	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/domain/workout"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/validator"
	"github.com/pratik-mahalle/fitcoach/internal/services"
)

// AdminHandler serves the admin console endpoints
type AdminHandler struct {
	users     *services.UserService
	perms     *services.PermissionService
	workouts  *services.WorkoutService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(users *services.UserService, perms *services.PermissionService, workouts *services.WorkoutService, log *logger.Logger, val *validator.Validator) *AdminHandler {
	return &AdminHandler{
		users:     users,
		perms:     perms,
		workouts:  workouts,
		logger:    log,
		validator: val,
	}
}

// CheckRole reports whether the caller is an admin
// @Summary Check admin role
// @Description Report whether the authenticated user holds the admin role
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CheckRoleResponse} "Role check"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /admin/check-role [get]
func (h *AdminHandler) CheckRole(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.CheckRoleResponse{
		IsAdmin: h.perms.IsAdmin(r.Context(), u.ID),
		User:    dto.NewUserDTO(u),
	})
}

// SearchUsers finds users by name or email
// @Summary Search users
// @Description Case-insensitive name or email search. Queries shorter than two characters return no users.
// @Tags Admin
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} utils.SuccessResponse{data=dto.UserSearchResponse} "Matching users"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 403 {object} utils.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /admin/users/search [get]
func (h *AdminHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.UserSearchResponse{Users: dto.NewUserDTOs(users)})
}

// ListUsers returns one page of users
// @Summary List users
// @Description Paginated user list with filters and sorting
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(25)
// @Param search query string false "Name or email filter"
// @Param status query string false "Subscription status"
// @Param tier query string false "Subscription tier"
// @Param role query string false "User role"
// @Param sortBy query string false "Sort field" Enums(name, email, subscription_status, subscription_tier, created_at)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} utils.SuccessResponse{data=dto.UserListResponse} "User page"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 403 {object} utils.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r, utils.DefaultPageSize, utils.MaxPageSize)
	q := r.URL.Query()

	filter := user.Filter{
		Search:   q.Get("search"),
		Status:   subscription.Status(strings.ToLower(q.Get("status"))),
		Role:     user.Role(strings.ToLower(q.Get("role"))),
		SortBy:   q.Get("sortBy"),
		SortDesc: !strings.EqualFold(q.Get("sortOrder"), "asc"),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if tier := q.Get("tier"); tier != "" {
		filter.Tier = subscription.ParseTier(tier)
	}

	users, total, err := h.users.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	page := utils.NewPaginatedResponse(nil, params, total)
	utils.WriteSuccess(w, http.StatusOK, dto.UserListResponse{
		Users:      dto.NewUserDTOs(users),
		Pagination: page.Pagination,
	})
}

// SubscriptionStats returns subscription counts
// @Summary Subscription statistics
// @Description Counts per status and tier, trialing users and trials expiring within three days
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=user.SubscriptionStats} "Statistics"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 403 {object} utils.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /admin/subscriptions/stats [get]
func (h *AdminHandler) SubscriptionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.SubscriptionStats(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, stats)
}

// ImportWorkouts loads catalog workouts
// @Summary Import catalog workouts
// @Description Insert workouts into the searchable catalog. Existing slugs are skipped.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.ImportWorkoutsRequest true "Workouts"
// @Success 200 {object} utils.SuccessResponse{data=workout.ImportResult} "Import result"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /admin/workouts/import [post]
func (h *AdminHandler) ImportWorkouts(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportWorkoutsRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	items := make([]*workout.Workout, 0, len(req.Workouts))
	for _, in := range req.Workouts {
		items = append(items, &workout.Workout{
			Slug:           in.Slug,
			Name:           in.Name,
			EventName:      in.EventName,
			EventYear:      in.EventYear,
			Level:          in.Level,
			Format:         in.Format,
			TimeDomain:     in.TimeDomain,
			TimeCapSeconds: in.TimeCapSeconds,
			Exercises:      in.Exercises,
			AttemptsMale:   in.AttemptsMale,
			AttemptsFemale: in.AttemptsFemale,
		})
	}

	result, err := h.workouts.Import(r.Context(), items)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

// UpdateUser changes a user's role or subscription
// @Summary Update user access
// @Description Set role, subscription tier or subscription status. Omitted fields are unchanged.
// @Tags Admin
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body dto.UpdateUserAccessRequest true "Changes"
// @Success 200 {object} utils.SuccessResponse{data=dto.UserDTO} "Updated user"
// @Failure 400 {object} utils.ErrorResponse "Invalid role, tier or status"
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{userId} [patch]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, h.logger, errors.InvalidInput("Invalid user id"))
		return
	}

	var req dto.UpdateUserAccessRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var update user.AccessUpdate
	if req.Role != nil {
		role := user.Role(strings.ToLower(strings.TrimSpace(*req.Role)))
		update.Role = &role
	}
	if req.SubscriptionTier != nil {
		tier := subscription.ParseTier(*req.SubscriptionTier)
		update.SubscriptionTier = &tier
	}
	if req.SubscriptionStatus != nil {
		status := subscription.Status(*req.SubscriptionStatus)
		update.SubscriptionStatus = &status
	}

	u, err := h.users.UpdateAccess(r.Context(), id, update)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.NewUserDTO(u))
}
