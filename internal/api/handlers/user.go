package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/fitcoach/internal/api/dto"
	"github.com/pratik-mahalle/fitcoach/internal/api/middleware"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/validator"
	"github.com/pratik-mahalle/fitcoach/internal/services"
)

// UserHandler handles account endpoints for signed-in identities
type UserHandler struct {
	users     *services.UserService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService, log *logger.Logger, val *validator.Validator) *UserHandler {
	return &UserHandler{
		users:     users,
		logger:    log,
		validator: val,
	}
}

// CreateAccount provisions the caller's user row on first sign-in
// @Summary Create account
// @Description Creates the user for the verified identity. Repeating the call returns the existing user.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest false "Profile"
// @Success 201 {object} utils.SuccessResponse{data=dto.UserDTO} "Created"
// @Success 200 {object} utils.SuccessResponse{data=dto.UserDTO} "Already exists"
// @Failure 400 {object} utils.ErrorResponse "Missing email"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		writeError(w, r, h.logger, errors.Unauthorized("Authentication required"))
		return
	}

	var req dto.CreateAccountRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(r, h.validator, &req); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	}

	email := claims.Email
	if email == "" {
		email = req.Email
	}

	u, created, err := h.users.Provision(r.Context(), claims.Subject, email, req.Name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.WriteSuccess(w, status, dto.NewUserDTO(u))
}
