package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pratik-mahalle/fitcoach/internal/api/dto"
	"github.com/pratik-mahalle/fitcoach/internal/domain/subscription"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
)

// AccessHandler answers subscription access questions for the caller
type AccessHandler struct {
	checker subscription.Checker
	logger  *logger.Logger
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(checker subscription.Checker, log *logger.Logger) *AccessHandler {
	return &AccessHandler{
		checker: checker,
		logger:  log,
	}
}

// Check reports whether the caller may use the feature in the URL
// @Summary Check feature access
// @Description Evaluate the caller's subscription against a feature key
// @Tags Access
// @Produce json
// @Param feature path string true "Feature key (btn, engine, applied_power, premium)"
// @Success 200 {object} utils.SuccessResponse{data=dto.AccessResponse} "Access decision"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /access/{feature} [get]
func (h *AccessHandler) Check(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, subscription.ParseFeature(chi.URLParam(r, "feature")))
}

// CheckFeature returns a handler bound to one feature key
// @Summary Check program access
// @Description Fixed-feature access checks for the engine, applied power and BTN programs
// @Tags Access
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.AccessResponse} "Access decision"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /engine/check-access [get]
func (h *AccessHandler) CheckFeature(feature subscription.Feature) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, feature)
	}
}

func (h *AccessHandler) respond(w http.ResponseWriter, r *http.Request, feature subscription.Feature) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	decision, err := h.checker.CheckAccess(r.Context(), u.ID, feature)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.AccessResponse{
		Feature:   string(feature),
		HasAccess: decision.HasAccess,
		Reason:    decision.Reason,
	})
}
