package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pratik-mahalle/fitcoach/internal/api/dto"
	"github.com/pratik-mahalle/fitcoach/internal/domain/workout"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/validator"
	"github.com/pratik-mahalle/fitcoach/internal/services"
)

// WorkoutHandler handles catalog search and BTN workout endpoints
type WorkoutHandler struct {
	service   *services.WorkoutService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewWorkoutHandler creates a new workout handler
func NewWorkoutHandler(service *services.WorkoutService, log *logger.Logger, val *validator.Validator) *WorkoutHandler {
	return &WorkoutHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Search searches the workout catalog
// @Summary Search workouts
// @Description Search the catalog by name, level, format, time domain and equipment
// @Tags Workouts
// @Produce json
// @Param q query string false "Name query (at least 2 characters)"
// @Param level query string false "Level"
// @Param format query string false "Format"
// @Param time_domain query string false "Time domain"
// @Param equipment query string false "Comma-separated equipment (barbell, gymnastics, bodyweight)"
// @Param sort query string false "Sort" Enums(newest, name, popularity)
// @Param gender query string false "Gender used for popularity" Enums(male, female)
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} utils.SuccessResponse{data=workout.SearchResult} "Search results"
// @Failure 400 {object} utils.ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /workouts/search [get]
func (h *WorkoutHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := workout.SearchFilter{
		Query:      q.Get("q"),
		Level:      q.Get("level"),
		Format:     q.Get("format"),
		TimeDomain: q.Get("time_domain"),
		Equipment:  splitCSV(q.Get("equipment")),
		Sort:       q.Get("sort"),
		Gender:     q.Get("gender"),
		Limit:      utils.ParseIntQuery(q.Get("limit"), workout.DefaultSearchLimit),
		Offset:     utils.ParseIntQuery(q.Get("offset"), 0),
	}

	result, err := h.service.Search(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

// ListBTN lists the caller's BTN workouts
// @Summary List BTN workouts
// @Tags BTN
// @Produce json
// @Param status query string false "Completion filter" Enums(all, completed, incomplete)
// @Param limit query int false "Limit" default(100)
// @Success 200 {object} utils.SuccessResponse{data=workout.BTNList} "Workouts with stats"
// @Failure 403 {object} utils.ErrorResponse "No BTN access"
// @Security BearerAuth
// @Router /btn/workouts [get]
func (h *WorkoutHandler) ListBTN(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.listBTN(w, r, u.ID)
}

// AthleteBTN lists an athlete's BTN workouts for a linked coach or admin
// @Summary List athlete BTN workouts
// @Tags BTN
// @Produce json
// @Param athleteId path int true "Athlete ID"
// @Param status query string false "Completion filter" Enums(all, completed, incomplete)
// @Success 200 {object} utils.SuccessResponse{data=workout.BTNList} "Workouts with stats"
// @Failure 403 {object} utils.ErrorResponse "No access to athlete"
// @Security BearerAuth
// @Router /athletes/{athleteId}/btn/workouts [get]
func (h *WorkoutHandler) AthleteBTN(w http.ResponseWriter, r *http.Request) {
	athleteID, err := strconv.ParseInt(chi.URLParam(r, "athleteId"), 10, 64)
	if err != nil || athleteID <= 0 {
		writeError(w, r, h.logger, errors.InvalidInput("Invalid athlete id"))
		return
	}
	h.listBTN(w, r, athleteID)
}

func (h *WorkoutHandler) listBTN(w http.ResponseWriter, r *http.Request, userID int64) {
	q := r.URL.Query()
	filter := workout.BTNFilter{
		Status: q.Get("status"),
		Limit:  utils.ParseIntQuery(q.Get("limit"), workout.DefaultBTNLimit),
		Offset: utils.ParseIntQuery(q.Get("offset"), 0),
	}

	list, err := h.service.ListBTN(r.Context(), userID, filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, list)
}

// SaveBTN stores generated BTN workouts for the caller
// @Summary Save BTN workouts
// @Tags BTN
// @Accept json
// @Produce json
// @Param request body dto.SaveBTNWorkoutsRequest true "Generated workouts"
// @Success 201 {object} utils.SuccessResponse{data=[]dto.BTNWorkoutDTO} "Saved workouts"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /btn/workouts [post]
func (h *WorkoutHandler) SaveBTN(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req dto.SaveBTNWorkoutsRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	items := make([]*workout.BTNWorkout, 0, len(req.Workouts))
	for _, in := range req.Workouts {
		items = append(items, &workout.BTNWorkout{
			Name:           in.Name,
			Format:         in.Format,
			TimeDomain:     in.TimeDomain,
			Exercises:      in.Exercises,
			MedianScore:    in.MedianScore,
			ExcellentScore: in.ExcellentScore,
		})
	}

	saved, err := h.service.SaveBTN(r.Context(), u.ID, items)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	out := make([]dto.BTNWorkoutDTO, 0, len(saved))
	for _, s := range saved {
		out = append(out, toBTNWorkoutDTO(s))
	}
	utils.WriteSuccess(w, http.StatusCreated, out)
}

// LogResult records a score for one of the caller's BTN workouts
// @Summary Log BTN result
// @Description Score a completed workout against its median and excellent benchmarks
// @Tags BTN
// @Accept json
// @Produce json
// @Param request body dto.LogResultRequest true "Result"
// @Success 200 {object} utils.SuccessResponse{data=workout.LogResult} "Percentile and tier"
// @Failure 400 {object} utils.ErrorResponse "Invalid score"
// @Failure 403 {object} utils.ErrorResponse "Not the owner"
// @Failure 404 {object} utils.ErrorResponse "Workout not found"
// @Security BearerAuth
// @Router /btn/log-result [post]
func (h *WorkoutHandler) LogResult(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req dto.LogResultRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.service.LogBTNResult(r.Context(), u.ID, workout.LogResultRequest{
		WorkoutID: req.WorkoutID,
		UserScore: req.UserScore,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

func toBTNWorkoutDTO(w *workout.BTNWorkout) dto.BTNWorkoutDTO {
	return dto.BTNWorkoutDTO{
		ID:              w.ID,
		Name:            w.Name,
		Format:          w.Format,
		TimeDomain:      w.TimeDomain,
		Exercises:       w.Exercises,
		MedianScore:     w.MedianScore,
		ExcellentScore:  w.ExcellentScore,
		UserScore:       w.UserScore,
		Percentile:      w.Percentile,
		PerformanceTier: w.PerformanceTier,
		Notes:           w.Notes,
		CompletedAt:     w.CompletedAt,
		CreatedAt:       w.CreatedAt,
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
