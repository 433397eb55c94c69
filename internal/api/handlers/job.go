package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/fitcoach/internal/api/dto"
	"github.com/pratik-mahalle/fitcoach/internal/domain/job"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/validator"
	"github.com/pratik-mahalle/fitcoach/internal/services"
)

// JobHandler handles AI job endpoints
type JobHandler struct {
	service   *services.JobService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewJobHandler creates a new job handler
func NewJobHandler(service *services.JobService, log *logger.Logger, val *validator.Validator) *JobHandler {
	return &JobHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Enqueue queues an AI job
// @Summary Enqueue AI job
// @Description Queue a background job. A repeated dedupe key reports deduplicated instead of creating a second job.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body dto.EnqueueJobRequest true "Job"
// @Success 200 {object} utils.SuccessResponse{data=dto.EnqueueJobResponse} "Job queued"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 403 {object} utils.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /ai/enqueue [post]
func (h *JobHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req dto.EnqueueJobRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	userID := u.ID
	if req.UserID != nil {
		if *req.UserID != u.ID && !u.IsAdmin() {
			writeError(w, r, h.logger, errors.Forbidden("Cannot enqueue jobs for another user"))
			return
		}
		userID = *req.UserID
	}

	res, err := h.service.Enqueue(r.Context(), job.EnqueueRequest{
		UserID:       userID,
		JobType:      job.JobType(req.JobType),
		Payload:      req.Payload,
		DedupeKey:    req.DedupeKey,
		ScheduledFor: req.ScheduledFor,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.EnqueueJobResponse{
		JobID:        res.JobID,
		Deduplicated: res.Deduplicated,
	})
}

// Latest returns the caller's newest job of a type
// @Summary Latest AI job
// @Tags AI
// @Produce json
// @Param jobType query string true "Job type"
// @Success 200 {object} utils.SuccessResponse{data=dto.JobResponse} "Job"
// @Failure 400 {object} utils.ErrorResponse "Missing job type"
// @Failure 404 {object} utils.ErrorResponse "No job"
// @Security BearerAuth
// @Router /ai/jobs/latest [get]
func (h *JobHandler) Latest(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	j, err := h.service.Latest(r.Context(), u.ID, job.JobType(r.URL.Query().Get("jobType")))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toJobResponse(j))
}

// LastRefresh reports the caller's latest context refresh
// @Summary Last context refresh
// @Tags AI
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=job.RefreshStatus} "Refresh status"
// @Security BearerAuth
// @Router /ai/last-refresh [get]
func (h *JobHandler) LastRefresh(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	status, err := h.service.LastRefresh(r.Context(), u.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, status)
}

// ForceRefresh queues a context refresh for the caller
// @Summary Force context refresh
// @Description Queue a context refresh. Limited to one per day.
// @Tags AI
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.EnqueueJobResponse} "Refresh queued"
// @Failure 429 {object} utils.ErrorResponse "Refresh already requested"
// @Security BearerAuth
// @Router /ai/refresh [post]
func (h *JobHandler) ForceRefresh(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.service.ForceRefresh(r.Context(), u.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.EnqueueJobResponse{
		JobID:        res.JobID,
		Deduplicated: res.Deduplicated,
	})
}

func toJobResponse(j *job.AIJob) dto.JobResponse {
	return dto.JobResponse{
		ID:           j.ID,
		JobType:      string(j.JobType),
		Status:       string(j.Status),
		Payload:      j.Payload,
		Result:       j.Result,
		ErrorMessage: j.ErrorMessage,
		ScheduledFor: j.ScheduledFor,
		CreatedAt:    j.CreatedAt,
		CompletedAt:  j.CompletedAt,
	}
}
