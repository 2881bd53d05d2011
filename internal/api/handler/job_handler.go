package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cleanconnect/platform-be/internal/api/dto"
	"github.com/cleanconnect/platform-be/internal/api/service"
	"github.com/cleanconnect/platform-be/internal/api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const timeFormat = time.RFC3339

// CreateJob handles POST /api/v1/jobs
// Posts a new cleaning engagement on behalf of the calling hotel
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), actor, service.CreateJobParams{
		Title:            req.Title,
		Description:      req.Description,
		ScheduledDate:    req.ScheduledDate,
		ScheduledTime:    req.ScheduledTime,
		RoomCount:        req.RoomCount,
		Requirements:     req.Requirements,
		Priority:         req.Priority,
		GrossAmountCents: req.GrossAmountCents,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toJobDTO(job))
}

// GetJob handles GET /api/v1/jobs/:job_id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("job_id")

	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job_id must be a valid UUID",
		})
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(job))
}

// ListJobs handles GET /api/v1/jobs
// Lists jobs with optional filtering and cursor pagination
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	if req.PageSize > 100 {
		req.PageSize = 100
	}

	cursor, err := DecodeJobCursor(req.Cursor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cursor",
		})
		return
	}

	filter := storage.JobFilter{
		PosterID:  req.PosterID,
		CleanerID: req.CleanerID,
		State:     req.State,
		Priority:  req.Priority,
		PageSize:  req.PageSize,
		Cursor:    cursor,
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	hasMore := len(jobs) > req.PageSize
	if hasMore {
		jobs = jobs[:req.PageSize]
	}

	jobResponse := make([]dto.JobDTO, len(jobs))
	for i := range jobs {
		jobResponse[i] = toJobDTO(&jobs[i])
	}

	var nextCursor string
	if hasMore {
		lastJob := jobs[len(jobs)-1]
		cursorObj := storage.JobCursor{
			CreatedAt: lastJob.CreatedAt,
			JobID:     lastJob.JobID,
		}
		nextCursor, err = EncodeJobCursor(&cursorObj)
		if err != nil {
			h.logger.Error("Failed to encode next cursor", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to encode next cursor",
			})
			return
		}
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Jobs:       jobResponse,
		NextCursor: nextCursor,
	})
}

// CancelJob handles POST /api/v1/jobs/:job_id/cancel
func (h *JobHandler) CancelJob(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	job, err := h.service.CancelJob(c.Request.Context(), actor, c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(job))
}

// SubmitApplication handles POST /api/v1/jobs/:job_id/applications
func (h *JobHandler) SubmitApplication(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	app, err := h.service.SubmitApplication(c.Request.Context(), actor, c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ApplicationDTO{
		ApplicationID: app.ApplicationID,
		JobID:         app.JobID,
		CleanerID:     app.CleanerID,
		SubmittedAt:   app.SubmittedAt.Format(timeFormat),
	})
}

// ListApplications handles GET /api/v1/jobs/:job_id/applications
func (h *JobHandler) ListApplications(c *gin.Context) {
	apps, err := h.service.ListApplications(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.ApplicationDTO, len(apps))
	for i, app := range apps {
		out[i] = dto.ApplicationDTO{
			ApplicationID: app.ApplicationID,
			JobID:         app.JobID,
			CleanerID:     app.CleanerID,
			SubmittedAt:   app.SubmittedAt.Format(timeFormat),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": out,
	})
}

// AcceptApplication handles POST /api/v1/jobs/:job_id/applications/accept
func (h *JobHandler) AcceptApplication(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	var req dto.AcceptApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	job, err := h.service.AcceptApplication(c.Request.Context(), actor, c.Param("job_id"), req.ApplicationID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(job))
}

// StartWork handles POST /api/v1/jobs/:job_id/start
func (h *JobHandler) StartWork(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	job, err := h.service.StartWork(c.Request.Context(), actor, c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(job))
}

// CompleteWork handles POST /api/v1/jobs/:job_id/complete
// Completing a job settles it in the same transaction
func (h *JobHandler) CompleteWork(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	job, err := h.service.CompleteWork(c.Request.Context(), actor, c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(job))
}

// RaiseDispute handles POST /api/v1/jobs/:job_id/dispute
func (h *JobHandler) RaiseDispute(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	var req dto.RaiseDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	job, err := h.service.RaiseDispute(c.Request.Context(), actor, c.Param("job_id"), req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(job))
}

// ResolveDispute handles POST /api/v1/jobs/:job_id/dispute/resolve
func (h *JobHandler) ResolveDispute(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	job, err := h.service.ResolveDispute(c.Request.Context(), actor, c.Param("job_id"), req.Outcome, req.RefundAmountCents)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(job))
}
