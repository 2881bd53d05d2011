package handler

import (
	"net/http"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/dto"
	"github.com/cleanconnect/platform-be/internal/api/service"
	"github.com/gin-gonic/gin"
)

// SubmitReview handles POST /api/v1/jobs/:job_id/reviews
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	review, err := h.service.SubmitReview(c.Request.Context(), actor, service.SubmitReviewParams{
		JobID:     c.Param("job_id"),
		SubjectID: req.SubjectID,
		Rating: domain.Rating{
			Overall:         req.OverallRating,
			Quality:         req.Quality,
			Timeliness:      req.Timeliness,
			Communication:   req.Communication,
			Professionalism: req.Professionalism,
		},
		Comment: req.Comment,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toReviewDTO(review))
}

// ListJobReviews handles GET /api/v1/jobs/:job_id/reviews
func (h *ReviewHandler) ListJobReviews(c *gin.Context) {
	reviews, err := h.service.ReviewsByJob(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.ReviewDTO, len(reviews))
	for i := range reviews {
		out[i] = toReviewDTO(&reviews[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": out,
	})
}

// AttachResponse handles POST /api/v1/reviews/:review_id/response
func (h *ReviewHandler) AttachResponse(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	var req dto.AttachResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	review, err := h.service.AttachResponse(c.Request.Context(), actor, c.Param("review_id"), req.Response)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toReviewDTO(review))
}

// GetAggregate handles GET /api/v1/ratings/:subject_id
// Returns mean overall and per-category ratings for the subject
func (h *ReviewHandler) GetAggregate(c *gin.Context) {
	agg, err := h.service.AggregateFor(c.Request.Context(), c.Param("subject_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, agg)
}
