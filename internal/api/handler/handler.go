package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/dto"
	"github.com/cleanconnect/platform-be/internal/api/model"
	"github.com/cleanconnect/platform-be/internal/api/service"
	"github.com/gin-gonic/gin"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger  *slog.Logger
	Service *service.Service
}

// JobHandler handles job lifecycle HTTP requests
type JobHandler struct {
	logger  *slog.Logger
	service *service.Service
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}

// ReviewHandler handles review and rating HTTP requests
type ReviewHandler struct {
	logger  *slog.Logger
	service *service.Service
}

func NewReviewHandler(deps *Dependencies) *ReviewHandler {
	return &ReviewHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}

// LedgerHandler handles ledger and settlement HTTP requests
type LedgerHandler struct {
	logger  *slog.Logger
	service *service.Service
}

func NewLedgerHandler(deps *Dependencies) *LedgerHandler {
	return &LedgerHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}

// ActorKey is the gin context key under which the auth middleware stores the
// authenticated service.Actor.
const ActorKey = "actor"

func actorFromContext(c *gin.Context) (service.Actor, bool) {
	value, ok := c.Get(ActorKey)
	if !ok {
		return service.Actor{}, false
	}

	actor, ok := value.(service.Actor)
	return actor, ok
}

// respondError maps domain sentinels onto HTTP statuses. Conflicting
// transitions are 409s, validation failures 422s, permission problems 403s.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var status int

	switch {
	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrReviewNotFound),
		errors.Is(err, domain.ErrLedgerEntryNotFound):
		status = http.StatusNotFound

	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrJobNotAcceptingApplications),
		errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrDuplicateReview),
		errors.Is(err, domain.ErrResponseAlreadyExists),
		errors.Is(err, domain.ErrJobNotSettled):
		status = http.StatusConflict

	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrRatingOutOfRange),
		errors.Is(err, domain.ErrExceedsOriginalPayment),
		errors.Is(err, domain.ErrJobNotCompleted):
		status = http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrActorNotAllowed),
		errors.Is(err, domain.ErrNotSubject):
		status = http.StatusForbidden

	default:
		logger.Error("Unhandled service error", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}

func toJobDTO(job *model.Job) dto.JobDTO {
	out := dto.JobDTO{
		JobID:            job.JobID,
		PosterID:         job.PosterID,
		Title:            job.Title,
		Description:      job.Description,
		ScheduledDate:    job.ScheduledDate,
		ScheduledTime:    job.ScheduledTime,
		RoomCount:        job.RoomCount,
		Requirements:     job.Requirements,
		Priority:         job.Priority,
		GrossAmountCents: job.GrossAmountCents,
		State:            job.State,
		CreatedAt:        job.CreatedAt.Format(timeFormat),
		UpdatedAt:        job.UpdatedAt.Format(timeFormat),
	}

	if job.AssignedCleanerID != nil {
		out.AssignedCleanerID = *job.AssignedCleanerID
	}
	if job.DisputeReason != nil {
		out.DisputeReason = *job.DisputeReason
	}

	return out
}

func toReviewDTO(review *model.Review) dto.ReviewDTO {
	out := dto.ReviewDTO{
		ReviewID:        review.ReviewID,
		JobID:           review.JobID,
		AuthorRole:      review.AuthorRole,
		AuthorID:        review.AuthorID,
		SubjectID:       review.SubjectID,
		OverallRating:   review.OverallRating,
		Quality:         review.Quality,
		Timeliness:      review.Timeliness,
		Communication:   review.Communication,
		Professionalism: review.Professionalism,
		Comment:         review.Comment,
		CreatedAt:       review.CreatedAt.Format(timeFormat),
	}

	if review.Response != nil {
		out.Response = *review.Response
	}

	return out
}

func toLedgerEntryDTO(entry *model.LedgerEntry) dto.LedgerEntryDTO {
	return dto.LedgerEntryDTO{
		EntryID:          entry.EntryID,
		JobID:            entry.JobID,
		Kind:             entry.Kind,
		AmountCents:      entry.AmountCents,
		Status:           entry.Status,
		CounterpartyID:   entry.CounterpartyID,
		CounterpartyRole: entry.CounterpartyRole,
		CreatedAt:        entry.CreatedAt.Format(timeFormat),
	}
}
