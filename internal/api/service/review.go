package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/model"
	"github.com/google/uuid"
)

// SubmitReviewParams carries one participant's feedback for a completed job.
type SubmitReviewParams struct {
	JobID     string
	SubjectID string
	Rating    domain.Rating
	Comment   string
}

// SubmitReview accepts feedback on a completed job. Each side of the
// engagement reviews once; the (job, author role) uniqueness lives in the
// store so a racing duplicate also loses.
func (s *Service) SubmitReview(ctx context.Context, actor Actor, params SubmitReviewParams) (*model.Review, error) {
	if actor.Role != domain.RoleHotel && actor.Role != domain.RoleCleaner {
		return nil, domain.ErrActorNotAllowed
	}

	if !domain.ValidRating(params.Rating) {
		return nil, domain.ErrRatingOutOfRange
	}

	job, err := s.store.GetJobByID(ctx, params.JobID)
	if err != nil {
		return nil, err
	}

	if job.State != domain.JobStateCompleted {
		return nil, domain.ErrJobNotCompleted
	}

	isPoster := job.PosterID == actor.ID
	isCleaner := job.AssignedCleanerID != nil && *job.AssignedCleanerID == actor.ID
	if !isPoster && !isCleaner {
		return nil, domain.ErrActorNotAllowed
	}

	review := &model.Review{
		ReviewID:        uuid.New().String(),
		JobID:           params.JobID,
		AuthorRole:      actor.Role,
		AuthorID:        actor.ID,
		SubjectID:       params.SubjectID,
		OverallRating:   params.Rating.Overall,
		Quality:         params.Rating.Quality,
		Timeliness:      params.Rating.Timeliness,
		Communication:   params.Rating.Communication,
		Professionalism: params.Rating.Professionalism,
		Comment:         params.Comment,
		CreatedAt:       time.Now(),
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.invalidateAggregate(ctx, params.SubjectID)

	s.publishEvent(ctx, Event{
		Kind:        EventReviewSubmitted,
		JobID:       params.JobID,
		JobTitle:    job.Title,
		ActorID:     actor.ID,
		RecipientID: params.SubjectID,
	})

	return review, nil
}

// AttachResponse lets the review's subject answer once.
func (s *Service) AttachResponse(ctx context.Context, actor Actor, reviewID, response string) (*model.Review, error) {
	review, err := s.store.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.SubjectID != actor.ID {
		return nil, domain.ErrNotSubject
	}

	if err := s.store.AttachReviewResponse(ctx, reviewID, response); err != nil {
		return nil, err
	}

	return s.store.GetReviewByID(ctx, reviewID)
}

func (s *Service) ReviewsByJob(ctx context.Context, jobID string) ([]model.Review, error) {
	return s.store.ListReviewsByJob(ctx, jobID)
}

// AggregateFor computes a subject's mean ratings, reading through the cache
// when one is configured. An empty review set is a zero aggregate, not an
// error.
func (s *Service) AggregateFor(ctx context.Context, subjectID string) (domain.RatingAggregate, error) {
	if s.cache != nil {
		var cached domain.RatingAggregate
		hit, err := s.cache.GetJSON(ctx, aggregateKey(subjectID), &cached)
		if err != nil {
			s.logger.Warn("Aggregate cache read failed",
				slog.String("subject_id", subjectID),
				slog.Any("error", err),
			)
		} else if hit {
			return cached, nil
		}
	}

	reviews, err := s.store.ListReviewsBySubject(ctx, subjectID)
	if err != nil {
		return domain.RatingAggregate{}, err
	}

	ratings := make([]domain.Rating, len(reviews))
	for i, r := range reviews {
		ratings[i] = domain.Rating{
			Overall:         r.OverallRating,
			Quality:         r.Quality,
			Timeliness:      r.Timeliness,
			Communication:   r.Communication,
			Professionalism: r.Professionalism,
		}
	}

	agg := domain.AggregateRatings(ratings)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, aggregateKey(subjectID), agg, s.aggregateTTL); err != nil {
			s.logger.Warn("Aggregate cache write failed",
				slog.String("subject_id", subjectID),
				slog.Any("error", err),
			)
		}
	}

	return agg, nil
}

func (s *Service) invalidateAggregate(ctx context.Context, subjectID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, aggregateKey(subjectID)); err != nil {
		s.logger.Warn("Aggregate cache invalidation failed",
			slog.String("subject_id", subjectID),
			slog.Any("error", err),
		)
	}
}

func aggregateKey(subjectID string) string {
	return "rating_aggregate:" + subjectID
}
