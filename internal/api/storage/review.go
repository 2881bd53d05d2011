package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/model"
)

const reviewColumns = `
			review_id, job_id, author_role, author_id, subject_id,
			overall_rating, quality, timeliness, communication, professionalism,
			comment, response, created_at`

func (s *Storage) CreateReview(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ReviewID,
		review.JobID,
		review.AuthorRole,
		review.AuthorID,
		review.SubjectID,
		review.OverallRating,
		review.Quality,
		review.Timeliness,
		review.Communication,
		review.Professionalism,
		review.Comment,
		review.Response,
		review.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (s *Storage) GetReviewByID(ctx context.Context, reviewID string) (*model.Review, error) {
	var review model.Review
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE review_id = $1
	`

	err := s.db.GetContext(ctx, &review, query, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

// AttachReviewResponse sets the subject's one-time response. The IS NULL
// guard makes a second attempt fail with ErrResponseAlreadyExists.
func (s *Storage) AttachReviewResponse(ctx context.Context, reviewID, response string) error {
	query := `
		UPDATE reviews
		SET response = $1
		WHERE review_id = $2
		  AND response IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, response, reviewID)
	if err != nil {
		return fmt.Errorf("failed to attach review response: %w", err)
	}

	return requireOneRow(result, domain.ErrResponseAlreadyExists)
}

func (s *Storage) ListReviewsBySubject(ctx context.Context, subjectID string) ([]model.Review, error) {
	var reviews []model.Review
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE subject_id = $1
		ORDER BY created_at DESC
	`

	err := s.db.SelectContext(ctx, &reviews, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

func (s *Storage) ListReviewsByJob(ctx context.Context, jobID string) ([]model.Review, error) {
	var reviews []model.Review
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE job_id = $1
		ORDER BY created_at ASC
	`

	err := s.db.SelectContext(ctx, &reviews, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}
