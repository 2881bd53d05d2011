package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/model"
)

func (s *Storage) CreateApplication(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO applications (
			application_id, job_id, cleaner_id, submitted_at
		) VALUES (
			$1, $2, $3, $4
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		app.ApplicationID,
		app.JobID,
		app.CleanerID,
		app.SubmittedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (s *Storage) GetApplication(ctx context.Context, jobID, applicationID string) (*model.Application, error) {
	var app model.Application
	query := `
		SELECT application_id, job_id, cleaner_id, submitted_at
		FROM applications
		WHERE application_id = $1
		  AND job_id = $2
	`

	err := s.db.GetContext(ctx, &app, query, applicationID, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}

func (s *Storage) ListApplicationsByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	var apps []model.Application
	query := `
		SELECT application_id, job_id, cleaner_id, submitted_at
		FROM applications
		WHERE job_id = $1
		ORDER BY submitted_at ASC
	`

	err := s.db.SelectContext(ctx, &apps, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}
