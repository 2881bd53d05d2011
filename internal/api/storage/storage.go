package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/model"
	"github.com/cleanconnect/platform-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// NewStorageWithDB wires a Storage directly onto a sqlx handle. Used by tests.
func NewStorageWithDB(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

const jobColumns = `
			job_id, poster_id, title, description, scheduled_date, scheduled_time,
			room_count, requirements, priority, gross_amount_cents, state,
			assigned_cleaner_id, dispute_reason, created_at, updated_at`

func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.JobID,
		job.PosterID,
		job.Title,
		job.Description,
		job.ScheduledDate,
		job.ScheduledTime,
		job.RoomCount,
		job.Requirements,
		job.Priority,
		job.GrossAmountCents,
		job.State,
		job.AssignedCleanerID,
		job.DisputeReason,
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE job_id = $1
	`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

type JobFilter struct {
	PosterID  string
	CleanerID string
	State     string
	Priority  string
	PageSize  int
	Cursor    *JobCursor
}

type JobCursor struct {
	CreatedAt time.Time
	JobID     string
}

func (s *Storage) ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	query := `
        SELECT ` + jobColumns + `
        FROM jobs
        WHERE 1=1
    `
	args := []interface{}{}
	argIdx := 1

	// Filters
	if filter.PosterID != "" {
		query += fmt.Sprintf(" AND poster_id = $%d", argIdx)
		args = append(args, filter.PosterID)
		argIdx++
	}

	if filter.CleanerID != "" {
		query += fmt.Sprintf(" AND assigned_cleaner_id = $%d", argIdx)
		args = append(args, filter.CleanerID)
		argIdx++
	}

	if filter.State != "" {
		query += fmt.Sprintf(" AND state = $%d", argIdx)
		args = append(args, filter.State)
		argIdx++
	}

	if filter.Priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", argIdx)
		args = append(args, filter.Priority)
		argIdx++
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND (created_at, job_id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, filter.Cursor.CreatedAt, filter.Cursor.JobID)
		argIdx += 2
	}

	// Order by created_at DESC, job_id DESC for consistent pagination
	query += " ORDER BY created_at DESC, job_id DESC"

	// Fetch one extra to determine if there are more results
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.PageSize+1)

	var jobs []model.Job
	err := s.db.SelectContext(ctx, &jobs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// SetJobState moves a job along one lifecycle edge using a conditional update.
// The WHERE clause on the current state is what makes concurrent transition
// attempts lose cleanly: zero rows affected means another caller moved the job
// first, reported as ErrInvalidTransition.
func (s *Storage) SetJobState(ctx context.Context, jobID, from, to string) error {
	query := `
		UPDATE jobs
		SET state = $1,
		    updated_at = NOW()
		WHERE job_id = $2
		  AND state = $3
	`

	result, err := s.db.ExecContext(ctx, query, to, jobID, from)
	if err != nil {
		return fmt.Errorf("failed to update job state: %w", err)
	}

	return requireOneRow(result, domain.ErrInvalidTransition)
}

// CancelJob is SetJobState into CANCELLED, additionally clearing the assigned
// cleaner so the assignment invariant holds in the terminal state.
func (s *Storage) CancelJob(ctx context.Context, jobID, from string) error {
	query := `
		UPDATE jobs
		SET state = $1,
		    assigned_cleaner_id = NULL,
		    updated_at = NOW()
		WHERE job_id = $2
		  AND state = $3
	`

	result, err := s.db.ExecContext(ctx, query, domain.JobStateCancelled, jobID, from)
	if err != nil {
		return fmt.Errorf("failed to cancel job: %w", err)
	}

	return requireOneRow(result, domain.ErrInvalidTransition)
}

// AssignCleaner promotes one application: the job leaves the
// application-accepting states and binds the cleaner atomically. A second
// accept, or a concurrent one, finds zero matching rows.
func (s *Storage) AssignCleaner(ctx context.Context, jobID, cleanerID string) error {
	query := `
		UPDATE jobs
		SET state = $1,
		    assigned_cleaner_id = $2,
		    updated_at = NOW()
		WHERE job_id = $3
		  AND state = $4
	`

	result, err := s.db.ExecContext(ctx, query,
		domain.JobStateAssigned, cleanerID, jobID, domain.JobStateApplicationsReceived)
	if err != nil {
		return fmt.Errorf("failed to assign cleaner: %w", err)
	}

	return requireOneRow(result, domain.ErrJobNotAcceptingApplications)
}

// MarkDisputed records the dispute reason together with the state change.
func (s *Storage) MarkDisputed(ctx context.Context, jobID, from, reason string) error {
	query := `
		UPDATE jobs
		SET state = $1,
		    dispute_reason = $2,
		    updated_at = NOW()
		WHERE job_id = $3
		  AND state = $4
	`

	result, err := s.db.ExecContext(ctx, query, domain.JobStateDisputed, reason, jobID, from)
	if err != nil {
		return fmt.Errorf("failed to mark job disputed: %w", err)
	}

	return requireOneRow(result, domain.ErrInvalidTransition)
}

// CompleteJobWithSettlement applies IN_PROGRESS → COMPLETED and writes the
// settlement ledger entries in one transaction. Either the state change and
// all entries land, or none do.
func (s *Storage) CompleteJobWithSettlement(ctx context.Context, jobID string, entries []model.LedgerEntry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE jobs
		SET state = $1,
		    updated_at = NOW()
		WHERE job_id = $2
		  AND state = $3
	`

	result, err := tx.ExecContext(ctx, query, domain.JobStateCompleted, jobID, domain.JobStateInProgress)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	if err := requireOneRow(result, domain.ErrInvalidTransition); err != nil {
		return err
	}

	for i := range entries {
		if err := insertLedgerEntry(ctx, tx, &entries[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement transaction: %w", err)
	}

	return nil
}

// ResolveDispute moves DISPUTED into its final state and, for refund outcomes,
// writes the refund entry in the same transaction. The conditional update
// doubles as the double-refund guard.
func (s *Storage) ResolveDispute(ctx context.Context, jobID, finalState string, refund *model.LedgerEntry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin resolution transaction: %w", err)
	}
	defer tx.Rollback()

	clearAssignee := ""
	if finalState == domain.JobStateCancelled {
		clearAssignee = "assigned_cleaner_id = NULL,"
	}

	query := fmt.Sprintf(`
		UPDATE jobs
		SET state = $1,
		    %s
		    updated_at = NOW()
		WHERE job_id = $2
		  AND state = $3
	`, clearAssignee)

	result, err := tx.ExecContext(ctx, query, finalState, jobID, domain.JobStateDisputed)
	if err != nil {
		return fmt.Errorf("failed to resolve dispute: %w", err)
	}

	if err := requireOneRow(result, domain.ErrInvalidTransition); err != nil {
		return err
	}

	if refund != nil {
		if err := insertLedgerEntry(ctx, tx, refund); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resolution transaction: %w", err)
	}

	return nil
}

func requireOneRow(result sql.Result, sentinel error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected == 0 {
		return sentinel
	}

	return nil
}

// isUniqueViolation reports a Postgres duplicate-key error (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
