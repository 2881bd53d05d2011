package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockStorage(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *Storage) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := sqlx.NewDb(mockDB, "sqlmock")
	store := NewStorageWithDB(db)

	return db, mock, store
}

func jobRow(jobID, posterID string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"job_id", "poster_id", "title", "description", "scheduled_date", "scheduled_time",
		"room_count", "requirements", "priority", "gross_amount_cents", "state",
		"assigned_cleaner_id", "dispute_reason", "created_at", "updated_at",
	}).AddRow(
		jobID, posterID, "Deep clean floors 3-5", "", "2026-09-12", "09:00",
		12, pq.StringArray{"eco_products"}, domain.PriorityHigh, int64(35000), domain.JobStatePosted,
		nil, nil, now, now,
	)
}

func TestGetJobByID_Success(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	ctx := context.Background()
	jobID := uuid.New().String()
	posterID := uuid.New().String()

	mock.ExpectQuery(`SELECT`).
		WithArgs(jobID).
		WillReturnRows(jobRow(jobID, posterID))

	job, err := store.GetJobByID(ctx, jobID)

	require.NoError(t, err)
	assert.Equal(t, jobID, job.JobID)
	assert.Equal(t, posterID, job.PosterID)
	assert.Equal(t, domain.JobStatePosted, job.State)
	assert.Equal(t, int64(35000), job.GrossAmountCents)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetJobByID_NotFound(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()

	mock.ExpectQuery(`SELECT`).
		WithArgs(jobID).
		WillReturnError(sql.ErrNoRows)

	job, err := store.GetJobByID(context.Background(), jobID)

	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.Nil(t, job)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateJob_Success(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	now := time.Now()
	job := &model.Job{
		JobID:            uuid.New().String(),
		PosterID:         uuid.New().String(),
		Title:            "Turnover clean, 8 rooms",
		ScheduledDate:    "2026-09-12",
		ScheduledTime:    "10:00",
		RoomCount:        8,
		Requirements:     pq.StringArray{"own_supplies"},
		Priority:         domain.PriorityMedium,
		GrossAmountCents: 25000,
		State:            domain.JobStatePosted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	mock.ExpectExec(`INSERT INTO jobs`).
		WithArgs(
			job.JobID, job.PosterID, job.Title, job.Description, job.ScheduledDate, job.ScheduledTime,
			job.RoomCount, job.Requirements, job.Priority, job.GrossAmountCents, job.State,
			nil, nil, job.CreatedAt, job.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.CreateJob(context.Background(), job)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetJobState_Success(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()

	mock.ExpectExec(`UPDATE jobs`).
		WithArgs(domain.JobStateInProgress, jobID, domain.JobStateAssigned).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SetJobState(context.Background(), jobID, domain.JobStateAssigned, domain.JobStateInProgress)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetJobState_LostRace(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()

	// Zero rows affected: the job left the expected state before this update
	mock.ExpectExec(`UPDATE jobs`).
		WithArgs(domain.JobStateInProgress, jobID, domain.JobStateAssigned).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.SetJobState(context.Background(), jobID, domain.JobStateAssigned, domain.JobStateInProgress)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelJob_ClearsAssignee(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()

	mock.ExpectExec(`UPDATE jobs`).
		WithArgs(domain.JobStateCancelled, jobID, domain.JobStateAssigned).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.CancelJob(context.Background(), jobID, domain.JobStateAssigned)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignCleaner_AlreadyAssigned(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()
	cleanerID := uuid.New().String()

	mock.ExpectExec(`UPDATE jobs`).
		WithArgs(domain.JobStateAssigned, cleanerID, jobID, domain.JobStateApplicationsReceived).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.AssignCleaner(context.Background(), jobID, cleanerID)

	assert.ErrorIs(t, err, domain.ErrJobNotAcceptingApplications)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteJobWithSettlement_Success(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()
	entries := []model.LedgerEntry{
		{EntryID: uuid.New().String(), JobID: jobID, Kind: domain.LedgerKindPayment, AmountCents: 25000, Status: domain.LedgerStatusCompleted, CounterpartyID: uuid.New().String(), CounterpartyRole: domain.CounterpartyHotel, CreatedAt: time.Now()},
		{EntryID: uuid.New().String(), JobID: jobID, Kind: domain.LedgerKindCommission, AmountCents: 2500, Status: domain.LedgerStatusCompleted, CounterpartyID: "platform", CounterpartyRole: domain.CounterpartyPlatform, CreatedAt: time.Now()},
		{EntryID: uuid.New().String(), JobID: jobID, Kind: domain.LedgerKindPayout, AmountCents: 22500, Status: domain.LedgerStatusCompleted, CounterpartyID: uuid.New().String(), CounterpartyRole: domain.CounterpartyCleaner, CreatedAt: time.Now()},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE jobs`).
		WithArgs(domain.JobStateCompleted, jobID, domain.JobStateInProgress).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for i := range entries {
		mock.ExpectExec(`INSERT INTO ledger_entries`).
			WithArgs(
				entries[i].EntryID, jobID, entries[i].Kind, entries[i].AmountCents, entries[i].Status,
				entries[i].CounterpartyID, entries[i].CounterpartyRole, entries[i].CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := store.CompleteJobWithSettlement(context.Background(), jobID, entries)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteJobWithSettlement_WrongState(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE jobs`).
		WithArgs(domain.JobStateCompleted, jobID, domain.JobStateInProgress).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.CompleteJobWithSettlement(context.Background(), jobID, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveDispute_RefundOutcome(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()
	refund := &model.LedgerEntry{
		EntryID:          uuid.New().String(),
		JobID:            jobID,
		Kind:             domain.LedgerKindRefund,
		AmountCents:      18000,
		Status:           domain.LedgerStatusCompleted,
		CounterpartyID:   uuid.New().String(),
		CounterpartyRole: domain.CounterpartyHotel,
		CreatedAt:        time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE jobs`).
		WithArgs(domain.JobStateCancelled, jobID, domain.JobStateDisputed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO ledger_entries`).
		WithArgs(
			refund.EntryID, jobID, refund.Kind, refund.AmountCents, refund.Status,
			refund.CounterpartyID, refund.CounterpartyRole, refund.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.ResolveDispute(context.Background(), jobID, domain.JobStateCancelled, refund)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveDispute_Uphold_NoRefundEntry(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE jobs`).
		WithArgs(domain.JobStateCompleted, jobID, domain.JobStateDisputed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.ResolveDispute(context.Background(), jobID, domain.JobStateCompleted, nil)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplication_Duplicate(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	app := &model.Application{
		ApplicationID: uuid.New().String(),
		JobID:         uuid.New().String(),
		CleanerID:     uuid.New().String(),
		SubmittedAt:   time.Now(),
	}

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(app.ApplicationID, app.JobID, app.CleanerID, app.SubmittedAt).
		WillReturnError(&pq.Error{Code: "23505"})

	err := store.CreateApplication(context.Background(), app)

	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCompletedPayment_NotSettled(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()

	mock.ExpectQuery(`SELECT`).
		WithArgs(jobID, domain.LedgerKindPayment, domain.LedgerStatusCompleted).
		WillReturnError(sql.ErrNoRows)

	entry, err := store.GetCompletedPayment(context.Background(), jobID)

	assert.ErrorIs(t, err, domain.ErrJobNotSettled)
	assert.Nil(t, entry)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSumRefundsByJob_NoRefunds(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	jobID := uuid.New().String()

	// SUM over zero rows yields NULL
	mock.ExpectQuery(`SELECT SUM`).
		WithArgs(jobID, domain.LedgerKindRefund).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

	total, err := store.SumRefundsByJob(context.Background(), jobID)

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetLedgerEntryStatus_NotPending(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	entryID := uuid.New().String()

	mock.ExpectExec(`UPDATE ledger_entries`).
		WithArgs(domain.LedgerStatusCompleted, entryID, domain.LedgerStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.SetLedgerEntryStatus(context.Background(), entryID, domain.LedgerStatusCompleted)

	assert.ErrorIs(t, err, domain.ErrLedgerEntryNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview_Duplicate(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	review := &model.Review{
		ReviewID:        uuid.New().String(),
		JobID:           uuid.New().String(),
		AuthorRole:      domain.RoleHotel,
		AuthorID:        uuid.New().String(),
		SubjectID:       uuid.New().String(),
		OverallRating:   5,
		Quality:         5,
		Timeliness:      4,
		Communication:   5,
		Professionalism: 5,
		Comment:         "Spotless rooms",
		CreatedAt:       time.Now(),
	}

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(
			review.ReviewID, review.JobID, review.AuthorRole, review.AuthorID, review.SubjectID,
			review.OverallRating, review.Quality, review.Timeliness, review.Communication, review.Professionalism,
			review.Comment, nil, review.CreatedAt,
		).
		WillReturnError(&pq.Error{Code: "23505"})

	err := store.CreateReview(context.Background(), review)

	assert.ErrorIs(t, err, domain.ErrDuplicateReview)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachReviewResponse_AlreadyResponded(t *testing.T) {
	db, mock, store := setupMockStorage(t)
	defer db.Close()

	reviewID := uuid.New().String()

	mock.ExpectExec(`UPDATE reviews`).
		WithArgs("We appreciate the feedback", reviewID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.AttachReviewResponse(context.Background(), reviewID, "We appreciate the feedback")

	assert.ErrorIs(t, err, domain.ErrResponseAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}
