package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/model"
	"github.com/cleanconnect/platform-be/internal/api/storage"
	"github.com/google/uuid"
)

// CreateJobParams carries the hotel's posting form.
type CreateJobParams struct {
	Title            string
	Description      string
	ScheduledDate    string
	ScheduledTime    string
	RoomCount        int
	Requirements     []string
	Priority         string
	GrossAmountCents int64
}

func (s *Service) CreateJob(ctx context.Context, actor Actor, params CreateJobParams) (*model.Job, error) {
	if actor.Role != domain.RoleHotel {
		return nil, domain.ErrActorNotAllowed
	}

	if params.GrossAmountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	if !domain.ValidPriority(params.Priority) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	job := &model.Job{
		JobID:            uuid.New().String(),
		PosterID:         actor.ID,
		Title:            params.Title,
		Description:      params.Description,
		ScheduledDate:    params.ScheduledDate,
		ScheduledTime:    params.ScheduledTime,
		RoomCount:        params.RoomCount,
		Requirements:     params.Requirements,
		Priority:         params.Priority,
		GrossAmountCents: params.GrossAmountCents,
		State:            domain.JobStatePosted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("Job posted",
		slog.String("job_id", job.JobID),
		slog.String("poster_id", job.PosterID),
		slog.Int64("gross_amount_cents", job.GrossAmountCents),
	)

	return job, nil
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	return s.store.GetJobByID(ctx, jobID)
}

func (s *Service) ListJobs(ctx context.Context, filter storage.JobFilter) ([]model.Job, error) {
	return s.store.ListJobs(ctx, filter)
}

func (s *Service) ListApplications(ctx context.Context, jobID string) ([]model.Application, error) {
	if _, err := s.store.GetJobByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.store.ListApplicationsByJob(ctx, jobID)
}

// SubmitApplication records a cleaner's bid and moves a freshly posted job
// into APPLICATIONS_RECEIVED on its first application.
func (s *Service) SubmitApplication(ctx context.Context, actor Actor, jobID string) (*model.Application, error) {
	if actor.Role != domain.RoleCleaner {
		return nil, domain.ErrActorNotAllowed
	}

	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !domain.AcceptsApplications(job.State) {
		return nil, domain.ErrJobNotAcceptingApplications
	}

	app := &model.Application{
		ApplicationID: uuid.New().String(),
		JobID:         jobID,
		CleanerID:     actor.ID,
		SubmittedAt:   time.Now(),
	}

	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	if job.State == domain.JobStatePosted {
		err := s.store.SetJobState(ctx, jobID, domain.JobStatePosted, domain.JobStateApplicationsReceived)
		if err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
			return nil, err
		}
		// A lost race here means another application or a cancel got in
		// first; the bid itself is already recorded either way.
	}

	s.publishEvent(ctx, Event{
		Kind:        EventJobApplied,
		JobID:       jobID,
		JobTitle:    job.Title,
		ActorID:     actor.ID,
		RecipientID: job.PosterID,
	})

	return app, nil
}

// AcceptApplication is the manual matching rule: the hotel promotes exactly
// one application, which binds the cleaner and fires APPLICATION_ACCEPTED.
func (s *Service) AcceptApplication(ctx context.Context, actor Actor, jobID, applicationID string) (*model.Job, error) {
	if actor.Role != domain.RoleHotel {
		return nil, domain.ErrActorNotAllowed
	}

	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.PosterID != actor.ID {
		return nil, domain.ErrActorNotAllowed
	}

	app, err := s.store.GetApplication(ctx, jobID, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.store.AssignCleaner(ctx, jobID, app.CleanerID); err != nil {
		return nil, err
	}

	s.logger.Info("Application accepted",
		slog.String("job_id", jobID),
		slog.String("application_id", applicationID),
		slog.String("cleaner_id", app.CleanerID),
	)

	s.publishEvent(ctx, Event{
		Kind:        EventJobAssigned,
		JobID:       jobID,
		JobTitle:    job.Title,
		ActorID:     actor.ID,
		RecipientID: app.CleanerID,
	})

	return s.store.GetJobByID(ctx, jobID)
}

// StartWork fires WORK_STARTED for the assigned cleaner.
func (s *Service) StartWork(ctx context.Context, actor Actor, jobID string) (*model.Job, error) {
	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	next, err := domain.NextState(job.State, domain.EventWorkStarted, actor.Role)
	if err != nil {
		return nil, err
	}

	if job.AssignedCleanerID == nil || *job.AssignedCleanerID != actor.ID {
		return nil, domain.ErrActorNotAllowed
	}

	if err := s.store.SetJobState(ctx, jobID, job.State, next); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, Event{
		Kind:        EventJobStarted,
		JobID:       jobID,
		JobTitle:    job.Title,
		ActorID:     actor.ID,
		RecipientID: job.PosterID,
	})

	return s.store.GetJobByID(ctx, jobID)
}

// CompleteWork fires WORK_COMPLETED and settles the job in the same
// transaction: the state change and the payment/commission/payout entries are
// written atomically or not at all.
func (s *Service) CompleteWork(ctx context.Context, actor Actor, jobID string) (*model.Job, error) {
	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if _, err := domain.NextState(job.State, domain.EventWorkCompleted, actor.Role); err != nil {
		return nil, err
	}

	if job.AssignedCleanerID == nil || *job.AssignedCleanerID != actor.ID {
		return nil, domain.ErrActorNotAllowed
	}

	settlement, err := domain.ComputeSettlement(job.GrossAmountCents, s.rates.CommissionBps, s.rates.ProcessingFeeBps)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := []model.LedgerEntry{
		{
			EntryID:          uuid.New().String(),
			JobID:            jobID,
			Kind:             domain.LedgerKindPayment,
			AmountCents:      settlement.GrossCents,
			Status:           domain.LedgerStatusCompleted,
			CounterpartyID:   job.PosterID,
			CounterpartyRole: domain.CounterpartyHotel,
			CreatedAt:        now,
		},
		{
			EntryID:          uuid.New().String(),
			JobID:            jobID,
			Kind:             domain.LedgerKindCommission,
			AmountCents:      settlement.CommissionCents,
			Status:           domain.LedgerStatusCompleted,
			CounterpartyID:   "platform",
			CounterpartyRole: domain.CounterpartyPlatform,
			CreatedAt:        now,
		},
		{
			EntryID:          uuid.New().String(),
			JobID:            jobID,
			Kind:             domain.LedgerKindPayout,
			AmountCents:      settlement.PayoutCents,
			Status:           domain.LedgerStatusCompleted,
			CounterpartyID:   actor.ID,
			CounterpartyRole: domain.CounterpartyCleaner,
			CreatedAt:        now,
		},
	}

	if err := s.store.CompleteJobWithSettlement(ctx, jobID, entries); err != nil {
		return nil, err
	}

	s.logger.Info("Job completed and settled",
		slog.String("job_id", jobID),
		slog.Int64("payment_cents", settlement.GrossCents),
		slog.Int64("commission_cents", settlement.CommissionCents),
		slog.Int64("payout_cents", settlement.PayoutCents),
	)

	s.publishEvent(ctx, Event{
		Kind:        EventJobCompleted,
		JobID:       jobID,
		JobTitle:    job.Title,
		ActorID:     actor.ID,
		RecipientID: job.PosterID,
	})

	return s.store.GetJobByID(ctx, jobID)
}

// CancelJob fires CANCEL for the posting hotel.
func (s *Service) CancelJob(ctx context.Context, actor Actor, jobID string) (*model.Job, error) {
	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if _, err := domain.NextState(job.State, domain.EventCancel, actor.Role); err != nil {
		return nil, err
	}

	if job.PosterID != actor.ID {
		return nil, domain.ErrActorNotAllowed
	}

	if err := s.store.CancelJob(ctx, jobID, job.State); err != nil {
		return nil, err
	}

	event := Event{
		Kind:     EventJobCancelled,
		JobID:    jobID,
		JobTitle: job.Title,
		ActorID:  actor.ID,
	}
	if job.AssignedCleanerID != nil {
		event.RecipientID = *job.AssignedCleanerID
	}
	s.publishEvent(ctx, event)

	return s.store.GetJobByID(ctx, jobID)
}

// RaiseDispute flags a job for admin resolution. Either participant of the
// engagement may raise it.
func (s *Service) RaiseDispute(ctx context.Context, actor Actor, jobID, reason string) (*model.Job, error) {
	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if _, err := domain.NextState(job.State, domain.EventDisputeRaised, actor.Role); err != nil {
		return nil, err
	}

	isPoster := job.PosterID == actor.ID
	isCleaner := job.AssignedCleanerID != nil && *job.AssignedCleanerID == actor.ID
	if !isPoster && !isCleaner {
		return nil, domain.ErrActorNotAllowed
	}

	if err := s.store.MarkDisputed(ctx, jobID, job.State, reason); err != nil {
		return nil, err
	}

	s.logger.Warn("Dispute raised",
		slog.String("job_id", jobID),
		slog.String("raised_by", actor.ID),
		slog.String("reason", reason),
	)

	recipient := job.PosterID
	if isPoster && job.AssignedCleanerID != nil {
		recipient = *job.AssignedCleanerID
	}

	s.publishEvent(ctx, Event{
		Kind:        EventJobDisputed,
		JobID:       jobID,
		JobTitle:    job.Title,
		ActorID:     actor.ID,
		RecipientID: recipient,
		Detail:      reason,
	})

	return s.store.GetJobByID(ctx, jobID)
}

// ResolveDispute is the admin-only exit from DISPUTED. An uphold outcome
// finishes the job without touching the ledger; a refund outcome writes the
// refund entry and cancels the job in one transaction.
func (s *Service) ResolveDispute(ctx context.Context, actor Actor, jobID, outcome string, refundCents int64) (*model.Job, error) {
	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	finalState, err := domain.ResolveDisputeState(job.State, outcome, actor.Role)
	if err != nil {
		return nil, err
	}

	var refund *model.LedgerEntry
	if outcome == domain.DisputeOutcomeRefund {
		refund, err = s.buildRefundEntry(ctx, job, refundCents)
		if err != nil {
			return nil, err
		}
	}

	if err := s.store.ResolveDispute(ctx, jobID, finalState, refund); err != nil {
		return nil, err
	}

	s.logger.Info("Dispute resolved",
		slog.String("job_id", jobID),
		slog.String("outcome", outcome),
		slog.String("final_state", finalState),
	)

	event := Event{
		Kind:        EventJobResolved,
		JobID:       jobID,
		JobTitle:    job.Title,
		ActorID:     actor.ID,
		RecipientID: job.PosterID,
		Detail:      outcome,
	}
	s.publishEvent(ctx, event)

	return s.store.GetJobByID(ctx, jobID)
}

// buildRefundEntry validates a refund against the original payment: there
// must be a completed payment entry, and the refund plus anything already
// refunded may not exceed it.
func (s *Service) buildRefundEntry(ctx context.Context, job *model.Job, refundCents int64) (*model.LedgerEntry, error) {
	if refundCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	payment, err := s.store.GetCompletedPayment(ctx, job.JobID)
	if err != nil {
		return nil, err
	}

	refunded, err := s.store.SumRefundsByJob(ctx, job.JobID)
	if err != nil {
		return nil, err
	}

	if refundCents+refunded > payment.AmountCents {
		return nil, domain.ErrExceedsOriginalPayment
	}

	return &model.LedgerEntry{
		EntryID:          uuid.New().String(),
		JobID:            job.JobID,
		Kind:             domain.LedgerKindRefund,
		AmountCents:      refundCents,
		Status:           domain.LedgerStatusCompleted,
		CounterpartyID:   job.PosterID,
		CounterpartyRole: domain.CounterpartyHotel,
		CreatedAt:        time.Now(),
	}, nil
}
