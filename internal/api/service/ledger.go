package service

import (
	"context"
	"time"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/model"
	"github.com/google/uuid"
)

// RecordEntry writes a standalone pending money movement, outside the
// settlement path. Admin surface for ad-hoc adjustments.
func (s *Service) RecordEntry(ctx context.Context, actor Actor, jobID, kind string, amountCents int64, counterpartyID, counterpartyRole string) (*model.LedgerEntry, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrActorNotAllowed
	}

	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	if _, err := s.store.GetJobByID(ctx, jobID); err != nil {
		return nil, err
	}

	entry := &model.LedgerEntry{
		EntryID:          uuid.New().String(),
		JobID:            jobID,
		Kind:             kind,
		AmountCents:      amountCents,
		Status:           domain.LedgerStatusPending,
		CounterpartyID:   counterpartyID,
		CounterpartyRole: counterpartyRole,
		CreatedAt:        time.Now(),
	}

	if err := s.store.InsertLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// MarkLedgerEntry progresses a pending entry to completed or failed.
func (s *Service) MarkLedgerEntry(ctx context.Context, actor Actor, entryID, status string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrActorNotAllowed
	}

	if status != domain.LedgerStatusCompleted && status != domain.LedgerStatusFailed {
		return domain.ErrInvalidTransition
	}

	return s.store.SetLedgerEntryStatus(ctx, entryID, status)
}

func (s *Service) LedgerEntriesByJob(ctx context.Context, jobID string) ([]model.LedgerEntry, error) {
	if _, err := s.store.GetJobByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.store.ListLedgerEntriesByJob(ctx, jobID)
}

func (s *Service) LedgerEntriesByCounterparty(ctx context.Context, counterpartyID string) ([]model.LedgerEntry, error) {
	return s.store.ListLedgerEntriesByCounterparty(ctx, counterpartyID)
}

// SettlementQuote exposes the fee breakdown the payer sees before paying:
// gross, commission, processing fee charged on top, and the cleaner's payout.
func (s *Service) SettlementQuote(grossCents int64) (domain.Settlement, error) {
	return domain.ComputeSettlement(grossCents, s.rates.CommissionBps, s.rates.ProcessingFeeBps)
}
