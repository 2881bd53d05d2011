package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/model"
)

const ledgerColumns = `
			entry_id, job_id, kind, amount_cents, status,
			counterparty_id, counterparty_role, created_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertLedgerEntry(ctx context.Context, ex execer, entry *model.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8
		)
	`

	_, err := ex.ExecContext(
		ctx,
		query,
		entry.EntryID,
		entry.JobID,
		entry.Kind,
		entry.AmountCents,
		entry.Status,
		entry.CounterpartyID,
		entry.CounterpartyRole,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	return nil
}

func (s *Storage) InsertLedgerEntry(ctx context.Context, entry *model.LedgerEntry) error {
	return insertLedgerEntry(ctx, s.db, entry)
}

func (s *Storage) ListLedgerEntriesByJob(ctx context.Context, jobID string) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE job_id = $1
		ORDER BY created_at ASC, entry_id ASC
	`

	err := s.db.SelectContext(ctx, &entries, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return entries, nil
}

func (s *Storage) ListLedgerEntriesByCounterparty(ctx context.Context, counterpartyID string) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE counterparty_id = $1
		ORDER BY created_at DESC, entry_id DESC
	`

	err := s.db.SelectContext(ctx, &entries, query, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return entries, nil
}

// GetCompletedPayment returns the completed payment entry for a job, or
// ErrJobNotSettled when settlement has not produced one.
func (s *Storage) GetCompletedPayment(ctx context.Context, jobID string) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE job_id = $1
		  AND kind = $2
		  AND status = $3
		ORDER BY created_at ASC
		LIMIT 1
	`

	err := s.db.GetContext(ctx, &entry, query, jobID, domain.LedgerKindPayment, domain.LedgerStatusCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotSettled
		}
		return nil, fmt.Errorf("failed to get payment entry: %w", err)
	}

	return &entry, nil
}

// SumRefundsByJob returns the total already refunded against a job.
func (s *Storage) SumRefundsByJob(ctx context.Context, jobID string) (int64, error) {
	var total sql.NullInt64
	query := `
		SELECT SUM(amount_cents)
		FROM ledger_entries
		WHERE job_id = $1
		  AND kind = $2
	`

	err := s.db.GetContext(ctx, &total, query, jobID, domain.LedgerKindRefund)
	if err != nil {
		return 0, fmt.Errorf("failed to sum refunds: %w", err)
	}

	return total.Int64, nil
}

// SetLedgerEntryStatus progresses an entry from pending to completed or
// failed. Entries are otherwise immutable; any other progression finds no row.
func (s *Storage) SetLedgerEntryStatus(ctx context.Context, entryID, to string) error {
	query := `
		UPDATE ledger_entries
		SET status = $1
		WHERE entry_id = $2
		  AND status = $3
	`

	result, err := s.db.ExecContext(ctx, query, to, entryID, domain.LedgerStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry status: %w", err)
	}

	return requireOneRow(result, domain.ErrLedgerEntryNotFound)
}
