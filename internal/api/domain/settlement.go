package domain

// Ledger entry kinds
const (
	LedgerKindPayment    = "payment"
	LedgerKindCommission = "commission"
	LedgerKindPayout     = "payout"
	LedgerKindRefund     = "refund"
)

// Ledger entry statuses
const (
	LedgerStatusPending   = "pending"
	LedgerStatusCompleted = "completed"
	LedgerStatusFailed    = "failed"
)

// Counterparty roles on ledger entries
const (
	CounterpartyHotel    = "hotel"
	CounterpartyCleaner  = "cleaner"
	CounterpartyPlatform = "platform"
)

// Settlement is the money split for one completed job. All amounts are in
// integer minor units (cents); rates are expressed in basis points so the
// arithmetic stays exact across repeated settlements.
type Settlement struct {
	GrossCents         int64
	CommissionCents    int64
	ProcessingFeeCents int64
	PayoutCents        int64
	TotalChargedCents  int64
}

// applyBasisPoints computes amount×bps/10000 rounded half up.
func applyBasisPoints(amountCents, bps int64) int64 {
	return (amountCents*bps + 5000) / 10000
}

// ComputeSettlement derives the commission/payout split for a gross amount.
// The payout is defined as gross minus commission, so
// payment == commission + payout holds exactly for any inputs. The processing
// fee is charged additively to the payer on top of gross, never deducted from
// the cleaner's payout.
func ComputeSettlement(grossCents, commissionRateBps, processingFeeRateBps int64) (Settlement, error) {
	if grossCents <= 0 {
		return Settlement{}, ErrInvalidAmount
	}

	commission := applyBasisPoints(grossCents, commissionRateBps)
	fee := applyBasisPoints(grossCents, processingFeeRateBps)

	return Settlement{
		GrossCents:         grossCents,
		CommissionCents:    commission,
		ProcessingFeeCents: fee,
		PayoutCents:        grossCents - commission,
		TotalChargedCents:  grossCents + fee,
	}, nil
}
