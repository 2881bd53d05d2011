package dto

type LedgerEntryDTO struct {
	EntryID          string `json:"entry_id"`
	JobID            string `json:"job_id"`
	Kind             string `json:"kind"`
	AmountCents      int64  `json:"amount_cents"`
	Status           string `json:"status"`
	CounterpartyID   string `json:"counterparty_id"`
	CounterpartyRole string `json:"counterparty_role"`
	CreatedAt        string `json:"created_at"`
}

type RecordEntryRequest struct {
	Kind             string `json:"kind" binding:"required,oneof=payment commission payout refund"`
	AmountCents      int64  `json:"amount_cents" binding:"required,gt=0"`
	CounterpartyID   string `json:"counterparty_id" binding:"required"`
	CounterpartyRole string `json:"counterparty_role" binding:"required,oneof=hotel cleaner platform"`
}

type MarkEntryRequest struct {
	Status string `json:"status" binding:"required,oneof=completed failed"`
}

type SettlementQuoteRequest struct {
	GrossAmountCents int64 `form:"gross_amount_cents" binding:"required,gt=0"`
}

type SettlementQuoteResponse struct {
	GrossAmountCents   int64 `json:"gross_amount_cents"`
	CommissionCents    int64 `json:"commission_cents"`
	ProcessingFeeCents int64 `json:"processing_fee_cents"`
	CleanerPayoutCents int64 `json:"cleaner_payout_cents"`
	TotalChargedCents  int64 `json:"total_charged_cents"`
}
