package handler

import (
	"net/http"

	"github.com/cleanconnect/platform-be/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// ListJobEntries handles GET /api/v1/jobs/:job_id/ledger
func (h *LedgerHandler) ListJobEntries(c *gin.Context) {
	entries, err := h.service.LedgerEntriesByJob(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.LedgerEntryDTO, len(entries))
	for i := range entries {
		out[i] = toLedgerEntryDTO(&entries[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": out,
	})
}

// ListCounterpartyEntries handles GET /api/v1/ledger?counterparty_id=...
func (h *LedgerHandler) ListCounterpartyEntries(c *gin.Context) {
	counterpartyID := c.Query("counterparty_id")
	if counterpartyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "counterparty_id is required",
		})
		return
	}

	entries, err := h.service.LedgerEntriesByCounterparty(c.Request.Context(), counterpartyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.LedgerEntryDTO, len(entries))
	for i := range entries {
		out[i] = toLedgerEntryDTO(&entries[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": out,
	})
}

// RecordEntry handles POST /api/v1/jobs/:job_id/ledger
// Admin-only surface for ad-hoc adjustments outside the settlement path.
func (h *LedgerHandler) RecordEntry(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Missing authenticated actor",
		})
		return
	}

	var req dto.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ledger entry payload",
		})
		return
	}

	entry, err := h.service.RecordEntry(c.Request.Context(), actor, c.Param("job_id"), req.Kind, req.AmountCents, req.CounterpartyID, req.CounterpartyRole)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toLedgerEntryDTO(entry))
}

// MarkEntry handles PATCH /api/v1/ledger/:entry_id
func (h *LedgerHandler) MarkEntry(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Missing authenticated actor",
		})
		return
	}

	var req dto.MarkEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "status must be completed or failed",
		})
		return
	}

	if err := h.service.MarkLedgerEntry(c.Request.Context(), actor, c.Param("entry_id"), req.Status); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry_id": c.Param("entry_id"),
		"status":   req.Status,
	})
}

// SettlementQuote handles GET /api/v1/settlement/quote
// Returns the fee breakdown the payer sees before committing to a job amount
func (h *LedgerHandler) SettlementQuote(c *gin.Context) {
	var req dto.SettlementQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "gross_amount_cents must be a positive integer",
		})
		return
	}

	settlement, err := h.service.SettlementQuote(req.GrossAmountCents)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettlementQuoteResponse{
		GrossAmountCents:   settlement.GrossCents,
		CommissionCents:    settlement.CommissionCents,
		ProcessingFeeCents: settlement.ProcessingFeeCents,
		CleanerPayoutCents: settlement.PayoutCents,
		TotalChargedCents:  settlement.TotalChargedCents,
	})
}
