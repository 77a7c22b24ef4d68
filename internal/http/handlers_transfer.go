package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"carddash/internal/core"
	applog "carddash/internal/log"
)

type transferRequest struct {
	SenderCode    string `json:"senderCode"`
	RecipientCode string `json:"recipientCode"`
	Amount        string `json:"amount"`
}

// handleTransfer moves funds between two cards identified by code,
// records the ledger entry, and announces it to the export worker.
func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	senderCode := strings.TrimSpace(req.SenderCode)
	recipientCode := strings.TrimSpace(req.RecipientCode)
	if senderCode == "" || recipientCode == "" {
		writeError(w, http.StatusBadRequest, "senderCode and recipientCode are required")
		return
	}
	if senderCode == recipientCode {
		writeError(w, http.StatusBadRequest, core.ErrSameAccount.Error())
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	tx, err := s.store.Transfer(r.Context(), senderCode, recipientCode, amount)
	if err != nil {
		logger.ErrorContext(r.Context(), "Transfer failed",
			applog.FieldError, err.Error(),
			applog.FieldOperation, applog.OpTransfer,
			applog.FieldAmountCents, amount.Cents)
		writeError(w, statusForError(err), "transfer failed")
		return
	}

	// The balances moved; every cached view of either side is stale.
	s.invalidateAccount(tx.SenderAccountID)
	s.invalidateAccount(tx.RecipientAccountID)

	// The ledger entry is already durable; a failed announcement only
	// delays the statement export until the worker's periodic sweep.
	if s.publisher != nil {
		if err := s.publisher.PublishTransferRecorded(r.Context(), tx.ID, tx.Code); err != nil {
			logger.WarnContext(r.Context(), "Failed announcing transfer for export",
				applog.FieldError, err.Error(),
				applog.FieldTransferCode, tx.Code)
		}
	}

	logger.InfoContext(r.Context(), "Transfer recorded",
		applog.FieldTransferCode, tx.Code,
		applog.FieldAmountCents, tx.Amount.Cents,
		"sender_id", tx.SenderAccountID,
		"recipient_id", tx.RecipientAccountID)

	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}
