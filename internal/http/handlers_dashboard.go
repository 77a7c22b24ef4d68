package http

import (
	"net/http"

	applog "carddash/internal/log"
)

// handleBalanceHistory reconstructs the card's day-by-day balance
// series for the current month. Cached per account; a transfer
// touching the account drops the entry.
func (s *Server) handleBalanceHistory(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseCardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := historyCacheKey(accountID)
	if cached, ok := s.historyCache.Get(key); ok {
		writeJSON(w, http.StatusOK, toHistoryDTO(cached))
		return
	}

	account, err := s.store.GetAccount(r.Context(), accountID)
	if err != nil {
		logger := applog.FromContext(r.Context())
		logger.ErrorContext(r.Context(), "Failed loading account for history",
			applog.FieldError, err.Error(),
			applog.FieldAccountID, accountID)
		writeError(w, statusForError(err), "could not load card")
		return
	}

	report, err := s.history.BalanceHistory(r.Context(), account)
	if err != nil {
		logger := applog.FromContext(r.Context())
		logger.ErrorContext(r.Context(), "Failed reconstructing balance history",
			applog.FieldError, err.Error(),
			applog.FieldAccountID, accountID,
			applog.FieldOperation, applog.OpReconstruct)
		writeError(w, statusForError(err), "could not reconstruct balance history")
		return
	}

	s.historyCache.Set(key, report)
	writeJSON(w, http.StatusOK, toHistoryDTO(report))
}
