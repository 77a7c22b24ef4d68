package http

import (
	"net/http"
	"time"

	"carddash/internal/core"
	"carddash/internal/ledger"
	applog "carddash/internal/log"
)

// handleLedgerPage serves one page of the account's ledger, newest
// first. Optional ?lowerBoundDate= and ?upperBoundDate= narrow the
// range; ?page= and ?size= pick the window.
func (s *Server) handleLedgerPage(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseCardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := parseSize(r, s.opts.DefaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lower, err := parseDateBound(r, "lowerBoundDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	upper, err := parseDateBound(r, "upperBoundDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := ledger.PageQuery{
		AccountID:  accountID,
		Page:       page,
		PageSize:   size,
		LowerBound: lower,
		UpperBound: upper,
	}

	key := pageCacheKey(q)
	if cached, ok := s.pageCache.Get(key); ok {
		writeJSON(w, http.StatusOK, toPageDTO(cached))
		return
	}

	result, err := s.store.LedgerPage(r.Context(), q)
	if err != nil {
		logger := applog.FromContext(r.Context())
		logger.ErrorContext(r.Context(), "Failed loading ledger page",
			applog.FieldError, err.Error(),
			applog.FieldAccountID, accountID,
			applog.FieldPage, page,
			applog.FieldPageSize, size)
		writeError(w, statusForError(err), "could not load transactions")
		return
	}

	s.pageCache.Set(key, result)
	writeJSON(w, http.StatusOK, toPageDTO(result))
}

// handleMonthTransactions returns the account's full transaction set
// for the current month, unpaged.
func (s *Server) handleMonthTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseCardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().In(s.opts.Location)
	from, to := core.MonthBounds(now, s.opts.Location)

	txs, err := s.store.MonthTransactions(r.Context(), accountID, from, to)
	if err != nil {
		logger := applog.FromContext(r.Context())
		logger.ErrorContext(r.Context(), "Failed loading month transactions",
			applog.FieldError, err.Error(),
			applog.FieldAccountID, accountID)
		writeError(w, statusForError(err), "could not load transactions")
		return
	}

	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}
