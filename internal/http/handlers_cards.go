package http

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "carddash/internal/log"
)

// handleListCards returns every card owned by ?owner=.
func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	if owner == "" {
		writeError(w, http.StatusBadRequest, "missing owner parameter")
		return
	}

	accounts, err := s.store.ListAccounts(r.Context(), owner)
	if err != nil {
		logger := applog.FromContext(r.Context())
		logger.ErrorContext(r.Context(), "Failed listing cards",
			applog.FieldError, err.Error(),
			applog.FieldOwner, owner)
		writeError(w, statusForError(err), "could not load cards")
		return
	}

	writeJSON(w, http.StatusOK, toAccountDTOs(accounts))
}

type createCardRequest struct {
	Owner string `json:"owner"`
	Code  string `json:"code"`
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	owner := strings.TrimSpace(req.Owner)
	code := strings.TrimSpace(req.Code)
	if owner == "" || code == "" {
		writeError(w, http.StatusBadRequest, "owner and code are required")
		return
	}

	account, err := s.store.AddAccount(r.Context(), owner, code)
	if err != nil {
		logger := applog.FromContext(r.Context())
		logger.ErrorContext(r.Context(), "Failed creating card",
			applog.FieldError, err.Error(),
			applog.FieldOwner, owner,
			applog.FieldAccountCode, code)
		writeError(w, statusForError(err), "could not create card")
		return
	}

	writeJSON(w, http.StatusCreated, toAccountDTO(account))
}
