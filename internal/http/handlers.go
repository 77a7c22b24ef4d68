package http

import (
	"errors"
	"net/http"

	"carddash/internal/core"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// statusForError maps domain errors onto HTTP statuses. Validation
// failures are the caller's fault, ledger contract violations are ours,
// and anything else is the storage layer failing to serve.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyOwner),
		errors.Is(err, core.ErrEmptyCode),
		errors.Is(err, core.ErrSameAccount):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnrelatedTransaction),
		errors.Is(err, core.ErrInvalidReconstruction):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
