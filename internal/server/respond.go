package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/mthiha/goaltrack/internal/ledger"
	"gitlab.com/mthiha/goaltrack/internal/logger"
	"gitlab.com/mthiha/goaltrack/internal/storage"
	"gitlab.com/mthiha/goaltrack/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondFieldErrors returns the validation errors verbatim for the
// presentation layer to render.
func respondFieldErrors(w http.ResponseWriter, errs []validation.FieldError) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}

// respondLedgerError maps ledger failures onto status codes: unknown ids are
// a stale-view condition, an unusable store is a temporary outage.
func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		respondError(w, http.StatusNotFound, "goal or contribution not found")
	case errors.Is(err, storage.ErrStoreUnavailable):
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		logger.Log.Error().Err(err).Msg("Ledger operation failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
