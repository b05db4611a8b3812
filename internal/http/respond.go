package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"budsjetto/internal/core"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// respondServiceError maps ledger errors onto HTTP statuses: validation
// errors are 422, unknown ids are 404, everything else is a 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case core.IsValidation(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case core.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
