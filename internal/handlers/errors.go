package handlers

import (
	"errors"
	"net/http"

	"preproc-backend/internal/repositories"
	"preproc-backend/internal/services"
)

// writeEngineError maps engine sentinel errors to HTTP status codes:
// validation to 400, not-found to 404, state conflicts to 409,
// everything else to 500.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrLineNotFound),
		errors.Is(err, repositories.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repositories.ErrNotInReview),
		errors.Is(err, repositories.ErrNotRequested),
		errors.Is(err, repositories.ErrLineNotReady),
		errors.Is(err, repositories.ErrOrderNotComplete):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
