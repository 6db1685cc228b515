package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"preproc-backend/internal/middleware"
	"preproc-backend/internal/models"
	"preproc-backend/internal/services"
	"github.com/gorilla/mux"
)

// LineHandler exposes the line status actions: request, cancel, their
// bulk variants and the reconciliation pass.
type LineHandler struct {
	Status *services.StatusService
}

func NewLineHandler(status *services.StatusService) *LineHandler {
	return &LineHandler{Status: status}
}

// Request moves a line from in review to requested
func (h *LineHandler) Request(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid line ID", http.StatusBadRequest)
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.Status.Request(r.Context(), id, userID); err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": models.StatusRequested})
}

// Cancel reverts a requested line to in review
func (h *LineHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid line ID", http.StatusBadRequest)
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.Status.Cancel(r.Context(), id, userID); err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": models.StatusInReview})
}

// RequestAll applies Request across a set of line ids, each independently
func (h *LineHandler) RequestAll(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.Status.RequestAll)
}

// CancelAll applies Cancel across a set of line ids, each independently
func (h *LineHandler) CancelAll(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.Status.CancelAll)
}

func (h *LineHandler) bulk(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, lineIDs []int, userID int) *models.BulkLineResult) {
	var req models.BulkLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.LineIDs) == 0 {
		http.Error(w, "line_ids is required", http.StatusBadRequest)
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	result := apply(r.Context(), req.LineIDs, userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Recalculate runs one reconciliation pass. Accepts an optional threshold
// override in the body; otherwise the committed setting applies.
func (h *LineHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Threshold *float64 `json:"threshold,omitempty"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	updated, err := h.Status.Recalculate(r.Context(), userID, req.Threshold)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"updated_count": updated})
}
