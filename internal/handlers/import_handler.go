package handlers

import (
	"encoding/json"
	"net/http"

	"preproc-backend/internal/middleware"
	"preproc-backend/internal/models"
	"preproc-backend/internal/services"
)

type ImportHandler struct {
	Service *services.ImportService
}

func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{Service: service}
}

// Process merges a batch of import rows. Each row succeeds or fails on
// its own; the response carries per-row errors plus the variance report.
func (h *ImportHandler) Process(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req models.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Rows) == 0 {
		http.Error(w, "rows is required", http.StatusBadRequest)
		return
	}

	result, err := h.Service.Process(r.Context(), userID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
