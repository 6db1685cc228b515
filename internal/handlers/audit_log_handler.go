package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"preproc-backend/internal/repositories"
	"preproc-backend/pkg/utils"
)

type AuditLogHandler struct {
	Repo *repositories.AuditLogRepository
}

func NewAuditLogHandler(repo *repositories.AuditLogRepository) *AuditLogHandler {
	return &AuditLogHandler{Repo: repo}
}

// List returns recent audit entries, newest first. ?limit=N caps at 500.
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to retrieve audit logs")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}
