package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"preproc-backend/internal/middleware"
	"preproc-backend/internal/services"
	"github.com/gorilla/mux"
)

type LabelHandler struct {
	Service *services.LabelService
}

func NewLabelHandler(service *services.LabelService) *LabelHandler {
	return &LabelHandler{Service: service}
}

// GenerateLabels streams the pallet label PDF for one order
func (h *LabelHandler) GenerateLabels(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	data, filename, err := h.Service.GenerateLabels(r.Context(), orderID, userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}
