package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"preproc-backend/internal/middleware"
	"preproc-backend/internal/models"
	"preproc-backend/internal/services"
	"github.com/gorilla/mux"
)

type PalletHandler struct {
	Service *services.PalletService
}

func NewPalletHandler(service *services.PalletService) *PalletHandler {
	return &PalletHandler{Service: service}
}

// AddCarton allocates a carton's quantity onto a pallet and returns the
// line's new status and live aggregate. The aggregate is what callers
// check before retrying after an ambiguous failure.
func (h *PalletHandler) AddCarton(w http.ResponseWriter, r *http.Request) {
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

	var req models.AddCartonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.AddCarton(r.Context(), orderID, userID, &req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ClearItem removes every allocation for one (order, sku)
func (h *PalletHandler) ClearItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	sku := vars["sku"]
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.Service.ClearItem(r.Context(), orderID, userID, sku); err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": models.StatusRequested})
}

// GetAllPallets returns the order's pallets with totals and contents
func (h *PalletHandler) GetAllPallets(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	pallets, err := h.Service.GetAllPallets(r.Context(), orderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pallets)
}

// Cleanup resequences the order's pallets and returns the label count
func (h *PalletHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
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

	count, err := h.Service.CleanupAndResequence(r.Context(), orderID, userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"pallet_count": count})
}
