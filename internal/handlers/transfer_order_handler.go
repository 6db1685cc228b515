package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"preproc-backend/internal/models"
	"preproc-backend/internal/services"
	"github.com/gorilla/mux"
)

type TransferOrderHandler struct {
	Service *services.OrderService
}

func NewTransferOrderHandler(service *services.OrderService) *TransferOrderHandler {
	return &TransferOrderHandler{Service: service}
}

// ListOrders returns transfer orders, optionally filtered by status
func (h *TransferOrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !models.IsValidStatus(status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	orders, err := h.Service.ListOrders(r.Context(), status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// GetOrder returns one order with its lines and live allocation totals
func (h *TransferOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	detail, err := h.Service.GetOrderDetail(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}

// SetAdminReview toggles the manual admin review flag
func (h *TransferOrderHandler) SetAdminReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var req models.AdminReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SetAdminReviewed(r.Context(), id, req.AdminReviewed); err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"admin_reviewed": req.AdminReviewed})
}

// ScanStart marks an order in-progress when its scan flow opens. The
// response says whether this request performed the transition or found
// it already done.
func (h *TransferOrderHandler) ScanStart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	transitioned, err := h.Service.ScanStart(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":       models.StatusInProgress,
		"transitioned": transitioned,
	})
}
