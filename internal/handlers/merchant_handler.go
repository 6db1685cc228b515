package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"preproc-backend/internal/models"
	"preproc-backend/internal/services"
	"preproc-backend/pkg/utils"
	"github.com/gorilla/mux"
)

type MerchantHandler struct {
	Service *services.MerchantService
}

func NewMerchantHandler(service *services.MerchantService) *MerchantHandler {
	return &MerchantHandler{Service: service}
}

func (h *MerchantHandler) ListMerchants(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.Service.ListMerchants(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to retrieve merchants")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(merchants)
}

func (h *MerchantHandler) CreateMerchant(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	merchant, err := h.Service.CreateMerchant(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, merchant)
}

func (h *MerchantHandler) DeleteMerchant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid merchant ID")
		return
	}

	if err := h.Service.DeleteMerchant(r.Context(), id); err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Merchant removed"})
}
