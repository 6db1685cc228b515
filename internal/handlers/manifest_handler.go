package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"preproc-backend/internal/services"
	"github.com/gorilla/mux"
)

type ManifestHandler struct {
	Service *services.ManifestService
}

func NewManifestHandler(service *services.ManifestService) *ManifestHandler {
	return &ManifestHandler{Service: service}
}

// Export streams the manifest CSV for one order. ?format=detail (default)
// or ?format=aggregate.
func (h *ManifestHandler) Export(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	data, filename, err := h.Service.Export(r.Context(), orderID, r.URL.Query().Get("format"))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}
