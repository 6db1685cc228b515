package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"preproc-backend/internal/repositories"
	"preproc-backend/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestWriteEngineError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: sku is required", services.ErrValidation), http.StatusBadRequest},
		{"line not found", repositories.ErrLineNotFound, http.StatusNotFound},
		{"order not found", repositories.ErrOrderNotFound, http.StatusNotFound},
		{"not in review", repositories.ErrNotInReview, http.StatusConflict},
		{"not requested", repositories.ErrNotRequested, http.StatusConflict},
		{"line not ready for allocation", repositories.ErrLineNotReady, http.StatusConflict},
		{"order not complete", repositories.ErrOrderNotComplete, http.StatusConflict},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeEngineError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
