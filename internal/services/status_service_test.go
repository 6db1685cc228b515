package services

import (
	"testing"

	"preproc-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDeriveOrderStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		lines    []string
		want     string
	}{
		{
			"no lines",
			models.StatusNotRequired,
			nil,
			models.StatusNotRequired,
		},
		{
			"all lines not required",
			models.StatusNotRequired,
			[]string{models.StatusNotRequired, models.StatusNotRequired},
			models.StatusNotRequired,
		},
		{
			"any line in review dominates",
			models.StatusNotRequired,
			[]string{models.StatusNotRequired, models.StatusInReview, models.StatusRequested},
			models.StatusInReview,
		},
		{
			"requested lines only",
			models.StatusNotRequired,
			[]string{models.StatusRequested, models.StatusNotRequired},
			models.StatusRequested,
		},
		{
			"scan flow open stays in-progress",
			models.StatusInProgress,
			[]string{models.StatusRequested},
			models.StatusInProgress,
		},
		{
			"partial allocation",
			models.StatusInProgress,
			[]string{models.StatusPartiallyCompleted, models.StatusRequested},
			models.StatusPartiallyCompleted,
		},
		{
			"some lines done others pending",
			models.StatusInProgress,
			[]string{models.StatusCompleted, models.StatusRequested},
			models.StatusPartiallyCompleted,
		},
		{
			"all flagged lines completed",
			models.StatusInProgress,
			[]string{models.StatusCompleted, models.StatusCompleted, models.StatusNotRequired},
			models.StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveOrderStatus(tt.current, tt.lines))
		})
	}
}

func TestDeriveOrderStatusIdempotent(t *testing.T) {
	lines := []string{models.StatusCompleted, models.StatusPartiallyCompleted}
	first := DeriveOrderStatus(models.StatusInProgress, lines)
	assert.Equal(t, first, DeriveOrderStatus(first, lines))
}
