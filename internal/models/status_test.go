package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLockedStatus(t *testing.T) {
	// Past the review stage: imports and recalculation must leave these alone
	assert.True(t, IsLockedStatus(StatusRequested))
	assert.True(t, IsLockedStatus(StatusInProgress))
	assert.True(t, IsLockedStatus(StatusPartiallyCompleted))
	assert.True(t, IsLockedStatus(StatusCompleted))

	assert.False(t, IsLockedStatus(StatusNotRequired))
	assert.False(t, IsLockedStatus(StatusInReview))
	assert.False(t, IsLockedStatus("bogus"))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{
		StatusNotRequired, StatusInReview, StatusRequested,
		StatusInProgress, StatusPartiallyCompleted, StatusCompleted,
	} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("not needed"))
	assert.False(t, IsValidStatus(""))
}

func TestAllocationStatus(t *testing.T) {
	tests := []struct {
		name      string
		allocated int
		expected  int
		want      string
	}{
		{"short of expected", 60, 100, StatusPartiallyCompleted},
		{"exactly expected", 100, 100, StatusCompleted},
		{"over expected stays completed", 130, 100, StatusCompleted},
		{"first carton", 1, 100, StatusPartiallyCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllocationStatus(tt.allocated, tt.expected))
		})
	}
}

func TestLineVariance(t *testing.T) {
	l := &TransferOrderLine{UnitsIncoming: 100, AllocatedQuantity: 130}
	assert.Equal(t, 30, l.Variance())

	l = &TransferOrderLine{UnitsIncoming: 100, AllocatedQuantity: 60}
	assert.Equal(t, -40, l.Variance())
}
