package services

import (
	"testing"

	"preproc-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateEligibility(t *testing.T) {
	eligible := BuildMerchantSet([]string{"Acme Goods", "Northwind"})

	tests := []struct {
		name        string
		merchant    string
		unitsOnHand int
		avgSales    float64
		threshold   float64
		want        bool
	}{
		{"eligible merchant above threshold", "Acme Goods", 300, 10, 14, true},
		{"eligible merchant exactly at threshold", "Acme Goods", 140, 10, 14, false},
		{"eligible merchant below threshold", "Acme Goods", 50, 10, 14, false},
		{"ineligible merchant above threshold", "Contoso", 300, 10, 14, false},
		{"zero sales never qualifies", "Acme Goods", 500, 0, 14, false},
		{"negative sales treated as zero", "Acme Goods", 500, -1, 14, false},
		{"low threshold flags more", "Northwind", 30, 10, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateEligibility(tt.merchant, eligible, tt.unitsOnHand, tt.avgSales, tt.threshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateEligibilityIdempotent(t *testing.T) {
	eligible := BuildMerchantSet([]string{"Acme Goods"})
	first := EvaluateEligibility("Acme Goods", eligible, 300, 10, 14)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, EvaluateEligibility("Acme Goods", eligible, 300, 10, 14))
	}
}

func TestNextReviewStatus(t *testing.T) {
	assert.Equal(t, models.StatusInReview, NextReviewStatus(true))
	assert.Equal(t, models.StatusNotRequired, NextReviewStatus(false))
}

func TestBuildMerchantSet(t *testing.T) {
	set := BuildMerchantSet([]string{"A", "B"})
	assert.True(t, set["A"])
	assert.True(t, set["B"])
	assert.False(t, set["C"])

	assert.Empty(t, BuildMerchantSet(nil))
}
