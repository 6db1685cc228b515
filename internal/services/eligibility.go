package services

import (
	"preproc-backend/internal/models"
)

// EvaluateEligibility decides whether a line qualifies for preprocessing
// review: its merchant must be in the eligible set and the SKU must have
// more than threshold days of stock on the pickface.
func EvaluateEligibility(merchant string, eligible map[string]bool, unitsOnHand int, avgDailySales float64, threshold float64) bool {
	if !eligible[merchant] {
		return false
	}
	dos := models.DaysOfStock(unitsOnHand, avgDailySales)
	return dos > threshold
}

// NextReviewStatus computes the target status for a line currently in the
// unlocked pool (not required / in review). Locked statuses are never fed
// through here; the reconciler filters them out before calling.
func NextReviewStatus(eligible bool) string {
	if eligible {
		return models.StatusInReview
	}
	return models.StatusNotRequired
}

// BuildMerchantSet turns the stored merchant list into a lookup set.
func BuildMerchantSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
