package models

// Canonical preprocessing status values, shared by transfer orders and
// their lines. The import feed historically used "not needed" for orders;
// normalize everything to this single vocabulary.
const (
	StatusNotRequired        = "not required"
	StatusInReview           = "in review"
	StatusRequested          = "requested"
	StatusInProgress         = "in-progress"
	StatusPartiallyCompleted = "partially completed"
	StatusCompleted          = "completed"
)

// lockedStatuses are past the review stage: imports and threshold changes
// must never overwrite them. Only allocation actions or explicit
// cancellation move a line out of this set.
var lockedStatuses = map[string]bool{
	StatusRequested:          true,
	StatusInProgress:         true,
	StatusPartiallyCompleted: true,
	StatusCompleted:          true,
}

// IsLockedStatus reports whether a line status is protected from
// automatic reclassification.
func IsLockedStatus(status string) bool {
	return lockedStatuses[status]
}

// AllocationStatus classifies a line from its live allocated total: short
// of the expected units is partially completed, at or past them is
// completed. Overage does not demote; the variance report carries the
// delta.
func AllocationStatus(allocated, expected int) string {
	if allocated >= expected {
		return StatusCompleted
	}
	return StatusPartiallyCompleted
}

// IsValidStatus reports whether s is one of the canonical status values.
func IsValidStatus(s string) bool {
	switch s {
	case StatusNotRequired, StatusInReview, StatusRequested,
		StatusInProgress, StatusPartiallyCompleted, StatusCompleted:
		return true
	}
	return false
}
