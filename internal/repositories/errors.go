package repositories

import "errors"

// State-conflict and not-found sentinels so handlers can map engine
// outcomes to HTTP statuses without string matching.
var (
	ErrLineNotFound     = errors.New("transfer order line not found")
	ErrOrderNotFound    = errors.New("transfer order not found")
	ErrNotInReview      = errors.New("line is not in review")
	ErrNotRequested     = errors.New("line is not in requested state")
	ErrLineNotReady     = errors.New("line has not been requested for preprocessing")
	ErrOrderNotComplete = errors.New("order has outstanding lines")
)
