package models

import "time"

type TransferOrderLine struct {
	ID                  int        `json:"id"`
	TransferOrderID     int        `json:"transfer_order_id"`
	SKU                 string     `json:"sku"`
	UnitsIncoming       int        `json:"units_incoming"`
	AllocatedQuantity   int        `json:"allocated_quantity"` // Sum of pallet_assignments.quantity for this line
	PreprocessingStatus string     `json:"preprocessing_status"`
	ManuallyCancelled   bool       `json:"manually_cancelled"`
	AutoRequested       bool       `json:"auto_requested"`
	RequestedByUserID   *int       `json:"requested_by_user_id,omitempty"`
	RequestedAt         *time.Time `json:"requested_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Denormalized for the review screen
	Description string  `json:"description,omitempty"`
	Barcode     string  `json:"barcode,omitempty"`
	DaysOfStock float64 `json:"days_of_stock,omitempty"`
}

// Variance returns allocated minus expected quantity. Non-zero after
// completion means an overage or shortfall on this line.
func (l *TransferOrderLine) Variance() int {
	return l.AllocatedQuantity - l.UnitsIncoming
}

// ReviewCandidate is one line joined with the data the reconciliation
// pass needs to reclassify it.
type ReviewCandidate struct {
	LineID              int
	Merchant            string
	PreprocessingStatus string
	UnitsOnHandPickface int
	AverageDailySales   float64
}

// BulkLineRequest represents the request body for request-all / cancel-all
type BulkLineRequest struct {
	LineIDs []int `json:"line_ids"`
}

// BulkLineResult reports per-line outcome of a bulk status action
type BulkLineResult struct {
	Applied   int   `json:"applied"`
	FailedIDs []int `json:"failed_ids,omitempty"`
}
