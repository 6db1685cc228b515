package models

import "time"

type TransferOrder struct {
	ID                  int        `json:"id"`
	TransferNumber      string     `json:"transfer_number"`
	Merchant            string     `json:"merchant"`
	ExternalStatus      string     `json:"external_status"`
	Destination         string     `json:"destination"`
	EstimatedArrival    *time.Time `json:"estimated_arrival,omitempty"`
	ReceiptTime         *time.Time `json:"receipt_time,omitempty"`
	PreprocessingStatus string     `json:"preprocessing_status"`
	AdminReviewed       bool       `json:"admin_reviewed"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TransferOrderDetail is an order with its lines and live allocation totals
type TransferOrderDetail struct {
	Order *TransferOrder       `json:"order"`
	Lines []*TransferOrderLine `json:"lines"`
}

// AdminReviewRequest represents the request body for toggling the admin review flag
type AdminReviewRequest struct {
	AdminReviewed bool `json:"admin_reviewed"`
}
