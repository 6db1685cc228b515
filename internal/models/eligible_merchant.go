package models

import "time"

type EligibleMerchant struct {
	ID                 int       `json:"id"`
	MerchantName       string    `json:"merchant_name"`
	ReserveDestination string    `json:"reserve_destination,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreateMerchantRequest represents the request body for adding an eligible merchant
type CreateMerchantRequest struct {
	MerchantName       string `json:"merchant_name"`
	ReserveDestination string `json:"reserve_destination"`
}
