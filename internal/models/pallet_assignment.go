package models

import "time"

type PalletAssignment struct {
	ID              int       `json:"id"`
	TransferOrderID int       `json:"transfer_order_id"`
	PalletNumber    int       `json:"pallet_number"`
	SKU             string    `json:"sku"`
	Quantity        int       `json:"quantity"`
	CartonCount     int       `json:"carton_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PalletItem is one SKU's share of a pallet
type PalletItem struct {
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	CartonCount int    `json:"carton_count"`
}

// PalletSummary is one physical pallet with its contents
type PalletSummary struct {
	PalletNumber  int          `json:"pallet_number"`
	TotalQuantity int          `json:"total_quantity"`
	TotalCartons  int          `json:"total_cartons"`
	Items         []PalletItem `json:"items"`
}

// AddCartonRequest represents the request body for allocating a carton to a pallet
type AddCartonRequest struct {
	SKU          string `json:"sku"`
	PalletNumber int    `json:"pallet_number"`
	Quantity     int    `json:"quantity"`
	CartonCount  int    `json:"carton_count"`
}

// AddCartonResult reports the line state after an allocation committed
type AddCartonResult struct {
	NewStatus string `json:"new_status"`
	Allocated int    `json:"allocated"`
	Expected  int    `json:"expected"`
	Variance  int    `json:"variance"`
}

// PalletRenumber maps an original pallet number to its compacted one
type PalletRenumber struct {
	OldNumber int `json:"old_number"`
	NewNumber int `json:"new_number"`
}

// ManifestRow is one exported manifest line (per-pallet detail shape)
type ManifestRow struct {
	Barcode      string
	Quantity     int
	PalletNumber int
}
