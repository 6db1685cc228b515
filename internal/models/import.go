package models

// ImportRow is one validated row from a CSV upload or spreadsheet sync.
// Validation (required fields, date formats, positive numerics) happens in
// the handler; by the time a row reaches the import service it is well-formed.
type ImportRow struct {
	TransferNumber      string  `json:"transfer_number"`
	SKU                 string  `json:"sku"`
	Merchant            string  `json:"merchant"`
	ExternalStatus      string  `json:"status"`
	EstimatedArrival    string  `json:"estimated_arrival,omitempty"` // YYYY-MM-DD
	ReceiptTime         string  `json:"receipt_time,omitempty"`      // YYYY-MM-DD HH:MM:SS
	Destination         string  `json:"destination"`
	UnitsIncoming       int     `json:"units_incoming"`
	SkuDescription      string  `json:"sku_description"`
	Barcode             string  `json:"barcode"`
	UnitsOnHandPickface int     `json:"units_on_hand_pickface"`
	AverageDailySales   float64 `json:"average_daily_sales"`
}

// ImportRowError reports one row that failed, without aborting the batch
type ImportRowError struct {
	RowIndex int    `json:"row_index"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// LineVariance surfaces an allocation delta discovered during import.
// Reporting only; the import never blocks or alters allocations.
type LineVariance struct {
	TransferNumber string `json:"transfer_number"`
	SKU            string `json:"sku"`
	Expected       int    `json:"expected"`
	Assigned       int    `json:"assigned"`
	Delta          int    `json:"delta"` // assigned - expected
}

// ImportResult summarizes a processed batch
type ImportResult struct {
	Created    int              `json:"created"`
	Updated    int              `json:"updated"`
	Preserved  int              `json:"preserved"` // lines past review stage, status kept verbatim
	Duplicates int              `json:"duplicates"`
	Failed     []ImportRowError `json:"failed,omitempty"`
	Variances  []LineVariance   `json:"variances,omitempty"`
}

// ImportRequest represents the request body for a bulk import
type ImportRequest struct {
	Source string      `json:"source"` // "csv_upload" or "sync"
	Rows   []ImportRow `json:"rows"`
}
