package models

import "time"

type SkuAttribute struct {
	ID                  int       `json:"id"`
	SKU                 string    `json:"sku"`
	Description         string    `json:"description"`
	Barcode             string    `json:"barcode"`
	UnitsOnHandPickface int       `json:"units_on_hand_pickface"`
	AverageDailySales   float64   `json:"average_daily_sales"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DaysOfStockPickface returns pickface units divided by average daily
// sales. Zero sales means the ratio is undefined; treat as zero stock-days
// rather than dividing by zero.
func (s *SkuAttribute) DaysOfStockPickface() float64 {
	return DaysOfStock(s.UnitsOnHandPickface, s.AverageDailySales)
}

// DaysOfStock computes units / avgDailySales with the zero-sales guard.
func DaysOfStock(unitsOnHand int, avgDailySales float64) float64 {
	if avgDailySales <= 0 {
		return 0
	}
	return float64(unitsOnHand) / avgDailySales
}
