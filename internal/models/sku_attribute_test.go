package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaysOfStock(t *testing.T) {
	assert.Equal(t, 30.0, DaysOfStock(300, 10))
	assert.Equal(t, 2.5, DaysOfStock(5, 2))
	assert.Equal(t, 0.0, DaysOfStock(0, 10))

	// Zero or negative sales means undefined; never divide by zero
	assert.Equal(t, 0.0, DaysOfStock(500, 0))
	assert.Equal(t, 0.0, DaysOfStock(500, -3))
}

func TestDaysOfStockPickface(t *testing.T) {
	s := &SkuAttribute{UnitsOnHandPickface: 140, AverageDailySales: 10}
	assert.Equal(t, 14.0, s.DaysOfStockPickface())
}
