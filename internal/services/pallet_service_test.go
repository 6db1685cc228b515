package services

import (
	"testing"

	"preproc-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignment(pallet int, sku string, qty, cartons int) *models.PalletAssignment {
	return &models.PalletAssignment{PalletNumber: pallet, SKU: sku, Quantity: qty, CartonCount: cartons}
}

func TestGroupPallets(t *testing.T) {
	rows := []*models.PalletAssignment{
		assignment(2, "SKU-A", 10, 1),
		assignment(2, "SKU-B", 5, 2),
		assignment(1, "SKU-A", 3, 1),
	}

	pallets := GroupPallets(rows)
	require.Len(t, pallets, 2)

	assert.Equal(t, 1, pallets[0].PalletNumber)
	assert.Equal(t, 3, pallets[0].TotalQuantity)
	assert.Equal(t, 1, pallets[0].TotalCartons)

	assert.Equal(t, 2, pallets[1].PalletNumber)
	assert.Equal(t, 15, pallets[1].TotalQuantity)
	assert.Equal(t, 3, pallets[1].TotalCartons)
	assert.Len(t, pallets[1].Items, 2)
}

func TestGroupPalletsEmpty(t *testing.T) {
	assert.Empty(t, GroupPallets(nil))
}

func TestBuildResequencePlan(t *testing.T) {
	// Pallet 1 empty, pallet 2 holds 40, pallet 3 empty, pallet 4 holds 15.
	// Survivors become 1 and 2, empties are deleted, label count is 2.
	pallets := []*models.PalletSummary{
		{PalletNumber: 1, TotalQuantity: 0},
		{PalletNumber: 2, TotalQuantity: 40},
		{PalletNumber: 3, TotalQuantity: 0},
		{PalletNumber: 4, TotalQuantity: 15},
	}

	empties, renumber, count := BuildResequencePlan(pallets)

	assert.Equal(t, []int{1, 3}, empties)
	require.Len(t, renumber, 2)
	assert.Equal(t, models.PalletRenumber{OldNumber: 2, NewNumber: 1}, renumber[0])
	assert.Equal(t, models.PalletRenumber{OldNumber: 4, NewNumber: 2}, renumber[1])
	assert.Equal(t, 2, count)
}

func TestBuildResequencePlanStableOrder(t *testing.T) {
	// Input order must not matter; survivors keep ascending original order
	pallets := []*models.PalletSummary{
		{PalletNumber: 7, TotalQuantity: 5},
		{PalletNumber: 3, TotalQuantity: 0},
		{PalletNumber: 5, TotalQuantity: 9},
	}

	empties, renumber, count := BuildResequencePlan(pallets)

	assert.Equal(t, []int{3}, empties)
	require.Len(t, renumber, 2)
	assert.Equal(t, models.PalletRenumber{OldNumber: 5, NewNumber: 1}, renumber[0])
	assert.Equal(t, models.PalletRenumber{OldNumber: 7, NewNumber: 2}, renumber[1])
	assert.Equal(t, 2, count)
}

func TestBuildResequencePlanIdempotent(t *testing.T) {
	// An already-compacted order produces an empty plan
	pallets := []*models.PalletSummary{
		{PalletNumber: 1, TotalQuantity: 40},
		{PalletNumber: 2, TotalQuantity: 15},
	}

	empties, renumber, count := BuildResequencePlan(pallets)

	assert.Empty(t, empties)
	assert.Empty(t, renumber)
	assert.Equal(t, 2, count)
}

func TestBuildResequencePlanNewNumbersNeverExceedOld(t *testing.T) {
	// Renumber targets are always <= the original number, so applying the
	// plan in order can never collide with a still-occupied number.
	pallets := []*models.PalletSummary{
		{PalletNumber: 2, TotalQuantity: 1},
		{PalletNumber: 4, TotalQuantity: 1},
		{PalletNumber: 9, TotalQuantity: 1},
	}

	_, renumber, _ := BuildResequencePlan(pallets)
	for _, rn := range renumber {
		assert.LessOrEqual(t, rn.NewNumber, rn.OldNumber)
	}
}

func TestBuildResequencePlanAllEmpty(t *testing.T) {
	pallets := []*models.PalletSummary{
		{PalletNumber: 1, TotalQuantity: 0},
		{PalletNumber: 2, TotalQuantity: 0},
	}

	empties, renumber, count := BuildResequencePlan(pallets)

	assert.Equal(t, []int{1, 2}, empties)
	assert.Empty(t, renumber)
	assert.Equal(t, 0, count)
}
