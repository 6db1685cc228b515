package services

import (
	"testing"
	"time"

	"preproc-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeRowsFirstOccurrenceWins(t *testing.T) {
	rows := []models.ImportRow{
		{TransferNumber: "TO-1", SKU: "A", UnitsIncoming: 10},
		{TransferNumber: "TO-1", SKU: "B", UnitsIncoming: 5},
		{TransferNumber: "TO-1", SKU: "A", UnitsIncoming: 99}, // duplicate, dropped
		{TransferNumber: "TO-2", SKU: "A", UnitsIncoming: 7},  // same sku, different order
		{TransferNumber: "TO-1", SKU: "B", UnitsIncoming: 50}, // duplicate, dropped
	}

	unique, indexes, duplicates := DedupeRows(rows)

	require.Len(t, unique, 3)
	assert.Equal(t, 2, duplicates)

	// First occurrence keeps its values and its position
	assert.Equal(t, 10, unique[0].UnitsIncoming)
	assert.Equal(t, "B", unique[1].SKU)
	assert.Equal(t, "TO-2", unique[2].TransferNumber)

	// Indexes point back into the original batch, skipping dropped rows,
	// so a row error after a duplicate names the right input row
	assert.Equal(t, []int{0, 1, 3}, indexes)
}

func TestDedupeRowsNoDuplicates(t *testing.T) {
	rows := []models.ImportRow{
		{TransferNumber: "TO-1", SKU: "A"},
		{TransferNumber: "TO-2", SKU: "B"},
	}

	unique, indexes, duplicates := DedupeRows(rows)
	assert.Len(t, unique, 2)
	assert.Equal(t, []int{0, 1}, indexes)
	assert.Zero(t, duplicates)
}

func TestDedupeRowsEmpty(t *testing.T) {
	unique, indexes, duplicates := DedupeRows(nil)
	assert.Empty(t, unique)
	assert.Empty(t, indexes)
	assert.Zero(t, duplicates)
}

func TestParseOptionalTime(t *testing.T) {
	got, err := parseOptionalTime("2026-03-15", dateLayout)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseOptionalTime("2026-03-15 14:30:00", dateTimeLayout)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 14, got.Hour())

	got, err = parseOptionalTime("", dateLayout)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseOptionalTime("15/03/2026", dateLayout)
	assert.Error(t, err)
}
