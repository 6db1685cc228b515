package services

import (
	"testing"

	"preproc-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDetailCSV(t *testing.T) {
	rows := []models.ManifestRow{
		{Barcode: "890123", Quantity: 12, PalletNumber: 1},
		{Barcode: "890456", Quantity: 3, PalletNumber: 2},
	}

	data, err := BuildDetailCSV(rows)
	require.NoError(t, err)

	assert.Equal(t,
		"barcode,quantity,pallet\n890123,12,1\n890456,3,2\n",
		string(data))
}

func TestBuildDetailCSVEmpty(t *testing.T) {
	data, err := BuildDetailCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "barcode,quantity,pallet\n", string(data))
}

func TestBuildAggregateCSV(t *testing.T) {
	// Same barcode across pallets is summed; first-seen order preserved
	rows := []models.ManifestRow{
		{Barcode: "890123", Quantity: 12, PalletNumber: 1},
		{Barcode: "890456", Quantity: 3, PalletNumber: 1},
		{Barcode: "890123", Quantity: 8, PalletNumber: 2},
	}

	data, err := BuildAggregateCSV(rows)
	require.NoError(t, err)

	assert.Equal(t,
		"barcode,quantity\n890123,20\n890456,3\n",
		string(data))
}
