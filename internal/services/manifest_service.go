package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"preproc-backend/internal/models"
	"preproc-backend/internal/repositories"
	"preproc-backend/internal/storage"
)

// ManifestService builds the two manifest CSV shapes from the ledger.
// Read-only over engine state; the optional archive upload happens off
// the request path.
type ManifestService struct {
	PalletRepo *repositories.PalletAssignmentRepository
	OrderRepo  *repositories.TransferOrderRepository
	Archiver   *storage.Archiver
}

func NewManifestService(
	palletRepo *repositories.PalletAssignmentRepository,
	orderRepo *repositories.TransferOrderRepository,
	archiver *storage.Archiver,
) *ManifestService {
	return &ManifestService{PalletRepo: palletRepo, OrderRepo: orderRepo, Archiver: archiver}
}

// Export produces the manifest for one order in the requested format
// ("detail" or "aggregate") and returns the CSV bytes with a filename.
func (s *ManifestService) Export(ctx context.Context, orderID int, format string) ([]byte, string, error) {
	order, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, "", repositories.ErrOrderNotFound
	}
	manifestRows, err := s.PalletRepo.ListManifestRows(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	rows := make([]models.ManifestRow, 0, len(manifestRows))
	for _, r := range manifestRows {
		rows = append(rows, *r)
	}

	var data []byte
	switch format {
	case "aggregate":
		data, err = BuildAggregateCSV(rows)
	case "detail", "":
		format = "detail"
		data, err = BuildDetailCSV(rows)
	default:
		return nil, "", fmt.Errorf("%w: unknown manifest format %q", ErrValidation, format)
	}
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("manifest_%s_%s.csv", order.TransferNumber, format)
	if s.Archiver != nil {
		key := fmt.Sprintf("manifests/%s/%s_%s.csv",
			order.TransferNumber, format, time.Now().Format("20060102_150405"))
		go s.Archiver.Upload(key, data, "text/csv")
	}
	return data, filename, nil
}

// BuildDetailCSV renders the per-pallet detail shape: barcode,quantity,pallet
func BuildDetailCSV(rows []models.ManifestRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"barcode", "quantity", "pallet"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{r.Barcode, strconv.Itoa(r.Quantity), strconv.Itoa(r.PalletNumber)}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// BuildAggregateCSV renders the aggregated-by-barcode shape:
// barcode,quantity. Barcodes keep their first-seen order.
func BuildAggregateCSV(rows []models.ManifestRow) ([]byte, error) {
	totals := make(map[string]int)
	var order []string
	for _, r := range rows {
		if _, seen := totals[r.Barcode]; !seen {
			order = append(order, r.Barcode)
		}
		totals[r.Barcode] += r.Quantity
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"barcode", "quantity"}); err != nil {
		return nil, err
	}
	for _, barcode := range order {
		if err := w.Write([]string{barcode, strconv.Itoa(totals[barcode])}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
