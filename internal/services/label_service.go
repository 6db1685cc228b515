package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"preproc-backend/internal/models"
	"preproc-backend/internal/repositories"

	"github.com/jung-kurt/gofpdf/v2"
)

// LabelService renders the printable pallet labels for a resequenced
// order, one page per pallet.
type LabelService struct {
	PalletRepo *repositories.PalletAssignmentRepository
	OrderRepo  *repositories.TransferOrderRepository
	AuditRepo  *repositories.AuditLogRepository
}

func NewLabelService(
	palletRepo *repositories.PalletAssignmentRepository,
	orderRepo *repositories.TransferOrderRepository,
	auditRepo *repositories.AuditLogRepository,
) *LabelService {
	return &LabelService{PalletRepo: palletRepo, OrderRepo: orderRepo, AuditRepo: auditRepo}
}

// GenerateLabels builds the label PDF for an order. The pallet count is
// whatever the ledger holds right now, so callers resequence first to get
// contiguous numbers.
func (s *LabelService) GenerateLabels(ctx context.Context, orderID, userID int) ([]byte, string, error) {
	order, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, "", repositories.ErrOrderNotFound
	}
	assignments, err := s.PalletRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	pallets := GroupPallets(assignments)
	if len(pallets) == 0 {
		return nil, "", fmt.Errorf("%w: order %s has no pallet assignments", ErrValidation, order.TransferNumber)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	total := len(pallets)

	for i, p := range pallets {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 28)
		pdf.CellFormat(180, 16, order.TransferNumber, "", 1, "C", false, 0, "")

		pdf.SetFont("Arial", "B", 48)
		pdf.CellFormat(180, 30, fmt.Sprintf("Pallet %d of %d", i+1, total), "", 1, "C", false, 0, "")

		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(180, 8, fmt.Sprintf("Merchant: %s", order.Merchant), "", 1, "C", false, 0, "")
		if order.Destination != "" {
			pdf.CellFormat(180, 8, fmt.Sprintf("Destination: %s", order.Destination), "", 1, "C", false, 0, "")
		}
		pdf.Ln(6)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(220, 220, 220)
		pdf.CellFormat(100, 7, "SKU", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Quantity", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Cartons", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, item := range p.Items {
			sku := item.SKU
			if len(sku) > 40 {
				sku = sku[:37] + "..."
			}
			pdf.CellFormat(100, 6, sku, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%d", item.CartonCount), "1", 1, "C", false, 0, "")
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(100, 7, "Total", "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", p.TotalQuantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", p.TotalCartons), "1", 1, "C", false, 0, "")

		pdf.Ln(8)
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(180, 5, fmt.Sprintf("Printed %s", time.Now().Format("02-Jan-2006 15:04")), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render labels: %w", err)
	}

	recordAudit(ctx, s.AuditRepo, userID, models.AuditActionGenerateLabel, "transfer_order", &orderID,
		map[string]any{"pallet_count": total})
	filename := fmt.Sprintf("labels_%s.pdf", order.TransferNumber)
	return buf.Bytes(), filename, nil
}
