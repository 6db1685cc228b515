package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"preproc-backend/internal/config"
	"preproc-backend/internal/metrics"
	"preproc-backend/internal/models"
	"preproc-backend/internal/repositories"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ImportService merges bulk import rows into the order/line/sku records.
// Rows arrive pre-validated; this service owns dedupe, upserts, status
// classification and the variance report.
type ImportService struct {
	OrderRepo    *repositories.TransferOrderRepository
	LineRepo     *repositories.TransferOrderLineRepository
	SkuRepo      *repositories.SkuAttributeRepository
	MerchantRepo *repositories.EligibleMerchantRepository
	AuditRepo    *repositories.AuditLogRepository
	Status       *StatusService
	Cfg          *config.Config
}

func NewImportService(
	orderRepo *repositories.TransferOrderRepository,
	lineRepo *repositories.TransferOrderLineRepository,
	skuRepo *repositories.SkuAttributeRepository,
	merchantRepo *repositories.EligibleMerchantRepository,
	auditRepo *repositories.AuditLogRepository,
	status *StatusService,
	cfg *config.Config,
) *ImportService {
	return &ImportService{
		OrderRepo:    orderRepo,
		LineRepo:     lineRepo,
		SkuRepo:      skuRepo,
		MerchantRepo: merchantRepo,
		AuditRepo:    auditRepo,
		Status:       status,
		Cfg:          cfg,
	}
}

// Process merges one batch. Each row succeeds or fails independently;
// committed rows stay committed when a later row fails. The returned
// result carries per-row errors and the post-import variance report.
func (s *ImportService) Process(ctx context.Context, userID int, req *models.ImportRequest) (*models.ImportResult, error) {
	if len(req.Rows) == 0 {
		return &models.ImportResult{}, nil
	}
	if rowCap := s.Cfg.Engine.ImportRowCap; len(req.Rows) > rowCap {
		return nil, fmt.Errorf("batch of %d rows exceeds the %d row cap", len(req.Rows), rowCap)
	}

	rows, rowIndexes, duplicates := DedupeRows(req.Rows)
	result := &models.ImportResult{Duplicates: duplicates}

	// Threshold and eligibility are read once and used for the whole batch
	threshold, err := s.Status.Threshold(ctx, nil)
	if err != nil {
		return nil, err
	}
	eligible, err := s.Status.merchantSet(ctx)
	if err != nil {
		return nil, err
	}

	touchedOrders := make(map[int]bool)
	for i, row := range rows {
		orderID, outcome, err := s.processRow(ctx, &row, eligible, threshold)
		if err != nil {
			result.Failed = append(result.Failed, models.ImportRowError{
				RowIndex: rowIndexes[i],
				Message:  err.Error(),
			})
			metrics.ImportRowsTotal.WithLabelValues("failed").Inc()
			continue
		}
		touchedOrders[orderID] = true
		switch outcome {
		case "created":
			result.Created++
		case "preserved":
			result.Preserved++
		default:
			result.Updated++
		}
		metrics.ImportRowsTotal.WithLabelValues(outcome).Inc()
	}

	// Order aggregates and the variance report reflect the merged state
	orderIDs := make([]int, 0, len(touchedOrders))
	for id := range touchedOrders {
		orderIDs = append(orderIDs, id)
		if err := s.Status.RefreshOrderStatus(ctx, id); err != nil {
			log.Printf("[Import] Failed to refresh order %d status: %v", id, err)
		}
	}
	variances, err := s.LineRepo.ListVariances(ctx, orderIDs)
	if err != nil {
		log.Printf("[Import] Variance report failed: %v", err)
	}
	for _, v := range variances {
		result.Variances = append(result.Variances, *v)
	}

	action := models.AuditActionSync
	if req.Source == "csv_upload" {
		action = models.AuditActionCSVUpload
	}
	recordAudit(ctx, s.AuditRepo, userID, action, "import", nil, map[string]any{
		"created": result.Created, "updated": result.Updated,
		"preserved": result.Preserved, "duplicates": result.Duplicates,
		"failed": len(result.Failed),
	})
	log.Printf("[Import] Batch done: %d created, %d updated, %d preserved, %d duplicates, %d failed",
		result.Created, result.Updated, result.Preserved, result.Duplicates, len(result.Failed))
	return result, nil
}

// processRow merges one deduplicated row, returning the touched order id
// and the outcome label.
func (s *ImportService) processRow(ctx context.Context, row *models.ImportRow, eligible map[string]bool, threshold float64) (int, string, error) {
	if row.TransferNumber == "" || row.SKU == "" {
		return 0, "", fmt.Errorf("transfer_number and sku are required")
	}

	sku := &models.SkuAttribute{
		SKU:                 row.SKU,
		Description:         row.SkuDescription,
		Barcode:             row.Barcode,
		UnitsOnHandPickface: row.UnitsOnHandPickface,
		AverageDailySales:   row.AverageDailySales,
	}
	if err := s.SkuRepo.Upsert(ctx, sku); err != nil {
		return 0, "", fmt.Errorf("sku upsert failed: %w", err)
	}

	estimatedArrival, err := parseOptionalTime(row.EstimatedArrival, dateLayout)
	if err != nil {
		return 0, "", fmt.Errorf("bad estimated_arrival %q: %w", row.EstimatedArrival, err)
	}
	receiptTime, err := parseOptionalTime(row.ReceiptTime, dateTimeLayout)
	if err != nil {
		return 0, "", fmt.Errorf("bad receipt_time %q: %w", row.ReceiptTime, err)
	}

	order := &models.TransferOrder{
		TransferNumber:   row.TransferNumber,
		Merchant:         row.Merchant,
		ExternalStatus:   row.ExternalStatus,
		Destination:      row.Destination,
		EstimatedArrival: estimatedArrival,
		ReceiptTime:      receiptTime,
	}
	if err := s.OrderRepo.Upsert(ctx, order); err != nil {
		return 0, "", fmt.Errorf("order upsert failed: %w", err)
	}

	requires := EvaluateEligibility(row.Merchant, eligible, row.UnitsOnHandPickface, row.AverageDailySales, threshold)
	computed := NextReviewStatus(requires)

	line, err := s.LineRepo.GetByOrderAndSKU(ctx, order.ID, row.SKU)
	if err == repositories.ErrLineNotFound {
		line = &models.TransferOrderLine{
			TransferOrderID:     order.ID,
			SKU:                 row.SKU,
			UnitsIncoming:       row.UnitsIncoming,
			PreprocessingStatus: computed,
		}
		if err := s.LineRepo.Create(ctx, line); err != nil {
			return 0, "", fmt.Errorf("line create failed: %w", err)
		}
		return order.ID, "created", nil
	}
	if err != nil {
		return 0, "", err
	}

	// Lines past the review stage keep status and sticky flags verbatim;
	// manually cancelled lines are never re-flagged by an import.
	preserve := models.IsLockedStatus(line.PreprocessingStatus)
	status := computed
	if line.ManuallyCancelled && !preserve {
		status = models.StatusNotRequired
	}
	if err := s.LineRepo.UpdateFromImport(ctx, line.ID, row.UnitsIncoming, status, preserve); err != nil {
		return 0, "", fmt.Errorf("line update failed: %w", err)
	}
	if preserve {
		return order.ID, "preserved", nil
	}
	return order.ID, "updated", nil
}

// DedupeRows keeps the first occurrence of each (transfer_number, sku)
// key, preserving input order, and counts the dropped duplicates. The
// returned indexes point back into the caller's batch, so row errors
// reference the rows the caller actually sent.
func DedupeRows(rows []models.ImportRow) ([]models.ImportRow, []int, int) {
	type key struct{ transferNumber, sku string }
	seen := make(map[key]bool, len(rows))
	unique := make([]models.ImportRow, 0, len(rows))
	indexes := make([]int, 0, len(rows))
	duplicates := 0
	for i, row := range rows {
		k := key{row.TransferNumber, row.SKU}
		if seen[k] {
			duplicates++
			continue
		}
		seen[k] = true
		unique = append(unique, row)
		indexes = append(indexes, i)
	}
	return unique, indexes, duplicates
}

func parseOptionalTime(value, layout string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
