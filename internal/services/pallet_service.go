package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"preproc-backend/internal/metrics"
	"preproc-backend/internal/models"
	"preproc-backend/internal/repositories"
)

// PalletService fronts the carton allocation ledger and the resequencer
type PalletService struct {
	PalletRepo *repositories.PalletAssignmentRepository
	LineRepo   *repositories.TransferOrderLineRepository
	OrderRepo  *repositories.TransferOrderRepository
	AuditRepo  *repositories.AuditLogRepository
	Status     *StatusService
}

func NewPalletService(
	palletRepo *repositories.PalletAssignmentRepository,
	lineRepo *repositories.TransferOrderLineRepository,
	orderRepo *repositories.TransferOrderRepository,
	auditRepo *repositories.AuditLogRepository,
	status *StatusService,
) *PalletService {
	return &PalletService{
		PalletRepo: palletRepo,
		LineRepo:   lineRepo,
		OrderRepo:  orderRepo,
		AuditRepo:  auditRepo,
		Status:     status,
	}
}

// AddCarton allocates one carton's quantity onto a pallet. The ledger row
// and the line status commit together in the repository transaction.
// Additive, so callers must confirm the returned aggregate before
// retrying an ambiguous failure.
func (s *PalletService) AddCarton(ctx context.Context, orderID, userID int, req *models.AddCartonRequest) (*models.AddCartonResult, error) {
	if req.SKU == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if req.PalletNumber <= 0 {
		return nil, fmt.Errorf("%w: pallet number must be positive", ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: carton quantity must be positive", ErrValidation)
	}
	cartons := req.CartonCount
	if cartons <= 0 {
		cartons = 1
	}

	result, err := s.PalletRepo.AddCarton(ctx, orderID, req.SKU, req.PalletNumber, req.Quantity, cartons)
	if err != nil {
		return nil, err
	}

	metrics.CartonsAssignedTotal.Inc()
	if err := s.Status.RefreshOrderStatus(ctx, orderID); err != nil {
		log.Printf("[Pallet] Failed to refresh order %d status: %v", orderID, err)
	}
	recordAudit(ctx, s.AuditRepo, userID, models.AuditActionAssignPallets, "transfer_order", &orderID,
		map[string]any{"sku": req.SKU, "pallet": req.PalletNumber, "quantity": req.Quantity, "new_status": result.NewStatus})
	return result, nil
}

// ClearItem undoes every allocation for one (order, sku) and puts the
// line back to requested. Confirmation is the caller's job.
func (s *PalletService) ClearItem(ctx context.Context, orderID, userID int, sku string) error {
	if err := s.PalletRepo.ClearItem(ctx, orderID, sku); err != nil {
		return err
	}
	if err := s.Status.RefreshOrderStatus(ctx, orderID); err != nil {
		log.Printf("[Pallet] Failed to refresh order %d status: %v", orderID, err)
	}
	recordAudit(ctx, s.AuditRepo, userID, models.AuditActionAssignPallets, "transfer_order", &orderID,
		map[string]any{"sku": sku, "cleared": true})
	return nil
}

// GetAllPallets returns the order's pallets with per-pallet totals and
// contents, recomputed from the ledger rows on every call.
func (s *PalletService) GetAllPallets(ctx context.Context, orderID int) ([]*models.PalletSummary, error) {
	assignments, err := s.PalletRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return GroupPallets(assignments), nil
}

// CleanupAndResequence compacts an order's pallets once all lines are
// done: empties dropped, survivors renumbered 1..N stable by original
// number. Returns N, the printable label count. Running it again on an
// already-compacted order is a no-op.
func (s *PalletService) CleanupAndResequence(ctx context.Context, orderID, userID int) (int, error) {
	outstanding, err := s.LineRepo.CountOutstanding(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if outstanding > 0 {
		return 0, repositories.ErrOrderNotComplete
	}

	assignments, err := s.PalletRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}

	empties, renumber, count := BuildResequencePlan(GroupPallets(assignments))
	if len(empties) > 0 || len(renumber) > 0 {
		if err := s.PalletRepo.Resequence(ctx, orderID, empties, renumber); err != nil {
			return 0, err
		}
	}

	recordAudit(ctx, s.AuditRepo, userID, models.AuditActionCleanupPallets, "transfer_order", &orderID,
		map[string]any{"pallet_count": count, "dropped": len(empties), "renumbered": len(renumber)})
	log.Printf("[Pallet] Order %d resequenced: %d pallets, %d empties dropped", orderID, count, len(empties))
	return count, nil
}

// GroupPallets folds raw ledger rows into per-pallet summaries, ordered
// by pallet number.
func GroupPallets(assignments []*models.PalletAssignment) []*models.PalletSummary {
	byNumber := make(map[int]*models.PalletSummary)
	var numbers []int
	for _, a := range assignments {
		p, ok := byNumber[a.PalletNumber]
		if !ok {
			p = &models.PalletSummary{PalletNumber: a.PalletNumber}
			byNumber[a.PalletNumber] = p
			numbers = append(numbers, a.PalletNumber)
		}
		p.TotalQuantity += a.Quantity
		p.TotalCartons += a.CartonCount
		p.Items = append(p.Items, models.PalletItem{
			SKU:         a.SKU,
			Quantity:    a.Quantity,
			CartonCount: a.CartonCount,
		})
	}

	sort.Ints(numbers)
	summaries := make([]*models.PalletSummary, 0, len(numbers))
	for _, n := range numbers {
		summaries = append(summaries, byNumber[n])
	}
	return summaries
}

// BuildResequencePlan partitions pallets into empties and survivors and
// assigns the survivors 1..N in ascending original order. Pallets already
// holding their target number are left out of the renumber list, which is
// what makes the whole operation idempotent. Renumber entries come out in
// ascending old-number order; since every new number is less than or
// equal to its old number, applying them in order never collides.
func BuildResequencePlan(pallets []*models.PalletSummary) (empties []int, renumber []models.PalletRenumber, count int) {
	sorted := make([]*models.PalletSummary, len(pallets))
	copy(sorted, pallets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PalletNumber < sorted[j].PalletNumber })

	next := 1
	for _, p := range sorted {
		if p.TotalQuantity == 0 {
			empties = append(empties, p.PalletNumber)
			continue
		}
		if p.PalletNumber != next {
			renumber = append(renumber, models.PalletRenumber{OldNumber: p.PalletNumber, NewNumber: next})
		}
		next++
	}
	return empties, renumber, next - 1
}
