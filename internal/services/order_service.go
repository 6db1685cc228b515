package services

import (
	"context"

	"preproc-backend/internal/models"
	"preproc-backend/internal/repositories"
)

// OrderService serves the review screen: order listings, per-order line
// detail with live allocation totals, and the admin review toggle.
type OrderService struct {
	OrderRepo *repositories.TransferOrderRepository
	LineRepo  *repositories.TransferOrderLineRepository
	Status    *StatusService
}

func NewOrderService(
	orderRepo *repositories.TransferOrderRepository,
	lineRepo *repositories.TransferOrderLineRepository,
	status *StatusService,
) *OrderService {
	return &OrderService{OrderRepo: orderRepo, LineRepo: lineRepo, Status: status}
}

func (s *OrderService) ListOrders(ctx context.Context, status string) ([]*models.TransferOrder, error) {
	return s.OrderRepo.List(ctx, status)
}

// GetOrderDetail returns an order with its lines. Allocated quantities
// come straight from the ledger on every call.
func (s *OrderService) GetOrderDetail(ctx context.Context, id int) (*models.TransferOrderDetail, error) {
	order, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, repositories.ErrOrderNotFound
	}
	lines, err := s.LineRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.TransferOrderDetail{Order: order, Lines: lines}, nil
}

// SetAdminReviewed toggles the manual review flag, independent of the
// computed status. Synchronous success or failure only.
func (s *OrderService) SetAdminReviewed(ctx context.Context, id int, reviewed bool) error {
	return s.OrderRepo.SetAdminReviewed(ctx, id, reviewed)
}

// ScanStart handles an operator opening the scan flow for an order.
// The first caller moves the order to in-progress; later callers just
// observe it already moved and carry on.
func (s *OrderService) ScanStart(ctx context.Context, orderID int) (bool, error) {
	if _, err := s.OrderRepo.Get(ctx, orderID); err != nil {
		return false, repositories.ErrOrderNotFound
	}
	return s.Status.MarkOrderInProgress(ctx, orderID)
}
