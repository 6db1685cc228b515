package services

import (
	"context"
	"fmt"
	"log"

	"preproc-backend/internal/cache"
	"preproc-backend/internal/config"
	"preproc-backend/internal/metrics"
	"preproc-backend/internal/models"
	"preproc-backend/internal/repositories"
)

// StatusService owns the line status state machine: the reconciliation
// pass, operator request/cancel actions, and the order-level transitions.
type StatusService struct {
	LineRepo     *repositories.TransferOrderLineRepository
	OrderRepo    *repositories.TransferOrderRepository
	MerchantRepo *repositories.EligibleMerchantRepository
	SettingsRepo *repositories.SystemSettingRepository
	AuditRepo    *repositories.AuditLogRepository
	Cfg          *config.Config
}

func NewStatusService(
	lineRepo *repositories.TransferOrderLineRepository,
	orderRepo *repositories.TransferOrderRepository,
	merchantRepo *repositories.EligibleMerchantRepository,
	settingsRepo *repositories.SystemSettingRepository,
	auditRepo *repositories.AuditLogRepository,
	cfg *config.Config,
) *StatusService {
	return &StatusService{
		LineRepo:     lineRepo,
		OrderRepo:    orderRepo,
		MerchantRepo: merchantRepo,
		SettingsRepo: settingsRepo,
		AuditRepo:    auditRepo,
		Cfg:          cfg,
	}
}

// merchantSet loads the eligible-merchant lookup, preferring the cache
func (s *StatusService) merchantSet(ctx context.Context) (map[string]bool, error) {
	if set, ok := cache.GetCachedMerchantSet(ctx); ok {
		return set, nil
	}
	names, err := s.MerchantRepo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible merchants: %w", err)
	}
	cache.CacheMerchantSet(ctx, names)
	return BuildMerchantSet(names), nil
}

// Threshold resolves the days-of-stock threshold for one pass: the caller
// override if given, otherwise the committed setting, otherwise the
// configured default. Read once per call, never mid-pass.
func (s *StatusService) Threshold(ctx context.Context, override *float64) (float64, error) {
	if override != nil {
		if *override < models.DOSThresholdMin || *override > models.DOSThresholdMax {
			return 0, fmt.Errorf("threshold %.2f out of bounds [%v, %v]",
				*override, models.DOSThresholdMin, models.DOSThresholdMax)
		}
		return *override, nil
	}
	return s.SettingsRepo.GetDOSThreshold(ctx, s.Cfg.Engine.DOSThresholdDefault)
}

// Recalculate runs one reconciliation pass over every line still in the
// review pool. Lines past the review stage or manually cancelled never
// reach this loop; the repository filters them out. Safe to run any
// number of times.
func (s *StatusService) Recalculate(ctx context.Context, userID int, thresholdOverride *float64) (int, error) {
	threshold, err := s.Threshold(ctx, thresholdOverride)
	if err != nil {
		return 0, err
	}
	eligible, err := s.merchantSet(ctx)
	if err != nil {
		return 0, err
	}

	candidates, err := s.LineRepo.ListReviewCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list review candidates: %w", err)
	}

	updated := 0
	for _, c := range candidates {
		requires := EvaluateEligibility(c.Merchant, eligible, c.UnitsOnHandPickface, c.AverageDailySales, threshold)
		target := NextReviewStatus(requires)
		if target == c.PreprocessingStatus {
			continue
		}
		changed, err := s.LineRepo.UpdateStatusIfChanged(ctx, c.LineID, target)
		if err != nil {
			return updated, fmt.Errorf("failed to update line %d: %w", c.LineID, err)
		}
		if changed {
			updated++
		}
	}

	metrics.StatusRecalculationsTotal.Add(float64(updated))
	recordAudit(ctx, s.AuditRepo, userID, models.AuditActionSync, "reconciliation", nil,
		map[string]any{"updated_count": updated, "threshold": threshold})
	log.Printf("[Status] Reconciliation pass updated %d lines (threshold %.1f)", updated, threshold)
	return updated, nil
}

// Request moves one line from in review to requested
func (s *StatusService) Request(ctx context.Context, lineID, userID int) error {
	return s.LineRepo.Request(ctx, lineID, userID)
}

// Cancel reverts one requested line to in review
func (s *StatusService) Cancel(ctx context.Context, lineID, userID int) error {
	return s.LineRepo.Cancel(ctx, lineID)
}

// RequestAll applies Request to each supplied line independently. Lines
// not in review are skipped, not errored. Other failures are collected
// per line; everything already applied stays committed.
func (s *StatusService) RequestAll(ctx context.Context, lineIDs []int, userID int) *models.BulkLineResult {
	result := &models.BulkLineResult{}
	for _, id := range lineIDs {
		err := s.LineRepo.Request(ctx, id, userID)
		switch err {
		case nil:
			result.Applied++
		case repositories.ErrNotInReview:
			// not in the requestable state, ignored per contract
		default:
			log.Printf("[Status] Request failed for line %d: %v", id, err)
			result.FailedIDs = append(result.FailedIDs, id)
		}
	}
	return result
}

// CancelAll is the bulk counterpart of Cancel, same per-line semantics
func (s *StatusService) CancelAll(ctx context.Context, lineIDs []int, userID int) *models.BulkLineResult {
	result := &models.BulkLineResult{}
	for _, id := range lineIDs {
		err := s.LineRepo.Cancel(ctx, id)
		switch err {
		case nil:
			result.Applied++
		case repositories.ErrNotRequested:
			// already back in review or past allocation, ignored
		default:
			log.Printf("[Status] Cancel failed for line %d: %v", id, err)
			result.FailedIDs = append(result.FailedIDs, id)
		}
	}
	return result
}

// MarkOrderInProgress flips a requested order to in-progress on the first
// scan. Exactly once: the conditional update makes concurrent first scans
// race safely, and whoever loses just observes the order already moved.
// Returns whether this call won the transition.
func (s *StatusService) MarkOrderInProgress(ctx context.Context, orderID int) (bool, error) {
	won, err := s.OrderRepo.MarkInProgress(ctx, orderID)
	if err != nil {
		return false, err
	}
	if won {
		log.Printf("[Status] Order %d moved to in-progress (first scan)", orderID)
	}
	return won, nil
}

// RefreshOrderStatus re-derives the order aggregate from its lines and
// persists it when it moved.
func (s *StatusService) RefreshOrderStatus(ctx context.Context, orderID int) error {
	order, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	statuses, err := s.LineRepo.ListStatusesByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	derived := DeriveOrderStatus(order.PreprocessingStatus, statuses)
	if derived == order.PreprocessingStatus {
		return nil
	}
	return s.OrderRepo.SetStatus(ctx, orderID, derived)
}

// DeriveOrderStatus computes the order-level aggregate from its line
// statuses. Lines that never required preprocessing do not count; the
// order tracks the least-progressed flagged line. An order already marked
// in-progress is not demoted back to requested while allocation is still
// pending, since the scan flow has opened.
func DeriveOrderStatus(current string, lineStatuses []string) string {
	var inReview, requested, partial, completed int
	for _, st := range lineStatuses {
		switch st {
		case models.StatusInReview:
			inReview++
		case models.StatusRequested, models.StatusInProgress:
			requested++
		case models.StatusPartiallyCompleted:
			partial++
		case models.StatusCompleted:
			completed++
		}
	}

	flagged := inReview + requested + partial + completed
	switch {
	case flagged == 0:
		return models.StatusNotRequired
	case inReview > 0:
		return models.StatusInReview
	case partial == 0 && completed == 0:
		if current == models.StatusInProgress {
			return models.StatusInProgress
		}
		return models.StatusRequested
	case requested == 0 && partial == 0:
		return models.StatusCompleted
	default:
		return models.StatusPartiallyCompleted
	}
}
