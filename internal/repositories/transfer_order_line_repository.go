package repositories

import (
	"context"
	"fmt"

	"preproc-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransferOrderLineRepository struct {
	DB *pgxpool.Pool
}

func NewTransferOrderLineRepository(db *pgxpool.Pool) *TransferOrderLineRepository {
	return &TransferOrderLineRepository{DB: db}
}

func (r *TransferOrderLineRepository) Get(ctx context.Context, id int) (*models.TransferOrderLine, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT l.id, l.transfer_order_id, l.sku, l.units_incoming,
		        COALESCE((SELECT SUM(quantity) FROM pallet_assignments
		                  WHERE transfer_order_id = l.transfer_order_id AND sku = l.sku), 0) as allocated_quantity,
		        l.preprocessing_status, l.manually_cancelled, l.auto_requested,
		        l.requested_by_user_id, l.requested_at, l.completed_at, l.created_at, l.updated_at
		 FROM transfer_order_lines l WHERE l.id=$1`, id)

	var l models.TransferOrderLine
	err := row.Scan(&l.ID, &l.TransferOrderID, &l.SKU, &l.UnitsIncoming, &l.AllocatedQuantity,
		&l.PreprocessingStatus, &l.ManuallyCancelled, &l.AutoRequested,
		&l.RequestedByUserID, &l.RequestedAt, &l.CompletedAt, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, ErrLineNotFound
	}
	return &l, nil
}

// ListByOrder returns an order's lines with live allocated totals and the
// SKU metadata the review screen shows. Allocated quantity is always
// recomputed from the ledger, never read from a counter.
func (r *TransferOrderLineRepository) ListByOrder(ctx context.Context, orderID int) ([]*models.TransferOrderLine, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT l.id, l.transfer_order_id, l.sku, l.units_incoming,
		        COALESCE(pa.total_qty, 0) as allocated_quantity,
		        l.preprocessing_status, l.manually_cancelled, l.auto_requested,
		        l.requested_by_user_id, l.requested_at, l.completed_at, l.created_at, l.updated_at,
		        COALESCE(s.description, '') as description, COALESCE(s.barcode, '') as barcode,
		        COALESCE(s.units_on_hand_pickface, 0), COALESCE(s.average_daily_sales, 0)
		 FROM transfer_order_lines l
		 LEFT JOIN (
		     SELECT transfer_order_id, sku, SUM(quantity) as total_qty
		     FROM pallet_assignments
		     GROUP BY transfer_order_id, sku
		 ) pa ON pa.transfer_order_id = l.transfer_order_id AND pa.sku = l.sku
		 LEFT JOIN sku_attributes s ON s.sku = l.sku
		 WHERE l.transfer_order_id=$1
		 ORDER BY l.sku`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.TransferOrderLine
	for rows.Next() {
		var l models.TransferOrderLine
		var unitsOnHand int
		var avgDailySales float64
		err := rows.Scan(&l.ID, &l.TransferOrderID, &l.SKU, &l.UnitsIncoming, &l.AllocatedQuantity,
			&l.PreprocessingStatus, &l.ManuallyCancelled, &l.AutoRequested,
			&l.RequestedByUserID, &l.RequestedAt, &l.CompletedAt, &l.CreatedAt, &l.UpdatedAt,
			&l.Description, &l.Barcode, &unitsOnHand, &avgDailySales)
		if err != nil {
			return nil, err
		}
		l.DaysOfStock = models.DaysOfStock(unitsOnHand, avgDailySales)
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListStatusesByOrder returns just the status column for an order's lines,
// used when deriving the order-level aggregate.
func (r *TransferOrderLineRepository) ListStatusesByOrder(ctx context.Context, orderID int) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT preprocessing_status FROM transfer_order_lines WHERE transfer_order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

// ListReviewCandidates returns every line the reconciliation pass may
// reclassify: not past the review stage and not manually cancelled, joined
// with the merchant and stock data the eligibility rule needs.
func (r *TransferOrderLineRepository) ListReviewCandidates(ctx context.Context) ([]*models.ReviewCandidate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT l.id, o.merchant, l.preprocessing_status,
		        COALESCE(s.units_on_hand_pickface, 0), COALESCE(s.average_daily_sales, 0)
		 FROM transfer_order_lines l
		 JOIN transfer_orders o ON o.id = l.transfer_order_id
		 LEFT JOIN sku_attributes s ON s.sku = l.sku
		 WHERE l.preprocessing_status IN ($1, $2)
		   AND l.manually_cancelled = FALSE`,
		models.StatusNotRequired, models.StatusInReview)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*models.ReviewCandidate
	for rows.Next() {
		var c models.ReviewCandidate
		err := rows.Scan(&c.LineID, &c.Merchant, &c.PreprocessingStatus,
			&c.UnitsOnHandPickface, &c.AverageDailySales)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, &c)
	}
	return candidates, rows.Err()
}

// UpdateStatusIfChanged writes the recomputed status only when it differs,
// so repeated reconciliation passes are no-ops. Returns whether a row changed.
func (r *TransferOrderLineRepository) UpdateStatusIfChanged(ctx context.Context, id int, status string) (bool, error) {
	result, err := r.DB.Exec(ctx,
		`UPDATE transfer_order_lines SET preprocessing_status=$1, updated_at=NOW()
		 WHERE id=$2 AND preprocessing_status <> $1`, status, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// Request moves a line from in review to requested, recording who asked.
// Lines in any other state are left untouched and reported as a conflict.
func (r *TransferOrderLineRepository) Request(ctx context.Context, id, userID int) error {
	result, err := r.DB.Exec(ctx,
		`UPDATE transfer_order_lines
		 SET preprocessing_status=$1, auto_requested=FALSE, requested_by_user_id=$2, requested_at=NOW(), updated_at=NOW()
		 WHERE id=$3 AND preprocessing_status=$4`,
		models.StatusRequested, userID, id, models.StatusInReview)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotInReview
	}
	return nil
}

// Cancel reverts a requested line to in review, clearing attribution.
// Only valid from requested; anything else is a state conflict.
func (r *TransferOrderLineRepository) Cancel(ctx context.Context, id int) error {
	result, err := r.DB.Exec(ctx,
		`UPDATE transfer_order_lines
		 SET preprocessing_status=$1, requested_by_user_id=NULL, requested_at=NULL, updated_at=NOW()
		 WHERE id=$2 AND preprocessing_status=$3`,
		models.StatusInReview, id, models.StatusRequested)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotRequested
	}
	return nil
}

// SetManuallyCancelled marks a line so automatic re-flagging skips it
func (r *TransferOrderLineRepository) SetManuallyCancelled(ctx context.Context, id int, cancelled bool) error {
	result, err := r.DB.Exec(ctx,
		`UPDATE transfer_order_lines SET manually_cancelled=$1, updated_at=NOW() WHERE id=$2`, cancelled, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

// GetByOrderAndSKU looks up a line by its natural key
func (r *TransferOrderLineRepository) GetByOrderAndSKU(ctx context.Context, orderID int, sku string) (*models.TransferOrderLine, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT l.id, l.transfer_order_id, l.sku, l.units_incoming,
		        COALESCE((SELECT SUM(quantity) FROM pallet_assignments
		                  WHERE transfer_order_id = l.transfer_order_id AND sku = l.sku), 0) as allocated_quantity,
		        l.preprocessing_status, l.manually_cancelled, l.auto_requested,
		        l.requested_by_user_id, l.requested_at, l.completed_at, l.created_at, l.updated_at
		 FROM transfer_order_lines l
		 WHERE l.transfer_order_id=$1 AND l.sku=$2`, orderID, sku)

	var l models.TransferOrderLine
	err := row.Scan(&l.ID, &l.TransferOrderID, &l.SKU, &l.UnitsIncoming, &l.AllocatedQuantity,
		&l.PreprocessingStatus, &l.ManuallyCancelled, &l.AutoRequested,
		&l.RequestedByUserID, &l.RequestedAt, &l.CompletedAt, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, ErrLineNotFound
	}
	return &l, nil
}

// Create inserts a new line with its initial computed status
func (r *TransferOrderLineRepository) Create(ctx context.Context, l *models.TransferOrderLine) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO transfer_order_lines (transfer_order_id, sku, units_incoming, preprocessing_status, auto_requested)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		l.TransferOrderID, l.SKU, l.UnitsIncoming, l.PreprocessingStatus, l.AutoRequested,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// UpdateFromImport refreshes a line during import. When preserveStatus is
// set (line already past the review stage) only units_incoming moves; the
// status and sticky flags survive verbatim.
func (r *TransferOrderLineRepository) UpdateFromImport(ctx context.Context, id int, unitsIncoming int, status string, preserveStatus bool) error {
	if preserveStatus {
		_, err := r.DB.Exec(ctx,
			`UPDATE transfer_order_lines SET units_incoming=$1, updated_at=NOW() WHERE id=$2`,
			unitsIncoming, id)
		return err
	}
	_, err := r.DB.Exec(ctx,
		`UPDATE transfer_order_lines SET units_incoming=$1, preprocessing_status=$2, updated_at=NOW() WHERE id=$3`,
		unitsIncoming, status, id)
	return err
}

// CountOutstanding returns how many of an order's lines are still working
// through allocation (requested or partially completed).
func (r *TransferOrderLineRepository) CountOutstanding(ctx context.Context, orderID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM transfer_order_lines
		 WHERE transfer_order_id=$1 AND preprocessing_status IN ($2, $3)`,
		orderID, models.StatusRequested, models.StatusPartiallyCompleted).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count outstanding lines: %w", err)
	}
	return count, nil
}

// ListVariances reports every line whose allocated total differs from the
// expected quantity. Lines with zero allocations are excluded: a cleared
// or untouched line sits back in the request pool, so its gap is pending
// work, not a shortfall. Read-only; used by import reporting.
func (r *TransferOrderLineRepository) ListVariances(ctx context.Context, orderIDs []int) ([]*models.LineVariance, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(ctx,
		`SELECT o.transfer_number, l.sku, l.units_incoming, COALESCE(pa.total_qty, 0)
		 FROM transfer_order_lines l
		 JOIN transfer_orders o ON o.id = l.transfer_order_id
		 LEFT JOIN (
		     SELECT transfer_order_id, sku, SUM(quantity) as total_qty
		     FROM pallet_assignments
		     GROUP BY transfer_order_id, sku
		 ) pa ON pa.transfer_order_id = l.transfer_order_id AND pa.sku = l.sku
		 WHERE l.transfer_order_id = ANY($1)
		   AND COALESCE(pa.total_qty, 0) <> l.units_incoming
		   AND COALESCE(pa.total_qty, 0) > 0`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variances []*models.LineVariance
	for rows.Next() {
		var v models.LineVariance
		if err := rows.Scan(&v.TransferNumber, &v.SKU, &v.Expected, &v.Assigned); err != nil {
			return nil, err
		}
		v.Delta = v.Assigned - v.Expected
		variances = append(variances, &v)
	}
	return variances, rows.Err()
}
