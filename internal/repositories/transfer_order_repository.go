package repositories

import (
	"context"
	"fmt"

	"preproc-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransferOrderRepository struct {
	DB *pgxpool.Pool
}

func NewTransferOrderRepository(db *pgxpool.Pool) *TransferOrderRepository {
	return &TransferOrderRepository{DB: db}
}

const transferOrderColumns = `id, transfer_number, merchant, external_status, destination,
       estimated_arrival, receipt_time, preprocessing_status, admin_reviewed, created_at, updated_at`

func scanTransferOrder(row interface{ Scan(...any) error }) (*models.TransferOrder, error) {
	var o models.TransferOrder
	err := row.Scan(&o.ID, &o.TransferNumber, &o.Merchant, &o.ExternalStatus, &o.Destination,
		&o.EstimatedArrival, &o.ReceiptTime, &o.PreprocessingStatus, &o.AdminReviewed,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *TransferOrderRepository) Get(ctx context.Context, id int) (*models.TransferOrder, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+transferOrderColumns+` FROM transfer_orders WHERE id=$1`, id)
	return scanTransferOrder(row)
}

func (r *TransferOrderRepository) GetByTransferNumber(ctx context.Context, transferNumber string) (*models.TransferOrder, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+transferOrderColumns+` FROM transfer_orders WHERE transfer_number=$1`, transferNumber)
	return scanTransferOrder(row)
}

// List returns orders, optionally filtered by preprocessing status
func (r *TransferOrderRepository) List(ctx context.Context, status string) ([]*models.TransferOrder, error) {
	query := `SELECT ` + transferOrderColumns + ` FROM transfer_orders`
	args := []any{}
	if status != "" {
		query += ` WHERE preprocessing_status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.TransferOrder
	for rows.Next() {
		o, err := scanTransferOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Upsert creates or refreshes an order by its transfer number. The
// preprocessing status column is never touched here; the status machine
// owns it.
func (r *TransferOrderRepository) Upsert(ctx context.Context, o *models.TransferOrder) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO transfer_orders (transfer_number, merchant, external_status, destination, estimated_arrival, receipt_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (transfer_number)
		DO UPDATE SET merchant = EXCLUDED.merchant,
		              external_status = EXCLUDED.external_status,
		              destination = EXCLUDED.destination,
		              estimated_arrival = EXCLUDED.estimated_arrival,
		              receipt_time = EXCLUDED.receipt_time,
		              updated_at = NOW()
		RETURNING id, preprocessing_status, admin_reviewed, created_at, updated_at`,
		o.TransferNumber, o.Merchant, o.ExternalStatus, o.Destination, o.EstimatedArrival, o.ReceiptTime,
	).Scan(&o.ID, &o.PreprocessingStatus, &o.AdminReviewed, &o.CreatedAt, &o.UpdatedAt)
}

// SetAdminReviewed toggles the manual admin review flag
func (r *TransferOrderRepository) SetAdminReviewed(ctx context.Context, id int, reviewed bool) error {
	result, err := r.DB.Exec(ctx,
		`UPDATE transfer_orders SET admin_reviewed=$1, updated_at=NOW() WHERE id=$2`, reviewed, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transfer order %d not found", id)
	}
	return nil
}

// MarkInProgress flips a requested order to in-progress. The conditional
// WHERE makes the transition exactly-once under concurrent first scans:
// the caller that sees true won the race.
func (r *TransferOrderRepository) MarkInProgress(ctx context.Context, id int) (bool, error) {
	result, err := r.DB.Exec(ctx,
		`UPDATE transfer_orders SET preprocessing_status=$1, updated_at=NOW()
		 WHERE id=$2 AND preprocessing_status=$3`,
		models.StatusInProgress, id, models.StatusRequested)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// SetStatus writes the derived order-level status
func (r *TransferOrderRepository) SetStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE transfer_orders SET preprocessing_status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	return err
}
