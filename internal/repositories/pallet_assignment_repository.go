package repositories

import (
	"context"
	"fmt"

	"preproc-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PalletAssignmentRepository struct {
	DB *pgxpool.Pool
}

func NewPalletAssignmentRepository(db *pgxpool.Pool) *PalletAssignmentRepository {
	return &PalletAssignmentRepository{DB: db}
}

// lockOrder takes the per-order advisory lock inside the transaction.
// Allocation and resequencing on the same order serialize on it, so pallet
// numbers can never be rewritten under a concurrent carton add.
func lockOrder(ctx context.Context, tx pgx.Tx, orderID int) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, orderID)
	return err
}

// AddCarton merges a carton into the (order, pallet, sku) assignment row
// and recomputes the line status from the fresh aggregate, all in one
// transaction. Either both the ledger row and the status commit or neither
// does.
func (r *PalletAssignmentRepository) AddCarton(ctx context.Context, orderID int, sku string, palletNumber, quantity, cartonCount int) (*models.AddCartonResult, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := lockOrder(ctx, tx, orderID); err != nil {
		return nil, err
	}

	// The line must exist, and allocation is only defined once it has
	// left the review pool
	var lineID, unitsIncoming int
	var status string
	err = tx.QueryRow(ctx,
		`SELECT id, units_incoming, preprocessing_status FROM transfer_order_lines
		 WHERE transfer_order_id=$1 AND sku=$2`, orderID, sku).Scan(&lineID, &unitsIncoming, &status)
	if err != nil {
		return nil, ErrLineNotFound
	}
	if !models.IsLockedStatus(status) {
		return nil, ErrLineNotReady
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO pallet_assignments (transfer_order_id, pallet_number, sku, quantity, carton_count)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (transfer_order_id, pallet_number, sku)
		 DO UPDATE SET quantity = pallet_assignments.quantity + EXCLUDED.quantity,
		               carton_count = pallet_assignments.carton_count + EXCLUDED.carton_count,
		               updated_at = NOW()`,
		orderID, palletNumber, sku, quantity, cartonCount)
	if err != nil {
		return nil, fmt.Errorf("failed to record carton: %w", err)
	}

	// Aggregate is always recomputed from the ledger, never cached
	var allocated int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM pallet_assignments
		 WHERE transfer_order_id=$1 AND sku=$2`, orderID, sku).Scan(&allocated)
	if err != nil {
		return nil, err
	}

	newStatus := models.AllocationStatus(allocated, unitsIncoming)

	if newStatus == models.StatusCompleted {
		_, err = tx.Exec(ctx,
			`UPDATE transfer_order_lines
			 SET preprocessing_status=$1, completed_at=NOW(), updated_at=NOW() WHERE id=$2`,
			newStatus, lineID)
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE transfer_order_lines
			 SET preprocessing_status=$1, completed_at=NULL, updated_at=NOW() WHERE id=$2`,
			newStatus, lineID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update line status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.AddCartonResult{
		NewStatus: newStatus,
		Allocated: allocated,
		Expected:  unitsIncoming,
		Variance:  allocated - unitsIncoming,
	}, nil
}

// ClearItem removes every assignment row for the (order, sku) across all
// pallets and resets the line to requested, undoing all progress.
func (r *PalletAssignmentRepository) ClearItem(ctx context.Context, orderID int, sku string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockOrder(ctx, tx, orderID); err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`UPDATE transfer_order_lines
		 SET preprocessing_status=$1, completed_at=NULL, updated_at=NOW()
		 WHERE transfer_order_id=$2 AND sku=$3`,
		models.StatusRequested, orderID, sku)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLineNotFound
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM pallet_assignments WHERE transfer_order_id=$1 AND sku=$2`, orderID, sku)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByOrder returns the raw ledger rows for an order, ordered so callers
// can group them into pallets deterministically.
func (r *PalletAssignmentRepository) ListByOrder(ctx context.Context, orderID int) ([]*models.PalletAssignment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, transfer_order_id, pallet_number, sku, quantity, carton_count, created_at, updated_at
		 FROM pallet_assignments
		 WHERE transfer_order_id=$1
		 ORDER BY pallet_number, sku`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.PalletAssignment
	for rows.Next() {
		var a models.PalletAssignment
		err := rows.Scan(&a.ID, &a.TransferOrderID, &a.PalletNumber, &a.SKU,
			&a.Quantity, &a.CartonCount, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

// Resequence compacts an order's pallets: empty pallets are deleted and the
// remaining ones renumbered 1..N in their original relative order. The
// renumber map comes from the caller (computed from a plan); updates run in
// ascending old-number order, so a row never lands on a number that is
// still occupied. Idempotent: an already-compacted order produces an empty
// plan and nothing is written.
func (r *PalletAssignmentRepository) Resequence(ctx context.Context, orderID int, emptyPallets []int, renumber []models.PalletRenumber) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockOrder(ctx, tx, orderID); err != nil {
		return err
	}

	if len(emptyPallets) > 0 {
		_, err = tx.Exec(ctx,
			`DELETE FROM pallet_assignments
			 WHERE transfer_order_id=$1 AND pallet_number = ANY($2)`, orderID, emptyPallets)
		if err != nil {
			return fmt.Errorf("failed to drop empty pallets: %w", err)
		}
	}

	for _, rn := range renumber {
		_, err = tx.Exec(ctx,
			`UPDATE pallet_assignments SET pallet_number=$1, updated_at=NOW()
			 WHERE transfer_order_id=$2 AND pallet_number=$3`,
			rn.NewNumber, orderID, rn.OldNumber)
		if err != nil {
			return fmt.Errorf("failed to renumber pallet %d: %w", rn.OldNumber, err)
		}
	}

	return tx.Commit(ctx)
}

// ListManifestRows returns the export view of the ledger: barcode,
// quantity and pallet per assignment row. Lines without a known barcode
// fall back to the SKU so the manifest never loses a row.
func (r *PalletAssignmentRepository) ListManifestRows(ctx context.Context, orderID int) ([]*models.ManifestRow, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT COALESCE(NULLIF(s.barcode, ''), a.sku), a.quantity, a.pallet_number
		 FROM pallet_assignments a
		 LEFT JOIN sku_attributes s ON s.sku = a.sku
		 WHERE a.transfer_order_id=$1
		 ORDER BY a.pallet_number, a.sku`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var manifest []*models.ManifestRow
	for rows.Next() {
		var m models.ManifestRow
		if err := rows.Scan(&m.Barcode, &m.Quantity, &m.PalletNumber); err != nil {
			return nil, err
		}
		manifest = append(manifest, &m)
	}
	return manifest, rows.Err()
}
