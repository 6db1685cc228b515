package repositories

import (
	"context"
	"fmt"

	"preproc-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EligibleMerchantRepository struct {
	DB *pgxpool.Pool
}

func NewEligibleMerchantRepository(db *pgxpool.Pool) *EligibleMerchantRepository {
	return &EligibleMerchantRepository{DB: db}
}

func (r *EligibleMerchantRepository) List(ctx context.Context) ([]*models.EligibleMerchant, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, merchant_name, reserve_destination, created_at
		 FROM eligible_merchants ORDER BY merchant_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var merchants []*models.EligibleMerchant
	for rows.Next() {
		var m models.EligibleMerchant
		if err := rows.Scan(&m.ID, &m.MerchantName, &m.ReserveDestination, &m.CreatedAt); err != nil {
			return nil, err
		}
		merchants = append(merchants, &m)
	}
	return merchants, rows.Err()
}

// ListNames returns just the merchant names for the eligibility set
func (r *EligibleMerchantRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT merchant_name FROM eligible_merchants`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *EligibleMerchantRepository) Create(ctx context.Context, m *models.EligibleMerchant) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO eligible_merchants (merchant_name, reserve_destination)
		 VALUES ($1, $2)
		 ON CONFLICT (merchant_name)
		 DO UPDATE SET reserve_destination = EXCLUDED.reserve_destination
		 RETURNING id, created_at`,
		m.MerchantName, m.ReserveDestination,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *EligibleMerchantRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.Exec(ctx, `DELETE FROM eligible_merchants WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("eligible merchant %d not found", id)
	}
	return nil
}
