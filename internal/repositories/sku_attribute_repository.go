package repositories

import (
	"context"

	"preproc-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SkuAttributeRepository struct {
	DB *pgxpool.Pool
}

func NewSkuAttributeRepository(db *pgxpool.Pool) *SkuAttributeRepository {
	return &SkuAttributeRepository{DB: db}
}

func (r *SkuAttributeRepository) GetBySKU(ctx context.Context, sku string) (*models.SkuAttribute, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, sku, description, barcode, units_on_hand_pickface, average_daily_sales, created_at, updated_at
		 FROM sku_attributes WHERE sku=$1`, sku)

	var s models.SkuAttribute
	err := row.Scan(&s.ID, &s.SKU, &s.Description, &s.Barcode,
		&s.UnitsOnHandPickface, &s.AverageDailySales, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByBarcode resolves a scanned barcode to its SKU record
func (r *SkuAttributeRepository) GetByBarcode(ctx context.Context, barcode string) (*models.SkuAttribute, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, sku, description, barcode, units_on_hand_pickface, average_daily_sales, created_at, updated_at
		 FROM sku_attributes WHERE barcode=$1`, barcode)

	var s models.SkuAttribute
	err := row.Scan(&s.ID, &s.SKU, &s.Description, &s.Barcode,
		&s.UnitsOnHandPickface, &s.AverageDailySales, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert creates or refreshes a SKU record by its natural key
func (r *SkuAttributeRepository) Upsert(ctx context.Context, s *models.SkuAttribute) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO sku_attributes (sku, description, barcode, units_on_hand_pickface, average_daily_sales)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (sku)
		DO UPDATE SET description = EXCLUDED.description,
		              barcode = EXCLUDED.barcode,
		              units_on_hand_pickface = EXCLUDED.units_on_hand_pickface,
		              average_daily_sales = EXCLUDED.average_daily_sales,
		              updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		s.SKU, s.Description, s.Barcode, s.UnitsOnHandPickface, s.AverageDailySales,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}
