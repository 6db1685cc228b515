package repositories

import (
	"context"

	"preproc-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditLogRepository struct {
	DB *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

// Create records an engine action. Callers treat this as fire-and-forget:
// an audit failure never blocks the primary operation.
func (r *AuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO audit_logs (user_id, action, entity_type, entity_id, detail)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.UserID, entry.Action, entry.EntityType, entry.EntityID, entry.Detail)
	return err
}

func (r *AuditLogRepository) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, action, entity_type, entity_id, COALESCE(detail::text, ''), created_at
		 FROM audit_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID, &l.Detail, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
