package services

import (
	"context"
	"encoding/json"
	"log"

	"preproc-backend/internal/models"
	"preproc-backend/internal/repositories"
)

// recordAudit writes one audit event. Fire-and-forget: an audit failure
// is logged and never propagated to the primary operation.
func recordAudit(ctx context.Context, repo *repositories.AuditLogRepository, userID int, action, entityType string, entityID *int, detail map[string]any) {
	payload, err := json.Marshal(detail)
	if err != nil {
		payload = []byte("{}")
	}
	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     string(payload),
	}
	if err := repo.Create(ctx, entry); err != nil {
		log.Printf("[Audit] Failed to record %s: %v", action, err)
	}
}
