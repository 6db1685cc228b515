package models

import "time"

// Audit action names emitted by the engine
const (
	AuditActionSync           = "sync"
	AuditActionCSVUpload      = "csv_upload"
	AuditActionAssignPallets  = "assign_pallets"
	AuditActionCleanupPallets = "cleanup_pallets"
	AuditActionGenerateLabel  = "generate_label"
)

type AuditLog struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   *int      `json:"entity_id,omitempty"`
	Detail     string    `json:"detail,omitempty"` // JSON payload
	CreatedAt  time.Time `json:"created_at"`
}
