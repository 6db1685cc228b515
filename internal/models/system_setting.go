package models

import "time"

// Setting keys
const (
	SettingDOSThreshold = "dos_threshold"
)

// Bounds for the operator-configurable days-of-stock threshold
const (
	DOSThresholdMin = 1.0
	DOSThresholdMax = 60.0
)

type SystemSetting struct {
	ID              int       `json:"id"`
	SettingKey      string    `json:"setting_key"`
	SettingValue    string    `json:"setting_value"`
	Description     string    `json:"description"`
	UpdatedAt       time.Time `json:"updated_at"`
	UpdatedByUserID int       `json:"updated_by_user_id"`
}

// UpdateSettingRequest represents the request body for updating a setting
type UpdateSettingRequest struct {
	SettingValue string `json:"setting_value"`
}
