package services

import (
	"context"
	"fmt"
	"strconv"

	"preproc-backend/internal/models"
	"preproc-backend/internal/repositories"
)

type SystemSettingService struct {
	Repo *repositories.SystemSettingRepository
}

func NewSystemSettingService(repo *repositories.SystemSettingRepository) *SystemSettingService {
	return &SystemSettingService{Repo: repo}
}

func (s *SystemSettingService) GetSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	return s.Repo.Get(ctx, key)
}

func (s *SystemSettingService) ListSettings(ctx context.Context) ([]*models.SystemSetting, error) {
	return s.Repo.List(ctx)
}

// UpdateSetting validates and persists one setting. The days-of-stock
// threshold is bounds-checked; a new value affects future reconciliation
// passes only, never lines already past the requested stage.
func (s *SystemSettingService) UpdateSetting(ctx context.Context, key string, value string, userID int) error {
	if key == models.SettingDOSThreshold {
		threshold, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("threshold must be numeric: %w", err)
		}
		if threshold < models.DOSThresholdMin || threshold > models.DOSThresholdMax {
			return fmt.Errorf("threshold %.2f out of bounds [%v, %v]",
				threshold, models.DOSThresholdMin, models.DOSThresholdMax)
		}
	}
	return s.Repo.Update(ctx, key, value, userID)
}

// UpsertSetting creates or updates a setting
func (s *SystemSettingService) UpsertSetting(ctx context.Context, key string, value string, description string, userID int) error {
	return s.Repo.Upsert(ctx, key, value, description, userID)
}
