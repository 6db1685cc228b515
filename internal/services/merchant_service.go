package services

import (
	"context"
	"errors"

	"preproc-backend/internal/cache"
	"preproc-backend/internal/models"
	"preproc-backend/internal/repositories"
)

// MerchantService manages the eligible-merchant configuration set.
// Writes invalidate the cached set; callers decide when to run a fresh
// reconciliation pass afterwards.
type MerchantService struct {
	Repo *repositories.EligibleMerchantRepository
}

func NewMerchantService(repo *repositories.EligibleMerchantRepository) *MerchantService {
	return &MerchantService{Repo: repo}
}

func (s *MerchantService) ListMerchants(ctx context.Context) ([]*models.EligibleMerchant, error) {
	return s.Repo.List(ctx)
}

func (s *MerchantService) CreateMerchant(ctx context.Context, req *models.CreateMerchantRequest) (*models.EligibleMerchant, error) {
	if req.MerchantName == "" {
		return nil, errors.New("merchant_name is required")
	}
	merchant := &models.EligibleMerchant{
		MerchantName:       req.MerchantName,
		ReserveDestination: req.ReserveDestination,
	}
	if err := s.Repo.Create(ctx, merchant); err != nil {
		return nil, err
	}
	cache.InvalidateMerchantSet(ctx)
	return merchant, nil
}

func (s *MerchantService) DeleteMerchant(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateMerchantSet(ctx)
	return nil
}
