package services

import (
	"context"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/repositories"
	"atolye-takip/pkg/types"

	"go.uber.org/zap"
)

type FirmServiceInterface interface {
	GetFirms(ctx context.Context, filter types.Filter) ([]dto.FirmDTO, uint64, error)
	FindFirm(ctx context.Context, id uint64) (*dto.FirmDTO, error)
	CreateFirm(ctx context.Context, payload dto.CreateFirmDTO) (*dto.FirmDTO, error)
	UpdateFirm(ctx context.Context, id uint64, payload dto.UpdateFirmDTO) (*dto.FirmDTO, error)
	DeleteFirm(ctx context.Context, id uint64) error
}

type FirmService struct {
	repo   repositories.FirmRepositoryInterface
	logger *zap.Logger
}

func NewFirmService(repo repositories.FirmRepositoryInterface, logger *zap.Logger) FirmServiceInterface {
	return &FirmService{repo: repo, logger: logger}
}

func (s *FirmService) GetFirms(ctx context.Context, filter types.Filter) ([]dto.FirmDTO, uint64, error) {
	return s.repo.GetFirms(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search)
}

func (s *FirmService) FindFirm(ctx context.Context, id uint64) (*dto.FirmDTO, error) {
	return s.repo.FindFirm(ctx, id)
}

func (s *FirmService) CreateFirm(ctx context.Context, payload dto.CreateFirmDTO) (*dto.FirmDTO, error) {
	return s.repo.CreateFirm(ctx, payload)
}

func (s *FirmService) UpdateFirm(ctx context.Context, id uint64, payload dto.UpdateFirmDTO) (*dto.FirmDTO, error) {
	return s.repo.UpdateFirm(ctx, id, payload)
}

func (s *FirmService) DeleteFirm(ctx context.Context, id uint64) error {
	return s.repo.DeactivateFirm(ctx, id)
}
