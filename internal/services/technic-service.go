package services

import (
	"context"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/repositories"
	"atolye-takip/pkg/types"

	"go.uber.org/zap"
)

type TechnicServiceInterface interface {
	GetTechnics(ctx context.Context, filter types.Filter) ([]dto.TechnicDTO, uint64, error)
	FindTechnic(ctx context.Context, id uint64) (*dto.TechnicDTO, error)
	CreateTechnic(ctx context.Context, payload dto.CreateTechnicDTO) (*dto.TechnicDTO, error)
	UpdateTechnic(ctx context.Context, id uint64, payload dto.UpdateTechnicDTO) (*dto.TechnicDTO, error)
	DeleteTechnic(ctx context.Context, id uint64) error
}

type TechnicService struct {
	repo   repositories.TechnicRepositoryInterface
	logger *zap.Logger
}

func NewTechnicService(repo repositories.TechnicRepositoryInterface, logger *zap.Logger) TechnicServiceInterface {
	return &TechnicService{repo: repo, logger: logger}
}

func (s *TechnicService) GetTechnics(ctx context.Context, filter types.Filter) ([]dto.TechnicDTO, uint64, error) {
	return s.repo.GetTechnics(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search)
}

func (s *TechnicService) FindTechnic(ctx context.Context, id uint64) (*dto.TechnicDTO, error) {
	return s.repo.FindTechnic(ctx, id)
}

func (s *TechnicService) CreateTechnic(ctx context.Context, payload dto.CreateTechnicDTO) (*dto.TechnicDTO, error) {
	return s.repo.CreateTechnic(ctx, payload)
}

func (s *TechnicService) UpdateTechnic(ctx context.Context, id uint64, payload dto.UpdateTechnicDTO) (*dto.TechnicDTO, error) {
	return s.repo.UpdateTechnic(ctx, id, payload)
}

func (s *TechnicService) DeleteTechnic(ctx context.Context, id uint64) error {
	return s.repo.DeactivateTechnic(ctx, id)
}
