package services

import (
	"context"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/repositories"
	"atolye-takip/pkg/types"

	"go.uber.org/zap"
)

type CostItemServiceInterface interface {
	GetCostItems(ctx context.Context, filter types.Filter) ([]dto.CostItemDTO, uint64, error)
	FindCostItem(ctx context.Context, id uint64) (*dto.CostItemDTO, error)
	CreateCostItem(ctx context.Context, payload dto.CreateCostItemDTO) (*dto.CostItemDTO, error)
	UpdateCostItem(ctx context.Context, id uint64, payload dto.UpdateCostItemDTO) (*dto.CostItemDTO, error)
	DeleteCostItem(ctx context.Context, id uint64) error
}

type CostItemService struct {
	repo   repositories.CostItemRepositoryInterface
	logger *zap.Logger
}

func NewCostItemService(repo repositories.CostItemRepositoryInterface, logger *zap.Logger) CostItemServiceInterface {
	return &CostItemService{repo: repo, logger: logger}
}

func (s *CostItemService) GetCostItems(ctx context.Context, filter types.Filter) ([]dto.CostItemDTO, uint64, error) {
	return s.repo.GetCostItems(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search)
}

func (s *CostItemService) FindCostItem(ctx context.Context, id uint64) (*dto.CostItemDTO, error) {
	return s.repo.FindCostItem(ctx, id)
}

func (s *CostItemService) CreateCostItem(ctx context.Context, payload dto.CreateCostItemDTO) (*dto.CostItemDTO, error) {
	return s.repo.CreateCostItem(ctx, payload)
}

func (s *CostItemService) UpdateCostItem(ctx context.Context, id uint64, payload dto.UpdateCostItemDTO) (*dto.CostItemDTO, error) {
	return s.repo.UpdateCostItem(ctx, id, payload)
}

func (s *CostItemService) DeleteCostItem(ctx context.Context, id uint64) error {
	return s.repo.DeactivateCostItem(ctx, id)
}

type WorkshopCostItemServiceInterface interface {
	GetWorkshopCostItems(ctx context.Context, workshopID uint64, filter types.Filter) ([]dto.WorkshopCostItemDTO, uint64, error)
	FindWorkshopCostItem(ctx context.Context, id uint64) (*dto.WorkshopCostItemDTO, error)
	CreateWorkshopCostItem(ctx context.Context, payload dto.CreateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error)
	UpdateWorkshopCostItem(ctx context.Context, id uint64, payload dto.UpdateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error)
	DeleteWorkshopCostItem(ctx context.Context, id uint64) error
}

type WorkshopCostItemService struct {
	repo   repositories.WorkshopCostItemRepositoryInterface
	logger *zap.Logger
}

func NewWorkshopCostItemService(repo repositories.WorkshopCostItemRepositoryInterface, logger *zap.Logger) WorkshopCostItemServiceInterface {
	return &WorkshopCostItemService{repo: repo, logger: logger}
}

func (s *WorkshopCostItemService) GetWorkshopCostItems(ctx context.Context, workshopID uint64, filter types.Filter) ([]dto.WorkshopCostItemDTO, uint64, error) {
	return s.repo.GetWorkshopCostItems(ctx, workshopID, uint64(filter.Limit), uint64(filter.Offset))
}

func (s *WorkshopCostItemService) FindWorkshopCostItem(ctx context.Context, id uint64) (*dto.WorkshopCostItemDTO, error) {
	return s.repo.FindWorkshopCostItem(ctx, id)
}

func (s *WorkshopCostItemService) CreateWorkshopCostItem(ctx context.Context, payload dto.CreateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error) {
	return s.repo.CreateWorkshopCostItem(ctx, payload)
}

func (s *WorkshopCostItemService) UpdateWorkshopCostItem(ctx context.Context, id uint64, payload dto.UpdateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error) {
	return s.repo.UpdateWorkshopCostItem(ctx, id, payload)
}

func (s *WorkshopCostItemService) DeleteWorkshopCostItem(ctx context.Context, id uint64) error {
	return s.repo.DeactivateWorkshopCostItem(ctx, id)
}
