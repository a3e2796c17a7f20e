package services

import (
	"context"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	"atolye-takip/internal/repositories"
	"atolye-takip/pkg/utils"

	"go.uber.org/zap"
)

type WorkshopServiceInterface interface {
	GetWorkshops(ctx context.Context, onlyActive bool) ([]dto.WorkshopDTO, error)
	FindWorkshop(ctx context.Context, id uint64) (*dto.WorkshopDTO, error)
	CreateWorkshop(ctx context.Context, payload dto.CreateWorkshopDTO) (*dto.WorkshopDTO, error)
	UpdateWorkshop(ctx context.Context, id uint64, payload dto.UpdateWorkshopDTO) (*dto.WorkshopDTO, error)
	DeleteWorkshop(ctx context.Context, id uint64) error
}

type WorkshopService struct {
	repo   repositories.WorkshopRepositoryInterface
	logger *zap.Logger
}

func NewWorkshopService(repo repositories.WorkshopRepositoryInterface, logger *zap.Logger) WorkshopServiceInterface {
	return &WorkshopService{repo: repo, logger: logger}
}

func workshopToDTO(w entities.Workshop) dto.WorkshopDTO {
	workshopDTO := dto.WorkshopDTO{
		ID:          w.ID,
		Name:        w.Name,
		Location:    w.Location,
		ContactName: w.ContactName,
		Phone:       w.Phone,
		IsTerminal:  w.IsTerminal(),
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}
	if w.UpdatedAt != nil {
		workshopDTO.UpdatedAt = w.UpdatedAt.Local().Format("2006-01-02 15:04:05")
	}
	return workshopDTO
}

func (s *WorkshopService) GetWorkshops(ctx context.Context, onlyActive bool) ([]dto.WorkshopDTO, error) {
	workshops, err := s.repo.GetWorkshops(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkshopDTO, 0, len(workshops))
	for _, w := range workshops {
		out = append(out, workshopToDTO(w))
	}
	return out, nil
}

func (s *WorkshopService) FindWorkshop(ctx context.Context, id uint64) (*dto.WorkshopDTO, error) {
	workshop, err := s.repo.FindWorkshop(ctx, id)
	if err != nil {
		return nil, err
	}
	return utils.Ptr(workshopToDTO(*workshop)), nil
}

func (s *WorkshopService) CreateWorkshop(ctx context.Context, payload dto.CreateWorkshopDTO) (*dto.WorkshopDTO, error) {
	workshop, err := s.repo.CreateWorkshop(ctx, payload.Name, payload.Location, payload.ContactName, payload.Phone)
	if err != nil {
		return nil, err
	}
	return utils.Ptr(workshopToDTO(*workshop)), nil
}

func (s *WorkshopService) UpdateWorkshop(ctx context.Context, id uint64, payload dto.UpdateWorkshopDTO) (*dto.WorkshopDTO, error) {
	workshop, err := s.repo.UpdateWorkshop(ctx, id, payload.Name, payload.Location, payload.ContactName, payload.Phone, payload.IsActive)
	if err != nil {
		return nil, err
	}
	return utils.Ptr(workshopToDTO(*workshop)), nil
}

func (s *WorkshopService) DeleteWorkshop(ctx context.Context, id uint64) error {
	return s.repo.DeactivateWorkshop(ctx, id)
}
