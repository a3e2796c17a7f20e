package services

import (
	"context"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	"atolye-takip/internal/repositories"

	"go.uber.org/zap"
)

type ModelCostServiceInterface interface {
	CreateModelCost(ctx context.Context, payload dto.CreateModelCostDTO) (*dto.ModelCostDTO, error)
}

// ModelCostService covers direct cost-record entry outside the transfer
// wizard, for corrections and records noticed after the fact.
type ModelCostService struct {
	repo      repositories.ModelCostRepositoryInterface
	orderRepo repositories.OrderRepositoryInterface
	logger    *zap.Logger
}

func NewModelCostService(repo repositories.ModelCostRepositoryInterface, orderRepo repositories.OrderRepositoryInterface,
	logger *zap.Logger) ModelCostServiceInterface {
	return &ModelCostService{repo: repo, orderRepo: orderRepo, logger: logger}
}

func (s *ModelCostService) CreateModelCost(ctx context.Context, payload dto.CreateModelCostDTO) (*dto.ModelCostDTO, error) {
	if _, err := s.orderRepo.FindOrder(ctx, payload.OrderID); err != nil {
		return nil, err
	}
	return s.repo.CreateModelCost(ctx, entities.ModelCost{
		OrderID:      payload.OrderID,
		WorkshopID:   payload.WorkshopID,
		CostItemID:   payload.CostItemID,
		QuantityUsed: payload.QuantityUsed,
		Quantity2:    payload.Quantity2,
		Unit:         payload.Unit,
		Unit2:        payload.Unit2,
		ActualPrice:  payload.ActualPrice,
		Currency:     payload.Currency,
		TotalCost:    payload.TotalCost,
		Note:         payload.Note,
	})
}
