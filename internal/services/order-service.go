package services

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	"atolye-takip/internal/events"
	"atolye-takip/internal/repositories"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/eventbus"
	"atolye-takip/pkg/types"

	"go.uber.org/zap"
)

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error)
	FindOrder(ctx context.Context, id uint64) (*dto.OrderDTO, error)
	CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderDTO, error)
	UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error)
	UpdateOrderStatus(ctx context.Context, id uint64, status string) (*dto.OrderDTO, error)
	AssignOrder(ctx context.Context, id uint64, payload dto.AssignOrderDTO) (*dto.OrderDTO, error)
	DeleteOrder(ctx context.Context, id uint64) error
	GetOrderCosts(ctx context.Context, id uint64) ([]dto.ModelCostDTO, error)
	AddOrderImage(ctx context.Context, id uint64, file *multipart.FileHeader) (*dto.OrderImageDTO, error)
	DeleteOrderImage(ctx context.Context, id, imageID uint64) error
}

type OrderService struct {
	repo         repositories.OrderRepositoryInterface
	costRepo     repositories.ModelCostRepositoryInterface
	workshopRepo repositories.WorkshopRepositoryInterface
	bus          *eventbus.Bus
	uploadDir    string
	logger       *zap.Logger
}

func NewOrderService(repo repositories.OrderRepositoryInterface, costRepo repositories.ModelCostRepositoryInterface,
	workshopRepo repositories.WorkshopRepositoryInterface, bus *eventbus.Bus, uploadDir string, logger *zap.Logger) OrderServiceInterface {
	return &OrderService{repo: repo, costRepo: costRepo, workshopRepo: workshopRepo, bus: bus, uploadDir: uploadDir, logger: logger}
}

func (s *OrderService) GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error) {
	return s.repo.GetOrders(ctx, filter)
}

func (s *OrderService) FindOrder(ctx context.Context, id uint64) (*dto.OrderDTO, error) {
	return s.repo.FindOrder(ctx, id)
}

func (s *OrderService) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderDTO, error) {
	order, err := s.repo.CreateOrder(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.BoardChanged{Reason: "order_created"})
	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error) {
	order, err := s.repo.UpdateOrder(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.BoardChanged{Reason: "order_updated"})
	return order, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint64, status string) (*dto.OrderDTO, error) {
	newStatus := entities.OrderStatus(status)
	if !newStatus.Valid() {
		return nil, apperrors.ErrInvalidStatusChange
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.BoardChanged{Reason: "status_changed"})
	return s.repo.FindOrder(ctx, id)
}

// AssignOrder moves an order into a workshop directly, outside the transfer
// wizard. When no status is given the workshop decides: terminal workshops
// complete the order, the rest put it in progress.
func (s *OrderService) AssignOrder(ctx context.Context, id uint64, payload dto.AssignOrderDTO) (*dto.OrderDTO, error) {
	workshop, err := s.workshopRepo.FindWorkshop(ctx, payload.WorkshopID)
	if err != nil {
		return nil, err
	}

	newStatus := workshop.TransferStatus()
	if payload.Status != nil {
		newStatus = entities.OrderStatus(*payload.Status)
		if !newStatus.Valid() {
			return nil, apperrors.ErrInvalidStatusChange
		}
	}

	if err := s.repo.AssignOrder(ctx, id, workshop.ID, payload.UserID, newStatus); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.BoardChanged{Reason: "order_assigned"})
	return s.repo.FindOrder(ctx, id)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint64) error {
	if err := s.repo.DeactivateOrder(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(ctx, events.BoardChanged{Reason: "order_removed"})
	return nil
}

func (s *OrderService) GetOrderCosts(ctx context.Context, id uint64) ([]dto.ModelCostDTO, error) {
	if _, err := s.repo.FindOrder(ctx, id); err != nil {
		return nil, err
	}
	return s.costRepo.GetOrderCosts(ctx, id)
}

func (s *OrderService) AddOrderImage(ctx context.Context, id uint64, file *multipart.FileHeader) (*dto.OrderImageDTO, error) {
	if _, err := s.repo.FindOrder(ctx, id); err != nil {
		return nil, err
	}

	path, err := saveUpload(file, filepath.Join(s.uploadDir, "orders"))
	if err != nil {
		s.logger.Error("order image upload failed", zap.Uint64("order_id", id), zap.Error(err))
		return nil, err
	}
	return s.repo.AddOrderImage(ctx, id, path, file.Filename)
}

func (s *OrderService) DeleteOrderImage(ctx context.Context, id, imageID uint64) error {
	path, err := s.repo.DeleteOrderImage(ctx, id, imageID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		// The row is gone; an orphaned file is only worth a log line.
		s.logger.Warn("removing image file failed", zap.String("path", path), zap.Error(err))
	}
	return nil
}
