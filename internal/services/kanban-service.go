package services

import (
	"context"
	"fmt"
	"sync"

	"atolye-takip/internal/board"
	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	"atolye-takip/internal/events"
	"atolye-takip/internal/repositories"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/eventbus"
	"atolye-takip/pkg/types"

	"go.uber.org/zap"
)

const (
	BoardModeStatus   = "status"
	BoardModeWorkshop = "workshop"
)

// statusColumns is the fixed column layout of the status board.
var statusColumns = []struct {
	Status entities.OrderStatus
	Title  string
}{
	{entities.StatusUnassigned, "Unassigned"},
	{entities.StatusInProgress, "In Progress"},
	{entities.StatusCancelled, "Cancelled"},
	{entities.StatusCompleted, "Completed"},
}

type KanbanServiceInterface interface {
	Reload(ctx context.Context) error
	Board(ctx context.Context, mode string) (*dto.BoardDTO, error)
	Move(ctx context.Context, userID uint64, payload dto.MoveOrderDTO) (*dto.MoveResultDTO, error)
}

// KanbanService runs the two board views. Each view has its own store and
// its own gesture coordinator, so a drag on the status board never blocks
// the workshop board.
type KanbanService struct {
	orderRepo    repositories.OrderRepositoryInterface
	workshopRepo repositories.WorkshopRepositoryInterface
	rates        ExchangeRateServiceInterface
	transfers    TransferServiceInterface
	bus          *eventbus.Bus
	baseCurrency string
	logger       *zap.Logger

	statusStore   *board.Store
	workshopStore *board.Store
	statusCoord   *board.Coordinator
	workshopCoord *board.Coordinator

	mu       sync.Mutex
	dtoIndex map[uint64]dto.OrderDTO
	loaded   bool
}

func NewKanbanService(orderRepo repositories.OrderRepositoryInterface, workshopRepo repositories.WorkshopRepositoryInterface,
	rates ExchangeRateServiceInterface, transfers TransferServiceInterface, bus *eventbus.Bus,
	baseCurrency string, logger *zap.Logger) *KanbanService {

	statusStore := board.NewStore()
	workshopStore := board.NewStore()

	return &KanbanService{
		orderRepo:     orderRepo,
		workshopRepo:  workshopRepo,
		rates:         rates,
		transfers:     transfers,
		bus:           bus,
		baseCurrency:  baseCurrency,
		logger:        logger,
		statusStore:   statusStore,
		workshopStore: workshopStore,
		statusCoord:   board.NewCoordinator(statusStore, board.ModeStatus),
		workshopCoord: board.NewCoordinator(workshopStore, board.ModeWorkshop),
		dtoIndex:      make(map[uint64]dto.OrderDTO),
	}
}

// Reload replaces both stores with a fresh order list. On load failure the
// stores keep serving the previous list.
func (s *KanbanService) Reload(ctx context.Context) error {
	orders, err := s.orderRepo.GetBoardOrders(ctx)
	if err != nil {
		s.logger.Error("board reload failed", zap.Error(err))
		return err
	}
	dtos, _, err := s.orderRepo.GetOrders(ctx, types.Filter{})
	if err != nil {
		s.logger.Error("board reload failed", zap.Error(err))
		return err
	}

	index := make(map[uint64]dto.OrderDTO, len(dtos))
	for _, d := range dtos {
		index[d.ID] = d
	}

	s.statusStore.Replace(orders)
	s.workshopStore.Replace(orders)

	s.mu.Lock()
	s.dtoIndex = index
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *KanbanService) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.Reload(ctx)
}

func (s *KanbanService) storeFor(mode string) (*board.Store, *board.Coordinator, error) {
	switch mode {
	case BoardModeStatus:
		return s.statusStore, s.statusCoord, nil
	case BoardModeWorkshop:
		return s.workshopStore, s.workshopCoord, nil
	}
	return nil, nil, apperrors.NewInvalidInputError("unknown board mode %q", mode)
}

// cardDTO renders one order as a board card, taking names from the indexed
// DTO but status/workshop from the store, which may be ahead of the index
// during an optimistic update.
func (s *KanbanService) cardDTO(o entities.Order) dto.OrderDTO {
	s.mu.Lock()
	card, ok := s.dtoIndex[o.ID]
	s.mu.Unlock()
	if !ok {
		card = dto.OrderDTO{ID: o.ID, Quantity: o.Quantity, Unit: o.Unit, Price: o.Price, Currency: o.Currency}
	}
	card.Status = string(o.Status)
	if o.WorkshopID == nil {
		card.Workshop = nil
	}
	return card
}

func (s *KanbanService) cards(orders []entities.Order) []dto.OrderDTO {
	out := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, s.cardDTO(o))
	}
	return out
}

// Board builds the requested view with converted column totals.
func (s *KanbanService) Board(ctx context.Context, mode string) (*dto.BoardDTO, error) {
	store, _, err := s.storeFor(mode)
	if err != nil {
		return nil, err
	}
	// A reload failure is tolerated: the board renders from the last
	// successfully loaded list.
	if err := s.Reload(ctx); err != nil {
		s.mu.Lock()
		loaded := s.loaded
		s.mu.Unlock()
		if !loaded {
			return nil, err
		}
	}

	rates, err := s.rates.Rates(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.BoardDTO{Mode: mode, Columns: []dto.BoardColumnDTO{}}

	if mode == BoardModeStatus {
		for _, col := range statusColumns {
			orders := store.ByStatus(col.Status)
			out.Columns = append(out.Columns, dto.BoardColumnDTO{
				Key:      string(col.Status),
				Title:    col.Title,
				Status:   string(col.Status),
				Orders:   s.cards(orders),
				Total:    board.ColumnTotal(orders, rates, s.baseCurrency),
				Currency: s.baseCurrency,
			})
		}
		return out, nil
	}

	workshops, err := s.workshopRepo.GetWorkshops(ctx, true)
	if err != nil {
		return nil, err
	}

	unassigned := store.ByWorkshop(nil)
	out.Columns = append(out.Columns, dto.BoardColumnDTO{
		Key:      "unassigned",
		Title:    "Unassigned",
		Orders:   s.cards(unassigned),
		Total:    board.ColumnTotal(unassigned, rates, s.baseCurrency),
		Currency: s.baseCurrency,
	})
	for _, w := range workshops {
		id := w.ID
		orders := store.ByWorkshop(&id)
		out.Columns = append(out.Columns, dto.BoardColumnDTO{
			Key:        fmt.Sprintf("workshop-%d", w.ID),
			Title:      w.Name,
			WorkshopID: &id,
			Orders:     s.cards(orders),
			Total:      board.ColumnTotal(orders, rates, s.baseCurrency),
			Currency:   s.baseCurrency,
		})
	}
	return out, nil
}

// Move runs one complete drag gesture: begin, resolve the drop target, and
// either commit a status change or hand a workshop drop over to the
// transfer wizard.
func (s *KanbanService) Move(ctx context.Context, userID uint64, payload dto.MoveOrderDTO) (*dto.MoveResultDTO, error) {
	_, coord, err := s.storeFor(payload.Mode)
	if err != nil {
		return nil, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	if err := coord.Begin(payload.OrderID); err != nil {
		return nil, err
	}

	target := board.DropTarget{
		WorkshopID: payload.TargetWorkshop,
		OrderID:    payload.TargetOrderID,
	}
	if payload.TargetStatus != nil {
		status := entities.OrderStatus(*payload.TargetStatus)
		target.Status = &status
	}

	result, err := coord.Drop(ctx, target, func(ctx context.Context, orderID uint64, status entities.OrderStatus) error {
		return s.orderRepo.UpdateOrderStatus(ctx, orderID, status)
	})
	if err != nil {
		if result.Reverted {
			s.logger.Warn("status move reverted",
				zap.Uint64("order_id", payload.OrderID),
				zap.Error(err))
			return &dto.MoveResultDTO{Reverted: true}, err
		}
		return nil, err
	}

	if result.NoOp {
		return &dto.MoveResultDTO{NoOp: true}, nil
	}

	if result.PendingTransfer != nil {
		session, err := s.transfers.OpenFromPending(ctx, *result.PendingTransfer)
		if err != nil {
			return nil, err
		}
		return &dto.MoveResultDTO{PendingTransfer: session}, nil
	}

	s.bus.Publish(ctx, events.OrderMoved{
		OrderID:   payload.OrderID,
		NewStatus: string(result.Resolution.Status),
		MovedBy:   userID,
	})
	s.bus.Publish(ctx, events.BoardChanged{Reason: "order_moved"})

	order, err := s.orderRepo.FindOrder(ctx, payload.OrderID)
	if err != nil {
		return nil, err
	}
	return &dto.MoveResultDTO{Committed: true, Order: order}, nil
}
