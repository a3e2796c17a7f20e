package services

import (
	"context"
	"sync"

	"atolye-takip/internal/board"
	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	"atolye-takip/internal/events"
	"atolye-takip/internal/repositories"
	"atolye-takip/internal/transfer"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/eventbus"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransferServiceInterface interface {
	Open(ctx context.Context, payload dto.OpenTransferDTO) (*dto.TransferDTO, error)
	OpenFromPending(ctx context.Context, pending board.PendingTransfer) (*dto.TransferDTO, error)
	Get(sessionID string) (*dto.TransferDTO, error)
	SelectUser(ctx context.Context, sessionID string, userID uint64) (*dto.TransferDTO, error)
	Next(ctx context.Context, sessionID string) (*dto.TransferDTO, *dto.TransferResultDTO, error)
	Back(sessionID string) (*dto.TransferDTO, error)
	SelectItem(sessionID string, catalogID uint64) (*dto.TransferDTO, error)
	DeselectItem(sessionID string, catalogID uint64) (*dto.TransferDTO, error)
	OpenEntry(sessionID string, catalogID uint64) (*dto.TransferEntryDTO, error)
	CancelEntry(sessionID string) error
	SaveEntry(sessionID string, catalogID uint64, payload dto.SaveTransferEntryDTO) (*dto.TransferDTO, error)
	RemoveEntry(sessionID string, catalogID uint64) (*dto.TransferDTO, error)
	Summary(sessionID string) (*dto.TransferSummaryDTO, error)
	Finalize(ctx context.Context, sessionID string) (*dto.TransferResultDTO, error)
	Abandon(sessionID string)
}

// session pairs a wizard with the display names resolved when it opened.
type session struct {
	wizard       *transfer.Wizard
	fromWorkshop *dto.ShortWorkshopDTO
	toWorkshop   dto.ShortWorkshopDTO
	userName     string
}

// TransferService keeps open wizard sessions in memory, keyed by uuid.
// Abandoned sessions simply stay until overwritten by a process restart;
// re-opening a transfer always creates a fresh session.
type TransferService struct {
	orderRepo    repositories.OrderRepositoryInterface
	workshopRepo repositories.WorkshopRepositoryInterface
	catalogRepo  repositories.WorkshopCostItemRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	costRepo     repositories.ModelCostRepositoryInterface
	bus          *eventbus.Bus
	logger       *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewTransferService(orderRepo repositories.OrderRepositoryInterface, workshopRepo repositories.WorkshopRepositoryInterface,
	catalogRepo repositories.WorkshopCostItemRepositoryInterface, userRepo repositories.UserRepositoryInterface,
	costRepo repositories.ModelCostRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) TransferServiceInterface {
	return &TransferService{
		orderRepo:    orderRepo,
		workshopRepo: workshopRepo,
		catalogRepo:  catalogRepo,
		userRepo:     userRepo,
		costRepo:     costRepo,
		bus:          bus,
		logger:       logger,
		sessions:     make(map[string]*session),
	}
}

func (s *TransferService) Open(ctx context.Context, payload dto.OpenTransferDTO) (*dto.TransferDTO, error) {
	order, err := s.orderRepo.FindOrderEntity(ctx, payload.OrderID)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, *order, order.WorkshopID, payload.ToWorkshopID)
}

func (s *TransferService) OpenFromPending(ctx context.Context, pending board.PendingTransfer) (*dto.TransferDTO, error) {
	order, err := s.orderRepo.FindOrderEntity(ctx, pending.OrderID)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, *order, pending.FromWorkshopID, pending.ToWorkshopID)
}

func (s *TransferService) open(ctx context.Context, order entities.Order, fromWorkshopID *uint64, toWorkshopID uint64) (*dto.TransferDTO, error) {
	if !order.IsActive {
		return nil, apperrors.ErrOrderInactive
	}

	toWorkshop, err := s.workshopRepo.FindWorkshop(ctx, toWorkshopID)
	if err != nil {
		return nil, err
	}

	sess := &session{
		toWorkshop: dto.ShortWorkshopDTO{ID: toWorkshop.ID, Name: toWorkshop.Name},
	}

	var catalog []transfer.CatalogEntry
	if fromWorkshopID != nil {
		fromWorkshop, err := s.workshopRepo.FindWorkshop(ctx, *fromWorkshopID)
		if err != nil {
			return nil, err
		}
		sess.fromWorkshop = &dto.ShortWorkshopDTO{ID: fromWorkshop.ID, Name: fromWorkshop.Name}

		items, err := s.catalogRepo.GetCatalogForWorkshop(ctx, *fromWorkshopID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			catalog = append(catalog, transfer.CatalogEntry{
				CatalogID:  item.ID,
				CostItemID: item.CostItemID,
				Name:       item.CostItemName,
				Unit:       item.CostItemUnit,
				Price:      item.Price,
				Currency:   item.Currency,
				CalcType:   item.CalculationType,
				Priority:   item.Priority,
				IsActive:   item.IsActive,
			})
		}
	}

	sess.wizard = transfer.NewWizard(order, fromWorkshopID, toWorkshopID, catalog)

	sessionID := uuid.NewString()
	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	return s.toDTO(sessionID, sess), nil
}

func (s *TransferService) find(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrTransferNotFound
	}
	return sess, nil
}

func stepName(step transfer.Step) string {
	if step == transfer.StepCostEntry {
		return "cost_entry"
	}
	return "user_selection"
}

func (s *TransferService) toDTO(sessionID string, sess *session) *dto.TransferDTO {
	w := sess.wizard
	out := &dto.TransferDTO{
		SessionID:    sessionID,
		OrderID:      w.Order().ID,
		FromWorkshop: sess.fromWorkshop,
		ToWorkshop:   sess.toWorkshop,
		Step:         stepName(w.Step()),
		Catalog:      []dto.TransferCatalogDTO{},
		Completed:    []dto.TransferEntryDTO{},
	}
	for _, e := range w.Catalog() {
		out.Catalog = append(out.Catalog, dto.TransferCatalogDTO{
			CatalogID:       e.CatalogID,
			CostItemID:      e.CostItemID,
			Name:            e.Name,
			Unit:            e.Unit,
			Price:           e.Price,
			Currency:        e.Currency,
			CalculationType: string(e.CalcType),
			ParamCount:      e.CalcType.ParamCount(),
		})
	}
	for _, e := range w.CompletedEntries() {
		out.Completed = append(out.Completed, entryToDTO(e))
	}
	return out
}

func entryToDTO(e transfer.Entry) dto.TransferEntryDTO {
	return dto.TransferEntryDTO{
		CatalogID:     e.CatalogID,
		Quantity1:     e.Quantity1,
		Quantity2:     e.Quantity2,
		OrderQuantity: e.OrderQuantity,
		Total:         e.Total,
		Note:          e.Note,
	}
}

func (s *TransferService) Get(sessionID string) (*dto.TransferDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(sessionID, sess), nil
}

func (s *TransferService) SelectUser(ctx context.Context, sessionID string, userID uint64) (*dto.TransferDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserEntity(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserNotSelected
	}
	if err := sess.wizard.SelectUser(userID); err != nil {
		return nil, err
	}
	sess.userName = user.FullName
	return s.toDTO(sessionID, sess), nil
}

// Next advances past user selection. Transfers out of the unassigned
// pseudo-workshop have no cost-entry step and finalize immediately.
func (s *TransferService) Next(ctx context.Context, sessionID string) (*dto.TransferDTO, *dto.TransferResultDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, nil, err
	}
	finalizeNow, err := sess.wizard.Next()
	if err != nil {
		return nil, nil, err
	}
	if finalizeNow {
		result, err := s.Finalize(ctx, sessionID)
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	}
	return s.toDTO(sessionID, sess), nil, nil
}

func (s *TransferService) Back(sessionID string) (*dto.TransferDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	sess.wizard.Back()
	return s.toDTO(sessionID, sess), nil
}

func (s *TransferService) SelectItem(sessionID string, catalogID uint64) (*dto.TransferDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.wizard.Select(catalogID); err != nil {
		return nil, err
	}
	return s.toDTO(sessionID, sess), nil
}

func (s *TransferService) DeselectItem(sessionID string, catalogID uint64) (*dto.TransferDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	sess.wizard.Deselect(catalogID)
	return s.toDTO(sessionID, sess), nil
}

func (s *TransferService) OpenEntry(sessionID string, catalogID uint64) (*dto.TransferEntryDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	entry, err := sess.wizard.OpenEntry(catalogID)
	if err != nil {
		return nil, err
	}
	out := entryToDTO(entry)
	return &out, nil
}

func (s *TransferService) CancelEntry(sessionID string) error {
	sess, err := s.find(sessionID)
	if err != nil {
		return err
	}
	sess.wizard.CancelEntry()
	return nil
}

func (s *TransferService) SaveEntry(sessionID string, catalogID uint64, payload dto.SaveTransferEntryDTO) (*dto.TransferDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	input := transfer.EntryInput{
		Quantity1: payload.Quantity1,
		Quantity2: payload.Quantity2,
		Total:     payload.Total,
		Note:      payload.Note,
	}
	if err := sess.wizard.SaveEntry(catalogID, input); err != nil {
		return nil, err
	}
	return s.toDTO(sessionID, sess), nil
}

func (s *TransferService) RemoveEntry(sessionID string, catalogID uint64) (*dto.TransferDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	sess.wizard.RemoveCompleted(catalogID)
	return s.toDTO(sessionID, sess), nil
}

func (s *TransferService) Summary(sessionID string) (*dto.TransferSummaryDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	summary, err := sess.wizard.Summary()
	if err != nil {
		return nil, err
	}
	out := &dto.TransferSummaryDTO{
		OrderID:        summary.OrderID,
		ToWorkshopName: sess.toWorkshop.Name,
		UserName:       sess.userName,
		CompletedCount: summary.CompletedCount,
	}
	if sess.fromWorkshop != nil {
		out.FromWorkshopName = sess.fromWorkshop.Name
	}
	return out, nil
}

// Finalize runs the best-effort cost batch and the single assignment call.
// Cost failures are reported but do not block the transfer; an assignment
// failure leaves the session open for retry.
func (s *TransferService) Finalize(ctx context.Context, sessionID string) (*dto.TransferResultDTO, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}

	toWorkshop, err := s.workshopRepo.FindWorkshop(ctx, sess.wizard.ToWorkshopID())
	if err != nil {
		return nil, err
	}
	newStatus := toWorkshop.TransferStatus()
	orderID := sess.wizard.Order().ID

	submit := func(ctx context.Context, record transfer.CostRecord) error {
		_, err := s.costRepo.CreateModelCost(ctx, entities.ModelCost{
			OrderID:      record.OrderID,
			WorkshopID:   record.WorkshopID,
			CostItemID:   record.CostItemID,
			QuantityUsed: record.QuantityUsed,
			Quantity2:    record.Quantity2,
			Unit:         record.Unit,
			Unit2:        record.Unit2,
			ActualPrice:  record.ActualPrice,
			Currency:     record.Currency,
			TotalCost:    record.TotalCost,
			Note:         record.Note,
		})
		return err
	}

	var operatorID uint64
	assign := func(ctx context.Context, userID uint64) error {
		operatorID = userID
		return s.orderRepo.AssignOrder(ctx, orderID, toWorkshop.ID, userID, newStatus)
	}

	batch, err := sess.wizard.Finalize(ctx, submit, assign)
	for _, failed := range batch.Failed() {
		s.logger.Warn("cost record submission failed",
			zap.Uint64("order_id", orderID),
			zap.Uint64("catalog_id", failed.CatalogID),
			zap.Error(failed.Err))
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.bus.Publish(ctx, events.OrderTransferred{
		OrderID:        orderID,
		FromWorkshopID: sess.wizard.FromWorkshopID(),
		ToWorkshopID:   toWorkshop.ID,
		OperatorID:     operatorID,
		NewStatus:      string(newStatus),
		SavedCosts:     batch.Succeeded(),
		FailedCosts:    len(batch.Failed()),
	})
	s.bus.Publish(ctx, events.BoardChanged{Reason: "order_transferred"})

	result := &dto.TransferResultDTO{
		OrderID:      orderID,
		SavedRecords: batch.Succeeded(),
		Status:       string(newStatus),
	}
	for _, failed := range batch.Failed() {
		result.FailedRecords = append(result.FailedRecords, failed.CatalogID)
	}
	return result, nil
}

func (s *TransferService) Abandon(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}
