package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atolye-takip/internal/board"
	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	"atolye-takip/pkg/eventbus"
	"atolye-takip/pkg/types"
)

func uintPtr(v uint64) *uint64 { return &v }
func strPtr(s string) *string  { return &s }

type assignment struct {
	OrderID    uint64
	WorkshopID uint64
	OperatorID uint64
	Status     entities.OrderStatus
}

// stubOrderRepo serves a fixed order list and records status/assignment
// writes. Unimplemented methods fail the test if reached.
type stubOrderRepo struct {
	t      *testing.T
	orders []entities.Order

	statusErr     error
	statusUpdates map[uint64]entities.OrderStatus

	assignErr error
	assigns   []assignment
}

func newStubOrderRepo(t *testing.T, orders []entities.Order) *stubOrderRepo {
	return &stubOrderRepo{t: t, orders: orders, statusUpdates: make(map[uint64]entities.OrderStatus)}
}

func (r *stubOrderRepo) GetBoardOrders(ctx context.Context) ([]entities.Order, error) {
	out := make([]entities.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *stubOrderRepo) GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error) {
	out := make([]dto.OrderDTO, 0, len(r.orders))
	for _, o := range r.orders {
		d := dto.OrderDTO{
			ID:       o.ID,
			Firm:     dto.ShortFirmDTO{ID: o.FirmID, Name: "Mavi Tekstil"},
			Model:    dto.ShortModelDTO{ID: o.ModelID, Name: "Gömlek"},
			Quantity: o.Quantity,
			Unit:     o.Unit,
			Price:    o.Price,
			Currency: o.Currency,
			Status:   string(o.Status),
		}
		if o.WorkshopID != nil {
			d.Workshop = &dto.ShortWorkshopDTO{ID: *o.WorkshopID, Name: "Dikim Atölyesi"}
		}
		out = append(out, d)
	}
	return out, uint64(len(out)), nil
}

func (r *stubOrderRepo) FindOrder(ctx context.Context, id uint64) (*dto.OrderDTO, error) {
	dtos, _, _ := r.GetOrders(ctx, types.Filter{})
	for i := range dtos {
		if dtos[i].ID == id {
			if s, ok := r.statusUpdates[id]; ok {
				dtos[i].Status = string(s)
			}
			return &dtos[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubOrderRepo) UpdateOrderStatus(ctx context.Context, id uint64, status entities.OrderStatus) error {
	if r.statusErr != nil {
		return r.statusErr
	}
	r.statusUpdates[id] = status
	return nil
}

func (r *stubOrderRepo) FindOrderEntity(ctx context.Context, id uint64) (*entities.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubOrderRepo) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderDTO, error) {
	r.t.Fatal("CreateOrder should not be called")
	return nil, nil
}

func (r *stubOrderRepo) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error) {
	r.t.Fatal("UpdateOrder should not be called")
	return nil, nil
}

func (r *stubOrderRepo) AssignOrder(ctx context.Context, id uint64, workshopID, operatorID uint64, status entities.OrderStatus) error {
	if r.assignErr != nil {
		return r.assignErr
	}
	r.assigns = append(r.assigns, assignment{OrderID: id, WorkshopID: workshopID, OperatorID: operatorID, Status: status})
	return nil
}

func (r *stubOrderRepo) DeactivateOrder(ctx context.Context, id uint64) error {
	r.t.Fatal("DeactivateOrder should not be called")
	return nil
}

func (r *stubOrderRepo) AddOrderImage(ctx context.Context, orderID uint64, filePath, originalName string) (*dto.OrderImageDTO, error) {
	r.t.Fatal("AddOrderImage should not be called")
	return nil, nil
}

func (r *stubOrderRepo) GetOrderImages(ctx context.Context, orderID uint64) ([]dto.OrderImageDTO, error) {
	r.t.Fatal("GetOrderImages should not be called")
	return nil, nil
}

func (r *stubOrderRepo) DeleteOrderImage(ctx context.Context, orderID, imageID uint64) (string, error) {
	r.t.Fatal("DeleteOrderImage should not be called")
	return "", nil
}

type stubWorkshopRepo struct {
	workshops []entities.Workshop
}

func (r *stubWorkshopRepo) GetWorkshops(ctx context.Context, onlyActive bool) ([]entities.Workshop, error) {
	return r.workshops, nil
}

func (r *stubWorkshopRepo) FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error) {
	for i := range r.workshops {
		if r.workshops[i].ID == id {
			return &r.workshops[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubWorkshopRepo) CreateWorkshop(ctx context.Context, name, location, contactName, phone string) (*entities.Workshop, error) {
	return nil, errors.New("not implemented")
}

func (r *stubWorkshopRepo) UpdateWorkshop(ctx context.Context, id uint64, name, location, contactName, phone *string, isActive *bool) (*entities.Workshop, error) {
	return nil, errors.New("not implemented")
}

func (r *stubWorkshopRepo) DeactivateWorkshop(ctx context.Context, id uint64) error {
	return errors.New("not implemented")
}

type stubRates struct {
	rates map[string]float64
}

func (s *stubRates) Rates(ctx context.Context) (map[string]float64, error) { return s.rates, nil }

func (s *stubRates) GetRates(ctx context.Context) ([]dto.ExchangeRateDTO, error) { return nil, nil }

func (s *stubRates) SaveRates(ctx context.Context, rates []entities.ExchangeRate) error { return nil }

// stubTransfers only answers OpenFromPending; the board never touches the
// rest of the wizard surface.
type stubTransfers struct {
	opened  []board.PendingTransfer
	session *dto.TransferDTO
}

func (s *stubTransfers) OpenFromPending(ctx context.Context, pending board.PendingTransfer) (*dto.TransferDTO, error) {
	s.opened = append(s.opened, pending)
	return s.session, nil
}

func (s *stubTransfers) Open(ctx context.Context, payload dto.OpenTransferDTO) (*dto.TransferDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) Get(sessionID string) (*dto.TransferDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) SelectUser(ctx context.Context, sessionID string, userID uint64) (*dto.TransferDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) Next(ctx context.Context, sessionID string) (*dto.TransferDTO, *dto.TransferResultDTO, error) {
	return nil, nil, errors.New("not implemented")
}
func (s *stubTransfers) Back(sessionID string) (*dto.TransferDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) SelectItem(sessionID string, catalogID uint64) (*dto.TransferDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) DeselectItem(sessionID string, catalogID uint64) (*dto.TransferDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) OpenEntry(sessionID string, catalogID uint64) (*dto.TransferEntryDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) CancelEntry(sessionID string) error { return errors.New("not implemented") }
func (s *stubTransfers) SaveEntry(sessionID string, catalogID uint64, payload dto.SaveTransferEntryDTO) (*dto.TransferDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) RemoveEntry(sessionID string, catalogID uint64) (*dto.TransferDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) Summary(sessionID string) (*dto.TransferSummaryDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) Finalize(ctx context.Context, sessionID string) (*dto.TransferResultDTO, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTransfers) Abandon(sessionID string) {}

func boardOrders() []entities.Order {
	return []entities.Order{
		{ID: 1, Status: entities.StatusUnassigned, Quantity: 100, Price: 3, Currency: "TRY", IsActive: true},
		{ID: 2, Status: entities.StatusInProgress, WorkshopID: uintPtr(7), Quantity: 10, Price: 2, Currency: "USD", IsActive: true},
		{ID: 3, Status: entities.StatusCompleted, WorkshopID: uintPtr(8), Quantity: 5, Price: 100, Currency: "TRY", IsActive: true},
	}
}

func newTestKanban(t *testing.T) (*KanbanService, *stubOrderRepo, *stubTransfers) {
	t.Helper()
	orderRepo := newStubOrderRepo(t, boardOrders())
	workshopRepo := &stubWorkshopRepo{workshops: []entities.Workshop{
		{ID: 7, Name: "Dikim Atölyesi", IsActive: true},
		{ID: 8, Name: "Biten İşler", IsActive: true},
	}}
	rates := &stubRates{rates: map[string]float64{"USD": 40}}
	transfers := &stubTransfers{session: &dto.TransferDTO{SessionID: "abc"}}
	bus := eventbus.New(zap.NewNop())

	svc := NewKanbanService(orderRepo, workshopRepo, rates, transfers, bus, "TRY", zap.NewNop())
	return svc, orderRepo, transfers
}

func TestBoardStatusMode(t *testing.T) {
	svc, _, _ := newTestKanban(t)

	b, err := svc.Board(context.Background(), BoardModeStatus)
	require.NoError(t, err)
	require.Len(t, b.Columns, 4)

	assert.Equal(t, "unassigned", b.Columns[0].Key)
	require.Len(t, b.Columns[0].Orders, 1)
	assert.Equal(t, "Mavi Tekstil", b.Columns[0].Orders[0].Firm.Name, "cards carry resolved names")
	assert.InDelta(t, 300, b.Columns[0].Total, 0.0001)

	assert.Equal(t, "in_progress", b.Columns[1].Key)
	assert.InDelta(t, 800, b.Columns[1].Total, 0.0001, "USD column total converts at the selling rate")

	assert.Equal(t, "cancelled", b.Columns[2].Key)
	assert.Empty(t, b.Columns[2].Orders)

	assert.Equal(t, "completed", b.Columns[3].Key)
	assert.InDelta(t, 500, b.Columns[3].Total, 0.0001)
}

func TestBoardWorkshopMode(t *testing.T) {
	svc, _, _ := newTestKanban(t)

	b, err := svc.Board(context.Background(), BoardModeWorkshop)
	require.NoError(t, err)
	require.Len(t, b.Columns, 3, "unassigned column plus one per workshop")

	assert.Equal(t, "unassigned", b.Columns[0].Key)
	assert.Nil(t, b.Columns[0].WorkshopID)

	assert.Equal(t, "workshop-7", b.Columns[1].Key)
	assert.Equal(t, "Dikim Atölyesi", b.Columns[1].Title)
	require.Len(t, b.Columns[1].Orders, 1)
	assert.Equal(t, uint64(2), b.Columns[1].Orders[0].ID)
}

func TestBoardUnknownMode(t *testing.T) {
	svc, _, _ := newTestKanban(t)

	_, err := svc.Board(context.Background(), "calendar")
	assert.Error(t, err)
}

func TestMoveCommitsStatusChange(t *testing.T) {
	svc, orderRepo, _ := newTestKanban(t)

	res, err := svc.Move(context.Background(), 42, dto.MoveOrderDTO{
		OrderID:      1,
		Mode:         BoardModeStatus,
		TargetStatus: strPtr("in_progress"),
	})

	require.NoError(t, err)
	assert.True(t, res.Committed)
	require.NotNil(t, res.Order)
	assert.Equal(t, "in_progress", res.Order.Status)
	assert.Equal(t, entities.StatusInProgress, orderRepo.statusUpdates[1])
}

func TestMoveNoOpSkipsRemoteCall(t *testing.T) {
	svc, orderRepo, _ := newTestKanban(t)

	res, err := svc.Move(context.Background(), 42, dto.MoveOrderDTO{
		OrderID:      2,
		Mode:         BoardModeStatus,
		TargetStatus: strPtr("in_progress"),
	})

	require.NoError(t, err)
	assert.True(t, res.NoOp)
	assert.Empty(t, orderRepo.statusUpdates, "same-column drops never hit the database")
}

func TestMoveRevertsOnPersistFailure(t *testing.T) {
	svc, orderRepo, _ := newTestKanban(t)
	orderRepo.statusErr = errors.New("db down")

	res, err := svc.Move(context.Background(), 42, dto.MoveOrderDTO{
		OrderID:      1,
		Mode:         BoardModeStatus,
		TargetStatus: strPtr("cancelled"),
	})

	assert.Error(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Reverted)

	// a later board read shows the pre-drag status again
	b, err := svc.Board(context.Background(), BoardModeStatus)
	require.NoError(t, err)
	require.Len(t, b.Columns[0].Orders, 1)
	assert.Equal(t, uint64(1), b.Columns[0].Orders[0].ID)
}

func TestMoveWorkshopDropOpensTransfer(t *testing.T) {
	svc, orderRepo, transfers := newTestKanban(t)

	res, err := svc.Move(context.Background(), 42, dto.MoveOrderDTO{
		OrderID:        2,
		Mode:           BoardModeWorkshop,
		TargetWorkshop: uintPtr(8),
	})

	require.NoError(t, err)
	require.NotNil(t, res.PendingTransfer)
	assert.Equal(t, "abc", res.PendingTransfer.SessionID)

	require.Len(t, transfers.opened, 1)
	assert.Equal(t, uint64(2), transfers.opened[0].OrderID)
	require.NotNil(t, transfers.opened[0].FromWorkshopID)
	assert.Equal(t, uint64(7), *transfers.opened[0].FromWorkshopID)
	assert.Equal(t, uint64(8), transfers.opened[0].ToWorkshopID)

	assert.Empty(t, orderRepo.statusUpdates, "nothing persists until the wizard finalizes")
	assert.Empty(t, orderRepo.assigns)
}
