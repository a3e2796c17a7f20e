package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/eventbus"
)

type stubUserRepo struct {
	users map[uint64]entities.User
}

func (r *stubUserRepo) FindUserEntity(ctx context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *stubUserRepo) GetUsers(ctx context.Context, limit, offset uint64, search string, workshopID uint64) ([]dto.UserDTO, uint64, error) {
	return nil, 0, errors.New("not implemented")
}
func (r *stubUserRepo) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	return nil, errors.New("not implemented")
}
func (r *stubUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, errors.New("not implemented")
}
func (r *stubUserRepo) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (*dto.UserDTO, error) {
	return nil, errors.New("not implemented")
}
func (r *stubUserRepo) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, passwordHash *string) (*dto.UserDTO, error) {
	return nil, errors.New("not implemented")
}
func (r *stubUserRepo) DeactivateUser(ctx context.Context, id uint64) error {
	return errors.New("not implemented")
}

type stubCatalogRepo struct {
	catalog []entities.WorkshopCostItem
}

func (r *stubCatalogRepo) GetCatalogForWorkshop(ctx context.Context, workshopID uint64) ([]entities.WorkshopCostItem, error) {
	return r.catalog, nil
}

func (r *stubCatalogRepo) GetWorkshopCostItems(ctx context.Context, workshopID uint64, limit, offset uint64) ([]dto.WorkshopCostItemDTO, uint64, error) {
	return nil, 0, errors.New("not implemented")
}
func (r *stubCatalogRepo) FindWorkshopCostItem(ctx context.Context, id uint64) (*dto.WorkshopCostItemDTO, error) {
	return nil, errors.New("not implemented")
}
func (r *stubCatalogRepo) CreateWorkshopCostItem(ctx context.Context, payload dto.CreateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error) {
	return nil, errors.New("not implemented")
}
func (r *stubCatalogRepo) UpdateWorkshopCostItem(ctx context.Context, id uint64, payload dto.UpdateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error) {
	return nil, errors.New("not implemented")
}
func (r *stubCatalogRepo) DeactivateWorkshopCostItem(ctx context.Context, id uint64) error {
	return errors.New("not implemented")
}

type stubCostRepo struct {
	created   []entities.ModelCost
	failItems map[uint64]error // keyed by cost item id
}

func (r *stubCostRepo) CreateModelCost(ctx context.Context, record entities.ModelCost) (*dto.ModelCostDTO, error) {
	if err, ok := r.failItems[record.CostItemID]; ok {
		return nil, err
	}
	r.created = append(r.created, record)
	return &dto.ModelCostDTO{OrderID: record.OrderID, CostItemID: record.CostItemID, TotalCost: record.TotalCost}, nil
}

func (r *stubCostRepo) GetOrderCosts(ctx context.Context, orderID uint64) ([]dto.ModelCostDTO, error) {
	return nil, errors.New("not implemented")
}
func (r *stubCostRepo) GetWorkshopCostReport(ctx context.Context, from, to *time.Time) ([]dto.WorkshopCostReportRowDTO, error) {
	return nil, errors.New("not implemented")
}

func intPtr(v int) *int { return &v }

func newTestTransfer(t *testing.T) (TransferServiceInterface, *stubOrderRepo, *stubCostRepo) {
	t.Helper()
	orderRepo := newStubOrderRepo(t, []entities.Order{
		{ID: 2, Status: entities.StatusInProgress, WorkshopID: uintPtr(7), Quantity: 10, Price: 2, Currency: "USD", IsActive: true},
		{ID: 1, Status: entities.StatusUnassigned, Quantity: 100, Price: 3, Currency: "TRY", IsActive: true},
		{ID: 9, Status: entities.StatusCancelled, IsActive: false},
	})
	workshopRepo := &stubWorkshopRepo{workshops: []entities.Workshop{
		{ID: 7, Name: "Dikim Atölyesi", IsActive: true},
		{ID: 8, Name: "Biten İşler", IsActive: true},
		{ID: 9, Name: "Ütü ve Paket", IsActive: true},
	}}
	catalogRepo := &stubCatalogRepo{catalog: []entities.WorkshopCostItem{
		{ID: 1, WorkshopID: 7, CostItemID: 10, CostItemName: "Kumaş", CostItemUnit: "metre", Price: 20, Currency: "TRY", CalculationType: entities.CalcMeterBased, Priority: intPtr(1), IsActive: true},
		{ID: 2, WorkshopID: 7, CostItemID: 11, CostItemName: "İplik", CostItemUnit: "adet", Price: 5, Currency: "TRY", CalculationType: entities.CalcSimple, Priority: intPtr(2), IsActive: true},
		{ID: 3, WorkshopID: 7, CostItemID: 12, CostItemName: "Eski kalem", Price: 1, Currency: "TRY", CalculationType: entities.CalcSimple, IsActive: false},
	}}
	userRepo := &stubUserRepo{users: map[uint64]entities.User{
		3: {ID: 3, FullName: "Ayşe Yılmaz", IsActive: true},
		4: {ID: 4, FullName: "Eski Operatör", IsActive: false},
	}}
	costRepo := &stubCostRepo{}
	bus := eventbus.New(zap.NewNop())

	svc := NewTransferService(orderRepo, workshopRepo, catalogRepo, userRepo, costRepo, bus, zap.NewNop())
	return svc, orderRepo, costRepo
}

func TestOpenTransferBuildsCatalog(t *testing.T) {
	svc, _, _ := newTestTransfer(t)

	sess, err := svc.Open(context.Background(), dto.OpenTransferDTO{OrderID: 2, ToWorkshopID: 9})
	require.NoError(t, err)

	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, uint64(2), sess.OrderID)
	require.NotNil(t, sess.FromWorkshop)
	assert.Equal(t, "Dikim Atölyesi", sess.FromWorkshop.Name)
	assert.Equal(t, "Ütü ve Paket", sess.ToWorkshop.Name)
	assert.Equal(t, "user_selection", sess.Step)

	require.Len(t, sess.Catalog, 2, "inactive catalog rows are filtered out")
	assert.Equal(t, "Kumaş", sess.Catalog[0].Name)
	assert.Equal(t, 1, sess.Catalog[0].ParamCount)
}

func TestOpenTransferRejectsInactiveOrder(t *testing.T) {
	svc, _, _ := newTestTransfer(t)

	_, err := svc.Open(context.Background(), dto.OpenTransferDTO{OrderID: 9, ToWorkshopID: 8})
	assert.ErrorIs(t, err, apperrors.ErrOrderInactive)
}

func TestUnknownSession(t *testing.T) {
	svc, _, _ := newTestTransfer(t)

	_, err := svc.Get("no-such-session")
	assert.ErrorIs(t, err, apperrors.ErrTransferNotFound)
}

func TestSelectUserRejectsInactive(t *testing.T) {
	svc, _, _ := newTestTransfer(t)
	sess, err := svc.Open(context.Background(), dto.OpenTransferDTO{OrderID: 2, ToWorkshopID: 9})
	require.NoError(t, err)

	_, err = svc.SelectUser(context.Background(), sess.SessionID, 4)
	assert.ErrorIs(t, err, apperrors.ErrUserNotSelected)

	_, err = svc.SelectUser(context.Background(), sess.SessionID, 3)
	assert.NoError(t, err)
}

func TestTransferFullFlow(t *testing.T) {
	svc, orderRepo, costRepo := newTestTransfer(t)

	sess, err := svc.Open(context.Background(), dto.OpenTransferDTO{OrderID: 2, ToWorkshopID: 9})
	require.NoError(t, err)
	id := sess.SessionID

	_, err = svc.SelectUser(context.Background(), id, 3)
	require.NoError(t, err)

	state, result, err := svc.Next(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "cost_entry", state.Step)

	_, err = svc.SelectItem(id, 2)
	require.NoError(t, err)
	state, err = svc.SaveEntry(id, 2, dto.SaveTransferEntryDTO{Quantity1: 4, Note: "astar"})
	require.NoError(t, err)
	require.Len(t, state.Completed, 1)
	require.Len(t, state.Catalog, 1, "completed entries leave the catalog list")

	summary, err := svc.Summary(id)
	require.NoError(t, err)
	assert.Equal(t, "Dikim Atölyesi", summary.FromWorkshopName)
	assert.Equal(t, "Ütü ve Paket", summary.ToWorkshopName)
	assert.Equal(t, "Ayşe Yılmaz", summary.UserName)
	assert.Equal(t, 1, summary.CompletedCount)

	final, err := svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), final.OrderID)
	assert.Equal(t, 1, final.SavedRecords)
	assert.Empty(t, final.FailedRecords)
	assert.Equal(t, "in_progress", final.Status)

	require.Len(t, costRepo.created, 1)
	rec := costRepo.created[0]
	assert.Equal(t, uint64(7), rec.WorkshopID, "costs book to the source workshop")
	assert.Equal(t, uint64(11), rec.CostItemID)
	assert.InDelta(t, 20, rec.TotalCost, 0.0001)

	require.Len(t, orderRepo.assigns, 1)
	assert.Equal(t, assignment{OrderID: 2, WorkshopID: 9, OperatorID: 3, Status: entities.StatusInProgress}, orderRepo.assigns[0])

	_, err = svc.Get(id)
	assert.ErrorIs(t, err, apperrors.ErrTransferNotFound, "finalize closes the session")
}

func TestTransferIntoTerminalWorkshopCompletes(t *testing.T) {
	svc, orderRepo, _ := newTestTransfer(t)

	sess, err := svc.Open(context.Background(), dto.OpenTransferDTO{OrderID: 2, ToWorkshopID: 8})
	require.NoError(t, err)
	_, err = svc.SelectUser(context.Background(), sess.SessionID, 3)
	require.NoError(t, err)

	final, err := svc.Finalize(context.Background(), sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "completed", final.Status)

	require.Len(t, orderRepo.assigns, 1)
	assert.Equal(t, entities.StatusCompleted, orderRepo.assigns[0].Status)
}

func TestTransferFromUnassignedFinalizesOnNext(t *testing.T) {
	svc, orderRepo, costRepo := newTestTransfer(t)

	sess, err := svc.Open(context.Background(), dto.OpenTransferDTO{OrderID: 1, ToWorkshopID: 7})
	require.NoError(t, err)
	assert.Nil(t, sess.FromWorkshop)
	assert.Empty(t, sess.Catalog, "no source workshop, no catalog")

	_, err = svc.SelectUser(context.Background(), sess.SessionID, 3)
	require.NoError(t, err)

	state, result, err := svc.Next(context.Background(), sess.SessionID)
	require.NoError(t, err)
	assert.Nil(t, state)
	require.NotNil(t, result, "accepting unassigned work skips cost entry")
	assert.Equal(t, "in_progress", result.Status)

	assert.Empty(t, costRepo.created)
	require.Len(t, orderRepo.assigns, 1)
	assert.Equal(t, uint64(7), orderRepo.assigns[0].WorkshopID)
}

func TestFinalizeReportsFailedCostRecords(t *testing.T) {
	svc, orderRepo, costRepo := newTestTransfer(t)
	costRepo.failItems = map[uint64]error{10: errors.New("insert failed")}

	sess, err := svc.Open(context.Background(), dto.OpenTransferDTO{OrderID: 2, ToWorkshopID: 9})
	require.NoError(t, err)
	id := sess.SessionID

	_, err = svc.SelectUser(context.Background(), id, 3)
	require.NoError(t, err)
	_, _, err = svc.Next(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.SelectItem(id, 1)
	require.NoError(t, err)
	_, err = svc.SaveEntry(id, 1, dto.SaveTransferEntryDTO{Quantity1: 2})
	require.NoError(t, err)
	_, err = svc.SelectItem(id, 2)
	require.NoError(t, err)
	_, err = svc.SaveEntry(id, 2, dto.SaveTransferEntryDTO{Quantity1: 4})
	require.NoError(t, err)

	final, err := svc.Finalize(context.Background(), id)
	require.NoError(t, err, "cost failures must not block the transfer")
	assert.Equal(t, 1, final.SavedRecords)
	assert.Equal(t, []uint64{1}, final.FailedRecords)
	require.Len(t, orderRepo.assigns, 1)
}

func TestFinalizeAssignFailureKeepsSession(t *testing.T) {
	svc, orderRepo, _ := newTestTransfer(t)
	orderRepo.assignErr = errors.New("db down")

	sess, err := svc.Open(context.Background(), dto.OpenTransferDTO{OrderID: 2, ToWorkshopID: 9})
	require.NoError(t, err)
	_, err = svc.SelectUser(context.Background(), sess.SessionID, 3)
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), sess.SessionID)
	assert.Error(t, err)

	// session survives for a retry
	_, err = svc.Get(sess.SessionID)
	assert.NoError(t, err)

	orderRepo.assignErr = nil
	_, err = svc.Finalize(context.Background(), sess.SessionID)
	assert.NoError(t, err)
}

func TestAbandonDropsSession(t *testing.T) {
	svc, _, _ := newTestTransfer(t)

	sess, err := svc.Open(context.Background(), dto.OpenTransferDTO{OrderID: 2, ToWorkshopID: 9})
	require.NoError(t, err)

	svc.Abandon(sess.SessionID)
	_, err = svc.Get(sess.SessionID)
	assert.ErrorIs(t, err, apperrors.ErrTransferNotFound)
}
