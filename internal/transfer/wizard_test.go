package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atolye-takip/internal/entities"
	apperrors "atolye-takip/pkg/errors"
)

func uintPtr(v uint64) *uint64 { return &v }

func testCatalog() []CatalogEntry {
	return []CatalogEntry{
		{CatalogID: 1, CostItemID: 10, Name: "Kumaş", Unit: "metre", Price: 20, Currency: "TRY", CalcType: entities.CalcMeterBased, Priority: intPtr(1), IsActive: true},
		{CatalogID: 2, CostItemID: 11, Name: "İplik", Unit: "adet", Price: 5, Currency: "TRY", CalcType: entities.CalcSimple, Priority: intPtr(2), IsActive: true},
		{CatalogID: 3, CostItemID: 12, Name: "Özel gider", Unit: "adet", Price: 0, Currency: "TRY", CalcType: entities.CalcCustomCost, Priority: intPtr(3), IsActive: true},
	}
}

func testWizard() *Wizard {
	order := entities.Order{ID: 77, Quantity: 120, WorkshopID: uintPtr(5)}
	return NewWizard(order, uintPtr(5), 9, testCatalog())
}

func TestNextRequiresUser(t *testing.T) {
	w := testWizard()

	_, err := w.Next()
	assert.ErrorIs(t, err, apperrors.ErrUserNotSelected)

	assert.ErrorIs(t, w.SelectUser(0), apperrors.ErrUserNotSelected)

	require.NoError(t, w.SelectUser(3))
	finalizeNow, err := w.Next()
	require.NoError(t, err)
	assert.False(t, finalizeNow)
	assert.Equal(t, StepCostEntry, w.Step())
}

func TestNextFinalizesNowFromUnassigned(t *testing.T) {
	order := entities.Order{ID: 77, Quantity: 120}
	w := NewWizard(order, nil, 9, nil)
	require.NoError(t, w.SelectUser(3))

	finalizeNow, err := w.Next()
	require.NoError(t, err)
	assert.True(t, finalizeNow, "no source catalog, nothing to enter")
	assert.Equal(t, StepUserSelection, w.Step())
}

func TestBackKeepsEntries(t *testing.T) {
	w := testWizard()
	require.NoError(t, w.SelectUser(3))
	_, err := w.Next()
	require.NoError(t, err)

	require.NoError(t, w.Select(2))
	require.NoError(t, w.SaveEntry(2, EntryInput{Quantity1: 4}))

	w.Back()
	assert.Equal(t, StepUserSelection, w.Step())
	assert.Len(t, w.CompletedEntries(), 1)
}

func TestSelectUnknownEntry(t *testing.T) {
	w := testWizard()
	assert.ErrorIs(t, w.Select(999), apperrors.ErrNotFound)
}

func TestOpenEntrySeedsDefaults(t *testing.T) {
	w := testWizard()
	require.NoError(t, w.Select(1))

	entry, err := w.OpenEntry(1)
	require.NoError(t, err)
	assert.Equal(t, entities.CalcMeterBased, entry.CalcType)
	assert.Equal(t, 120.0, entry.OrderQuantity, "meter based shows the order quantity")

	require.NoError(t, w.Select(2))
	entry, err = w.OpenEntry(2)
	require.NoError(t, err)
	assert.Zero(t, entry.OrderQuantity)
}

func TestOpenEntryUnselected(t *testing.T) {
	w := testWizard()
	_, err := w.OpenEntry(1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSaveEntryValidates(t *testing.T) {
	w := testWizard()
	require.NoError(t, w.Select(2))

	err := w.SaveEntry(2, EntryInput{Quantity1: 0})
	assert.Error(t, err)
	assert.Empty(t, w.CompletedEntries())

	require.NoError(t, w.SaveEntry(2, EntryInput{Quantity1: 4, Note: "astar"}))
	completed := w.CompletedEntries()
	require.Len(t, completed, 1)
	assert.Equal(t, uint64(2), completed[0].CatalogID)
	assert.Equal(t, "astar", completed[0].Note)
}

func TestCompletedEntryLeavesCatalogList(t *testing.T) {
	w := testWizard()
	require.NoError(t, w.Select(2))
	require.NoError(t, w.SaveEntry(2, EntryInput{Quantity1: 4}))

	for _, e := range w.Catalog() {
		assert.NotEqual(t, uint64(2), e.CatalogID, "completed entries render as chips, not catalog rows")
	}

	// reopening a completed entry comes back pre-filled
	entry, err := w.OpenEntry(2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, entry.Quantity1)
	w.CancelEntry()
}

func TestDeselectIgnoresCompleted(t *testing.T) {
	w := testWizard()
	require.NoError(t, w.Select(2))
	require.NoError(t, w.SaveEntry(2, EntryInput{Quantity1: 4}))

	w.Deselect(2)
	assert.Len(t, w.CompletedEntries(), 1, "deselect must not drop a saved entry")

	w.RemoveCompleted(2)
	assert.Empty(t, w.CompletedEntries())
}

func TestSummaryGuards(t *testing.T) {
	w := testWizard()

	_, err := w.Summary()
	assert.ErrorIs(t, err, apperrors.ErrUserNotSelected)

	require.NoError(t, w.SelectUser(3))
	require.NoError(t, w.Select(2))
	_, err = w.OpenEntry(2)
	require.NoError(t, err)

	_, err = w.Summary()
	assert.ErrorIs(t, err, apperrors.ErrEntryBeingEdited)

	w.CancelEntry()
	sum, err := w.Summary()
	require.NoError(t, err)
	assert.Equal(t, uint64(77), sum.OrderID)
	assert.Equal(t, uint64(9), sum.ToWorkshopID)
	assert.Equal(t, uint64(3), sum.UserID)
	assert.Zero(t, sum.CompletedCount)
}

func TestFinalizeSubmitsInSelectionOrder(t *testing.T) {
	w := testWizard()
	require.NoError(t, w.SelectUser(3))
	_, err := w.Next()
	require.NoError(t, err)

	// select out of catalog order: custom cost first, then simple
	require.NoError(t, w.Select(3))
	require.NoError(t, w.Select(2))
	require.NoError(t, w.SaveEntry(3, EntryInput{Total: 420}))
	require.NoError(t, w.SaveEntry(2, EntryInput{Quantity1: 4}))

	var submitted []uint64
	var assignedUser uint64
	batch, err := w.Finalize(context.Background(),
		func(ctx context.Context, rec CostRecord) error {
			submitted = append(submitted, rec.CostItemID)
			assert.Equal(t, uint64(77), rec.OrderID)
			assert.Equal(t, uint64(5), rec.WorkshopID, "costs book to the source workshop")
			return nil
		},
		func(ctx context.Context, userID uint64) error {
			assert.Equal(t, len(submitted), 2, "assignment runs after the whole batch")
			assignedUser = userID
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []uint64{12, 11}, submitted, "submission follows first-selection order")
	assert.Equal(t, uint64(3), assignedUser)
	assert.Equal(t, 2, batch.Succeeded())
	assert.Empty(t, batch.Failed())
}

func TestFinalizeBatchIsBestEffort(t *testing.T) {
	w := testWizard()
	require.NoError(t, w.SelectUser(3))
	_, err := w.Next()
	require.NoError(t, err)

	require.NoError(t, w.Select(1))
	require.NoError(t, w.Select(2))
	require.NoError(t, w.SaveEntry(1, EntryInput{Quantity1: 2}))
	require.NoError(t, w.SaveEntry(2, EntryInput{Quantity1: 4}))

	boom := errors.New("insert failed")
	assigned := false
	batch, err := w.Finalize(context.Background(),
		func(ctx context.Context, rec CostRecord) error {
			if rec.CostItemID == 10 {
				return boom
			}
			return nil
		},
		func(ctx context.Context, userID uint64) error {
			assigned = true
			return nil
		})

	require.NoError(t, err, "a failed cost record must not block the transfer")
	assert.True(t, assigned)
	assert.Equal(t, 1, batch.Succeeded())
	require.Len(t, batch.Failed(), 1)
	assert.Equal(t, uint64(1), batch.Failed()[0].CatalogID)
	assert.ErrorIs(t, batch.Failed()[0].Err, boom)
}

func TestFinalizeAssignFailureKeepsWizardOpen(t *testing.T) {
	w := testWizard()
	require.NoError(t, w.SelectUser(3))

	boom := errors.New("assign failed")
	_, err := w.Finalize(context.Background(),
		func(ctx context.Context, rec CostRecord) error { return nil },
		func(ctx context.Context, userID uint64) error { return boom })
	assert.ErrorIs(t, err, boom)

	// the wizard is still usable; a retry can succeed
	_, err = w.Finalize(context.Background(),
		func(ctx context.Context, rec CostRecord) error { return nil },
		func(ctx context.Context, userID uint64) error { return nil })
	assert.NoError(t, err)

	// and once done, finalizing again is rejected
	_, err = w.Finalize(context.Background(),
		func(ctx context.Context, rec CostRecord) error { return nil },
		func(ctx context.Context, userID uint64) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrTransferNotFound)
}

func TestFinalizeRequiresUser(t *testing.T) {
	w := testWizard()
	_, err := w.Finalize(context.Background(),
		func(ctx context.Context, rec CostRecord) error { return nil },
		func(ctx context.Context, userID uint64) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrUserNotSelected)
}
