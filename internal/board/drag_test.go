package board

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atolye-takip/internal/entities"
	apperrors "atolye-takip/pkg/errors"
)

func statusPtr(s entities.OrderStatus) *entities.OrderStatus { return &s }

func newStatusBoard(t *testing.T) (*Store, *Coordinator) {
	t.Helper()
	s := NewStore()
	s.Replace(sampleOrders())
	return s, NewCoordinator(s, ModeStatus)
}

func newWorkshopBoard(t *testing.T) (*Store, *Coordinator) {
	t.Helper()
	s := NewStore()
	s.Replace(sampleOrders())
	return s, NewCoordinator(s, ModeWorkshop)
}

func noCommit(t *testing.T) CommitFunc {
	return func(ctx context.Context, orderID uint64, status entities.OrderStatus) error {
		t.Fatalf("commit should not be called (order %d -> %s)", orderID, status)
		return nil
	}
}

func TestBeginUnknownOrder(t *testing.T) {
	_, coord := newStatusBoard(t)

	err := coord.Begin(999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, active := coord.Active()
	assert.False(t, active)
}

func TestBeginWhileGestureInFlight(t *testing.T) {
	_, coord := newStatusBoard(t)

	require.NoError(t, coord.Begin(1))
	assert.ErrorIs(t, coord.Begin(2), apperrors.ErrGestureInFlight)

	coord.Cancel()
	assert.NoError(t, coord.Begin(2))
}

func TestDropWithoutBegin(t *testing.T) {
	_, coord := newStatusBoard(t)

	_, err := coord.Drop(context.Background(), DropTarget{Status: statusPtr(entities.StatusInProgress)}, noCommit(t))
	assert.ErrorIs(t, err, apperrors.ErrGestureInFlight)
}

func TestStatusDropCommits(t *testing.T) {
	store, coord := newStatusBoard(t)
	require.NoError(t, coord.Begin(1))

	var committed entities.OrderStatus
	res, err := coord.Drop(context.Background(), DropTarget{Status: statusPtr(entities.StatusInProgress)},
		func(ctx context.Context, orderID uint64, status entities.OrderStatus) error {
			committed = status
			return nil
		})

	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.Equal(t, entities.StatusInProgress, committed)

	got, _ := store.Get(1)
	assert.Equal(t, entities.StatusInProgress, got.Status)

	_, active := coord.Active()
	assert.False(t, active, "gesture ends after drop")
}

func TestStatusDropRevertsOnCommitError(t *testing.T) {
	store, coord := newStatusBoard(t)
	require.NoError(t, coord.Begin(1))

	boom := errors.New("db down")
	res, err := coord.Drop(context.Background(), DropTarget{Status: statusPtr(entities.StatusCancelled)},
		func(ctx context.Context, orderID uint64, status entities.OrderStatus) error {
			return boom
		})

	assert.ErrorIs(t, err, boom)
	assert.True(t, res.Reverted)
	assert.False(t, res.Committed)

	got, _ := store.Get(1)
	assert.Equal(t, entities.StatusUnassigned, got.Status, "optimistic change is rolled back")
}

func TestStatusDropSameColumnIsNoOp(t *testing.T) {
	_, coord := newStatusBoard(t)
	require.NoError(t, coord.Begin(2))

	res, err := coord.Drop(context.Background(), DropTarget{Status: statusPtr(entities.StatusInProgress)}, noCommit(t))

	require.NoError(t, err)
	assert.True(t, res.NoOp)
	assert.False(t, res.Committed)
}

func TestStatusDropOntoCardInheritsColumn(t *testing.T) {
	store, coord := newStatusBoard(t)
	require.NoError(t, coord.Begin(1))

	// order 4 sits in the completed column
	res, err := coord.Drop(context.Background(), DropTarget{OrderID: uintPtr(4)},
		func(ctx context.Context, orderID uint64, status entities.OrderStatus) error {
			return nil
		})

	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.Equal(t, entities.StatusCompleted, res.Resolution.Status)

	got, _ := store.Get(1)
	assert.Equal(t, entities.StatusCompleted, got.Status)
}

func TestStatusDropUnresolvableTargets(t *testing.T) {
	_, coord := newStatusBoard(t)

	cases := []struct {
		name   string
		target DropTarget
	}{
		{"empty target", DropTarget{}},
		{"unknown card", DropTarget{OrderID: uintPtr(999)}},
		{"invalid status", DropTarget{Status: statusPtr(entities.OrderStatus("shredded"))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, coord.Begin(1))
			_, err := coord.Drop(context.Background(), tc.target, noCommit(t))
			assert.ErrorIs(t, err, apperrors.ErrUnresolvableTarget)

			_, active := coord.Active()
			assert.False(t, active, "failed drop still releases the gesture")
		})
	}
}

func TestWorkshopDropYieldsPendingTransfer(t *testing.T) {
	store, coord := newWorkshopBoard(t)
	require.NoError(t, coord.Begin(2))

	res, err := coord.Drop(context.Background(), DropTarget{WorkshopID: uintPtr(8)}, noCommit(t))

	require.NoError(t, err)
	require.NotNil(t, res.PendingTransfer)
	assert.Equal(t, uint64(2), res.PendingTransfer.OrderID)
	require.NotNil(t, res.PendingTransfer.FromWorkshopID)
	assert.Equal(t, uint64(7), *res.PendingTransfer.FromWorkshopID)
	assert.Equal(t, uint64(8), res.PendingTransfer.ToWorkshopID)
	assert.False(t, res.Committed)

	// nothing persisted or mutated until the wizard finishes
	got, _ := store.Get(2)
	require.NotNil(t, got.WorkshopID)
	assert.Equal(t, uint64(7), *got.WorkshopID)
}

func TestWorkshopDropFromUnassigned(t *testing.T) {
	_, coord := newWorkshopBoard(t)
	require.NoError(t, coord.Begin(1))

	res, err := coord.Drop(context.Background(), DropTarget{WorkshopID: uintPtr(7)}, noCommit(t))

	require.NoError(t, err)
	require.NotNil(t, res.PendingTransfer)
	assert.Nil(t, res.PendingTransfer.FromWorkshopID)
	assert.Equal(t, uint64(7), res.PendingTransfer.ToWorkshopID)
}

func TestWorkshopDropSameWorkshopIsNoOp(t *testing.T) {
	_, coord := newWorkshopBoard(t)
	require.NoError(t, coord.Begin(2))

	res, err := coord.Drop(context.Background(), DropTarget{WorkshopID: uintPtr(7)}, noCommit(t))

	require.NoError(t, err)
	assert.True(t, res.NoOp)
	assert.Nil(t, res.PendingTransfer)
}

func TestWorkshopDropOntoUnassignedColumnFails(t *testing.T) {
	_, coord := newWorkshopBoard(t)
	require.NoError(t, coord.Begin(2))

	// workshop id 0 addresses the unassigned pseudo-column
	_, err := coord.Drop(context.Background(), DropTarget{WorkshopID: uintPtr(0)}, noCommit(t))
	assert.ErrorIs(t, err, apperrors.ErrUnresolvableTarget)
}

func TestWorkshopDropOntoCardInheritsWorkshop(t *testing.T) {
	_, coord := newWorkshopBoard(t)
	require.NoError(t, coord.Begin(1))

	// order 3 sits in workshop 8
	res, err := coord.Drop(context.Background(), DropTarget{OrderID: uintPtr(3)}, noCommit(t))

	require.NoError(t, err)
	require.NotNil(t, res.PendingTransfer)
	assert.Equal(t, uint64(8), res.PendingTransfer.ToWorkshopID)
}

func TestWorkshopDropOntoUnassignedCardFails(t *testing.T) {
	_, coord := newWorkshopBoard(t)
	require.NoError(t, coord.Begin(2))

	// order 1 has no workshop, so inheriting its column would un-assign
	_, err := coord.Drop(context.Background(), DropTarget{OrderID: uintPtr(1)}, noCommit(t))
	assert.ErrorIs(t, err, apperrors.ErrUnresolvableTarget)
}
