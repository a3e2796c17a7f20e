package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atolye-takip/internal/entities"
)

func uintPtr(v uint64) *uint64 { return &v }

func sampleOrders() []entities.Order {
	return []entities.Order{
		{ID: 1, Status: entities.StatusUnassigned, Price: 10, Quantity: 5, Currency: "TRY"},
		{ID: 2, Status: entities.StatusInProgress, WorkshopID: uintPtr(7), Price: 2, Quantity: 3, Currency: "USD"},
		{ID: 3, Status: entities.StatusInProgress, WorkshopID: uintPtr(8), Price: 100, Quantity: 1, Currency: "EUR"},
		{ID: 4, Status: entities.StatusCompleted, WorkshopID: uintPtr(7), Price: 50, Quantity: 2, Currency: "TRY"},
	}
}

func TestStoreReplaceCopiesInput(t *testing.T) {
	s := NewStore()
	src := sampleOrders()
	s.Replace(src)

	src[0].Status = entities.StatusCancelled

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, entities.StatusUnassigned, got.Status, "store must not alias the caller's slice")
}

func TestStoreByStatus(t *testing.T) {
	s := NewStore()
	s.Replace(sampleOrders())

	inProgress := s.ByStatus(entities.StatusInProgress)
	require.Len(t, inProgress, 2)
	assert.Equal(t, uint64(2), inProgress[0].ID)
	assert.Equal(t, uint64(3), inProgress[1].ID)

	assert.Empty(t, s.ByStatus(entities.StatusCancelled))
}

func TestStoreByWorkshop(t *testing.T) {
	s := NewStore()
	s.Replace(sampleOrders())

	seven := s.ByWorkshop(uintPtr(7))
	require.Len(t, seven, 2)
	assert.Equal(t, uint64(2), seven[0].ID)
	assert.Equal(t, uint64(4), seven[1].ID)

	unassigned := s.ByWorkshop(nil)
	require.Len(t, unassigned, 1)
	assert.Equal(t, uint64(1), unassigned[0].ID)
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore()
	s.Replace(sampleOrders())

	ok := s.Update(2, func(o *entities.Order) {
		o.Status = entities.StatusCompleted
	})
	require.True(t, ok)

	got, _ := s.Get(2)
	assert.Equal(t, entities.StatusCompleted, got.Status)

	assert.False(t, s.Update(999, func(o *entities.Order) {}))
}

func TestStoreSpeculateRevert(t *testing.T) {
	s := NewStore()
	s.Replace(sampleOrders())

	revert, ok := s.Speculate(1, func(o *entities.Order) {
		o.Status = entities.StatusInProgress
	})
	require.True(t, ok)

	got, _ := s.Get(1)
	assert.Equal(t, entities.StatusInProgress, got.Status, "mutation is visible before revert")

	revert()

	got, _ = s.Get(1)
	assert.Equal(t, entities.StatusUnassigned, got.Status, "revert restores the snapshot")
}

func TestStoreSpeculateUnknownOrder(t *testing.T) {
	s := NewStore()
	s.Replace(sampleOrders())

	revert, ok := s.Speculate(999, func(o *entities.Order) {})
	assert.False(t, ok)
	assert.Nil(t, revert)
}

func TestColumnTotal(t *testing.T) {
	orders := []entities.Order{
		{Price: 10, Quantity: 5, Currency: "TRY"},  // base, 50
		{Price: 2, Quantity: 3, Currency: "USD"},   // 6 * 40 = 240
		{Price: 100, Quantity: 1, Currency: "EUR"}, // no rate, contributes 0
	}
	rates := map[string]float64{"USD": 40}

	total := ColumnTotal(orders, rates, "TRY")
	assert.InDelta(t, 290, total, 0.0001)
}

func TestColumnTotalIgnoresNonPositiveRates(t *testing.T) {
	orders := []entities.Order{
		{Price: 5, Quantity: 2, Currency: "USD"},
	}

	assert.Zero(t, ColumnTotal(orders, map[string]float64{"USD": 0}, "TRY"))
	assert.Zero(t, ColumnTotal(orders, map[string]float64{"USD": -1}, "TRY"))
	assert.Zero(t, ColumnTotal(orders, nil, "TRY"))
}
