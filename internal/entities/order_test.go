package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusUnassigned, StatusInProgress, StatusCancelled, StatusCompleted} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("shipped").Valid())
}

func TestOrderConsistentAssignment(t *testing.T) {
	wid := uint64(3)

	assert.True(t, Order{Status: StatusUnassigned}.ConsistentAssignment())
	assert.True(t, Order{Status: StatusCompleted}.ConsistentAssignment())
	assert.False(t, Order{Status: StatusInProgress}.ConsistentAssignment(), "in progress needs a workshop")
	assert.False(t, Order{Status: StatusCancelled}.ConsistentAssignment())

	assert.True(t, Order{Status: StatusInProgress, WorkshopID: &wid}.ConsistentAssignment())
	assert.True(t, Order{Status: StatusCancelled, WorkshopID: &wid}.ConsistentAssignment())
}

func TestCalculationTypeParamCount(t *testing.T) {
	assert.Equal(t, 0, CalcCustomCost.ParamCount())
	assert.Equal(t, 1, CalcSimple.ParamCount())
	assert.Equal(t, 1, CalcMeterBased.ParamCount())
	assert.Equal(t, 2, CalcTwoDimensional.ParamCount())
	assert.Equal(t, 2, CalcPieceFitting.ParamCount())
	assert.Equal(t, 2, CalcAreaBased.ParamCount())
	assert.Equal(t, 2, CalcPaintBased.ParamCount())
}

func TestCalculationTypeUsesOrderQuantity(t *testing.T) {
	assert.True(t, CalcPieceFitting.UsesOrderQuantity())
	assert.True(t, CalcMeterBased.UsesOrderQuantity())
	assert.True(t, CalcAreaBased.UsesOrderQuantity())
	assert.False(t, CalcSimple.UsesOrderQuantity())
	assert.False(t, CalcTwoDimensional.UsesOrderQuantity())
	assert.False(t, CalcPaintBased.UsesOrderQuantity())
	assert.False(t, CalcCustomCost.UsesOrderQuantity())
}

func TestCalculationTypeValid(t *testing.T) {
	assert.True(t, CalcSimple.Valid())
	assert.True(t, CalcCustomCost.Valid())
	assert.False(t, CalculationType("per_gram").Valid())
}
