package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atolye-takip/internal/entities"
)

func intPtr(v int) *int { return &v }

func TestPrepareCatalog(t *testing.T) {
	entries := []CatalogEntry{
		{CatalogID: 1, CostItemID: 10, Name: "İplik", CalcType: entities.CalcSimple, IsActive: true},
		{CatalogID: 2, CostItemID: 11, Name: "Kumaş", CalcType: entities.CalcMeterBased, Priority: intPtr(1), IsActive: true},
		{CatalogID: 3, CostItemID: 12, Name: "Boya", CalcType: entities.CalcPaintBased, Priority: intPtr(5), IsActive: false},
		{CatalogID: 4, CostItemID: 0, Name: "Silinen kalem", CalcType: entities.CalcSimple, Priority: intPtr(2), IsActive: true},
		{CatalogID: 5, CostItemID: 14, Name: "Fermuar", CalcType: entities.CalcSimple, Priority: intPtr(3), IsActive: true},
	}

	got := PrepareCatalog(entries)

	require.Len(t, got, 3, "inactive and orphaned entries are dropped")
	assert.Equal(t, uint64(2), got[0].CatalogID, "priority 1 first")
	assert.Equal(t, uint64(5), got[1].CatalogID, "priority 3 second")
	assert.Equal(t, uint64(1), got[2].CatalogID, "nil priority sorts last")
}

func TestValidateInput(t *testing.T) {
	cases := []struct {
		name     string
		calcType entities.CalculationType
		input    EntryInput
		wantErr  bool
	}{
		{"custom cost needs total", entities.CalcCustomCost, EntryInput{Total: 0}, true},
		{"custom cost valid", entities.CalcCustomCost, EntryInput{Total: 150}, false},
		{"simple needs quantity", entities.CalcSimple, EntryInput{Quantity1: 0}, true},
		{"simple valid", entities.CalcSimple, EntryInput{Quantity1: 4}, false},
		{"meter based valid", entities.CalcMeterBased, EntryInput{Quantity1: 2.5}, false},
		{"two dimensional needs both", entities.CalcTwoDimensional, EntryInput{Quantity1: 3}, true},
		{"two dimensional valid", entities.CalcTwoDimensional, EntryInput{Quantity1: 3, Quantity2: 2}, false},
		{"area based needs both", entities.CalcAreaBased, EntryInput{Quantity2: 2}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateInput(tc.calcType, tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildRecordSimple(t *testing.T) {
	catalog := CatalogEntry{
		CatalogID: 1, CostItemID: 10, Unit: "metre",
		Price: 12.5, Currency: "TRY", CalcType: entities.CalcSimple,
	}
	entry := Entry{CatalogID: 1, CalcType: entities.CalcSimple, Quantity1: 4, Note: "astar"}

	rec := BuildRecord(77, 5, catalog, entry)

	assert.Equal(t, uint64(77), rec.OrderID)
	assert.Equal(t, uint64(5), rec.WorkshopID)
	assert.Equal(t, uint64(10), rec.CostItemID)
	assert.Equal(t, 4.0, rec.QuantityUsed)
	assert.Nil(t, rec.Quantity2)
	assert.Equal(t, 12.5, rec.ActualPrice)
	assert.InDelta(t, 50, rec.TotalCost, 0.0001)
	assert.Equal(t, "astar", rec.Note)
}

func TestBuildRecordTwoQuantities(t *testing.T) {
	catalog := CatalogEntry{
		CatalogID: 2, CostItemID: 11, Unit: "adet",
		Price: 3, Currency: "TRY", CalcType: entities.CalcTwoDimensional,
	}
	entry := Entry{CatalogID: 2, CalcType: entities.CalcTwoDimensional, Quantity1: 10, Quantity2: 2}

	rec := BuildRecord(77, 5, catalog, entry)

	require.NotNil(t, rec.Quantity2)
	assert.Equal(t, 2.0, *rec.Quantity2)
	assert.InDelta(t, 60, rec.TotalCost, 0.0001)
}

func TestBuildRecordCustomCost(t *testing.T) {
	catalog := CatalogEntry{
		CatalogID: 3, CostItemID: 12, Unit: "adet",
		Price: 99, Currency: "USD", CalcType: entities.CalcCustomCost,
	}
	entry := Entry{CatalogID: 3, CalcType: entities.CalcCustomCost, Total: 420}

	rec := BuildRecord(77, 5, catalog, entry)

	assert.Zero(t, rec.QuantityUsed, "entered total bypasses quantity math")
	assert.Zero(t, rec.ActualPrice)
	assert.Nil(t, rec.Quantity2)
	assert.InDelta(t, 420, rec.TotalCost, 0.0001)
	assert.Equal(t, "USD", rec.Currency)
}

func TestBatchResult(t *testing.T) {
	r := BatchResult{Items: []ItemOutcome{
		{CatalogID: 1, Err: nil},
		{CatalogID: 2, Err: assert.AnError},
		{CatalogID: 3, Err: nil},
	}}

	assert.Equal(t, 2, r.Succeeded())

	failed := r.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, uint64(2), failed[0].CatalogID)
}
