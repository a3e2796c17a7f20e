package transfer

import (
	"sort"

	"atolye-takip/internal/entities"
	apperrors "atolye-takip/pkg/errors"
)

// CatalogEntry is one workshop cost item offered during the cost-entry step.
type CatalogEntry struct {
	CatalogID  uint64
	CostItemID uint64
	Name       string
	Unit       string
	Price      float64
	Currency   string
	CalcType   entities.CalculationType
	Priority   *int
	IsActive   bool
}

// unsetPriority sorts catalog entries without a priority after everything
// that has one.
const unsetPriority = 999

// PrepareCatalog filters out inactive entries and entries whose cost item
// cannot be resolved, then sorts by ascending priority.
func PrepareCatalog(entries []CatalogEntry) []CatalogEntry {
	out := make([]CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if !e.IsActive || e.CostItemID == 0 {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priorityOf(out[i]) < priorityOf(out[j])
	})
	return out
}

func priorityOf(e CatalogEntry) int {
	if e.Priority == nil {
		return unsetPriority
	}
	return *e.Priority
}

// Entry is the working input for one selected catalog item.
type Entry struct {
	CatalogID uint64
	CalcType  entities.CalculationType
	Quantity1 float64
	Quantity2 float64
	// OrderQuantity is shown read-only when the calc type consumes the
	// order's own quantity.
	OrderQuantity float64
	// Total is entered directly for CustomCost.
	Total float64
	Note  string
}

// EntryInput carries the user-supplied values for an entry.
type EntryInput struct {
	Quantity1 float64
	Quantity2 float64
	Total     float64
	Note      string
}

func validateInput(calcType entities.CalculationType, in EntryInput) error {
	switch calcType.ParamCount() {
	case 0:
		if in.Total <= 0 {
			return apperrors.NewInvalidInputError("total amount must be greater than zero")
		}
	case 1:
		if in.Quantity1 <= 0 {
			return apperrors.NewInvalidInputError("quantity must be greater than zero")
		}
	default:
		if in.Quantity1 <= 0 || in.Quantity2 <= 0 {
			return apperrors.NewInvalidInputError("both quantities must be greater than zero")
		}
	}
	return nil
}

// CostRecord is the persisted shape of one completed entry.
type CostRecord struct {
	OrderID      uint64
	WorkshopID   uint64
	CostItemID   uint64
	QuantityUsed float64
	Quantity2    *float64
	Unit         string
	Unit2        string
	ActualPrice  float64
	Currency     string
	TotalCost    float64
	Note         string
}

// BuildRecord computes the persisted record for a completed entry.
//
// CustomCost bypasses the quantity math entirely: the entered total is
// stored as-is and quantity/price fields are zeroed. Every other type uses
// quantity1 x (quantity2 or 1) x unit price.
func BuildRecord(orderID, workshopID uint64, catalog CatalogEntry, entry Entry) CostRecord {
	rec := CostRecord{
		OrderID:    orderID,
		WorkshopID: workshopID,
		CostItemID: catalog.CostItemID,
		Unit:       catalog.Unit,
		Currency:   catalog.Currency,
		Note:       entry.Note,
	}

	if catalog.CalcType == entities.CalcCustomCost {
		rec.TotalCost = entry.Total
		return rec
	}

	rec.QuantityUsed = entry.Quantity1
	rec.ActualPrice = catalog.Price

	multiplier := 1.0
	if catalog.CalcType.ParamCount() == 2 {
		multiplier = entry.Quantity2
		q2 := entry.Quantity2
		rec.Quantity2 = &q2
	}
	rec.TotalCost = entry.Quantity1 * multiplier * catalog.Price
	return rec
}
