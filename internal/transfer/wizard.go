// Package transfer implements the two-step workflow that moves an order into
// a new workshop: operator selection, then optional cost entry against the
// source workshop's catalog, finishing with a best-effort cost batch and a
// single assignment call.
package transfer

import (
	"context"
	"sync"

	"atolye-takip/internal/entities"
	apperrors "atolye-takip/pkg/errors"
)

// Step is the wizard's current screen.
type Step int

const (
	StepUserSelection Step = iota
	StepCostEntry
)

// SubmitFunc persists one cost record.
type SubmitFunc func(ctx context.Context, record CostRecord) error

// AssignFunc performs the final workshop/operator/status assignment.
type AssignFunc func(ctx context.Context, userID uint64) error

// Summary is the confirmation shown before finalizing.
type Summary struct {
	OrderID        uint64
	FromWorkshopID *uint64 // nil = unassigned work
	ToWorkshopID   uint64
	UserID         uint64
	CompletedCount int
}

// Wizard is the state machine behind one transfer dialog. A new Wizard is
// built every time the dialog opens, so no state survives an aborted
// transfer.
type Wizard struct {
	mu sync.Mutex

	order          entities.Order
	fromWorkshopID *uint64
	toWorkshopID   uint64

	step      Step
	userID    uint64
	catalog   []CatalogEntry
	selected  map[uint64]bool
	order1st  []uint64 // catalog ids in first-selection order; drives submission order
	completed map[uint64]Entry
	editing   *uint64
	done      bool
}

// NewWizard opens a wizard for moving order out of fromWorkshopID (nil for
// the unassigned pseudo-workshop) into toWorkshopID. The catalog is the raw
// cost-item list of the source workshop; it is filtered and priority-sorted
// here.
func NewWizard(order entities.Order, fromWorkshopID *uint64, toWorkshopID uint64, catalog []CatalogEntry) *Wizard {
	return &Wizard{
		order:          order,
		fromWorkshopID: fromWorkshopID,
		toWorkshopID:   toWorkshopID,
		catalog:        PrepareCatalog(catalog),
		selected:       make(map[uint64]bool),
		completed:      make(map[uint64]Entry),
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Order() entities.Order { return w.order }

func (w *Wizard) ToWorkshopID() uint64 { return w.toWorkshopID }

func (w *Wizard) FromWorkshopID() *uint64 { return w.fromWorkshopID }

// SelectUser records the operator receiving/performing the handoff.
func (w *Wizard) SelectUser(userID uint64) error {
	if userID == 0 {
		return apperrors.ErrUserNotSelected
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.userID = userID
	return nil
}

// Next advances from user selection. When the order leaves the unassigned
// pseudo-workshop there is no source catalog, so the wizard finalizes
// immediately instead of entering cost entry.
func (w *Wizard) Next() (finalizeNow bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userID == 0 {
		return false, apperrors.ErrUserNotSelected
	}
	if w.fromWorkshopID == nil {
		return true, nil
	}
	w.step = StepCostEntry
	return false, nil
}

// Back returns from cost entry to user selection without losing entries.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepUserSelection
}

// Catalog lists the entries still offered for selection, excluding
// completed ones (those render as chips instead).
func (w *Wizard) Catalog() []CatalogEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []CatalogEntry
	for _, e := range w.catalog {
		if _, ok := w.completed[e.CatalogID]; ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CompletedEntries returns saved entries in submission order.
func (w *Wizard) CompletedEntries() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []Entry
	for _, id := range w.order1st {
		if e, ok := w.completed[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *Wizard) findCatalog(catalogID uint64) (CatalogEntry, bool) {
	for _, e := range w.catalog {
		if e.CatalogID == catalogID {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// Select marks a catalog entry for cost entry.
func (w *Wizard) Select(catalogID uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.findCatalog(catalogID); !ok {
		return apperrors.ErrNotFound
	}
	if !w.selected[catalogID] {
		w.selected[catalogID] = true
		w.order1st = append(w.order1st, catalogID)
	}
	return nil
}

// Deselect clears an uncompleted selection without prompting.
func (w *Wizard) Deselect(catalogID uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.completed[catalogID]; ok {
		return
	}
	delete(w.selected, catalogID)
	w.removeFromOrder(catalogID)
	if w.editing != nil && *w.editing == catalogID {
		w.editing = nil
	}
}

func (w *Wizard) removeFromOrder(catalogID uint64) {
	for i, id := range w.order1st {
		if id == catalogID {
			w.order1st = append(w.order1st[:i], w.order1st[i+1:]...)
			return
		}
	}
}

// OpenEntry opens the per-item input for a selected or completed entry.
// Completed entries come back pre-filled for editing; fresh ones are seeded
// from the calc type's defaults.
func (w *Wizard) OpenEntry(catalogID uint64) (Entry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	catalog, ok := w.findCatalog(catalogID)
	if !ok {
		return Entry{}, apperrors.ErrNotFound
	}
	if !w.selected[catalogID] {
		if _, completed := w.completed[catalogID]; !completed {
			return Entry{}, apperrors.ErrNotFound
		}
	}

	w.editing = &catalogID

	if existing, ok := w.completed[catalogID]; ok {
		return existing, nil
	}

	entry := Entry{CatalogID: catalogID, CalcType: catalog.CalcType}
	if catalog.CalcType.UsesOrderQuantity() {
		entry.OrderQuantity = w.order.Quantity
	}
	return entry, nil
}

// CancelEntry abandons the open per-item input.
func (w *Wizard) CancelEntry() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.editing = nil
}

// SaveEntry validates and stores the per-item input, moving the entry from
// selected to completed.
func (w *Wizard) SaveEntry(catalogID uint64, input EntryInput) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	catalog, ok := w.findCatalog(catalogID)
	if !ok {
		return apperrors.ErrNotFound
	}
	if !w.selected[catalogID] {
		if _, completed := w.completed[catalogID]; !completed {
			return apperrors.ErrNotFound
		}
	}

	if err := validateInput(catalog.CalcType, input); err != nil {
		return err
	}

	entry := Entry{
		CatalogID: catalogID,
		CalcType:  catalog.CalcType,
		Quantity1: input.Quantity1,
		Quantity2: input.Quantity2,
		Total:     input.Total,
		Note:      input.Note,
	}
	if catalog.CalcType.UsesOrderQuantity() {
		entry.OrderQuantity = w.order.Quantity
	}

	w.completed[catalogID] = entry
	delete(w.selected, catalogID)
	if !containsID(w.order1st, catalogID) {
		w.order1st = append(w.order1st, catalogID)
	}
	w.editing = nil
	return nil
}

// RemoveCompleted removes a saved entry (the chip's delete action).
func (w *Wizard) RemoveCompleted(catalogID uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.completed, catalogID)
	w.removeFromOrder(catalogID)
}

// Summary builds the human confirmation shown before finalizing.
func (w *Wizard) Summary() (Summary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userID == 0 {
		return Summary{}, apperrors.ErrUserNotSelected
	}
	if w.editing != nil {
		return Summary{}, apperrors.ErrEntryBeingEdited
	}
	return Summary{
		OrderID:        w.order.ID,
		FromWorkshopID: w.fromWorkshopID,
		ToWorkshopID:   w.toWorkshopID,
		UserID:         w.userID,
		CompletedCount: len(w.completed),
	}, nil
}

// Finalize submits every completed cost record sequentially in selection
// order and then performs the single assignment call.
//
// Record failures do not abort the batch: a missing cost entry must not
// block a workshop transfer. The assignment call only runs after the whole
// batch has settled; if it fails the wizard stays open and the error is
// returned alongside the batch outcomes.
func (w *Wizard) Finalize(ctx context.Context, submit SubmitFunc, assign AssignFunc) (BatchResult, error) {
	w.mu.Lock()
	if w.done {
		w.mu.Unlock()
		return BatchResult{}, apperrors.ErrTransferNotFound
	}
	if w.userID == 0 {
		w.mu.Unlock()
		return BatchResult{}, apperrors.ErrUserNotSelected
	}
	if w.editing != nil {
		w.mu.Unlock()
		return BatchResult{}, apperrors.ErrEntryBeingEdited
	}

	sourceWorkshop := uint64(0)
	if w.fromWorkshopID != nil {
		sourceWorkshop = *w.fromWorkshopID
	}

	type pending struct {
		catalog CatalogEntry
		entry   Entry
	}
	var queue []pending
	for _, id := range w.order1st {
		entry, ok := w.completed[id]
		if !ok {
			continue
		}
		catalog, _ := w.findCatalog(id)
		queue = append(queue, pending{catalog: catalog, entry: entry})
	}
	userID := w.userID
	orderID := w.order.ID
	w.mu.Unlock()

	var result BatchResult
	for _, p := range queue {
		record := BuildRecord(orderID, sourceWorkshop, p.catalog, p.entry)
		err := submit(ctx, record)
		result.Items = append(result.Items, ItemOutcome{
			CatalogID:  p.catalog.CatalogID,
			CostItemID: p.catalog.CostItemID,
			Err:        err,
		})
	}

	if err := assign(ctx, userID); err != nil {
		return result, err
	}

	w.mu.Lock()
	w.done = true
	w.mu.Unlock()
	return result, nil
}

func containsID(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
