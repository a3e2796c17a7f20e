package board

import (
	"context"
	"sync"

	"atolye-takip/internal/entities"
	apperrors "atolye-takip/pkg/errors"
)

// Mode selects which column dimension a board is laid out on.
type Mode int

const (
	ModeStatus Mode = iota
	ModeWorkshop
)

// GestureState tracks the single in-flight drag gesture.
type GestureState int

const (
	StateIdle GestureState = iota
	StateDragging
	StateResolving
)

// DropTarget is the raw drop destination of a gesture: either a column
// (a status, or a workshop id where 0 means the unassigned pseudo-column),
// or another order's card, whose own column is inherited.
type DropTarget struct {
	Status     *entities.OrderStatus
	WorkshopID *uint64
	OrderID    *uint64
}

// Resolution is the classified outcome of a drop.
type Resolution struct {
	OrderID    uint64
	Status     entities.OrderStatus // set in ModeStatus
	WorkshopID *uint64              // set in ModeWorkshop; nil = unassigned
	NoOp       bool
}

// PendingTransfer is a workshop-board drop that must go through the transfer
// wizard before anything is persisted.
type PendingTransfer struct {
	OrderID        uint64
	FromWorkshopID *uint64
	ToWorkshopID   uint64
}

// MoveResult reports what a finished gesture did to the board.
type MoveResult struct {
	Resolution      Resolution
	NoOp            bool
	Committed       bool
	Reverted        bool
	PendingTransfer *PendingTransfer
}

// CommitFunc persists a resolved status change. The coordinator has already
// applied the change locally; an error makes it revert.
type CommitFunc func(ctx context.Context, orderID uint64, status entities.OrderStatus) error

// Coordinator serializes drag gestures over one board store. Only one
// gesture can be in flight; Begin fails while another is resolving.
type Coordinator struct {
	store *Store
	mode  Mode

	mu       sync.Mutex
	state    GestureState
	activeID uint64
}

func NewCoordinator(store *Store, mode Mode) *Coordinator {
	return &Coordinator{store: store, mode: mode}
}

// Begin starts a gesture for the given order.
func (c *Coordinator) Begin(orderID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return apperrors.ErrGestureInFlight
	}
	if _, ok := c.store.Get(orderID); !ok {
		return apperrors.ErrNotFound
	}
	c.state = StateDragging
	c.activeID = orderID
	return nil
}

// Cancel ends a gesture that found no valid drop target. No mutation.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.activeID = 0
}

// Active returns the order currently being dragged, if any.
func (c *Coordinator) Active() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID, c.state != StateIdle
}

// resolve classifies the drop target. Dropping onto another card inherits
// that card's column, so a fully covered column remains a valid target.
func (c *Coordinator) resolve(orderID uint64, target DropTarget) (Resolution, error) {
	order, ok := c.store.Get(orderID)
	if !ok {
		return Resolution{}, apperrors.ErrNotFound
	}

	res := Resolution{OrderID: orderID}

	switch c.mode {
	case ModeStatus:
		var status entities.OrderStatus
		switch {
		case target.Status != nil:
			status = *target.Status
		case target.OrderID != nil:
			under, ok := c.store.Get(*target.OrderID)
			if !ok {
				return Resolution{}, apperrors.ErrUnresolvableTarget
			}
			status = under.Status
		default:
			return Resolution{}, apperrors.ErrUnresolvableTarget
		}
		if !status.Valid() {
			return Resolution{}, apperrors.ErrUnresolvableTarget
		}
		res.Status = status
		res.NoOp = order.Status == status
		return res, nil

	default: // ModeWorkshop
		var workshopID *uint64
		switch {
		case target.WorkshopID != nil:
			if *target.WorkshopID != 0 {
				id := *target.WorkshopID
				workshopID = &id
			}
		case target.OrderID != nil:
			under, ok := c.store.Get(*target.OrderID)
			if !ok {
				return Resolution{}, apperrors.ErrUnresolvableTarget
			}
			workshopID = under.WorkshopID
		default:
			return Resolution{}, apperrors.ErrUnresolvableTarget
		}
		res.WorkshopID = workshopID
		res.NoOp = sameWorkshop(order.WorkshopID, workshopID)
		return res, nil
	}
}

// Drop finishes the gesture against a resolved target.
//
// In ModeStatus the change is applied optimistically and commit is called;
// a commit failure restores the pre-drag value. In ModeWorkshop nothing is
// committed here: a drop onto a new workshop yields a PendingTransfer for
// the wizard to carry out.
func (c *Coordinator) Drop(ctx context.Context, target DropTarget, commit CommitFunc) (MoveResult, error) {
	c.mu.Lock()
	if c.state != StateDragging {
		c.mu.Unlock()
		return MoveResult{}, apperrors.ErrGestureInFlight
	}
	c.state = StateResolving
	orderID := c.activeID
	c.mu.Unlock()

	defer c.Cancel()

	res, err := c.resolve(orderID, target)
	if err != nil {
		return MoveResult{}, err
	}
	if res.NoOp {
		return MoveResult{Resolution: res, NoOp: true}, nil
	}

	if c.mode == ModeWorkshop {
		order, _ := c.store.Get(orderID)
		if res.WorkshopID == nil {
			// Un-assigning through the board is not a supported drop;
			// the gesture aborts without touching anything.
			return MoveResult{}, apperrors.ErrUnresolvableTarget
		}
		return MoveResult{
			Resolution: res,
			PendingTransfer: &PendingTransfer{
				OrderID:        orderID,
				FromWorkshopID: order.WorkshopID,
				ToWorkshopID:   *res.WorkshopID,
			},
		}, nil
	}

	revert, ok := c.store.Speculate(orderID, func(o *entities.Order) {
		o.Status = res.Status
	})
	if !ok {
		return MoveResult{}, apperrors.ErrNotFound
	}

	if err := commit(ctx, orderID, res.Status); err != nil {
		revert()
		return MoveResult{Resolution: res, Reverted: true}, err
	}

	return MoveResult{Resolution: res, Committed: true}, nil
}

func sameWorkshop(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
