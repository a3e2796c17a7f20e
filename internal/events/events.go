// Package events defines the domain events published on the bus after board
// mutations, mainly so the websocket stream can fan them out to clients.
package events

const (
	OrderMovedName       = "order.moved"
	OrderTransferredName = "order.transferred"
	BoardChangedName     = "board.changed"
)

// OrderMoved fires after a status-board drag commits.
type OrderMoved struct {
	OrderID   uint64
	NewStatus string
	MovedBy   uint64
}

func (OrderMoved) Name() string { return OrderMovedName }

// OrderTransferred fires after a transfer wizard finalizes.
type OrderTransferred struct {
	OrderID        uint64
	FromWorkshopID *uint64
	ToWorkshopID   uint64
	OperatorID     uint64
	NewStatus      string
	SavedCosts     int
	FailedCosts    int
}

func (OrderTransferred) Name() string { return OrderTransferredName }

// BoardChanged fires for any mutation that should make clients reload the
// board: create/update/deactivate of orders, moves, transfers.
type BoardChanged struct {
	Reason string
}

func (BoardChanged) Name() string { return BoardChangedName }
