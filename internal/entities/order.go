package entities

import "time"

// OrderStatus is the lifecycle state of a production order.
type OrderStatus string

const (
	StatusUnassigned OrderStatus = "unassigned"
	StatusInProgress OrderStatus = "in_progress"
	StatusCancelled  OrderStatus = "cancelled"
	StatusCompleted  OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusUnassigned, StatusInProgress, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Order is a single production job tied to a firm and a model.
type Order struct {
	ID          uint64
	FirmID      uint64
	ModelID     uint64
	Quantity    float64
	Unit        string
	Price       float64
	Currency    string
	WorkshopID  *uint64 // nil while the order sits in the unassigned column
	OperatorID  *uint64
	Status      OrderStatus
	Deadline    *time.Time
	AcceptedAt  *time.Time
	CompletedAt *time.Time
	Note        string
	TechnicIDs  []uint64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ConsistentAssignment reports whether status and workshop assignment agree:
// an order without a workshop may only be unassigned or completed.
func (o Order) ConsistentAssignment() bool {
	if o.WorkshopID == nil {
		return o.Status == StatusUnassigned || o.Status == StatusCompleted
	}
	return true
}
