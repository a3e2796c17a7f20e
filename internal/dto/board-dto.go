package dto

// BoardColumnDTO is one Kanban column with its cards and converted total.
type BoardColumnDTO struct {
	Key        string     `json:"key"`
	Title      string     `json:"title"`
	WorkshopID *uint64    `json:"workshop_id,omitempty"`
	Status     string     `json:"status,omitempty"`
	Orders     []OrderDTO `json:"orders"`
	Total      float64    `json:"total"`
	Currency   string     `json:"currency"`
}

type BoardDTO struct {
	Mode    string           `json:"mode"`
	Columns []BoardColumnDTO `json:"columns"`
}

// MoveOrderDTO is a finished drag gesture: the dragged order plus the raw
// drop target (a status column, a workshop column, or another card).
type MoveOrderDTO struct {
	OrderID        uint64  `json:"order_id" validate:"required,gt=0"`
	Mode           string  `json:"mode" validate:"required,oneof=status workshop"`
	TargetStatus   *string `json:"target_status,omitempty" validate:"omitempty,order_status"`
	TargetWorkshop *uint64 `json:"target_workshop,omitempty"`
	TargetOrderID  *uint64 `json:"target_order_id,omitempty" validate:"omitempty,gt=0"`
}

type MoveResultDTO struct {
	NoOp            bool         `json:"no_op"`
	Committed       bool         `json:"committed"`
	Reverted        bool         `json:"reverted"`
	Order           *OrderDTO    `json:"order,omitempty"`
	PendingTransfer *TransferDTO `json:"pending_transfer,omitempty"`
}
