package dto

// TransferDTO is the state of one open transfer-wizard session.
type TransferDTO struct {
	SessionID    string               `json:"session_id"`
	OrderID      uint64               `json:"order_id"`
	FromWorkshop *ShortWorkshopDTO    `json:"from_workshop,omitempty"`
	ToWorkshop   ShortWorkshopDTO     `json:"to_workshop"`
	Step         string               `json:"step"`
	UserID       uint64               `json:"user_id,omitempty"`
	Catalog      []TransferCatalogDTO `json:"catalog"`
	Completed    []TransferEntryDTO   `json:"completed"`
}

type TransferCatalogDTO struct {
	CatalogID       uint64  `json:"catalog_id"`
	CostItemID      uint64  `json:"cost_item_id"`
	Name            string  `json:"name"`
	Unit            string  `json:"unit"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	CalculationType string  `json:"calculation_type"`
	ParamCount      int     `json:"param_count"`
}

type TransferEntryDTO struct {
	CatalogID     uint64  `json:"catalog_id"`
	Quantity1     float64 `json:"quantity1"`
	Quantity2     float64 `json:"quantity2,omitempty"`
	OrderQuantity float64 `json:"order_quantity,omitempty"`
	Total         float64 `json:"total,omitempty"`
	Note          string  `json:"note,omitempty"`
}

type OpenTransferDTO struct {
	OrderID      uint64 `json:"order_id" validate:"required,gt=0"`
	ToWorkshopID uint64 `json:"to_workshop_id" validate:"required,gt=0"`
}

type SelectTransferUserDTO struct {
	UserID uint64 `json:"user_id" validate:"required,gt=0"`
}

type SaveTransferEntryDTO struct {
	Quantity1 float64 `json:"quantity1" validate:"gte=0"`
	Quantity2 float64 `json:"quantity2" validate:"gte=0"`
	Total     float64 `json:"total" validate:"gte=0"`
	Note      string  `json:"note" validate:"omitempty,max=1000"`
}

// TransferSummaryDTO is the confirmation text data shown before finalize.
type TransferSummaryDTO struct {
	OrderID          uint64 `json:"order_id"`
	FromWorkshopName string `json:"from_workshop_name"`
	ToWorkshopName   string `json:"to_workshop_name"`
	UserName         string `json:"user_name"`
	CompletedCount   int    `json:"completed_count"`
}

// TransferResultDTO reports the finalize outcome including per-record
// failures of the best-effort cost batch.
type TransferResultDTO struct {
	OrderID       uint64   `json:"order_id"`
	SavedRecords  int      `json:"saved_records"`
	FailedRecords []uint64 `json:"failed_records,omitempty"` // catalog ids
	Status        string   `json:"status"`
}
