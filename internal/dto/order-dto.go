package dto

type OrderDTO struct {
	ID          uint64            `json:"id"`
	Firm        ShortFirmDTO      `json:"firm"`
	Model       ShortModelDTO     `json:"model"`
	Quantity    float64           `json:"quantity"`
	Unit        string            `json:"unit"`
	Price       float64           `json:"price"`
	Currency    string            `json:"currency"`
	Workshop    *ShortWorkshopDTO `json:"workshop,omitempty"`
	Operator    *ShortUserDTO     `json:"operator,omitempty"`
	Status      string            `json:"status"`
	Deadline    string            `json:"deadline,omitempty"`
	AcceptedAt  string            `json:"accepted_at,omitempty"`
	CompletedAt string            `json:"completed_at,omitempty"`
	Note        string            `json:"note,omitempty"`
	TechnicIDs  []uint64          `json:"technic_ids"`
	Images      []OrderImageDTO   `json:"images"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

type OrderImageDTO struct {
	ID           uint64 `json:"id"`
	FilePath     string `json:"file_path"`
	OriginalName string `json:"original_name"`
}

type CreateOrderDTO struct {
	FirmID     uint64   `json:"firm_id" validate:"required,gt=0"`
	ModelID    uint64   `json:"model_id" validate:"required,gt=0"`
	Quantity   float64  `json:"quantity" validate:"required,gt=0"`
	Unit       string   `json:"unit" validate:"required,max=32"`
	Price      float64  `json:"price" validate:"required,gt=0"`
	Currency   string   `json:"currency" validate:"required,currency_code"`
	Deadline   *string  `json:"deadline,omitempty"`
	AcceptedAt *string  `json:"accepted_at,omitempty"`
	Note       string   `json:"note" validate:"omitempty,max=1000"`
	TechnicIDs []uint64 `json:"technic_ids,omitempty"`
}

type UpdateOrderDTO struct {
	FirmID     *uint64  `json:"firm_id,omitempty" validate:"omitempty,gt=0"`
	ModelID    *uint64  `json:"model_id,omitempty" validate:"omitempty,gt=0"`
	Quantity   *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Unit       *string  `json:"unit,omitempty" validate:"omitempty,max=32"`
	Price      *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Currency   *string  `json:"currency,omitempty" validate:"omitempty,currency_code"`
	Deadline   *string  `json:"deadline,omitempty"`
	AcceptedAt *string  `json:"accepted_at,omitempty"`
	Note       *string  `json:"note,omitempty" validate:"omitempty,max=1000"`
	TechnicIDs []uint64 `json:"technic_ids,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status" validate:"required,order_status"`
}

type AssignOrderDTO struct {
	WorkshopID uint64  `json:"workshop_id" validate:"required,gt=0"`
	UserID     uint64  `json:"user_id" validate:"required,gt=0"`
	Status     *string `json:"status,omitempty" validate:"omitempty,order_status"`
}
