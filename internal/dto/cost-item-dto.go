package dto

import "github.com/aarondl/null/v8"

type CostItemDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateCostItemDTO struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
	Unit string `json:"unit" validate:"required,max=32"`
}

type UpdateCostItemDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Unit     *string `json:"unit,omitempty" validate:"omitempty,max=32"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type WorkshopCostItemDTO struct {
	ID              uint64           `json:"id"`
	Workshop        ShortWorkshopDTO `json:"workshop"`
	CostItemID      uint64           `json:"cost_item_id"`
	CostItemName    string           `json:"cost_item_name"`
	CostItemUnit    string           `json:"cost_item_unit"`
	Price           float64          `json:"price"`
	Currency        string           `json:"currency"`
	CalculationType string           `json:"calculation_type"`
	Priority        null.Int         `json:"priority"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
}

type CreateWorkshopCostItemDTO struct {
	WorkshopID      uint64  `json:"workshop_id" validate:"required,gt=0"`
	CostItemID      uint64  `json:"cost_item_id" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"required,currency_code"`
	CalculationType string  `json:"calculation_type" validate:"required,calc_type"`
	Priority        *int    `json:"priority,omitempty" validate:"omitempty,gte=0"`
}

type UpdateWorkshopCostItemDTO struct {
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Currency        *string  `json:"currency,omitempty" validate:"omitempty,currency_code"`
	CalculationType *string  `json:"calculation_type,omitempty" validate:"omitempty,calc_type"`
	Priority        *int     `json:"priority,omitempty" validate:"omitempty,gte=0"`
	IsActive        *bool    `json:"is_active,omitempty"`
}
