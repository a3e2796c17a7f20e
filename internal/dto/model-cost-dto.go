package dto

import "github.com/aarondl/null/v8"

type ModelCostDTO struct {
	ID           uint64           `json:"id"`
	OrderID      uint64           `json:"order_id"`
	Workshop     ShortWorkshopDTO `json:"workshop"`
	CostItemID   uint64           `json:"cost_item_id"`
	CostItemName string           `json:"cost_item_name"`
	QuantityUsed float64          `json:"quantity_used"`
	Quantity2    null.Float64     `json:"quantity2"`
	Unit         string           `json:"unit"`
	Unit2        string           `json:"unit2,omitempty"`
	ActualPrice  float64          `json:"actual_price"`
	Currency     string           `json:"currency"`
	TotalCost    float64          `json:"total_cost"`
	Note         string           `json:"note,omitempty"`
	CreatedAt    string           `json:"created_at"`
}

type CreateModelCostDTO struct {
	OrderID      uint64   `json:"order_id" validate:"required,gt=0"`
	WorkshopID   uint64   `json:"workshop_id" validate:"required,gt=0"`
	CostItemID   uint64   `json:"cost_item_id" validate:"required,gt=0"`
	QuantityUsed float64  `json:"quantity_used" validate:"gte=0"`
	Quantity2    *float64 `json:"quantity2,omitempty" validate:"omitempty,gt=0"`
	Unit         string   `json:"unit" validate:"omitempty,max=32"`
	Unit2        string   `json:"unit2" validate:"omitempty,max=32"`
	ActualPrice  float64  `json:"actual_price" validate:"gte=0"`
	Currency     string   `json:"currency" validate:"required,currency_code"`
	TotalCost    float64  `json:"total_cost" validate:"required,gt=0"`
	Note         string   `json:"note" validate:"omitempty,max=1000"`
}
