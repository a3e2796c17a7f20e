package dto

type WorkshopDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	IsTerminal  bool   `json:"is_terminal"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateWorkshopDTO struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Location    string `json:"location" validate:"omitempty,max=255"`
	ContactName string `json:"contact_name" validate:"omitempty,max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
}

type UpdateWorkshopDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	ContactName *string `json:"contact_name,omitempty" validate:"omitempty,max=255"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
