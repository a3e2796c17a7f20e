package dto

type UserDTO struct {
	ID        uint64            `json:"id"`
	FullName  string            `json:"full_name"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	Workshop  *ShortWorkshopDTO `json:"workshop,omitempty"`
	IsActive  bool              `json:"is_active"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

type CreateUserDTO struct {
	FullName   string  `json:"full_name" validate:"required,min=2,max=255"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Role       string  `json:"role" validate:"required,oneof=admin manager operator"`
	WorkshopID *uint64 `json:"workshop_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateUserDTO struct {
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=255"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=admin manager operator"`
	WorkshopID *uint64 `json:"workshop_id,omitempty" validate:"omitempty,gt=0"`
	IsActive   *bool   `json:"is_active,omitempty"`
}
