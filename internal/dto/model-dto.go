package dto

type ModelDTO struct {
	ID        uint64       `json:"id"`
	Firm      ShortFirmDTO `json:"firm"`
	Name      string       `json:"name"`
	Code      string       `json:"code"`
	ImagePath string       `json:"image_path"`
	IsActive  bool         `json:"is_active"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

type CreateModelDTO struct {
	FirmID uint64 `json:"firm_id" validate:"required,gt=0"`
	Name   string `json:"name" validate:"required,min=2,max=255"`
	Code   string `json:"code" validate:"omitempty,max=64"`
}

type UpdateModelDTO struct {
	FirmID   *uint64 `json:"firm_id,omitempty" validate:"omitempty,gt=0"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Code     *string `json:"code,omitempty" validate:"omitempty,max=64"`
	IsActive *bool   `json:"is_active,omitempty"`
}
