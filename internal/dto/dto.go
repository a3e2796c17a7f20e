package dto

// ShortUserDTO is the compact user reference embedded in other DTOs.
type ShortUserDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
}

// ShortWorkshopDTO is the compact workshop reference embedded in other DTOs.
type ShortWorkshopDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ShortFirmDTO is the compact firm reference embedded in other DTOs.
type ShortFirmDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ShortModelDTO is the compact model reference embedded in other DTOs.
type ShortModelDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
