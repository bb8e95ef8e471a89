package dto

import "time"

// CreateLocationRequest entrada para crear un local (solo admin; los locales
// son datos semilla, no se eliminan).
type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Slug    string `json:"slug" validate:"required,min=1,max=50,lowercase"`
	Kind    string `json:"kind" validate:"required,oneof=deposito libreria"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

// LocationResponse salida de un local.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Kind      string    `json:"kind"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse lista paginada de locales.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
