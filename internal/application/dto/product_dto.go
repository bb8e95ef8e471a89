package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un título del catálogo.
type CreateProductRequest struct {
	SKU       string          `json:"sku" validate:"required,min=1,max=50"`
	Title     string          `json:"title" validate:"required,min=1,max=300"`
	Author    string          `json:"author" validate:"omitempty,max=200"`
	Publisher string          `json:"publisher" validate:"omitempty,max=200"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateProductRequest entrada para actualizar un título (campos opcionales).
type UpdateProductRequest struct {
	Title     *string          `json:"title" validate:"omitempty,min=1,max=300"`
	Author    *string          `json:"author" validate:"omitempty,max=200"`
	Publisher *string          `json:"publisher" validate:"omitempty,max=200"`
	Price     *decimal.Decimal `json:"price"`
	Active    *bool            `json:"active"`
}

// ProductResponse salida de un título.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Publisher string          `json:"publisher"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de títulos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
