package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un título del catálogo de la librería.
// Price es el precio de venta sugerido: los traslados copian su propio
// precio unitario al crearse y no vuelven a leer el catálogo.
type Product struct {
	ID        string
	SKU       string // código único (ISBN o interno)
	Title     string
	Author    string
	Publisher string
	Price     decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
