package entity

import "time"

// Tipos de local (value object conceptual).
const (
	LocationKindDeposito = "deposito" // bodega central que despacha mercancía
	LocationKindLibreria = "libreria" // sucursal de venta al público
)

// Location representa un local que mantiene inventario: el depósito central
// o una librería sucursal. El Slug es el código corto que usan los clientes
// de la API; el mapeo slug -> ID es 1:1 y el ID nunca cambia una vez que
// existe un traslado que lo referencia.
type Location struct {
	ID        string
	Name      string
	Slug      string // código corto único, ej. "deposito", "sucursal-centro"
	Kind      string // deposito, libreria
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
