package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado. pending es el inicial; confirmed y claimed son
// terminales (un reclamo se resuelve fuera del sistema, no con más transiciones).
const (
	MovementStatusPending   = "pending"
	MovementStatusConfirmed = "confirmed" // recibido conforme
	MovementStatusClaimed   = "claimed"   // recibido con discrepancia registrada
)

// Movement representa un traslado de mercancía (y su valor) desde un local
// origen hacia un local destino. Raíz del agregado: sus líneas (MovementItem)
// son inmutables después de la creación y TotalAmount debe cuadrar siempre
// con la suma de sus TotalPrice.
type Movement struct {
	ID             string
	Number         string // consecutivo legible, único global (MOV-xxxxxxxx)
	SourceID       string // local que despacha
	DestinationID  string // local que recibe; único autorizado a confirmar/reclamar
	RecipientName  string // persona física que recibe (texto libre, no es el local)
	TotalAmount    decimal.Decimal
	Status         string
	Notes          string
	ClaimMessage   string // solo si Status == claimed
	CreatedBy      string // UserID
	CreatedAt      time.Time
	ConfirmedBy    string // solo si Status == confirmed
	ConfirmedAt    *time.Time
	ClaimedBy      string // solo si Status == claimed
	ClaimedAt      *time.Time
	UpdatedAt      time.Time

	// Agregados de listado (no siempre poblados).
	ItemCount     int
	TotalQuantity int
}

// Finalized indica si el traslado ya está en un estado terminal.
func (m *Movement) Finalized() bool {
	return m.Status == MovementStatusConfirmed || m.Status == MovementStatusClaimed
}

// MovementItem es una línea de producto dentro de un traslado. TotalPrice se
// guarda explícito (no se recalcula en vivo) para conservar el precio al
// momento del traslado aunque el catálogo cambie después.
type MovementItem struct {
	ID         string
	MovementID string
	ProductID  string
	Quantity   int // siempre > 0
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // Quantity * UnitPrice, redondeado a 2 decimales
}
