package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementItemRequest línea propuesta al crear un traslado. Si UnitPrice es
// nil se sugiere el precio actual del catálogo (y se congela en la línea).
type MovementItemRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	SourceID      string                `json:"source_id" validate:"required,uuid"`
	DestinationID string                `json:"destination_id" validate:"required,uuid"`
	RecipientName string                `json:"recipient_name" validate:"required,min=1,max=200"`
	Notes         string                `json:"notes" validate:"omitempty,max=1000"`
	Items         []MovementItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateMovementResponse identificadores del traslado recién creado.
type CreateMovementResponse struct {
	MovementID     string `json:"movement_id"`
	MovementNumber string `json:"movement_number"`
}

// ClaimMovementRequest body para POST /api/movements/:id/claim.
type ClaimMovementRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

// MovementItemResponse línea de un traslado.
type MovementItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// MovementResponse traslado completo (GET por ID) o cabecera (listados).
// ReconciliationWarning se puebla solo si el total guardado no cuadró con la
// suma de líneas al leer; el dato guardado no se altera.
type MovementResponse struct {
	ID                    string                 `json:"id"`
	Number                string                 `json:"number"`
	SourceID              string                 `json:"source_id"`
	DestinationID         string                 `json:"destination_id"`
	RecipientName         string                 `json:"recipient_name"`
	TotalAmount           decimal.Decimal        `json:"total_amount"`
	Status                string                 `json:"status"`
	Notes                 string                 `json:"notes,omitempty"`
	ClaimMessage          string                 `json:"claim_message,omitempty"`
	CreatedBy             string                 `json:"created_by"`
	CreatedAt             time.Time              `json:"created_at"`
	ConfirmedBy           string                 `json:"confirmed_by,omitempty"`
	ConfirmedAt           *time.Time             `json:"confirmed_at,omitempty"`
	ClaimedBy             string                 `json:"claimed_by,omitempty"`
	ClaimedAt             *time.Time             `json:"claimed_at,omitempty"`
	UpdatedAt             time.Time              `json:"updated_at"`
	ItemCount             int                    `json:"item_count,omitempty"`
	TotalQuantity         int                    `json:"total_quantity,omitempty"`
	Items                 []MovementItemResponse `json:"items,omitempty"`
	ReconciliationWarning string                 `json:"reconciliation_warning,omitempty"`
}

// MovementListResponse lista paginada de traslados (cabeceras con agregados).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
