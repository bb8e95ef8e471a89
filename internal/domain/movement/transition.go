package movement

import (
	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
)

// Acciones que cierran un traslado.
const (
	ActionConfirm = "confirm" // recibido conforme
	ActionClaim   = "claim"   // recibido con discrepancia
)

// Authorize aplica la regla de autorización del traslado: únicamente el local
// destino puede ejecutar una transición. El local origen despacha la mercancía
// y jamás puede certificar su propia entrega como recibida.
func Authorize(m *entity.Movement, requestingLocationID string) error {
	if requestingLocationID == "" || requestingLocationID != m.DestinationID {
		return domain.ErrUnauthorizedLocation
	}
	return nil
}

// CanTransition valida la transición pending -> confirmed | claimed para el
// local solicitante. Devuelve el estado de llegada si la transición es legal.
//
//	pending  --confirm-->  confirmed   (guard: solicitante == destino)
//	pending  --claim---->  claimed     (guard: solicitante == destino, mensaje no vacío)
//	confirmed / claimed    terminales  (ErrAlreadyFinalized)
func CanTransition(m *entity.Movement, action, requestingLocationID, claimMessage string) (string, error) {
	if m.Finalized() {
		return "", domain.ErrAlreadyFinalized
	}
	if m.Status != entity.MovementStatusPending {
		return "", domain.ErrConflict
	}
	if err := Authorize(m, requestingLocationID); err != nil {
		return "", err
	}
	switch action {
	case ActionConfirm:
		return entity.MovementStatusConfirmed, nil
	case ActionClaim:
		if claimMessage == "" {
			return "", domain.ErrEmptyClaimMessage
		}
		return entity.MovementStatusClaimed, nil
	default:
		return "", domain.ErrInvalidInput
	}
}
