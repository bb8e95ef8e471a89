package movement

import (
	"context"
	"time"

	"github.com/el-lector/libreria-api/internal/domain"
	dommovement "github.com/el-lector/libreria-api/internal/domain/movement"
	"github.com/el-lector/libreria-api/internal/domain/repository"
)

// Confirm marca el traslado como recibido conforme. Solo el local destino
// puede ejecutarlo; requestingLocationID es la identidad de local que el
// caller asierta explícitamente (viene del token, nunca de estado ambiente).
func (uc *MovementUseCase) Confirm(ctx context.Context, movementID, requestingLocationID, actorID string) error {
	return uc.transition(ctx, movementID, dommovement.ActionConfirm, requestingLocationID, actorID, "")
}

// Claim marca el traslado como recibido con discrepancia registrada en
// claimMessage. Mismas reglas de autorización que Confirm; el mensaje es
// obligatorio.
func (uc *MovementUseCase) Claim(ctx context.Context, movementID, requestingLocationID, actorID, claimMessage string) error {
	if claimMessage == "" {
		return domain.ErrEmptyClaimMessage
	}
	return uc.transition(ctx, movementID, dommovement.ActionClaim, requestingLocationID, actorID, claimMessage)
}

// transition lee el traslado, valida la transición con la máquina de estados
// y aplica el UPDATE condicional (WHERE status = 'pending'). Si el UPDATE no
// pega fila, otro actor ganó la carrera entre la lectura y la escritura: se
// relee para devolver el error correcto en vez de pisar al ganador.
func (uc *MovementUseCase) transition(ctx context.Context, movementID, action, requestingLocationID, actorID, claimMessage string) error {
	if movementID == "" || actorID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository) error {
		m, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		next, err := dommovement.CanTransition(m, action, requestingLocationID, claimMessage)
		if err != nil {
			return err
		}
		rows, err := movRepo.UpdateStatus(movementID, repository.StatusUpdate{
			FromStatus:   m.Status,
			ToStatus:     next,
			ActorID:      actorID,
			At:           time.Now(),
			ClaimMessage: claimMessage,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			current, err := movRepo.GetByID(movementID)
			if err != nil {
				return err
			}
			if current == nil {
				return domain.ErrNotFound
			}
			if current.Finalized() {
				return domain.ErrAlreadyFinalized
			}
			return domain.ErrConflict
		}
		return nil
	})
}
