package movement

import (
	"context"

	"github.com/el-lector/libreria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de traslados atado a esa tx. Garantiza que cabecera + líneas
// (creación) y estado + auditoría (transiciones) se escriban todo-o-nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(movRepo repository.MovementRepository) error) error
}
