package repository

import (
	"time"

	"github.com/el-lector/libreria-api/internal/domain/entity"
)

// MovementFilter filtros para listar traslados. Los campos vacíos no filtran.
type MovementFilter struct {
	SourceID      string
	DestinationID string
	Status        string
}

// StatusUpdate datos de una transición de estado (confirm o claim).
type StatusUpdate struct {
	FromStatus   string // estado esperado (compare-and-swap)
	ToStatus     string
	ActorID      string
	At           time.Time
	ClaimMessage string // solo para claim
}

// MovementRepository define el puerto de persistencia para traslados (DIP).
// Create y CreateItem se invocan dentro de la misma transacción (TxRunner)
// para que cabecera y líneas sean atómicas.
type MovementRepository interface {
	Create(m *entity.Movement) error
	CreateItem(item *entity.MovementItem) error
	GetByID(id string) (*entity.Movement, error)
	GetItemsByMovementID(movementID string) ([]*entity.MovementItem, error)
	// List devuelve cabeceras con conteo de líneas y cantidad total agregada
	// (sin cuerpos de líneas), ordenadas de más reciente a más antigua.
	List(filter MovementFilter, limit, offset int) ([]*entity.Movement, error)
	// UpdateStatus aplica la transición solo si el estado guardado es
	// upd.FromStatus (UPDATE ... WHERE status = $from). Devuelve las filas
	// afectadas: 0 significa que el traslado no existe o que otro actor ganó
	// la carrera; el caller debe releer para distinguir.
	UpdateStatus(id string, upd StatusUpdate) (int64, error)
}
