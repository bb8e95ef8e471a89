package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	"github.com/el-lector/libreria-api/internal/domain/movement"
)

const (
	locDeposito = "00000000-0000-0000-0000-00000000000a"
	locSucursal = "00000000-0000-0000-0000-00000000000b"
	locOtra     = "00000000-0000-0000-0000-00000000000c"
)

func pendingMovement() *entity.Movement {
	return &entity.Movement{
		ID:            "mov-1",
		SourceID:      locDeposito,
		DestinationID: locSucursal,
		Status:        entity.MovementStatusPending,
	}
}

// El destino confirma un traslado pendiente: transición legal a confirmed.
func TestCanTransition_DestinoConfirma(t *testing.T) {
	next, err := movement.CanTransition(pendingMovement(), movement.ActionConfirm, locSucursal, "")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusConfirmed, next)
}

// El destino reclama con mensaje: transición legal a claimed.
func TestCanTransition_DestinoReclamaConMensaje(t *testing.T) {
	next, err := movement.CanTransition(pendingMovement(), movement.ActionClaim, locSucursal, "llegaron 3 cajas mojadas")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusClaimed, next)
}

// Un reclamo sin mensaje no registra la discrepancia y se rechaza.
func TestCanTransition_ReclamoSinMensaje(t *testing.T) {
	_, err := movement.CanTransition(pendingMovement(), movement.ActionClaim, locSucursal, "")
	assert.ErrorIs(t, err, domain.ErrEmptyClaimMessage)
}

// La invariante central: el origen nunca puede confirmar su propio despacho.
func TestCanTransition_OrigenNoPuedeConfirmar(t *testing.T) {
	_, err := movement.CanTransition(pendingMovement(), movement.ActionConfirm, locDeposito, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorizedLocation,
		"el local origen no debe poder certificar la recepción de su propio envío")
}

// Ningún tercer local puede cerrar un traslado ajeno.
func TestCanTransition_TerceroNoAutorizado(t *testing.T) {
	for _, action := range []string{movement.ActionConfirm, movement.ActionClaim} {
		_, err := movement.CanTransition(pendingMovement(), action, locOtra, "mensaje")
		assert.ErrorIs(t, err, domain.ErrUnauthorizedLocation, "acción %s", action)
	}
}

func TestCanTransition_LocalVacio(t *testing.T) {
	_, err := movement.CanTransition(pendingMovement(), movement.ActionConfirm, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorizedLocation)
}

// confirmed y claimed son terminales: cualquier acción posterior devuelve
// ErrAlreadyFinalized, incluso viniendo del destino legítimo.
func TestCanTransition_EstadosTerminales(t *testing.T) {
	for _, status := range []string{entity.MovementStatusConfirmed, entity.MovementStatusClaimed} {
		m := pendingMovement()
		m.Status = status
		for _, action := range []string{movement.ActionConfirm, movement.ActionClaim} {
			_, err := movement.CanTransition(m, action, locSucursal, "mensaje")
			assert.ErrorIs(t, err, domain.ErrAlreadyFinalized,
				"estado %s, acción %s", status, action)
		}
	}
}

func TestCanTransition_AccionDesconocida(t *testing.T) {
	_, err := movement.CanTransition(pendingMovement(), "reabrir", locSucursal, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthorize_SoloDestino(t *testing.T) {
	m := pendingMovement()
	assert.NoError(t, movement.Authorize(m, locSucursal))
	assert.ErrorIs(t, movement.Authorize(m, locDeposito), domain.ErrUnauthorizedLocation)
	assert.ErrorIs(t, movement.Authorize(m, ""), domain.ErrUnauthorizedLocation)
}
