package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del subsistema de traslados entre locales.
var (
	// ErrEmptyItems: un traslado sin líneas no es válido.
	ErrEmptyItems = errors.New("el traslado no tiene líneas")
	// ErrInvalidItem: cantidad <= 0 o precio unitario negativo en alguna línea.
	ErrInvalidItem = errors.New("línea de traslado inválida")
	// ErrSameLocation: origen y destino no pueden ser el mismo local.
	ErrSameLocation = errors.New("origen y destino deben ser locales distintos")
	// ErrUnauthorizedLocation: solo el local destino puede confirmar o reclamar.
	ErrUnauthorizedLocation = errors.New("el local no es el destino del traslado")
	// ErrAlreadyFinalized: el traslado ya fue confirmado o reclamado.
	ErrAlreadyFinalized = errors.New("el traslado ya fue finalizado")
	// ErrEmptyClaimMessage: un reclamo requiere describir la discrepancia.
	ErrEmptyClaimMessage = errors.New("el reclamo requiere un mensaje")
	// ErrReconciliationMismatch: el total guardado no cuadra con la suma de líneas.
	ErrReconciliationMismatch = errors.New("el total del traslado no cuadra con sus líneas")
)
