package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/el-lector/libreria-api/internal/application/dto"
	"github.com/el-lector/libreria-api/internal/application/movement"
	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/pkg/validator"
)

// MovementHandler maneja las peticiones HTTP de traslados entre locales
// (protegido). La identidad de local sale siempre del JWT, nunca del body.
type MovementHandler struct {
	uc *movement.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Crear traslado de mercadería
// @Description  Registra un despacho origen -> destino con sus líneas. El total
//
//	se calcula con redondeo a 2 decimales y el traslado nace en estado pending.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "source_id, destination_id, recipient_name, items"
// @Success      201   {object}  dto.CreateMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar traslados del local
// @Description  Lista los traslados donde el local del token actúa como origen
//
//	(role=source) o destino (role=destination), del más reciente al más antiguo.
//
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        role    query  string  true   "source | destination"
// @Param        status  query  string  false  "pending | confirmed | claimed"
// @Param        limit   query  int     false  "máximo de filas (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	locationID := GetLocationID(c)
	if locationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), locationID, c.Query("role"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un traslado
// @Description  Devuelve cabecera y líneas. Si el total guardado no cuadra con
//
//	la suma de líneas se incluye reconciliation_warning; el dato no se altera.
//
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado (UUID)"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar recepción de un traslado
// @Description  Solo el local destino puede confirmar. La transición es
//
//	atómica: ante un claim concurrente gana uno solo y el otro recibe 409.
//
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado (UUID)"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/confirm [post]
func (h *MovementHandler) Confirm(c *fiber.Ctx) error {
	locationID := GetLocationID(c)
	userID := GetUserID(c)
	if locationID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Confirm(c.Context(), c.Params("id"), locationID, userID); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado confirmado"})
}

// Claim godoc
// @Summary      Reclamar un traslado
// @Description  Solo el local destino puede reclamar y el mensaje es
//
//	obligatorio (qué llegó mal). Estado terminal: no hay resolución posterior.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del traslado (UUID)"
// @Param        body  body  dto.ClaimMovementRequest  true  "message"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/claim [post]
func (h *MovementHandler) Claim(c *fiber.Ctx) error {
	locationID := GetLocationID(c)
	userID := GetUserID(c)
	if locationID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ClaimMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Claim(c.Context(), c.Params("id"), locationID, userID, in.Message); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado reclamado"})
}

// mapError traduce los errores de dominio del ciclo de traslados a HTTP. Los
// códigos son estables: los clientes deciden por Code, no por Message.
func (h *MovementHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyItems),
		errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrSameLocation),
		errors.Is(err, domain.ErrEmptyClaimMessage),
		errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorizedLocation):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED_LOCATION", Message: "solo el local destino puede operar sobre este traslado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "traslado o local no encontrado"})
	case errors.Is(err, domain.ErrAlreadyFinalized):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_FINALIZED", Message: "el traslado ya fue confirmado o reclamado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el traslado cambió de estado durante la operación"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "número de traslado duplicado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
