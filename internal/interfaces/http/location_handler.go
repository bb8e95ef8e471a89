package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/el-lector/libreria-api/internal/application/dto"
	"github.com/el-lector/libreria-api/internal/application/usecase"
	"github.com/el-lector/libreria-api/internal/domain"
	"github.com/el-lector/libreria-api/pkg/validator"
)

// LocationHandler maneja el registro de locales (protegido; crear es solo admin).
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar local
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "name, slug, kind (deposito|libreria)"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el slug ya está en uso"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind debe ser deposito o libreria"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar locales
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener local por ID
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del local (UUID)"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
	}
	return c.JSON(out)
}

// GetBySlug godoc
// @Summary      Resolver local por slug
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "código corto del local"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/slug/{slug} [get]
func (h *LocationHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
	}
	return c.JSON(out)
}
