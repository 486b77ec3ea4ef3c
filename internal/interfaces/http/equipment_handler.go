package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
)

// EquipmentHandler maneja las peticiones HTTP para equipos.
type EquipmentHandler struct {
	uc    *usecase.EquipmentUseCase
	clock Clock
}

// NewEquipmentHandler construye el handler inyectando el caso de uso.
func NewEquipmentHandler(uc *usecase.EquipmentUseCase, clock Clock) *EquipmentHandler {
	return &EquipmentHandler{uc: uc, clock: clock}
}

// List godoc
// @Summary      Listar equipos visibles
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  query  string  false  "Empresa (solo ADMIN; 'all' = todas)"
// @Param        status      query  string  false  "ACTIVO | INACTIVO | EN_MANTENIMIENTO | DADO_DE_BAJA"
// @Param        search      query  string  false  "Términos sobre tipo, marca, modelo o serial"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.EquipmentListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/equipment [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	f := dto.EquipmentFilter{
		CompanyID:   c.Query("company_id"),
		Status:      c.Query("status"),
		Search:      c.Query("search"),
		PageRequest: pageFromQuery(c),
	}
	out, err := h.uc.List(c.Context(), ActorFromCtx(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener equipo
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.EquipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), ActorFromCtx(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar equipo
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEquipmentRequest  true  "Datos del equipo"
// @Success      201   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipment [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), ActorFromCtx(c), in, h.clock.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar equipo
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "ID del equipo"
// @Param        body  body  dto.UpdateEquipmentRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EquipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), ActorFromCtx(c), c.Params("id"), in, h.clock.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar equipo
// @Tags         equipment
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del equipo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), ActorFromCtx(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// pageFromQuery lee limit/offset; los valores fuera de rango los corrige DefaultPage.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
}
