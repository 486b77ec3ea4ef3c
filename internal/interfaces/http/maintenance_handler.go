package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
)

// MaintenanceHandler maneja las peticiones HTTP para tareas de mantenimiento.
type MaintenanceHandler struct {
	uc    *usecase.MaintenanceUseCase
	clock Clock
}

// NewMaintenanceHandler construye el handler inyectando el caso de uso.
func NewMaintenanceHandler(uc *usecase.MaintenanceUseCase, clock Clock) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc, clock: clock}
}

// StatusChangeRequest cuerpo de PATCH /api/maintenances/{id}/status.
type StatusChangeRequest struct {
	Status        string  `json:"status"`
	Observations  *string `json:"observations"`
	CompletedDate *string `json:"completed_date"`
}

// List godoc
// @Summary      Listar mantenimientos visibles
// @Description  Ordenados por fecha programada descendente; cada fila trae su alerta (ATRASADO/PROXIMO) o null.
// @Tags         maintenances
// @Produce      json
// @Security     BearerAuth
// @Param        id             query  string  false  "ID exacto"
// @Param        status         query  string  false  "PROGRAMADO | EN_PROCESO | COMPLETADO | CANCELADO"
// @Param        kind           query  string  false  "PREVENTIVO | CORRECTIVO"
// @Param        technician_id  query  string  false  "Técnico"
// @Param        equipment_id   query  string  false  "Equipo"
// @Param        company_id     query  string  false  "Empresa (solo ADMIN)"
// @Param        search         query  string  false  "Términos sobre equipo y descripción"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MaintenanceListResponse
// @Router       /api/maintenances [get]
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	f := dto.MaintenanceFilter{
		ID:           c.Query("id"),
		Status:       c.Query("status"),
		Kind:         c.Query("kind"),
		TechnicianID: c.Query("technician_id"),
		EquipmentID:  c.Query("equipment_id"),
		CompanyID:    c.Query("company_id"),
		Search:       c.Query("search"),
		PageRequest:  pageFromQuery(c),
	}
	out, err := h.uc.List(c.Context(), ActorFromCtx(c), f, h.clock.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener mantenimiento con su historial
// @Tags         maintenances
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.MaintenanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maintenances/{id} [get]
func (h *MaintenanceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), ActorFromCtx(c), c.Params("id"), h.clock.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Programar mantenimiento
// @Tags         maintenances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateMaintenanceRequest  true  "Datos de la tarea"
// @Success      201   {object}  dto.MaintenanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/maintenances [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaintenanceRequest
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
// @Summary      Actualizar mantenimiento
// @Tags         maintenances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID de la tarea"
// @Param        body  body  dto.UpdateMaintenanceRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MaintenanceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maintenances/{id} [put]
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaintenanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), ActorFromCtx(c), c.Params("id"), in, h.clock.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de un mantenimiento
// @Description  Registra el cambio en el historial. COMPLETADO sin fecha toma la fecha actual.
// @Tags         maintenances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "ID de la tarea"
// @Param        body  body  StatusChangeRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.MaintenanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/maintenances/{id}/status [patch]
func (h *MaintenanceHandler) ChangeStatus(c *fiber.Ctx) error {
	var in StatusChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	upd := dto.UpdateMaintenanceRequest{
		Status:        &in.Status,
		Observations:  in.Observations,
		CompletedDate: in.CompletedDate,
	}
	out, err := h.uc.Update(c.Context(), ActorFromCtx(c), c.Params("id"), upd, h.clock.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar mantenimiento
// @Tags         maintenances
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la tarea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maintenances/{id} [delete]
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), ActorFromCtx(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
