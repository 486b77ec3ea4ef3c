package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MantenPro-api/internal/application/alerting"
)

// AlertHandler expone el panel de alertas.
type AlertHandler struct {
	uc    *alerting.AlertUseCase
	clock Clock
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerting.AlertUseCase, clock Clock) *AlertHandler {
	return &AlertHandler{uc: uc, clock: clock}
}

// List godoc
// @Summary      Alertas de mantenimiento
// @Description  Tareas atrasadas, próximas (3 días) y equipos críticos visibles para el usuario, ordenadas por prioridad.
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AlertListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), ActorFromCtx(c), h.clock.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
