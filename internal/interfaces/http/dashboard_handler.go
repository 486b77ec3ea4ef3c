package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/MantenPro-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc    *appanalytics.DashboardUseCase
	clock Clock
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, clock Clock) *DashboardHandler {
	return &DashboardHandler{uc: uc, clock: clock}
}

// GetStats godoc
// @Summary      Indicadores del dashboard
// @Description  Equipos por estado, tareas por estado y tipo, completadas del mes con variación, pendientes, próximas 10 y gráfico de 6 meses. Las fechas se calculan en el servidor.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context(), ActorFromCtx(c), h.clock.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
