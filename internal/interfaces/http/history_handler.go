package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
)

// HistoryHandler expone el historial de equipos.
type HistoryHandler struct {
	uc    *usecase.HistoryUseCase
	clock Clock
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *usecase.HistoryUseCase, clock Clock) *HistoryHandler {
	return &HistoryHandler{uc: uc, clock: clock}
}

// List godoc
// @Summary      Historial visible
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        equipment_id   query  string  false  "Equipo"
// @Param        technician_id  query  string  false  "Técnico (solo ADMIN)"
// @Param        company_id     query  string  false  "Empresa (solo ADMIN)"
// @Param        from           query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to             query  string  false  "Hasta, inclusivo (YYYY-MM-DD o RFC3339)"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.HistoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	f := dto.HistoryFilter{
		EquipmentID:  c.Query("equipment_id"),
		TechnicianID: c.Query("technician_id"),
		CompanyID:    c.Query("company_id"),
		From:         c.Query("from"),
		To:           c.Query("to"),
		PageRequest:  pageFromQuery(c),
	}
	out, err := h.uc.List(c.Context(), ActorFromCtx(c), f, h.clock.Location())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
