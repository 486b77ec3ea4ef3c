package repository

import (
	"context"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

// HistoryQuery filtros del historial. From/To son inclusivos; en cero no acotan.
type HistoryQuery struct {
	EquipmentID   string
	MaintenanceID string
	TechnicianID  string
	CompanyID     string
	From          time.Time
	To            time.Time
	Limit         int // 0 = sin límite
	Offset        int
}

// HistoryDetail entrada de historial con datos de equipo, técnico y tarea.
type HistoryDetail struct {
	Entry             *entity.HistoryEntry
	Equipment         *entity.Equipment
	CompanyName       string
	TechnicianName    string
	MaintenanceKind   entity.MaintenanceKind   // vacío si no hay tarea
	MaintenanceStatus entity.MaintenanceStatus // vacío si no hay tarea
}

// HistoryRepository puerto de persistencia del historial (solo inserción y lectura).
type HistoryRepository interface {
	Create(ctx context.Context, h *entity.HistoryEntry) error
	List(ctx context.Context, scope visibility.Filter, q HistoryQuery) ([]HistoryDetail, error)
	Count(ctx context.Context, scope visibility.Filter, q HistoryQuery) (int, error)
}
