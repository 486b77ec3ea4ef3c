package repository

import (
	"context"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

// MaintenanceQuery filtros adicionales al alcance de visibilidad.
type MaintenanceQuery struct {
	ID              string
	EquipmentID     string
	TechnicianID    string
	CompanyID       string
	Statuses        []entity.MaintenanceStatus
	Kind            entity.MaintenanceKind
	Search          string    // términos separados por espacio; todos deben aparecer
	ScheduledBefore time.Time // cero = sin cota
	OrderAsc        bool      // por fecha programada; por defecto descendente
	Limit           int       // 0 = sin límite
	Offset          int
}

// MaintenanceDetail tarea con su equipo, empresa y técnico.
type MaintenanceDetail struct {
	Maintenance     *entity.Maintenance
	Equipment       *entity.Equipment
	CompanyName     string
	TechnicianName  string
	TechnicianEmail string
}

// MaintenanceRepository puerto de persistencia de tareas de mantenimiento.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *entity.Maintenance) error
	GetByID(ctx context.Context, id string) (*entity.Maintenance, error)
	GetDetail(ctx context.Context, id string) (*MaintenanceDetail, error)
	Update(ctx context.Context, m *entity.Maintenance) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope visibility.Filter, q MaintenanceQuery) ([]MaintenanceDetail, error)
	Count(ctx context.Context, scope visibility.Filter, q MaintenanceQuery) (int, error)
}
