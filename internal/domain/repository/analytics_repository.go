package repository

import (
	"context"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

// MaintenanceBucket conteo de tareas por estado y tipo.
type MaintenanceBucket struct {
	Status entity.MaintenanceStatus
	Kind   entity.MaintenanceKind
	Count  int
}

// MonthlyKindCount tareas programadas en un mes (YYYY-MM) por tipo.
type MonthlyKindCount struct {
	Month string
	Kind  entity.MaintenanceKind
	Count int
}

// AnalyticsRepository consultas de lectura para el dashboard de mantenimiento.
// Las implementaciones son read-only y respetan el alcance de visibilidad recibido:
// equipmentScope para los conteos de equipos y taskScope para los de tareas.
type AnalyticsRepository interface {
	// EquipmentByStatus cuenta los equipos visibles agrupados por estado.
	EquipmentByStatus(ctx context.Context, equipmentScope visibility.Filter) (map[entity.EquipmentStatus]int, error)

	// MaintenanceBuckets cuenta las tareas visibles por (estado, tipo).
	MaintenanceBuckets(ctx context.Context, taskScope visibility.Filter) ([]MaintenanceBucket, error)

	// CompletedBetween cuenta tareas COMPLETADO con fecha realizada en [from, to).
	// to en cero = sin cota superior.
	CompletedBetween(ctx context.Context, taskScope visibility.Filter, from, to time.Time) (int, error)

	// PendingCreatedBefore cuenta tareas pendientes creadas antes de la fecha dada.
	PendingCreatedBefore(ctx context.Context, taskScope visibility.Filter, before time.Time) (int, error)

	// MonthlyByKind agrupa por mes calendario (en loc) las tareas programadas desde since.
	// Ordenado por mes ascendente.
	MonthlyByKind(ctx context.Context, taskScope visibility.Filter, since time.Time, loc *time.Location) ([]MonthlyKindCount, error)
}
