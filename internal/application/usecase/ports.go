package usecase

import (
	"context"

	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
)

// MaintenanceTxRunner ejecuta fn dentro de una transacción con repos de tareas e
// historial atados a ella. Si fn devuelve error no queda ningún cambio persistido.
type MaintenanceTxRunner interface {
	RunMaintenance(ctx context.Context, fn func(
		maintRepo repository.MaintenanceRepository,
		historyRepo repository.HistoryRepository,
	) error) error
}
