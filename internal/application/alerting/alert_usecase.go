// Package alerting agrega las alertas visibles para un actor: consulta tareas
// activas y equipos críticos dentro de su alcance, los clasifica y entrega la
// lista ordenada con sus contadores.
package alerting

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain/alert"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
	"github.com/jhoicas/MantenPro-api/internal/observability/metrics"
	"github.com/jhoicas/MantenPro-api/pkg/logger"
)

// Motivos de registros omitidos (etiqueta de métrica).
const (
	SkipMissingScheduledDate = "missing_scheduled_date"
	SkipClassification       = "classification_error"
)

// criticalStatuses estados de equipo que generan alerta CRITICO.
var criticalStatuses = []entity.EquipmentStatus{entity.EquipmentInMaintenance, entity.EquipmentRetired}

// AlertUseCase lista de alertas de GET /api/alerts.
type AlertUseCase struct {
	tasks     repository.MaintenanceRepository
	equipment repository.EquipmentRepository
	log       *logger.Logger
}

// NewAlertUseCase construye el caso de uso. log puede ser nil.
func NewAlertUseCase(tasks repository.MaintenanceRepository, equipment repository.EquipmentRepository, log *logger.Logger) *AlertUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertUseCase{tasks: tasks, equipment: equipment, log: log}
}

// List evalúa las alertas del actor a la fecha now.
//
// Solo se consultan las tareas pendientes con fecha programada anterior al fin de
// la ventana de PROXIMO; las atrasadas entran todas. Un registro que no puede
// clasificarse se omite, se registra y se reporta en Errores; no aborta la lista.
func (uc *AlertUseCase) List(ctx context.Context, actor visibility.Actor, now time.Time) (*dto.AlertListResponse, error) {
	started := time.Now()
	defer func() { metrics.ObserveAlertEvaluation(string(actor.Role), time.Since(started)) }()

	taskScope := visibility.Scope(actor, visibility.KindMaintenanceTask)
	equipmentScope := visibility.Scope(actor, visibility.KindEquipment)

	var (
		tasks    []repository.MaintenanceDetail
		critical []repository.EquipmentDetail
	)
	g, gctx := errgroup.WithContext(ctx)
	if !taskScope.Empty() {
		g.Go(func() error {
			var err error
			tasks, err = uc.tasks.List(gctx, taskScope, repository.MaintenanceQuery{
				Statuses:        entity.PendingStatuses,
				ScheduledBefore: usecase.StartOfDay(now).AddDate(0, 0, alert.UpcomingWindowDays+1),
				OrderAsc:        true,
			})
			return err
		})
	}
	if !equipmentScope.Empty() {
		g.Go(func() error {
			var err error
			critical, err = uc.equipment.List(gctx, equipmentScope, repository.EquipmentQuery{Statuses: criticalStatuses})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	alerts := make([]alert.Alert, 0, len(tasks)+len(critical))
	var skipped []dto.AlertSkipDTO
	for _, d := range tasks {
		a, ok, err := alert.ClassifyTask(now, d.Maintenance, d.Equipment)
		if err != nil {
			reason := SkipClassification
			if errors.Is(err, alert.ErrMissingScheduledDate) {
				reason = SkipMissingScheduledDate
			}
			uc.log.Warn().Err(err).
				Str("maintenance_id", d.Maintenance.ID).
				Str("reason", reason).
				Msg("alerta omitida")
			metrics.IncAlertSkipped(reason)
			skipped = append(skipped, dto.AlertSkipDTO{RegistroID: d.Maintenance.ID, Motivo: err.Error()})
			continue
		}
		if ok {
			alerts = append(alerts, a)
		}
	}
	for _, d := range critical {
		if a, ok := alert.ClassifyEquipment(now, d.Equipment); ok {
			alerts = append(alerts, a)
		}
	}

	alert.Sort(alerts)
	counts := alert.Count(alerts)

	out := &dto.AlertListResponse{
		Alertas: make([]dto.AlertDTO, 0, len(alerts)),
		Contadores: dto.AlertCountersDTO{
			Atrasados: counts.Overdue,
			Proximos:  counts.Upcoming,
			Criticos:  counts.Critical,
			Total:     counts.Total,
		},
		Errores: skipped,
	}
	for _, a := range alerts {
		metrics.IncAlert(string(a.Category), string(a.Priority))
		out.Alertas = append(out.Alertas, toAlertDTO(a))
	}
	return out, nil
}

func toAlertDTO(a alert.Alert) dto.AlertDTO {
	return dto.AlertDTO{
		ID:              a.ID,
		Tipo:            string(a.Category),
		Prioridad:       string(a.Priority),
		Titulo:          a.Title,
		Mensaje:         a.Message,
		MantenimientoID: a.TaskID,
		EquipoID:        a.EquipmentID,
		Fecha:           a.Date,
		Dias:            a.Days,
	}
}
