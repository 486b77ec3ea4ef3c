// Package analytics contiene el caso de uso del dashboard de mantenimiento.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

const (
	dashboardUpcoming = 10 // próximas tareas pendientes en el widget
	dashboardMonths   = 6  // meses de la gráfica por tipo, incluido el actual
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// DashboardUseCase genera las estadísticas del dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y el listado de
// tareas para las próximas pendientes. Todo se calcula dentro del alcance del actor.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	maintRepo     repository.MaintenanceRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, maintRepo repository.MaintenanceRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, maintRepo: maintRepo}
}

// GetStats construye el DashboardStatsDTO a la fecha now.
//
// Seis consultas en paralelo:
//  1. EquipmentByStatus            → totales de equipos y críticos
//  2. MaintenanceBuckets           → totales por estado y tipo, pendientes
//  3. CompletedBetween(mes)        → completadas este mes
//  4. CompletedBetween(mes previo) → base de la variación de completadas
//  5. PendingCreatedBefore(mes)    → base de la variación de pendientes
//  6. MonthlyByKind(6 meses)       → gráfica mensual
//
// más el listado de las próximas 10 tareas pendientes.
func (uc *DashboardUseCase) GetStats(ctx context.Context, actor visibility.Actor, now time.Time) (*dto.DashboardStatsDTO, error) {
	out := &dto.DashboardStatsDTO{
		EquipmentByStatus:    map[string]int{},
		MaintenancesByStatus: map[string]int{},
		MaintenancesByKind:   map[string]int{},
		Upcoming:             []dto.MaintenanceResponse{},
		Monthly:              []dto.MonthlyKindDTO{},
	}
	equipmentScope := visibility.Scope(actor, visibility.KindEquipment)
	taskScope := visibility.Scope(actor, visibility.KindMaintenanceTask)
	if equipmentScope.Empty() && taskScope.Empty() {
		return out, nil
	}

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	loc := now.Location()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	chartSince := monthStart.AddDate(0, -(dashboardMonths - 1), 0)

	var (
		byStatus        map[entity.EquipmentStatus]int
		buckets         []repository.MaintenanceBucket
		completedNow    int
		completedBefore int
		pendingBefore   int
		monthly         []repository.MonthlyKindCount
		upcoming        []repository.MaintenanceDetail
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		byStatus, err = uc.analyticsRepo.EquipmentByStatus(gctx, equipmentScope)
		return wrap("equipos por estado", err)
	})
	g.Go(func() (err error) {
		buckets, err = uc.analyticsRepo.MaintenanceBuckets(gctx, taskScope)
		return wrap("mantenimientos por estado", err)
	})
	g.Go(func() (err error) {
		completedNow, err = uc.analyticsRepo.CompletedBetween(gctx, taskScope, monthStart, time.Time{})
		return wrap("completados del mes", err)
	})
	g.Go(func() (err error) {
		completedBefore, err = uc.analyticsRepo.CompletedBetween(gctx, taskScope, prevMonthStart, monthStart)
		return wrap("completados del mes anterior", err)
	})
	g.Go(func() (err error) {
		pendingBefore, err = uc.analyticsRepo.PendingCreatedBefore(gctx, taskScope, monthStart)
		return wrap("pendientes previos", err)
	})
	g.Go(func() (err error) {
		monthly, err = uc.analyticsRepo.MonthlyByKind(gctx, taskScope, chartSince, loc)
		return wrap("gráfica mensual", err)
	})
	g.Go(func() (err error) {
		upcoming, err = uc.maintRepo.List(gctx, taskScope, repository.MaintenanceQuery{
			Statuses: entity.PendingStatuses,
			OrderAsc: true,
			Limit:    dashboardUpcoming,
		})
		return wrap("próximos mantenimientos", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// ── Equipos ────────────────────────────────────────────────────────────────
	for st, n := range byStatus {
		out.EquipmentByStatus[string(st)] = n
		out.TotalEquipment += n
	}
	out.CriticalEquipment = byStatus[entity.EquipmentInMaintenance] + byStatus[entity.EquipmentRetired]

	// ── Tareas ─────────────────────────────────────────────────────────────────
	for _, b := range buckets {
		out.MaintenancesByStatus[string(b.Status)] += b.Count
		out.MaintenancesByKind[string(b.Kind)] += b.Count
		out.TotalMaintenances += b.Count
		if !b.Status.Terminal() {
			out.Pending += b.Count
		}
	}
	out.CompletedThisMonth = completedNow
	out.CompletedChange = PercentChange(completedNow, completedBefore)
	out.PendingChange = PercentChange(out.Pending, pendingBefore)

	for _, d := range upcoming {
		out.Upcoming = append(out.Upcoming, usecase.ToMaintenanceResponse(d, now))
	}
	for _, m := range monthly {
		out.Monthly = append(out.Monthly, dto.MonthlyKindDTO{Month: m.Month, Kind: string(m.Kind), Count: m.Count})
	}
	return out, nil
}

// PercentChange variación porcentual redondeada al entero más cercano (las
// mitades hacia arriba). Sin base previa: 100 si hay valor actual, 0 si no.
func PercentChange(current, previous int) int {
	if previous <= 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	pct := decimal.NewFromInt(int64(current - previous)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(previous)))
	return int(pct.Add(half).Floor().IntPart())
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}
