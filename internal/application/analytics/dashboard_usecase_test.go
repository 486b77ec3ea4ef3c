package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/internal/application/analytics"
	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/memory"
)

func fecha(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 10, 0, 0, 0, time.UTC)
}

func nuevoDashboard(t *testing.T) *analytics.DashboardUseCase {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "C1", Name: "Acme", NIT: "900-1"}))
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "C2", Name: "Globex", NIT: "900-2"}))
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "tec-1", Email: "t1@m.co", Role: entity.RoleTecnico, Active: true}))
	for _, e := range []*entity.Equipment{
		{ID: "E1", CompanyID: "C1", Type: "Compresor", Serial: "SN-1", Status: entity.EquipmentActive},
		{ID: "E2", CompanyID: "C2", Type: "Chiller", Serial: "SN-2", Status: entity.EquipmentInMaintenance},
		{ID: "E3", CompanyID: "C1", Type: "Caldera", Serial: "SN-3", Status: entity.EquipmentRetired},
	} {
		require.NoError(t, s.Equipment().Create(ctx, e))
	}

	tarea := func(id, eq string, kind entity.MaintenanceKind, st entity.MaintenanceStatus, created, scheduled time.Time, completed *time.Time) {
		require.NoError(t, s.Maintenances().Create(ctx, &entity.Maintenance{
			ID: id, EquipmentID: eq, TechnicianID: "tec-1", Kind: kind, Status: st,
			ScheduledDate: scheduled, CompletedDate: completed, Description: id, CreatedAt: created,
		}))
	}
	done := func(t time.Time) *time.Time { return &t }
	prev, corr := entity.MaintenancePreventive, entity.MaintenanceCorrective
	tarea("T1", "E1", prev, entity.MaintenanceCompleted, fecha(5, 20), fecha(6, 3), done(fecha(6, 4)))
	tarea("T2", "E1", corr, entity.MaintenanceCompleted, fecha(5, 1), fecha(5, 10), done(fecha(5, 12)))
	tarea("T3", "E2", prev, entity.MaintenanceCompleted, fecha(5, 1), fecha(5, 15), done(fecha(5, 16)))
	tarea("T4", "E1", prev, entity.MaintenanceScheduled, fecha(5, 25), fecha(6, 12), nil)
	tarea("T5", "E2", corr, entity.MaintenanceInProgress, fecha(6, 2), fecha(6, 8), nil)
	tarea("T6", "E1", prev, entity.MaintenanceScheduled, fecha(6, 5), fecha(6, 20), nil)
	tarea("T7", "E1", prev, entity.MaintenanceCancelled,
		time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), nil)

	return analytics.NewDashboardUseCase(s.Analytics(), s.Maintenances())
}

func ahora() time.Time { return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC) }

func TestGetStats_Admin(t *testing.T) {
	uc := nuevoDashboard(t)
	out, err := uc.GetStats(context.Background(), visibility.Actor{Role: entity.RoleAdmin, UserID: "a"}, ahora())
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalEquipment)
	assert.Equal(t, 2, out.CriticalEquipment)
	assert.Equal(t, map[string]int{"ACTIVO": 1, "EN_MANTENIMIENTO": 1, "DADO_DE_BAJA": 1}, out.EquipmentByStatus)

	assert.Equal(t, 7, out.TotalMaintenances)
	assert.Equal(t, map[string]int{"COMPLETADO": 3, "PROGRAMADO": 2, "EN_PROCESO": 1, "CANCELADO": 1}, out.MaintenancesByStatus)
	assert.Equal(t, map[string]int{"PREVENTIVO": 5, "CORRECTIVO": 2}, out.MaintenancesByKind)

	assert.Equal(t, 1, out.CompletedThisMonth)
	assert.Equal(t, -50, out.CompletedChange)
	assert.Equal(t, 3, out.Pending)
	assert.Equal(t, 200, out.PendingChange)

	require.Len(t, out.Upcoming, 3)
	assert.Equal(t, "T5", out.Upcoming[0].ID, "fecha programada ascendente")
	assert.Equal(t, "T4", out.Upcoming[1].ID)
	assert.Equal(t, "T6", out.Upcoming[2].ID)
	require.NotNil(t, out.Upcoming[0].Alerta)
	assert.Equal(t, dto.RowAlertDTO{Tipo: "ATRASADO", Dias: 2}, *out.Upcoming[0].Alerta)

	assert.Equal(t, []dto.MonthlyKindDTO{
		{Month: "2024-05", Kind: "CORRECTIVO", Count: 1},
		{Month: "2024-05", Kind: "PREVENTIVO", Count: 1},
		{Month: "2024-06", Kind: "CORRECTIVO", Count: 1},
		{Month: "2024-06", Kind: "PREVENTIVO", Count: 3},
	}, out.Monthly)
}

func TestGetStats_ClienteSoloSuEmpresa(t *testing.T) {
	uc := nuevoDashboard(t)
	out, err := uc.GetStats(context.Background(), visibility.Actor{Role: entity.RoleCliente, UserID: "c", CompanyID: "C1"}, ahora())
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalEquipment)
	assert.Equal(t, 1, out.CriticalEquipment)
	assert.Equal(t, 5, out.TotalMaintenances)
	assert.Equal(t, 1, out.CompletedThisMonth)
	assert.Equal(t, 0, out.CompletedChange)
	assert.Equal(t, 2, out.Pending)
	assert.Equal(t, 100, out.PendingChange)
	for _, m := range out.Upcoming {
		assert.Equal(t, "E1", m.EquipmentID)
	}
}

func TestGetStats_SinAlcanceTodoEnCero(t *testing.T) {
	uc := nuevoDashboard(t)
	out, err := uc.GetStats(context.Background(), visibility.Actor{Role: "SUPERVISOR", UserID: "x"}, ahora())
	require.NoError(t, err)
	assert.Zero(t, out.TotalEquipment)
	assert.Zero(t, out.TotalMaintenances)
	assert.NotNil(t, out.Upcoming)
	assert.Empty(t, out.Upcoming)
	assert.NotNil(t, out.EquipmentByStatus)
}

func TestPercentChange(t *testing.T) {
	cases := []struct {
		current, previous, want int
	}{
		{0, 0, 0},
		{5, 0, 100},
		{1, 2, -50},
		{3, 1, 200},
		{3, 2, 50},
		{1, 3, -67},
		{2, 3, -33},
		{1, 8, -87}, // -87.5: las mitades suben
		{3, 8, -62}, // -62.5
		{5, 4, 25},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, analytics.PercentChange(tc.current, tc.previous), "%d vs %d", tc.current, tc.previous)
	}
}
