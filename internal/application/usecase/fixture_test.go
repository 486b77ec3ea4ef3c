package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture común: dos empresas, un equipo en cada una, dos técnicos.
// ──────────────────────────────────────────────────────────────────────────────

var (
	admin    = visibility.Actor{Role: entity.RoleAdmin, UserID: "admin"}
	tec1     = visibility.Actor{Role: entity.RoleTecnico, UserID: "tec-1"}
	tec2     = visibility.Actor{Role: entity.RoleTecnico, UserID: "tec-2"}
	clienteA = visibility.Actor{Role: entity.RoleCliente, UserID: "cli-a", CompanyID: "C1"}
	clienteB = visibility.Actor{Role: entity.RoleCliente, UserID: "cli-b", CompanyID: "C2"}
)

// ahora lunes 2024-06-10 09:00 UTC.
func ahora() time.Time {
	return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
}

func nuevoStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	base := ahora().AddDate(0, -2, 0)

	for _, c := range []*entity.Company{
		{ID: "C1", Name: "Acme", NIT: "900-1", CreatedAt: base},
		{ID: "C2", Name: "Globex", NIT: "900-2", CreatedAt: base.Add(time.Hour)},
	} {
		require.NoError(t, s.Companies().Create(ctx, c))
	}
	for _, u := range []*entity.User{
		{ID: "admin", Email: "admin@mantenpro.co", Name: "Admin", Role: entity.RoleAdmin, Active: true},
		{ID: "tec-1", Email: "tec1@mantenpro.co", Name: "Técnico Uno", Role: entity.RoleTecnico, Active: true},
		{ID: "tec-2", Email: "tec2@mantenpro.co", Name: "Técnico Dos", Role: entity.RoleTecnico, Active: true},
		{ID: "tec-off", Email: "off@mantenpro.co", Name: "Técnico Inactivo", Role: entity.RoleTecnico, Active: false},
		{ID: "cli-a", CompanyID: "C1", Email: "cli@acme.co", Name: "Cliente Acme", Role: entity.RoleCliente, Active: true},
	} {
		require.NoError(t, s.Users().Create(ctx, u))
	}
	for _, e := range []*entity.Equipment{
		{ID: "E1", CompanyID: "C1", Type: "Compresor", Brand: "Atlas", Model: "GA11", Serial: "SN-1", Status: entity.EquipmentActive, CreatedAt: base},
		{ID: "E2", CompanyID: "C2", Type: "Chiller", Brand: "Carrier", Model: "30XA", Serial: "SN-2", Status: entity.EquipmentInMaintenance, CreatedAt: base},
	} {
		require.NoError(t, s.Equipment().Create(ctx, e))
	}
	return s
}

func tareaEn(t *testing.T, s *memory.Store, id, equipmentID, technicianID string, status entity.MaintenanceStatus, scheduled time.Time) {
	t.Helper()
	require.NoError(t, s.Maintenances().Create(context.Background(), &entity.Maintenance{
		ID:            id,
		EquipmentID:   equipmentID,
		TechnicianID:  technicianID,
		Kind:          entity.MaintenancePreventive,
		Status:        status,
		ScheduledDate: scheduled,
		Description:   "Revisión " + id,
		CreatedAt:     ahora().AddDate(0, -1, 0),
	}))
}

func ptr[T any](v T) *T { return &v }
