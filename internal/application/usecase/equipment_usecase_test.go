package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/memory"
)

func nuevoEquipmentUC(s *memory.Store) *usecase.EquipmentUseCase {
	return usecase.NewEquipmentUseCase(s.Equipment(), s.Companies())
}

func TestEquipmentList_PorRol(t *testing.T) {
	s := nuevoStore(t)
	tareaEn(t, s, "T1", "E2", "tec-1", entity.MaintenanceScheduled, ahora())
	uc := nuevoEquipmentUC(s)
	ctx := context.Background()

	all, err := uc.List(ctx, admin, dto.EquipmentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)

	globex, err := uc.List(ctx, admin, dto.EquipmentFilter{CompanyID: "C2"})
	require.NoError(t, err)
	require.Len(t, globex.Items, 1)
	assert.Equal(t, "Globex", globex.Items[0].CompanyName)
	assert.Equal(t, "En Mantenimiento", globex.Items[0].StatusLabel)

	acme, err := uc.List(ctx, clienteA, dto.EquipmentFilter{CompanyID: "all"})
	require.NoError(t, err)
	require.Len(t, acme.Items, 1)
	assert.Equal(t, "E1", acme.Items[0].ID)

	// el técnico solo alcanza equipos de sus tareas
	mine, err := uc.List(ctx, tec1, dto.EquipmentFilter{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "E2", mine.Items[0].ID)

	none, err := uc.List(ctx, tec2, dto.EquipmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.Zero(t, none.Page.Total)

	_, err = uc.List(ctx, admin, dto.EquipmentFilter{Status: "ROTO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEquipmentGet_InvisibleEsNoEncontrado(t *testing.T) {
	s := nuevoStore(t)
	uc := nuevoEquipmentUC(s)
	ctx := context.Background()

	_, err := uc.GetByID(ctx, clienteA, "E2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByID(ctx, tec1, "E1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.GetByID(ctx, clienteA, "E1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
}

func TestEquipmentCreate_ClienteQuedaEnSuEmpresa(t *testing.T) {
	s := nuevoStore(t)
	uc := nuevoEquipmentUC(s)

	out, err := uc.Create(context.Background(), clienteA, dto.CreateEquipmentRequest{
		CompanyID: "C2",
		Type:      "Caldera",
		Brand:     "Bosch",
		Serial:    "SN-3",
	}, ahora())
	require.NoError(t, err)
	assert.Equal(t, "C1", out.CompanyID)
	assert.Equal(t, "ACTIVO", out.Status)
}

func TestEquipmentCreate_Errores(t *testing.T) {
	s := nuevoStore(t)
	uc := nuevoEquipmentUC(s)
	ctx := context.Background()
	in := dto.CreateEquipmentRequest{CompanyID: "C1", Type: "Caldera", Brand: "Bosch", Serial: "SN-1"}

	_, err := uc.Create(ctx, tec1, in, ahora())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(ctx, admin, in, ahora())
	assert.ErrorIs(t, err, domain.ErrSerialAlreadyExists)

	in.Serial = "SN-9"
	in.CompanyID = "C9"
	_, err = uc.Create(ctx, admin, in, ahora())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEquipmentUpdate(t *testing.T) {
	s := nuevoStore(t)
	uc := nuevoEquipmentUC(s)
	ctx := context.Background()

	_, err := uc.Update(ctx, tec1, "E1", dto.UpdateEquipmentRequest{Location: ptr("Bodega")}, ahora())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(ctx, clienteB, "E1", dto.UpdateEquipmentRequest{Location: ptr("Bodega")}, ahora())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// el CLIENTE no puede mover el equipo a otra empresa
	out, err := uc.Update(ctx, clienteA, "E1", dto.UpdateEquipmentRequest{CompanyID: ptr("C2"), Location: ptr("Bodega")}, ahora())
	require.NoError(t, err)
	assert.Equal(t, "C1", out.CompanyID)
	assert.Equal(t, "Bodega", out.Location)

	_, err = uc.Update(ctx, admin, "E1", dto.UpdateEquipmentRequest{Serial: ptr("SN-2")}, ahora())
	assert.ErrorIs(t, err, domain.ErrSerialAlreadyExists)

	out, err = uc.Update(ctx, admin, "E1", dto.UpdateEquipmentRequest{CompanyID: ptr("C2")}, ahora())
	require.NoError(t, err)
	assert.Equal(t, "C2", out.CompanyID)
	assert.Equal(t, "Globex", out.CompanyName)
}

func TestEquipmentDelete(t *testing.T) {
	s := nuevoStore(t)
	tareaEn(t, s, "T1", "E1", "tec-1", entity.MaintenanceScheduled, ahora())
	uc := nuevoEquipmentUC(s)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, clienteA, "E1"), domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, admin, "E1"), domain.ErrInUse)
	require.NoError(t, uc.Delete(ctx, admin, "E2"))
	assert.ErrorIs(t, uc.Delete(ctx, admin, "E2"), domain.ErrNotFound)
}
