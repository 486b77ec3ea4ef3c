package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/memory"
)

func historialFixture(t *testing.T) *memory.Store {
	t.Helper()
	s := nuevoStore(t)
	ctx := context.Background()
	for _, h := range []*entity.HistoryEntry{
		{ID: "H1", EquipmentID: "E1", TechnicianID: "tec-1", Date: time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC), Observations: "uno"},
		{ID: "H2", EquipmentID: "E1", TechnicianID: "tec-2", Date: time.Date(2024, time.June, 5, 23, 30, 0, 0, time.UTC), Observations: "dos"},
		{ID: "H3", EquipmentID: "E2", TechnicianID: "tec-1", Date: time.Date(2024, time.June, 8, 8, 0, 0, 0, time.UTC), Observations: "tres"},
	} {
		require.NoError(t, s.History().Create(ctx, h))
	}
	return s
}

func ids(items []dto.HistoryResponse) []string {
	out := make([]string, 0, len(items))
	for _, h := range items {
		out = append(out, h.ID)
	}
	return out
}

func TestHistoryList_PorRol(t *testing.T) {
	uc := usecase.NewHistoryUseCase(historialFixture(t).History())
	ctx := context.Background()

	all, err := uc.List(ctx, admin, dto.HistoryFilter{}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"H3", "H2", "H1"}, ids(all.Items), "fecha descendente")
	assert.Equal(t, 3, all.Page.Total)

	acme, err := uc.List(ctx, clienteA, dto.HistoryFilter{CompanyID: "C2"}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"H2", "H1"}, ids(acme.Items), "company_id de un CLIENTE se ignora")

	mine, err := uc.List(ctx, tec1, dto.HistoryFilter{TechnicianID: "tec-2"}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"H3", "H1"}, ids(mine.Items), "technician_id de un TECNICO se ignora")
}

func TestHistoryList_FiltrosAdmin(t *testing.T) {
	uc := usecase.NewHistoryUseCase(historialFixture(t).History())
	ctx := context.Background()

	out, err := uc.List(ctx, admin, dto.HistoryFilter{TechnicianID: "tec-1", CompanyID: "C2"}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"H3"}, ids(out.Items))

	out, err = uc.List(ctx, admin, dto.HistoryFilter{EquipmentID: "E1"}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"H2", "H1"}, ids(out.Items))
}

func TestHistoryList_RangoDeFechasInclusivo(t *testing.T) {
	uc := usecase.NewHistoryUseCase(historialFixture(t).History())
	ctx := context.Background()

	// "to" sin hora cubre todo el día: H2 a las 23:30 entra
	out, err := uc.List(ctx, admin, dto.HistoryFilter{From: "2024-06-01", To: "2024-06-05"}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"H2", "H1"}, ids(out.Items))

	out, err = uc.List(ctx, admin, dto.HistoryFilter{From: "2024-06-05T23:30:00Z"}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"H3", "H2"}, ids(out.Items))

	_, err = uc.List(ctx, admin, dto.HistoryFilter{From: "ayer"}, time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryList_ZonaHoraria(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	uc := usecase.NewHistoryUseCase(historialFixture(t).History())

	// H2 (2024-06-05 23:30 UTC) es 18:30 del 5 en Bogotá; H3 (8 de junio 08:00 UTC) queda fuera
	out, err := uc.List(context.Background(), admin, dto.HistoryFilter{From: "2024-06-05", To: "2024-06-05"}, bogota)
	require.NoError(t, err)
	assert.Equal(t, []string{"H2"}, ids(out.Items))
}
