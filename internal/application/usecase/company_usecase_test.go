package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain"
)

func TestCompanyCreate(t *testing.T) {
	s := nuevoStore(t)
	uc := usecase.NewCompanyUseCase(s.Companies())
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: " Initech ", NIT: "900-3"}, ahora())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Initech", out.Name)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Otra", NIT: "900-1"}, ahora())
	assert.ErrorIs(t, err, domain.ErrNITAlreadyExists)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "", NIT: "900-4"}, ahora())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyCreate_NIT(t *testing.T) {
	s := nuevoStore(t)
	uc := usecase.NewCompanyUseCase(s.Companies())
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Initech", NIT: "900.123.456-8"}, ahora())
	require.NoError(t, err)
	assert.Equal(t, "900123456-8", out.NIT)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Copia", NIT: "900123456-8"}, ahora())
	assert.ErrorIs(t, err, domain.ErrNITAlreadyExists)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Mal DV", NIT: "830987654-1"}, ahora())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyListYGet(t *testing.T) {
	s := nuevoStore(t)
	uc := usecase.NewCompanyUseCase(s.Companies())
	ctx := context.Background()

	list, err := uc.List(ctx, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Globex", list.Items[0].Name, "más reciente primero")

	_, err = uc.GetByID(ctx, "C9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyUpdate(t *testing.T) {
	s := nuevoStore(t)
	uc := usecase.NewCompanyUseCase(s.Companies())
	ctx := context.Background()

	_, err := uc.Update(ctx, "C1", dto.UpdateCompanyRequest{NIT: ptr("900-2")}, ahora())
	assert.ErrorIs(t, err, domain.ErrNITAlreadyExists)

	out, err := uc.Update(ctx, "C1", dto.UpdateCompanyRequest{NIT: ptr("900-1"), Phone: ptr("601 555 0101")}, ahora())
	require.NoError(t, err)
	assert.Equal(t, "601 555 0101", out.Phone)
	assert.Equal(t, ahora(), out.UpdatedAt)

	_, err = uc.Update(ctx, "C9", dto.UpdateCompanyRequest{}, ahora())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyDelete_ConRegistrosAsociados(t *testing.T) {
	s := nuevoStore(t)
	uc := usecase.NewCompanyUseCase(s.Companies())
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, "C1"), domain.ErrInUse)

	require.NoError(t, s.Equipment().Delete(ctx, "E2"))
	require.NoError(t, uc.Delete(ctx, "C2"))
	assert.ErrorIs(t, uc.Delete(ctx, "C2"), domain.ErrNotFound)
}
