package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/memory"
)

func nuevoUserUC(s *memory.Store) *usecase.UserUseCase {
	return usecase.NewUserUseCase(s.Users(), s.Companies())
}

func TestUserCreate_HasheaYNormalizaEmail(t *testing.T) {
	s := nuevoStore(t)
	ctx := context.Background()

	out, err := nuevoUserUC(s).Create(ctx, dto.CreateUserRequest{
		Email:    "  Nuevo@Acme.CO ",
		Password: "secreto1",
		Name:     "Nuevo",
		Role:     "TECNICO",
	}, ahora())
	require.NoError(t, err)
	assert.Equal(t, "nuevo@acme.co", out.Email)
	assert.True(t, out.Active)

	u, err := s.Users().GetByID(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto1")))
}

func TestUserCreate_Errores(t *testing.T) {
	s := nuevoStore(t)
	uc := nuevoUserUC(s)
	ctx := context.Background()
	base := dto.CreateUserRequest{Email: "x@y.co", Password: "secreto1", Name: "X", Role: "CLIENTE", CompanyID: "C1"}

	cases := []struct {
		name string
		mod  func(*dto.CreateUserRequest)
		want error
	}{
		{"rol desconocido", func(r *dto.CreateUserRequest) { r.Role = "SUPERVISOR" }, domain.ErrInvalidInput},
		{"cliente sin empresa", func(r *dto.CreateUserRequest) { r.CompanyID = "" }, domain.ErrCompanyRequiredClient},
		{"empresa inexistente", func(r *dto.CreateUserRequest) { r.CompanyID = "C9" }, domain.ErrNotFound},
		{"email repetido", func(r *dto.CreateUserRequest) { r.Email = "TEC1@mantenpro.co" }, domain.ErrEmailAlreadyExists},
		{"password corto", func(r *dto.CreateUserRequest) { r.Password = "123" }, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mod(&in)
			_, err := uc.Create(ctx, in, ahora())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUserListTechnicians_SoloActivos(t *testing.T) {
	s := nuevoStore(t)
	out, err := nuevoUserUC(s).ListTechnicians(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(out.Items))
	for _, u := range out.Items {
		assert.Equal(t, "TECNICO", u.Role)
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(t, []string{"tec-1", "tec-2"}, ids)
}

func TestUserList_FiltroPorRol(t *testing.T) {
	s := nuevoStore(t)
	uc := nuevoUserUC(s)

	out, err := uc.List(context.Background(), dto.UserFilter{Role: "CLIENTE"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "cli-a", out.Items[0].ID)

	_, err = uc.List(context.Background(), dto.UserFilter{Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate(t *testing.T) {
	s := nuevoStore(t)
	uc := nuevoUserUC(s)
	ctx := context.Background()

	_, err := uc.Update(ctx, "tec-1", dto.UpdateUserRequest{Email: ptr("tec2@mantenpro.co")}, ahora())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Update(ctx, "tec-1", dto.UpdateUserRequest{Role: ptr("CLIENTE")}, ahora())
	assert.ErrorIs(t, err, domain.ErrCompanyRequiredClient)

	out, err := uc.Update(ctx, "tec-1", dto.UpdateUserRequest{Active: ptr(false), Password: ptr("otro-secreto")}, ahora())
	require.NoError(t, err)
	assert.False(t, out.Active)

	u, err := s.Users().GetByID(ctx, "tec-1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("otro-secreto")))

	_, err = uc.Update(ctx, "nadie", dto.UpdateUserRequest{}, ahora())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserDelete(t *testing.T) {
	s := nuevoStore(t)
	tareaEn(t, s, "T1", "E1", "tec-1", entity.MaintenanceScheduled, ahora())
	uc := nuevoUserUC(s)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, "admin", "admin"), domain.ErrCannotDeleteOwnUser)
	assert.ErrorIs(t, uc.Delete(ctx, "admin", "tec-1"), domain.ErrInUse)
	require.NoError(t, uc.Delete(ctx, "admin", "tec-2"))
	assert.ErrorIs(t, uc.Delete(ctx, "admin", "tec-2"), domain.ErrUserNotFound)
}

func TestUserIsActive(t *testing.T) {
	s := nuevoStore(t)
	uc := nuevoUserUC(s)
	ctx := context.Background()

	ok, err := uc.IsActive(ctx, "tec-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsActive(ctx, "tec-off")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.IsActive(ctx, "no-existe")
	require.NoError(t, err)
	assert.False(t, ok)
}
