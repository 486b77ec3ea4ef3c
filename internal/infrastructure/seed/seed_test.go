package seed_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/memory"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/seed"
)

func target(s *memory.Store) seed.Target {
	return seed.Target{
		Companies:    s.Companies(),
		Users:        s.Users(),
		Equipment:    s.Equipment(),
		Maintenances: s.Maintenances(),
		History:      s.History(),
	}
}

func TestDemo_SeCargaYValida(t *testing.T) {
	fx, err := seed.Demo()
	require.NoError(t, err)
	assert.NotEmpty(t, fx.Companies)
	assert.NotEmpty(t, fx.Maintenances)
}

func TestApply_FechasRelativasEIdempotencia(t *testing.T) {
	fx, err := seed.Demo()
	require.NoError(t, err)

	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	now := time.Date(2024, 6, 10, 14, 30, 0, 0, bogota)
	s := memory.NewStore()
	ctx := context.Background()

	res, err := seed.Apply(ctx, fx, target(s), now, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	assert.Len(t, res.Users, len(fx.Users))

	m, err := s.Maintenances().GetByID(ctx, seed.ID("maintenance", "m-atrasado"))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.True(t, time.Date(2024, 6, 7, 9, 0, 0, 0, bogota).Equal(m.ScheduledDate))

	done, err := s.Maintenances().GetByID(ctx, seed.ID("maintenance", "m-completado"))
	require.NoError(t, err)
	require.NotNil(t, done.CompletedDate)
	assert.Equal(t, entity.MaintenanceCompleted, done.Status)

	admin := visibility.Actor{Role: entity.RoleAdmin}
	hist, err := s.History().Count(ctx, visibility.Scope(admin, visibility.KindHistoryEntry), repository.HistoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, len(fx.Maintenances), hist)

	again, err := seed.Apply(ctx, fx, target(s), now, nil)
	require.NoError(t, err)
	assert.Zero(t, again.Created)
	assert.Len(t, again.Users, len(fx.Users))
}

func TestApply_ClienteQuedaLigadoASuEmpresa(t *testing.T) {
	fx, err := seed.Load(strings.NewReader(`
companies:
  - {key: c1, name: Uno, nit: "1"}
users:
  - {key: cli, email: Cli@Uno.co, name: Cli, role: CLIENTE, company: c1, password: secreto}
  - {key: off, email: off@uno.co, name: Off, role: TECNICO, active: false}
`))
	require.NoError(t, err)

	s := memory.NewStore()
	ctx := context.Background()
	_, err = seed.Apply(ctx, fx, target(s), time.Now(), nil)
	require.NoError(t, err)

	u, err := s.Users().GetByEmail(ctx, "cli@uno.co")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, seed.ID("company", "c1"), u.CompanyID)
	assert.Equal(t, "cli@uno.co", u.Email)

	off, err := s.Users().GetByID(ctx, seed.ID("user", "off"))
	require.NoError(t, err)
	assert.False(t, off.Active)
}

func TestLoad_Errores(t *testing.T) {
	casos := []struct {
		nombre string
		yaml   string
		msg    string
	}{
		{"campo desconocido", "companies:\n  - {key: a, name: A, nit: '1', color: rojo}\n", "color"},
		{"key duplicada", "companies:\n  - {key: a, name: A, nit: '1'}\n  - {key: a, name: B, nit: '2'}\n", "duplicado"},
		{"rol desconocido", "users:\n  - {key: u, email: u@x.co, role: SUPER}\n", "rol"},
		{"cliente sin empresa", "users:\n  - {key: u, email: u@x.co, role: CLIENTE}\n", "CLIENTE"},
		{"equipo sin empresa", "equipment:\n  - {key: e, company: nada, type: X, serial: S}\n", "empresa"},
		{
			"tarea con no técnico",
			`companies: [{key: c, name: C, nit: "1"}]
users: [{key: a, email: a@x.co, role: ADMIN}]
equipment: [{key: e, company: c, type: X, serial: S}]
maintenances: [{key: m, equipment: e, technician: a, kind: PREVENTIVO}]
`,
			"técnico",
		},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := seed.Load(strings.NewReader(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}
