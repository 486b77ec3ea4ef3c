package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/internal/application/alerting"
	appanalytics "github.com/jhoicas/MantenPro-api/internal/application/analytics"
	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/MantenPro-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/MantenPro-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: API completa sobre el almacén en memoria con reloj fijo
// ──────────────────────────────────────────────────────────────────────────────

var ahora = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

type api struct {
	app   *fiber.App
	store *memory.Store
}

func nuevaAPI(t *testing.T) *api {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	base := ahora.AddDate(0, -1, 0)

	for _, c := range []*entity.Company{
		{ID: "C1", Name: "Acme", NIT: "900-1", CreatedAt: base, UpdatedAt: base},
		{ID: "C2", Name: "Globex", NIT: "900-2", CreatedAt: base, UpdatedAt: base},
	} {
		require.NoError(t, s.Companies().Create(ctx, c))
	}
	for _, u := range []*entity.User{
		{ID: "admin", Email: "admin@mantenpro.co", Name: "Admin", Role: entity.RoleAdmin, Active: true},
		{ID: "tec-1", Email: "tec1@mantenpro.co", Name: "Técnico Uno", Role: entity.RoleTecnico, Active: true},
		{ID: "tec-off", Email: "off@mantenpro.co", Name: "Inactivo", Role: entity.RoleTecnico, Active: false},
		{ID: "cli-a", CompanyID: "C1", Email: "cli@acme.co", Name: "Cliente A", Role: entity.RoleCliente, Active: true},
	} {
		u.CreatedAt, u.UpdatedAt = base, base
		require.NoError(t, s.Users().Create(ctx, u))
	}
	for _, e := range []*entity.Equipment{
		{ID: "E1", CompanyID: "C1", Type: "Compresor", Brand: "Atlas", Model: "GA11", Serial: "SN-1", Status: entity.EquipmentActive},
		{ID: "E2", CompanyID: "C2", Type: "Chiller", Brand: "Carrier", Model: "30XA", Serial: "SN-2", Status: entity.EquipmentInMaintenance},
	} {
		e.CreatedAt, e.UpdatedAt = base, base
		require.NoError(t, s.Equipment().Create(ctx, e))
	}
	require.NoError(t, s.Maintenances().Create(ctx, &entity.Maintenance{
		ID: "M1", EquipmentID: "E1", TechnicianID: "tec-1", Kind: entity.MaintenancePreventive,
		Status: entity.MaintenanceScheduled, ScheduledDate: ahora.AddDate(0, 0, -2), Description: "Cambio de filtros",
		CreatedAt: base, UpdatedAt: base,
	}))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AlertUC:       alerting.NewAlertUseCase(s.Maintenances(), s.Equipment(), nil),
		DashboardUC:   appanalytics.NewDashboardUseCase(s.Analytics(), s.Maintenances()),
		EquipmentUC:   usecase.NewEquipmentUseCase(s.Equipment(), s.Companies()),
		MaintenanceUC: usecase.NewMaintenanceUseCase(s.Maintenances(), s.Equipment(), s.Users(), s.History(), s.TxRunner()),
		HistoryUC:     usecase.NewHistoryUseCase(s.History()),
		CompanyUC:     usecase.NewCompanyUseCase(s.Companies()),
		UserUC:        usecase.NewUserUseCase(s.Users(), s.Companies()),
		JWTSecret:     testJWTSecret,
		Clock:         apphttp.NewClock(func() time.Time { return ahora }, time.UTC),
	})
	return &api{app: app, store: s}
}

func token(t *testing.T, userID, companyID string, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, companyID, string(role), testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

var (
	comoAdmin   = func(t *testing.T) string { return token(t, "admin", "", entity.RoleAdmin) }
	comoTecnico = func(t *testing.T) string { return token(t, "tec-1", "", entity.RoleTecnico) }
	comoCliente = func(t *testing.T) string { return token(t, "cli-a", "C1", entity.RoleCliente) }
)

func (a *api) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas y dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestAlerts_PorRol(t *testing.T) {
	a := nuevaAPI(t)

	resp := a.do(t, http.MethodGet, "/api/alerts", comoAdmin(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.AlertListResponse](t, resp)
	assert.Equal(t, 1, out.Contadores.Atrasados)
	assert.Equal(t, 1, out.Contadores.Criticos)
	assert.Equal(t, 2, out.Contadores.Total)
	require.Len(t, out.Alertas, 2)

	resp = a.do(t, http.MethodGet, "/api/alerts", comoCliente(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decode[dto.AlertListResponse](t, resp)
	require.Len(t, out.Alertas, 1)
	assert.Equal(t, "ATRASADO", out.Alertas[0].Tipo)
	assert.Equal(t, "M1", out.Alertas[0].MantenimientoID)
}

func TestAlerts_SinToken(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodGet, "/api/alerts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAlerts_UsuarioInactivo(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodGet, "/api/alerts", token(t, "tec-off", "", entity.RoleTecnico), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "USER_INACTIVE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestDashboardStats(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodGet, "/api/dashboard/stats", comoCliente(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardStatsDTO](t, resp)
	assert.Equal(t, 1, out.TotalEquipment)
	assert.Equal(t, 1, out.Pending)
	assert.Len(t, out.Upcoming, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Equipos
// ──────────────────────────────────────────────────────────────────────────────

func TestEquipment_VisibilidadCliente(t *testing.T) {
	a := nuevaAPI(t)

	resp := a.do(t, http.MethodGet, "/api/equipment", comoCliente(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.EquipmentListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "E1", list.Items[0].ID)

	resp = a.do(t, http.MethodGet, "/api/equipment/E2", comoCliente(t), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEquipment_TecnicoNoCrea(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodPost, "/api/equipment", comoTecnico(t), dto.CreateEquipmentRequest{
		CompanyID: "C1", Type: "Bomba", Brand: "KSB", Serial: "SN-9", Status: "ACTIVO",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEquipment_SerialDuplicado(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodPost, "/api/equipment", comoAdmin(t), dto.CreateEquipmentRequest{
		CompanyID: "C1", Type: "Bomba", Brand: "KSB", Serial: "SN-1", Status: "ACTIVO",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "SERIAL_EXISTS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestEquipment_BorrarConTareas(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodDelete, "/api/equipment/E1", comoAdmin(t), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mantenimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMaintenance_CrearYCompletar(t *testing.T) {
	a := nuevaAPI(t)

	resp := a.do(t, http.MethodPost, "/api/maintenances", comoCliente(t), dto.CreateMaintenanceRequest{
		EquipmentID: "E1", TechnicianID: "tec-1", Kind: "CORRECTIVO",
		ScheduledDate: "2024-06-12", Description: "Ruido en motor",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.MaintenanceResponse](t, resp)
	require.NotNil(t, created.Alerta)
	assert.Equal(t, "PROXIMO", created.Alerta.Tipo)

	resp = a.do(t, http.MethodPatch, "/api/maintenances/"+created.ID+"/status", comoTecnico(t), map[string]string{
		"status": "COMPLETADO", "observations": "Rodamiento cambiado",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	done := decode[dto.MaintenanceResponse](t, resp)
	assert.Equal(t, "COMPLETADO", done.Status)
	require.NotNil(t, done.CompletedDate)
	assert.True(t, ahora.Equal(*done.CompletedDate))
	assert.Nil(t, done.Alerta)

	resp = a.do(t, http.MethodGet, "/api/maintenances/"+created.ID, comoCliente(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.MaintenanceResponse](t, resp)
	obs := make([]string, 0, len(detail.History))
	for _, h := range detail.History {
		obs = append(obs, h.Observations)
	}
	assert.ElementsMatch(t, []string{
		"Mantenimiento correctivo programado: Ruido en motor",
		"Estado cambiado a: COMPLETADO. Rodamiento cambiado",
	}, obs)
}

func TestMaintenance_TecnicoNoProgramaYClienteAjenoNoVe(t *testing.T) {
	a := nuevaAPI(t)

	resp := a.do(t, http.MethodPost, "/api/maintenances", comoTecnico(t), dto.CreateMaintenanceRequest{
		EquipmentID: "E1", TechnicianID: "tec-1", Kind: "PREVENTIVO", ScheduledDate: "2024-06-12", Description: "x",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	otro := token(t, "cli-a", "C2", entity.RoleCliente)
	resp = a.do(t, http.MethodGet, "/api/maintenances/M1", otro, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMaintenance_TecnicoInvalido(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodPost, "/api/maintenances", comoAdmin(t), dto.CreateMaintenanceRequest{
		EquipmentID: "E1", TechnicianID: "cli-a", Kind: "PREVENTIVO", ScheduledDate: "2024-06-12", Description: "x",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_TECHNICIAN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestMaintenance_ListaConAlertaPorFila(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodGet, "/api/maintenances?search=filtros+atlas", comoTecnico(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MaintenanceListResponse](t, resp)
	require.Len(t, list.Items, 1)
	require.NotNil(t, list.Items[0].Alerta)
	assert.Equal(t, "ATRASADO", list.Items[0].Alerta.Tipo)
	assert.Equal(t, 2, list.Items[0].Alerta.Dias)
	assert.Equal(t, 1, list.Page.Total)
}

func TestMaintenance_CambioEstadoSinStatus(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodPatch, "/api/maintenances/M1/status", comoAdmin(t), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial, empresas y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_FechaInvalida(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodGet, "/api/history?from=ayer", comoAdmin(t), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompanies_SoloAdmin(t *testing.T) {
	a := nuevaAPI(t)

	resp := a.do(t, http.MethodGet, "/api/companies", comoCliente(t), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/companies", comoAdmin(t), dto.CreateCompanyRequest{Name: "Otra", NIT: "900-1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/companies", comoAdmin(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.CompanyListResponse](t, resp).Page.Total)
}

func TestUsers_TecnicosParaCualquierRol(t *testing.T) {
	a := nuevaAPI(t)

	resp := a.do(t, http.MethodGet, "/api/users/technicians", comoCliente(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.UserListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "tec-1", list.Items[0].ID)

	resp = a.do(t, http.MethodGet, "/api/users", comoTecnico(t), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUsers_NoPuedeBorrarseASiMismo(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodDelete, "/api/users/admin", comoAdmin(t), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "CANNOT_DELETE_SELF", decode[dto.ErrorResponse](t, resp).Code)
}

func TestUsers_ClienteSinEmpresa(t *testing.T) {
	a := nuevaAPI(t)
	resp := a.do(t, http.MethodPost, "/api/users", comoAdmin(t), dto.CreateUserRequest{
		Email: "nuevo@x.co", Password: "secreto1", Name: "Nuevo", Role: "CLIENTE",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "COMPANY_REQUIRED", decode[dto.ErrorResponse](t, resp).Code)
}
