package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MantenPro-api/internal/application/alerting"
	appanalytics "github.com/jhoicas/MantenPro-api/internal/application/analytics"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AlertUC       *alerting.AlertUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	EquipmentUC   *usecase.EquipmentUseCase
	MaintenanceUC *usecase.MaintenanceUseCase
	HistoryUC     *usecase.HistoryUseCase
	CompanyUC     *usecase.CompanyUseCase
	UserUC        *usecase.UserUseCase
	JWTSecret     string
	Clock         Clock
}

const (
	admin   = entity.RoleAdmin
	tecnico = entity.RoleTecnico
	cliente = entity.RoleCliente
)

// Router registra las rutas de la API. Todo /api requiere Bearer Token de un
// usuario activo; la visibilidad por rol la decide cada caso de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireActiveUser(deps.UserUC))
	anyRole := RequireRole(admin, tecnico, cliente)

	// Alertas y dashboard
	alertHandler := NewAlertHandler(deps.AlertUC, deps.Clock)
	api.Get("/alerts", anyRole, alertHandler.List)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Clock)
	api.Get("/dashboard/stats", anyRole, dashboardHandler.GetStats)

	// Equipos
	equipment := api.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC, deps.Clock)
	equipment.Get("/", anyRole, equipmentHandler.List)
	equipment.Get("/:id", anyRole, equipmentHandler.GetByID)
	equipment.Post("/", RequireRole(admin, cliente), equipmentHandler.Create)
	equipment.Put("/:id", RequireRole(admin, cliente), equipmentHandler.Update)
	equipment.Delete("/:id", RequireRole(admin), equipmentHandler.Delete)

	// Mantenimientos
	maintenances := api.Group("/maintenances")
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC, deps.Clock)
	maintenances.Get("/", anyRole, maintenanceHandler.List)
	maintenances.Get("/:id", anyRole, maintenanceHandler.GetByID)
	maintenances.Post("/", RequireRole(admin, cliente), maintenanceHandler.Create)
	maintenances.Put("/:id", anyRole, maintenanceHandler.Update)
	maintenances.Patch("/:id/status", anyRole, maintenanceHandler.ChangeStatus)
	maintenances.Delete("/:id", RequireRole(admin), maintenanceHandler.Delete)

	// Historial
	historyHandler := NewHistoryHandler(deps.HistoryUC, deps.Clock)
	api.Get("/history", anyRole, historyHandler.List)

	// Empresas (solo ADMIN)
	companies := api.Group("/companies", RequireRole(admin))
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Clock)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Usuarios: técnicos para cualquier rol; el resto solo ADMIN
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.Clock)
	users.Get("/technicians", anyRole, userHandler.ListTechnicians)
	users.Get("/", RequireRole(admin), userHandler.List)
	users.Post("/", RequireRole(admin), userHandler.Create)
	users.Get("/:id", RequireRole(admin), userHandler.GetByID)
	users.Put("/:id", RequireRole(admin), userHandler.Update)
	users.Delete("/:id", RequireRole(admin), userHandler.Delete)
}
