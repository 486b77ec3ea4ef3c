package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/MantenPro-api/internal/application/alerting"
	appanalytics "github.com/jhoicas/MantenPro-api/internal/application/analytics"
	"github.com/jhoicas/MantenPro-api/internal/application/auth"
	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/memory"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/MantenPro-api/internal/interfaces/http"
	"github.com/jhoicas/MantenPro-api/internal/observability/metrics"
	"github.com/jhoicas/MantenPro-api/pkg/config"
	"github.com/jhoicas/MantenPro-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repos conjunto de repositorios del backend elegido.
type repos struct {
	companies    repository.CompanyRepository
	users        repository.UserRepository
	equipment    repository.EquipmentRepository
	maintenances repository.MaintenanceRepository
	history      repository.HistoryRepository
	analytics    repository.AnalyticsRepository
	tx           usecase.MaintenanceTxRunner
}

// @title                       MantenPro API
// @version                     1.0
// @description                 Gestión de mantenimiento de equipos: alertas, historial y dashboard por rol.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	metrics.Init()
	ctx := context.Background()

	var r repos
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		r = memoryRepos(ctx, cfg, loc, log)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		r = repos{
			companies:    postgres.NewCompanyRepository(pool),
			users:        postgres.NewUserRepository(pool),
			equipment:    postgres.NewEquipmentRepository(pool),
			maintenances: postgres.NewMaintenanceRepository(pool),
			history:      postgres.NewHistoryRepository(pool),
			analytics:    postgres.NewAnalyticsRepository(pool),
			tx:           postgres.NewTxRunner(pool),
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "MantenPro API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AlertUC:       alerting.NewAlertUseCase(r.maintenances, r.equipment, log.Component("alerts")),
		DashboardUC:   appanalytics.NewDashboardUseCase(r.analytics, r.maintenances),
		EquipmentUC:   usecase.NewEquipmentUseCase(r.equipment, r.companies),
		MaintenanceUC: usecase.NewMaintenanceUseCase(r.maintenances, r.equipment, r.users, r.history, r.tx),
		HistoryUC:     usecase.NewHistoryUseCase(r.history),
		CompanyUC:     usecase.NewCompanyUseCase(r.companies),
		UserUC:        usecase.NewUserUseCase(r.users, r.companies),
		JWTSecret:     cfg.JWT.Secret,
		Clock:         httpRouter.NewClock(time.Now, loc),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// memoryRepos almacén en memoria sembrado con el fixture (SEED_FILE o el demo
// embebido). Registra un token de desarrollo por usuario activo.
func memoryRepos(ctx context.Context, cfg *config.Config, loc *time.Location, log *logger.Logger) repos {
	store := memory.NewStore()
	r := repos{
		companies:    store.Companies(),
		users:        store.Users(),
		equipment:    store.Equipment(),
		maintenances: store.Maintenances(),
		history:      store.History(),
		analytics:    store.Analytics(),
		tx:           store.TxRunner(),
	}

	fx, err := seed.Demo()
	if cfg.Storage.SeedFile != "" {
		fx, err = seed.LoadFile(cfg.Storage.SeedFile)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("cargar fixture")
	}
	res, err := seed.Apply(ctx, fx, seed.Target{
		Companies:    r.companies,
		Users:        r.users,
		Equipment:    r.equipment,
		Maintenances: r.maintenances,
		History:      r.history,
	}, time.Now().In(loc), log.Component("seed"))
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar almacén en memoria")
	}

	issuer := auth.NewTokenIssuer(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	for _, u := range res.Users {
		tok, err := issuer.Issue(u)
		if err != nil {
			continue
		}
		log.Info().
			Str("email", u.Email).
			Str("role", string(u.Role)).
			Str("token", tok).
			Msg("token de desarrollo")
	}
	return r
}
