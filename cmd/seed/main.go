// seed siembra un fixture YAML en PostgreSQL y muestra un token de desarrollo
// por usuario. Es idempotente: los registros ya sembrados se omiten.
//
// Uso: go run ./cmd/seed [ruta/fixture.yaml]
// Sin argumento usa SEED_FILE y, si no está definido, el fixture demo embebido.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/application/auth"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/MantenPro-api/internal/infrastructure/seed"
	"github.com/jhoicas/MantenPro-api/pkg/config"
	"github.com/jhoicas/MantenPro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	path := cfg.Storage.SeedFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	fx, err := seed.Demo()
	if path != "" {
		fx, err = seed.LoadFile(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar fixture: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Aplicar esquema: %v\n", err)
		os.Exit(1)
	}

	res, err := seed.Apply(ctx, fx, seed.Target{
		Companies:    postgres.NewCompanyRepository(pool),
		Users:        postgres.NewUserRepository(pool),
		Equipment:    postgres.NewEquipmentRepository(pool),
		Maintenances: postgres.NewMaintenanceRepository(pool),
		History:      postgres.NewHistoryRepository(pool),
	}, time.Now().In(cfg.App.Location()), log.Component("seed"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Registros creados: %d, omitidos: %d\n", res.Created, res.Skipped)

	issuer := auth.NewTokenIssuer(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	for _, u := range res.Users {
		tok, err := issuer.Issue(u)
		if err != nil {
			fmt.Printf("%-28s %-8s (sin token: %v)\n", u.Email, u.Role, err)
			continue
		}
		fmt.Printf("%-28s %-8s %s\n", u.Email, u.Role, tok)
	}
}
