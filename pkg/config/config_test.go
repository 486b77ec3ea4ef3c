package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "mantenpro-api", cfg.App.Name)
	assert.Equal(t, "America/Bogota", cfg.App.Timezone)
	assert.Equal(t, "America/Bogota", cfg.App.Location().String())
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("SEED_FILE", "fixtures/planta.yaml")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("DB_FORCE_IPV4", "true")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "fixtures/planta.yaml", cfg.Storage.SeedFile)
	assert.Equal(t, "UTC", cfg.App.Location().String())
	assert.Equal(t, 7, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_Invalido(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		_, err := config.Load()
		assert.ErrorContains(t, err, "STORAGE_DRIVER")
	})
	t.Run("zona horaria", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "Marte/Olympus")
		_, err := config.Load()
		assert.ErrorContains(t, err, "APP_TIMEZONE")
	})
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "a b@c", DBName: "mantenpro", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:a%20b%40c@db:5432/mantenpro?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
