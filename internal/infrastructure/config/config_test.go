package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Engine.CompatibleLimit)
	assert.Equal(t, 50, cfg.Engine.FallbackLimit)
	assert.Equal(t, 20, cfg.Engine.MinCompatible)
	assert.InDelta(t, 0.1, cfg.Engine.CalorieTolerance, 1e-9)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CatalogTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  environment: production
database:
  driver: postgres
  host: db.internal
  username: planner
engine:
  min_compatible: 10
`), 0o600))
	t.Setenv("AYURPLAN_ENGINE_COMPATIBLE_LIMIT", "75")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 10, cfg.Engine.MinCompatible)
	assert.Equal(t, 75, cfg.Engine.CompatibleLimit)
	assert.Equal(t, "host=db.internal port=5432 user=planner password= dbname=ayurplan sslmode=disable", cfg.GetDSN())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			App:      AppConfig{Name: "ayurplan-engine"},
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "sqlite", Path: "test.db"},
			Engine:   EngineConfig{CompatibleLimit: 50, FallbackLimit: 50, MinCompatible: 20, CalorieTolerance: 0.1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"Valid", func(*Config) {}, true},
		{"MissingName", func(c *Config) { c.App.Name = "" }, false},
		{"BadPort", func(c *Config) { c.Server.Port = 70000 }, false},
		{"UnknownDriver", func(c *Config) { c.Database.Driver = "mysql" }, false},
		{"BadTolerance", func(c *Config) { c.Engine.CalorieTolerance = 2 }, false},
		{"TracingWithoutEndpoint", func(c *Config) { c.Monitoring.EnableTracing = true }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
