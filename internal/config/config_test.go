package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/crapsforbots/internal/craps"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "craps.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, craps.DefaultConfig(), cfg.TableConfig())
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
bankroll  = 200

table {
  min      = 15
  max      = 10000
  max_odds = 3
  prop_min = 5
}

server {
  address      = "0.0.0.0:9000"
  idle_timeout = "30s"
  max_rolls    = 500
}

simulation {
  sessions  = 50
  max_rolls = 100
  workers   = 4
  strategy  = "iron-cross"
  seed      = 42
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, 200, cfg.Bankroll)
	assert.Equal(t, craps.Config{TableMin: 15, TableMax: 10000, MaxOdds: 3, PropMin: 5}, cfg.TableConfig())
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	assert.Equal(t, 500, cfg.Server.MaxRolls)
	idle, err := cfg.IdleTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, idle)
	assert.Equal(t, &SimulationSettings{Sessions: 50, MaxRolls: 100, Workers: 4, Strategy: "iron-cross", Seed: 42}, cfg.Simulation)
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := writeConfig(t, `
table {
  min = 10
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1000, cfg.Bankroll)
	assert.Equal(t, 10, cfg.Table.Min)
	assert.Equal(t, 500, cfg.Table.Max)
	assert.Equal(t, "localhost:8080", cfg.Server.Address)
	assert.Equal(t, "pass-odds", cfg.Simulation.Strategy)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `table {`))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `unknown_attr = 1`))
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bankroll", func(c *Config) { c.Bankroll = -1 }},
		{"odds", func(c *Config) { c.Table.MaxOdds = 0 }},
		{"min above max", func(c *Config) { c.Table.Min = 600 }},
		{"idle timeout", func(c *Config) { c.Server.IdleTimeout = "soon" }},
		{"negative idle timeout", func(c *Config) { c.Server.IdleTimeout = "-1s" }},
		{"server rolls", func(c *Config) { c.Server.MaxRolls = -1 }},
		{"sessions", func(c *Config) { c.Simulation.Sessions = 0 }},
		{"rolls", func(c *Config) { c.Simulation.MaxRolls = 0 }},
		{"workers", func(c *Config) { c.Simulation.Workers = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
