package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/crapsforbots/internal/craps"
)

// Config represents the complete crapsforbots configuration
type Config struct {
	LogLevel   string              `hcl:"log_level,optional"`
	Bankroll   int                 `hcl:"bankroll,optional"`
	Table      *TableSettings      `hcl:"table,block"`
	Server     *ServerSettings     `hcl:"server,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// TableSettings contains the table limits
type TableSettings struct {
	Min     int `hcl:"min,optional"`
	Max     int `hcl:"max,optional"`
	MaxOdds int `hcl:"max_odds,optional"`
	PropMin int `hcl:"prop_min,optional"`
}

// ServerSettings contains websocket server configuration
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
	MaxRolls    int    `hcl:"max_rolls,optional"`
}

// SimulationSettings controls batch simulation runs
type SimulationSettings struct {
	Sessions int    `hcl:"sessions,optional"`
	MaxRolls int    `hcl:"max_rolls,optional"`
	Workers  int    `hcl:"workers,optional"`
	Strategy string `hcl:"strategy,optional"`
	Seed     int64  `hcl:"seed,optional"`
}

// Default returns the default configuration
func Default() *Config {
	cfg := craps.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Bankroll: 1000,
		Table: &TableSettings{
			Min:     cfg.TableMin,
			Max:     cfg.TableMax,
			MaxOdds: cfg.MaxOdds,
			PropMin: cfg.PropMin,
		},
		Server: &ServerSettings{
			Address:     "localhost:8080",
			IdleTimeout: "5m",
			MaxRolls:    0,
		},
		Simulation: &SimulationSettings{
			Sessions: 1000,
			MaxRolls: 200,
			Workers:  0,
			Strategy: "pass-odds",
			Seed:     0,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	def := Default()

	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Bankroll == 0 {
		c.Bankroll = def.Bankroll
	}

	if c.Table == nil {
		c.Table = def.Table
	}
	if c.Table.Min == 0 {
		c.Table.Min = def.Table.Min
	}
	if c.Table.Max == 0 {
		c.Table.Max = def.Table.Max
	}
	if c.Table.MaxOdds == 0 {
		c.Table.MaxOdds = def.Table.MaxOdds
	}
	if c.Table.PropMin == 0 {
		c.Table.PropMin = def.Table.PropMin
	}

	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.IdleTimeout == "" {
		c.Server.IdleTimeout = def.Server.IdleTimeout
	}

	if c.Simulation == nil {
		c.Simulation = def.Simulation
	}
	if c.Simulation.Sessions == 0 {
		c.Simulation.Sessions = def.Simulation.Sessions
	}
	if c.Simulation.MaxRolls == 0 {
		c.Simulation.MaxRolls = def.Simulation.MaxRolls
	}
	if c.Simulation.Strategy == "" {
		c.Simulation.Strategy = def.Simulation.Strategy
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.Bankroll < 0 {
		return fmt.Errorf("bankroll cannot be negative: %d", c.Bankroll)
	}
	if c.Table.MaxOdds < 1 {
		return fmt.Errorf("max odds must be at least 1: %d", c.Table.MaxOdds)
	}
	if err := c.TableConfig().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if _, err := c.IdleTimeout(); err != nil {
		return err
	}
	if c.Server.MaxRolls < 0 {
		return fmt.Errorf("server: max rolls cannot be negative: %d", c.Server.MaxRolls)
	}
	if c.Simulation.Sessions < 1 {
		return fmt.Errorf("simulation: sessions must be positive: %d", c.Simulation.Sessions)
	}
	if c.Simulation.MaxRolls < 1 {
		return fmt.Errorf("simulation: max rolls must be positive: %d", c.Simulation.MaxRolls)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation: workers cannot be negative: %d", c.Simulation.Workers)
	}
	return nil
}

// TableConfig converts the table block into engine limits.
func (c *Config) TableConfig() craps.Config {
	return craps.Config{
		TableMin: c.Table.Min,
		TableMax: c.Table.Max,
		MaxOdds:  c.Table.MaxOdds,
		PropMin:  c.Table.PropMin,
	}
}

// IdleTimeout parses the server idle timeout.
func (c *Config) IdleTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("server: invalid idle timeout %q: %w", c.Server.IdleTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("server: idle timeout must be positive: %s", d)
	}
	return d, nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
