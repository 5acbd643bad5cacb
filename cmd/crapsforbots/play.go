package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/dice"
	"github.com/lox/crapsforbots/internal/tui"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Bankroll int    `help:"Starting bankroll (defaults to the config value)"`
	Seed     int64  `help:"Dice seed, 0 picks one from the clock"`
	NoColor  bool   `help:"Disable colors"`
	LogFile  string `type:"path" help:"Write debug logs to this file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// The REPL owns the terminal, so logs go to a file or nowhere
	var out io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	logger := newLogger(out, cfg)

	bankroll := cfg.Bankroll
	if c.Bankroll > 0 {
		bankroll = c.Bankroll
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting interactive table", "bankroll", bankroll, "seed", seed)

	table, err := craps.NewTable(cfg.TableConfig(), bankroll, craps.WithLogger(logger))
	if err != nil {
		return err
	}
	session := tui.NewSession(table, dice.NewRoller(seed), logger)
	if err := tui.Run(session, logger); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fmt.Printf("Finished with $%d after %d rolls (net %+d)\n", table.Bankroll()+table.Exposure(), table.RollCount(), table.Net())
	return nil
}
