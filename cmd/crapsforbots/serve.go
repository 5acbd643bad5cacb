package main

import (
	"os"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/crapsforbots/internal/server"
)

// ServeCmd runs the websocket server
type ServeCmd struct {
	Addr        string        `help:"Listen address (defaults to the config value)"`
	Bankroll    int           `help:"Starting bankroll per session"`
	MaxRolls    int           `help:"Roll limit per session, 0 keeps the configured value"`
	IdleTimeout time.Duration `help:"Close sessions idle for this long"`
	Seed        int64         `help:"Seed for session dice, 0 picks one from the clock"`
	FixedDice   bool          `help:"Let clients choose the dice (testing only)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	idle, err := cfg.IdleTimeout()
	if err != nil {
		return err
	}
	if c.IdleTimeout > 0 {
		idle = c.IdleTimeout
	}
	addr := cfg.Server.Address
	if c.Addr != "" {
		addr = c.Addr
	}

	opts := server.Options{
		Table:       cfg.TableConfig(),
		Bankroll:    pick(c.Bankroll, cfg.Bankroll),
		MaxRolls:    pick(c.MaxRolls, cfg.Server.MaxRolls),
		IdleTimeout: idle,
		Seed:        c.Seed,
		FixedDice:   c.FixedDice,
		Clock:       quartz.NewReal(),
	}
	srv, err := server.NewServer(addr, opts, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting craps server",
		"address", addr,
		"bankroll", opts.Bankroll,
		"table_min", opts.Table.TableMin,
		"table_max", opts.Table.TableMax,
		"max_odds", opts.Table.MaxOdds,
		"max_rolls", opts.MaxRolls,
		"idle_timeout", idle,
		"fixed_dice", opts.FixedDice)

	ctx, cancel := signalContext(logger)
	defer cancel()
	return srv.Start(ctx)
}
