package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/crapsforbots/internal/render"
	"github.com/lox/crapsforbots/internal/report"
	"github.com/lox/crapsforbots/internal/simulator"
	"github.com/lox/crapsforbots/internal/strategy"
)

// SimulateCmd plays many sessions of one strategy and reports the results
type SimulateCmd struct {
	Strategy string        `short:"s" help:"Betting strategy (see --list)"`
	Sessions int           `short:"n" help:"Number of sessions"`
	MaxRolls int           `help:"Roll limit per session"`
	Bankroll int           `help:"Starting bankroll per session"`
	Workers  int           `help:"Parallel workers, 0 uses one per CPU"`
	Seed     int64         `help:"Base seed, 0 picks one from the clock"`
	Timeout  time.Duration `help:"Abort the run after this long"`
	Progress time.Duration `default:"5s" help:"Progress log interval, 0 disables"`
	Out      string        `short:"o" type:"path" help:"Write a JSON report to this file"`
	List     bool          `help:"List strategies and exit"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	if c.List {
		fmt.Println(strings.Join(strategy.Names(), "\n"))
		return nil
	}

	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	sim := cfg.Simulation
	simCfg := simulator.Config{
		Sessions: pick(c.Sessions, sim.Sessions),
		MaxRolls: pick(c.MaxRolls, sim.MaxRolls),
		Bankroll: pick(c.Bankroll, cfg.Bankroll),
		Table:    cfg.TableConfig(),
		Strategy: sim.Strategy,
		Seed:     sim.Seed,
		Workers:  pick(c.Workers, sim.Workers),
		Timeout:  c.Timeout,
		Progress: c.Progress,
		Clock:    quartz.NewReal(),
		Logger:   logger,
	}
	if c.Strategy != "" {
		simCfg.Strategy = c.Strategy
	}
	if c.Seed != 0 {
		simCfg.Seed = c.Seed
	}
	if simCfg.Seed == 0 {
		simCfg.Seed = time.Now().UnixNano()
	}

	s, err := simulator.New(simCfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info("Starting simulation", "strategy", simCfg.Strategy, "sessions", simCfg.Sessions, "seed", simCfg.Seed)
	res, err := s.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Print(render.Summary(res, simCfg.Bankroll))

	if c.Out != "" {
		if err := report.Write(c.Out, report.New(simCfg, res)); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Out)
	}
	return nil
}

// pick returns flag when set, otherwise the configured value
func pick(flag, configured int) int {
	if flag > 0 {
		return flag
	}
	return configured
}
