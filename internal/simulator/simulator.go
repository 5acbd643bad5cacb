package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/dice"
	"github.com/lox/crapsforbots/internal/statistics"
	"github.com/lox/crapsforbots/internal/strategy"
)

// ErrTimeout is the cancellation cause when a run exceeds Config.Timeout.
var ErrTimeout = errors.New("simulator: timed out")

// Config holds configuration for running simulations
type Config struct {
	Sessions int
	MaxRolls int
	Bankroll int
	Table    craps.Config
	Strategy string
	Seed     int64
	Workers  int           // 0 picks one per CPU, capped at 8
	Timeout  time.Duration // 0 disables the deadline
	Progress time.Duration // Interval between progress logs, 0 disables
	Clock    quartz.Clock
	Logger   *log.Logger
}

// Result is the outcome of a simulation run
type Result struct {
	Strategy string
	Stats    *statistics.Statistics
	Elapsed  time.Duration
}

// Simulator plays many independent craps sessions with one strategy
type Simulator struct {
	config  Config
	factory strategy.Factory
	logger  *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Sessions < 1 {
		return nil, fmt.Errorf("sessions must be positive: %d", config.Sessions)
	}
	if config.MaxRolls < 1 {
		return nil, fmt.Errorf("max rolls must be positive: %d", config.MaxRolls)
	}
	if err := config.Table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table config: %w", err)
	}
	factory, err := strategy.Lookup(config.Strategy)
	if err != nil {
		return nil, err
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{
		config:  config,
		factory: factory,
		logger:  config.Logger.WithPrefix("simulator"),
	}, nil
}

func (s *Simulator) workers() int {
	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}
	}
	if workers > s.config.Sessions {
		workers = s.config.Sessions
	}
	return workers
}

// Run plays every session and returns the aggregated statistics. Session i
// always uses seed Seed+i, so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	start := cfg.Clock.Now()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if cfg.Timeout > 0 {
		timer := cfg.Clock.AfterFunc(cfg.Timeout, func() { cancel(ErrTimeout) }, "timeout")
		defer timer.Stop()
	}

	var completed atomic.Int64
	if cfg.Progress > 0 {
		cfg.Clock.TickerFunc(ctx, cfg.Progress, func() error {
			s.logger.Info("Simulation progress",
				"sessions", completed.Load(),
				"total", cfg.Sessions,
				"elapsed", cfg.Clock.Since(start).Round(time.Millisecond))
			return nil
		}, "progress")
	}

	workers := s.workers()
	s.logger.Debug("Starting simulation", "strategy", cfg.Strategy, "sessions", cfg.Sessions, "workers", workers, "seed", cfg.Seed)

	partial := make([]*statistics.Statistics, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		stats := &statistics.Statistics{}
		partial[w] = stats
		g.Go(func() error {
			for i := w; i < cfg.Sessions; i += workers {
				if gctx.Err() != nil {
					return context.Cause(gctx)
				}
				result, err := s.PlaySession(cfg.Seed + int64(i))
				if err != nil {
					return fmt.Errorf("session %d (seed %d): %w", i, cfg.Seed+int64(i), err)
				}
				stats.Add(result)
				completed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, p := range partial {
		stats.Merge(p)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := cfg.Clock.Since(start)
	s.logger.Debug("Simulation finished", "sessions", stats.Sessions, "elapsed", elapsed)
	return &Result{Strategy: cfg.Strategy, Stats: stats, Elapsed: elapsed}, nil
}

// PlaySession plays one session from seed until the strategy walks away, the
// roll limit is reached or the player can no longer afford a minimum bet.
func (s *Simulator) PlaySession(seed int64) (statistics.SessionResult, error) {
	cfg := s.config
	table, err := craps.NewTable(cfg.Table, cfg.Bankroll, craps.WithLogger(cfg.Logger))
	if err != nil {
		return statistics.SessionResult{}, err
	}
	strat := s.factory(cfg.Table, cfg.Logger)
	roller := dice.NewRoller(seed)

	for table.RollCount() < cfg.MaxRolls {
		err := strat.Bet(table)
		if errors.Is(err, strategy.ErrWalkAway) {
			break
		}
		if err != nil {
			return statistics.SessionResult{}, err
		}
		if broke(table) {
			break
		}
		strat.Observe(table.Step(roller.Next()))
	}

	net := table.Net()
	return statistics.SessionResult{
		Net:     net,
		Rolls:   table.RollCount(),
		Wagered: table.Wagered(),
		Seed:    seed,
		Busted:  net < 0 && broke(table),
	}, nil
}

// broke reports that nothing is riding and the bankroll is below the table
// minimum.
func broke(t *craps.Table) bool {
	return t.Exposure() == 0 && t.Bankroll() < t.Config().TableMin
}
