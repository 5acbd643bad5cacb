package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lox/crapsforbots/internal/client"
)

// BotCmd connects strategy bots to a running server
type BotCmd struct {
	URL      string `help:"Server URL (defaults to the configured server address)"`
	Strategy string `short:"s" help:"Betting strategy, defaults to the simulation strategy"`
	Rolls    int    `default:"100" help:"Rolls to play per bot"`
	Count    int    `short:"n" default:"1" help:"Number of bots to run in parallel"`
}

func (c *BotCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)
	if c.Count < 1 {
		return fmt.Errorf("count must be positive: %d", c.Count)
	}

	url := c.URL
	if url == "" {
		url = "ws://" + cfg.Server.Address + "/ws"
	}
	name := c.Strategy
	if name == "" {
		name = cfg.Simulation.Strategy
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	summaries := make([]client.Summary, c.Count)
	eg, gctx := errgroup.WithContext(ctx)
	for i := range c.Count {
		eg.Go(func() error {
			conn, err := client.Dial(gctx, url, logger)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			bot, err := client.NewBot(conn, name, logger.With("bot", i))
			if err != nil {
				return err
			}
			s, err := bot.Play(gctx, c.Rolls)
			if err != nil {
				return fmt.Errorf("bot %d: %w", i, err)
			}
			summaries[i] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var b strings.Builder
	total := 0
	for i, s := range summaries {
		fmt.Fprintf(&b, "bot %d: %d rolls, net %+d, wagered $%d (%s)\n", i, s.Rolls, s.Net, s.Wagered, s.Reason)
		total += s.Net
	}
	fmt.Fprintf(&b, "%s over %d bots: net %+d\n", name, c.Count, total)
	fmt.Print(b.String())
	return nil
}
