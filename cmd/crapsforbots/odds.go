package main

import (
	"fmt"

	"github.com/lox/crapsforbots/internal/render"
)

// OddsCmd prints true odds and house payouts for the configured table
type OddsCmd struct{}

func (c *OddsCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	fmt.Print(render.Limits(cfg.TableConfig()))
	fmt.Println()
	fmt.Println(render.OddsChart(cfg.TableConfig()))
	return nil
}
