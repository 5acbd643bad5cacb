package strategy

import (
	"github.com/charmbracelet/log"

	"github.com/lox/crapsforbots/internal/craps"
)

// PassOdds bets the table minimum on the pass line and backs every point
// with the largest odds the table allows.
type PassOdds struct {
	base
}

// NewPassOdds creates a pass line and odds strategy.
func NewPassOdds(cfg craps.Config, logger *log.Logger) *PassOdds {
	return &PassOdds{base: newBase("pass-odds", cfg, logger)}
}

// Bet implements Strategy.
func (s *PassOdds) Bet(t *craps.Table) error {
	phase := t.Phase()
	if !phase.On() {
		return s.stake(t, "pass_line", s.unit(1), craps.NoPoint)
	}

	line, err := t.BetStake("pass_line", craps.NoPoint)
	if err != nil || line == 0 {
		return err
	}
	return s.odds(t, "pass_line", s.maxOdds(line, phase.Point, s.cfg.MaxOdds), craps.NoPoint)
}
