package strategy

import (
	"github.com/charmbracelet/log"

	"github.com/lox/crapsforbots/internal/craps"
)

// ThreePointMolly keeps up to three numbers working: the pass line point plus
// come bets, each backed by odds.
type ThreePointMolly struct {
	base
	multiple int
}

// NewThreePointMolly creates a 3-point molly taking multiple times odds
// (capped at the table limit).
func NewThreePointMolly(cfg craps.Config, multiple int, logger *log.Logger) *ThreePointMolly {
	if multiple < 1 {
		multiple = 1
	}
	return &ThreePointMolly{base: newBase("3-point-molly", cfg, logger), multiple: multiple}
}

// Bet implements Strategy.
func (s *ThreePointMolly) Bet(t *craps.Table) error {
	phase := t.Phase()
	if !phase.On() {
		return s.stake(t, "pass_line", s.unit(1), craps.NoPoint)
	}

	covered := 0
	line, err := t.BetStake("pass_line", craps.NoPoint)
	if err != nil {
		return err
	}
	if line > 0 {
		covered++
		if err := s.odds(t, "pass_line", s.maxOdds(line, phase.Point, s.multiple), craps.NoPoint); err != nil {
			return err
		}
	}

	for _, p := range craps.Points {
		stake, err := t.BetStake("come", p)
		if err != nil {
			return err
		}
		if stake == 0 {
			continue
		}
		covered++
		odds, err := t.BetOdds("come", p)
		if err != nil {
			return err
		}
		if odds == 0 {
			if err := s.odds(t, "come", s.maxOdds(stake, p, s.multiple), p); err != nil {
				return err
			}
		}
	}

	pending, err := t.BetStake("come", craps.NoPoint)
	if err != nil {
		return err
	}
	if pending == 0 && covered < 3 {
		return s.stake(t, "come", s.unit(1), craps.NoPoint)
	}
	return nil
}
