package strategy

import (
	"github.com/charmbracelet/log"

	"github.com/lox/crapsforbots/internal/craps"
)

// IronCross covers every number but the seven once a point is on: place bets
// on 5, 6 and 8 plus a field bet renewed before each roll.
type IronCross struct {
	base
}

// NewIronCross creates an iron cross strategy.
func NewIronCross(cfg craps.Config, logger *log.Logger) *IronCross {
	return &IronCross{base: newBase("iron-cross", cfg, logger)}
}

// Bet implements Strategy.
func (s *IronCross) Bet(t *craps.Table) error {
	if !t.Phase().On() {
		return nil
	}
	if err := s.stake(t, "field", s.unit(1), craps.NoPoint); err != nil {
		return err
	}
	for _, p := range []craps.Point{craps.Five, craps.Six, craps.Eight} {
		current, err := t.BetStake(placeName(p), craps.NoPoint)
		if err != nil {
			return err
		}
		if current > 0 {
			continue
		}
		if err := s.stake(t, placeName(p), s.unit(placeIncrement(p)), craps.NoPoint); err != nil {
			return err
		}
	}
	return nil
}
