package strategy

import (
	"github.com/charmbracelet/log"

	"github.com/lox/crapsforbots/internal/craps"
)

type explosionStage int

const (
	sixEight explosionStage = iota // $unit on the 6 and 8
	pressed                        // 6 and 8 pressed to two units
	across                         // every number covered, pressing hits
	leaving
)

// SixEightExplosion starts on the 6 and 8, presses them after a hit, spreads
// across every number after the next hit and then presses each winner. Three
// hits across takes everything down and leaves the table.
type SixEightExplosion struct {
	base
	stage  explosionStage
	hits   int
	target map[craps.Point]int
}

// NewSixEightExplosion creates a 6-8 explosion strategy.
func NewSixEightExplosion(cfg craps.Config, logger *log.Logger) *SixEightExplosion {
	s := &SixEightExplosion{base: newBase("68-explosion", cfg, logger)}
	s.restart()
	return s
}

func (s *SixEightExplosion) restart() {
	s.stage = sixEight
	s.hits = 0
	s.target = map[craps.Point]int{
		craps.Six:   s.unit(6),
		craps.Eight: s.unit(6),
	}
}

// Observe advances the stage on place bet hits and restarts after a seven-out.
func (s *SixEightExplosion) Observe(res craps.RollResult) {
	if res.Before.On() && res.Roll.Total() == 7 {
		s.restart()
		return
	}
	for _, p := range craps.Points {
		r, ok := res.Settled[placeName(p)]
		if !ok || r.RemainingStake == 0 || r.BankrollDelta == 0 {
			continue
		}
		s.hit(p, r.BankrollDelta)
	}
}

func (s *SixEightExplosion) hit(p craps.Point, winnings int) {
	switch s.stage {
	case sixEight:
		s.stage = pressed
		s.target[craps.Six] = roundUp(s.cfg.TableMin*2, 6)
		s.target[craps.Eight] = s.target[craps.Six]
	case pressed:
		s.stage = across
		for _, q := range craps.Points {
			s.target[q] = s.unit(placeIncrement(q))
		}
	case across:
		s.hits++
		inc := placeIncrement(p)
		s.target[p] = s.capped(s.target[p]+roundDown(winnings, inc), inc)
		if s.hits >= 3 {
			s.stage = leaving
		}
	}
	s.logger.Debug("Place bet hit", "number", p, "winnings", winnings, "stage", s.stage)
}

// Bet implements Strategy.
func (s *SixEightExplosion) Bet(t *craps.Table) error {
	if s.stage == leaving {
		for _, p := range craps.Points {
			if err := s.stake(t, placeName(p), 0, craps.NoPoint); err != nil {
				return err
			}
		}
		return ErrWalkAway
	}
	if !t.Phase().On() {
		return nil
	}
	for _, p := range craps.Points {
		if err := s.stake(t, placeName(p), s.target[p], craps.NoPoint); err != nil {
			return err
		}
	}
	return nil
}
