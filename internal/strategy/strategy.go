// Package strategy contains automated betting systems that drive a craps
// table between rolls.
package strategy

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/crapsforbots/internal/craps"
)

// ErrWalkAway is returned by Bet when the strategy wants to end the session.
var ErrWalkAway = errors.New("strategy: walk away")

// Strategy places and adjusts wagers before every roll.
type Strategy interface {
	Name() string
	// Bet adjusts wagers on t ahead of the next roll.
	Bet(t *craps.Table) error
	// Observe is told the outcome of every roll.
	Observe(res craps.RollResult)
}

// Factory builds a fresh strategy for one session.
type Factory func(cfg craps.Config, logger *log.Logger) Strategy

var registry = map[string]Factory{
	"pass-odds": func(cfg craps.Config, logger *log.Logger) Strategy {
		return NewPassOdds(cfg, logger)
	},
	"iron-cross": func(cfg craps.Config, logger *log.Logger) Strategy {
		return NewIronCross(cfg, logger)
	},
	"68-explosion": func(cfg craps.Config, logger *log.Logger) Strategy {
		return NewSixEightExplosion(cfg, logger)
	},
	"3-point-molly": func(cfg craps.Config, logger *log.Logger) Strategy {
		return NewThreePointMolly(cfg, 2, logger)
	},
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (valid: %v)", name, Names())
	}
	return f, nil
}

// New builds the named strategy for a table with cfg limits.
func New(name string, cfg craps.Config, logger *log.Logger) (Strategy, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(cfg, logger), nil
}

// base carries the unit and logger shared by every strategy.
type base struct {
	name   string
	cfg    craps.Config
	logger *log.Logger
}

func newBase(name string, cfg craps.Config, logger *log.Logger) base {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return base{name: name, cfg: cfg, logger: logger.WithPrefix(name)}
}

func (b *base) Name() string { return b.name }

func (b *base) Observe(craps.RollResult) {}

// unit is the table minimum rounded up to inc.
func (b *base) unit(inc int) int {
	return roundUp(b.cfg.TableMin, inc)
}

// capped limits amount to the table maximum on the inc grid.
func (b *base) capped(amount, inc int) int {
	if amount > b.cfg.TableMax {
		return roundDown(b.cfg.TableMax, inc)
	}
	return amount
}

// stake moves name to amount when the table allows it. Running short of
// money is not an error; the wager is simply left alone.
func (b *base) stake(t *craps.Table, name string, amount int, target craps.Point) error {
	current, err := t.BetStake(name, target)
	if err != nil {
		return err
	}
	if current == amount || (amount != 0 && !t.CanSetStake(name, target)) {
		return nil
	}
	return b.check(t.SetBetStake(name, amount, target), name, amount)
}

// odds moves the odds on name to amount when the table allows it.
func (b *base) odds(t *craps.Table, name string, amount int, target craps.Point) error {
	current, err := t.BetOdds(name, target)
	if err != nil {
		return err
	}
	if current == amount || (amount != 0 && !t.CanSetOdds(name, target)) {
		return nil
	}
	return b.check(t.SetBetOdds(name, amount, target), name, amount)
}

func (b *base) check(err error, name string, amount int) error {
	if errors.Is(err, craps.ErrInsufficientFunds) {
		b.logger.Debug("Skipping wager", "bet", name, "amount", amount, "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", b.name, err)
	}
	return nil
}

// maxOdds is the largest odds amount the table accepts behind stake on point.
func (b *base) maxOdds(stake int, point craps.Point, multiple int) int {
	if multiple > b.cfg.MaxOdds {
		multiple = b.cfg.MaxOdds
	}
	return roundDown(stake*multiple, craps.OddsIncrement(point))
}

func placeName(p craps.Point) string { return "place_" + p.String() }

// placeIncrement asks the engine's place bet for its stake unit.
func placeIncrement(p craps.Point) int {
	return craps.NewPlace(p).Increment()
}

func roundUp(amount, inc int) int {
	return (amount + inc - 1) / inc * inc
}

func roundDown(amount, inc int) int {
	return amount / inc * inc
}
