package craps

import (
	"fmt"

	"github.com/lox/crapsforbots/internal/dice"
)

// Kind identifies a wager variant.
type Kind int

const (
	KindPassLine Kind = iota
	KindCome
	KindPlace
	KindBuy
	KindHardway
	KindField
	KindProp
)

func (k Kind) String() string {
	return [...]string{"pass line", "come", "place", "buy", "hardway", "field", "prop"}[k]
}

// BetResult is the outcome of settling one wager against one roll.
type BetResult struct {
	BankrollDelta  int // Paid back to the bankroll, stake included
	RemainingStake int // Still at risk on the table afterwards
}

// Bet is a named wager slot on the table. The set of implementations is
// closed: PassLine, ComeBets, Place, Buy, Hardway, Field and Prop.
type Bet interface {
	Name() string
	Kind() Kind
	// IsProp reports whether the prop minimum applies instead of the table minimum.
	IsProp() bool
	// Increment is the stake unit that keeps every payout in whole dollars.
	Increment() int

	Stake(target Point) (int, error)
	Odds(target Point) (int, error)
	// Exposure is the total stake and odds currently at risk.
	Exposure() int

	// stakeSettable reports whether a player may change the stake on target
	// at all during phase, ignoring the amount.
	stakeSettable(phase Phase, target Point) error
	// checkStake applies variant increment rules to a nonzero amount.
	checkStake(amount int, target Point) error
	setStake(amount int, target Point)

	// oddsBase returns the stake backing odds on target, or an error when
	// odds cannot be taken there during phase.
	oddsBase(phase Phase, target Point) (int, error)
	setOdds(amount int, target Point)

	settle(phase Phase, roll dice.Roll) BetResult
	reset()
}

// stakeOnly holds the single stake of a bet without odds or targets.
type stakeOnly struct {
	name  string
	stake int
}

func (s *stakeOnly) Name() string { return s.name }

func (s *stakeOnly) Stake(target Point) (int, error) {
	if target != NoPoint {
		return 0, targetf("%s does not take a target", s.name)
	}
	return s.stake, nil
}

func (s *stakeOnly) Odds(Point) (int, error) {
	return 0, &ActionError{Reason: fmt.Sprintf("%s has no odds", s.name), Err: ErrNoOdds}
}

func (s *stakeOnly) Exposure() int { return s.stake }

func (s *stakeOnly) setStake(amount int, _ Point) { s.stake = amount }

func (s *stakeOnly) oddsBase(Phase, Point) (int, error) {
	return 0, &ActionError{Reason: fmt.Sprintf("%s has no odds", s.name), Err: ErrNoOdds}
}

func (s *stakeOnly) setOdds(int, Point) {}

func (s *stakeOnly) reset() { s.stake = 0 }

func checkMultiple(amount, unit int, what string) error {
	if unit > 1 && amount%unit != 0 {
		return illegalf("%s must be a multiple of $%d", what, unit)
	}
	return nil
}

// NewStandardBets returns one fresh instance of every wager slot in table order.
func NewStandardBets() []Bet {
	bets := []Bet{NewPassLine(), NewComeBets()}
	for _, p := range Points {
		bets = append(bets, NewPlace(p))
	}
	for _, p := range Points {
		bets = append(bets, NewBuy(p))
	}
	for _, p := range []Point{Four, Six, Eight, Ten} {
		bets = append(bets, NewHardway(p))
	}
	bets = append(bets, NewField())
	for _, k := range PropKinds {
		bets = append(bets, NewProp(k))
	}
	return bets
}
