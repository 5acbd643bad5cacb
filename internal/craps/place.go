package craps

import (
	"fmt"

	"github.com/lox/crapsforbots/internal/dice"
)

// Place is a place bet on one point number. It works only while a point is
// on and stays up after a win.
type Place struct {
	stakeOnly
	number Point
}

// NewPlace panics if p is not a point number.
func NewPlace(p Point) *Place {
	if !p.Valid() {
		panic(fmt.Sprintf("invalid place number: %d", p))
	}
	return &Place{stakeOnly: stakeOnly{name: fmt.Sprintf("place_%d", p)}, number: p}
}

func (b *Place) Kind() Kind    { return KindPlace }
func (b *Place) IsProp() bool  { return false }
func (b *Place) Number() Point { return b.number }

// Increment is $6 on the six and eight, $5 elsewhere.
func (b *Place) Increment() int {
	if b.number == Six || b.number == Eight {
		return 6
	}
	return 5
}

func (b *Place) stakeSettable(phase Phase, target Point) error {
	if target != NoPoint {
		return targetf("%s does not take a target", b.name)
	}
	if !phase.On() {
		return illegalf("place bets can only be changed while a point is on")
	}
	return nil
}

func (b *Place) checkStake(amount int, _ Point) error {
	return checkMultiple(amount, b.Increment(), fmt.Sprintf("place bet on %d", b.number))
}

func (b *Place) settle(phase Phase, roll dice.Roll) BetResult {
	return settleBox(phase, roll, b.number, b.stake, PlaceOdds(b.number).Of(b.stake), &b.stake)
}

// Buy is a place bet paid at true odds less a 5% commission on the stake,
// rounded up and charged only when the bet wins.
type Buy struct {
	stakeOnly
	number Point
}

// NewBuy panics if p is not a point number.
func NewBuy(p Point) *Buy {
	if !p.Valid() {
		panic(fmt.Sprintf("invalid buy number: %d", p))
	}
	return &Buy{stakeOnly: stakeOnly{name: fmt.Sprintf("buy_%d", p)}, number: p}
}

func (b *Buy) Kind() Kind    { return KindBuy }
func (b *Buy) IsProp() bool  { return false }
func (b *Buy) Number() Point { return b.number }

// Increment keeps true odds whole: even on 5/9, $5 units on 6/8.
func (b *Buy) Increment() int {
	return OddsIncrement(b.number)
}

func (b *Buy) stakeSettable(_ Phase, target Point) error {
	if target != NoPoint {
		return targetf("%s does not take a target", b.name)
	}
	return nil
}

func (b *Buy) checkStake(amount int, _ Point) error {
	return checkMultiple(amount, b.Increment(), fmt.Sprintf("buy bet on %d", b.number))
}

func (b *Buy) settle(phase Phase, roll dice.Roll) BetResult {
	win := TrueOdds(b.number).Of(b.stake) - Commission(b.stake)
	return settleBox(phase, roll, b.number, b.stake, win, &b.stake)
}

// Commission is 5% of stake rounded up to the next whole dollar.
func Commission(stake int) int {
	return (stake + 19) / 20
}

// settleBox resolves the shared place/buy triggers: off on the come-out,
// winnings on the number with the stake left up, lost on a seven.
func settleBox(phase Phase, roll dice.Roll, number Point, stake, winnings int, slot *int) BetResult {
	if stake == 0 {
		return BetResult{}
	}
	if !phase.On() {
		return BetResult{RemainingStake: stake}
	}
	switch roll.Total() {
	case int(number):
		return BetResult{BankrollDelta: winnings, RemainingStake: stake}
	case 7:
		*slot = 0
		return BetResult{}
	}
	return BetResult{RemainingStake: stake}
}
