package craps

import (
	"fmt"

	"github.com/lox/crapsforbots/internal/dice"
)

// Hardway wins when its number rolls as a pair before it rolls easy or a
// seven shows. Off during the come-out.
type Hardway struct {
	stakeOnly
	number Point
}

// NewHardway panics unless p is 4, 6, 8 or 10.
func NewHardway(p Point) *Hardway {
	switch p {
	case Four, Six, Eight, Ten:
	default:
		panic(fmt.Sprintf("invalid hardway number: %d", p))
	}
	return &Hardway{stakeOnly: stakeOnly{name: fmt.Sprintf("hard_%d", p)}, number: p}
}

func (b *Hardway) Kind() Kind     { return KindHardway }
func (b *Hardway) IsProp() bool   { return true }
func (b *Hardway) Increment() int { return 1 }
func (b *Hardway) Number() Point  { return b.number }

// Payout is 7:1 on hard 4/10 and 9:1 on hard 6/8.
func (b *Hardway) Payout() int {
	if b.number == Four || b.number == Ten {
		return 7
	}
	return 9
}

func (b *Hardway) stakeSettable(_ Phase, target Point) error {
	if target != NoPoint {
		return targetf("%s does not take a target", b.name)
	}
	return nil
}

func (b *Hardway) checkStake(int, Point) error { return nil }

func (b *Hardway) settle(phase Phase, roll dice.Roll) BetResult {
	if b.stake == 0 {
		return BetResult{}
	}
	if !phase.On() {
		return BetResult{RemainingStake: b.stake}
	}
	total := roll.Total()
	switch {
	case total == int(b.number) && roll.IsHard():
		res := BetResult{BankrollDelta: b.stake + b.stake*b.Payout()}
		b.stake = 0
		return res
	case total == int(b.number) || total == 7:
		b.stake = 0
		return BetResult{}
	}
	return BetResult{RemainingStake: b.stake}
}
