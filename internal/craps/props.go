package craps

import (
	"fmt"

	"github.com/lox/crapsforbots/internal/dice"
)

// PropKind names a single-roll proposition.
type PropKind int

const (
	AnySeven PropKind = iota
	AnyCraps
	AceDeuce
	Aces
	Boxcars
	YoLeven
	Horn
	CAndE
)

// PropKinds lists every proposition in table order.
var PropKinds = [...]PropKind{AnySeven, AnyCraps, AceDeuce, Aces, Boxcars, YoLeven, Horn, CAndE}

func (k PropKind) String() string {
	return [...]string{"any_seven", "any_craps", "ace_deuce", "aces", "boxcars", "yo_leven", "horn", "c_and_e"}[k]
}

// parts is how many equal pieces the stake is split into.
func (k PropKind) parts() int {
	switch k {
	case Horn:
		return 4
	case CAndE:
		return 2
	}
	return 1
}

// multiple returns the k:1 payout on the winning part for total, or 0.
func (k PropKind) multiple(total int) int {
	switch k {
	case AnySeven:
		if total == 7 {
			return 4
		}
	case AnyCraps:
		if isCraps(total) {
			return 7
		}
	case AceDeuce, YoLeven:
		if (k == AceDeuce && total == 3) || (k == YoLeven && total == 11) {
			return 15
		}
	case Aces:
		if total == 2 {
			return 30
		}
	case Boxcars:
		if total == 12 {
			return 30
		}
	case Horn:
		switch total {
		case 2, 12:
			return 30
		case 3, 11:
			return 15
		}
	case CAndE:
		switch {
		case isCraps(total):
			return 7
		case total == 11:
			return 15
		}
	}
	return 0
}

// Prop is a one-roll proposition bet. Always working, always cleared after
// the roll. Horn and C&E split the stake evenly across their numbers.
type Prop struct {
	stakeOnly
	kind PropKind
}

func NewProp(k PropKind) *Prop {
	return &Prop{stakeOnly: stakeOnly{name: k.String()}, kind: k}
}

func (b *Prop) Kind() Kind         { return KindProp }
func (b *Prop) PropKind() PropKind { return b.kind }
func (b *Prop) IsProp() bool       { return true }
func (b *Prop) Increment() int     { return b.kind.parts() }

func (b *Prop) stakeSettable(_ Phase, target Point) error {
	if target != NoPoint {
		return targetf("%s does not take a target", b.name)
	}
	return nil
}

func (b *Prop) checkStake(amount int, _ Point) error {
	if n := b.kind.parts(); amount%n != 0 {
		return illegalf("%s must be divisible by %d", b.name, n)
	}
	return nil
}

func (b *Prop) settle(_ Phase, roll dice.Roll) BetResult {
	part := b.stake / b.kind.parts()
	b.stake = 0
	if k := b.kind.multiple(roll.Total()); k > 0 {
		return BetResult{BankrollDelta: part + part*k}
	}
	return BetResult{}
}

// Describe returns a short human description of the proposition payouts.
func (k PropKind) Describe() string {
	switch k {
	case AnySeven:
		return "7 pays 4:1"
	case AnyCraps:
		return "2, 3 or 12 pays 7:1"
	case AceDeuce:
		return "3 pays 15:1"
	case Aces:
		return "2 pays 30:1"
	case Boxcars:
		return "12 pays 30:1"
	case YoLeven:
		return "11 pays 15:1"
	case Horn:
		return "split 4 ways on 2/3/11/12 (30/15/15/30:1)"
	case CAndE:
		return "split 2 ways on any craps 7:1 and 11 15:1"
	}
	return fmt.Sprintf("prop(%d)", int(k))
}
