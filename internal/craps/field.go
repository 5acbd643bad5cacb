package craps

import "github.com/lox/crapsforbots/internal/dice"

// Field is a one-roll bet on 2, 3, 4, 9, 10, 11 or 12.
type Field struct {
	stakeOnly
}

func NewField() *Field {
	return &Field{stakeOnly: stakeOnly{name: "field"}}
}

func (b *Field) Kind() Kind     { return KindField }
func (b *Field) IsProp() bool   { return false }
func (b *Field) Increment() int { return 1 }

func (b *Field) stakeSettable(_ Phase, target Point) error {
	if target != NoPoint {
		return targetf("field does not take a target")
	}
	return nil
}

func (b *Field) checkStake(int, Point) error { return nil }

// FieldPayout returns the winning multiple for total, or 0 if the field loses.
// 2 pays 2:1, 12 pays 3:1, the rest of the field even money.
func FieldPayout(total int) int {
	switch total {
	case 2:
		return 2
	case 12:
		return 3
	case 3, 4, 9, 10, 11:
		return 1
	}
	return 0
}

func (b *Field) settle(_ Phase, roll dice.Roll) BetResult {
	stake := b.stake
	b.stake = 0
	if k := FieldPayout(roll.Total()); k > 0 {
		return BetResult{BankrollDelta: stake + stake*k}
	}
	return BetResult{}
}
