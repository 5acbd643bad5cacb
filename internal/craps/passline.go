package craps

import "github.com/lox/crapsforbots/internal/dice"

// PassLine is the line bet with odds behind it once a point is set.
type PassLine struct {
	stake int
	odds  int
}

func NewPassLine() *PassLine { return &PassLine{} }

func (b *PassLine) Name() string   { return "pass_line" }
func (b *PassLine) Kind() Kind     { return KindPassLine }
func (b *PassLine) IsProp() bool   { return false }
func (b *PassLine) Increment() int { return 1 }

func (b *PassLine) Stake(target Point) (int, error) {
	if target != NoPoint {
		return 0, targetf("pass line does not take a target")
	}
	return b.stake, nil
}

// Odds returns the odds behind the line. They always back the current point,
// so no target is taken.
func (b *PassLine) Odds(target Point) (int, error) {
	if target != NoPoint {
		return 0, targetf("pass line odds back the current point; omit the target")
	}
	return b.odds, nil
}

func (b *PassLine) Exposure() int { return b.stake + b.odds }

func (b *PassLine) stakeSettable(phase Phase, target Point) error {
	if target != NoPoint {
		return targetf("pass line does not take a target")
	}
	if phase.On() {
		return illegalf("pass line cannot change once the point is established")
	}
	return nil
}

func (b *PassLine) checkStake(int, Point) error { return nil }

// setStake moves the line bet. Taking it down also takes down the odds.
func (b *PassLine) setStake(amount int, _ Point) {
	b.stake = amount
	if amount == 0 {
		b.odds = 0
	}
}

func (b *PassLine) oddsBase(phase Phase, target Point) (int, error) {
	if target != NoPoint {
		return 0, targetf("pass line odds back the current point; omit the target")
	}
	if !phase.On() {
		return 0, illegalf("odds require an established point")
	}
	if b.stake == 0 {
		return 0, illegalf("odds require a pass line bet")
	}
	return b.stake, nil
}

func (b *PassLine) setOdds(amount int, _ Point) { b.odds = amount }

func (b *PassLine) settle(phase Phase, roll dice.Roll) BetResult {
	total := roll.Total()
	if !phase.On() {
		switch {
		case isNatural(total):
			res := BetResult{BankrollDelta: 2 * b.stake}
			b.reset()
			return res
		case isCraps(total):
			b.reset()
			return BetResult{}
		}
		return BetResult{RemainingStake: b.Exposure()}
	}

	switch total {
	case int(phase.Point):
		res := BetResult{BankrollDelta: 2*b.stake + b.odds + TrueOdds(phase.Point).Of(b.odds)}
		b.reset()
		return res
	case 7:
		b.reset()
		return BetResult{}
	}
	return BetResult{RemainingStake: b.Exposure()}
}

func (b *PassLine) reset() {
	b.stake = 0
	b.odds = 0
}
