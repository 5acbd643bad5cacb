package craps

import "github.com/lox/crapsforbots/internal/dice"

// ComeBets tracks the traveling come bet and the six established come
// buckets with their odds.
//
// Players only ever set the pending stake (target NoPoint). Buckets are
// filled by the table when a point number carries the pending stake.
type ComeBets struct {
	pending int
	stake   [6]int
	odds    [6]int
}

func NewComeBets() *ComeBets { return &ComeBets{} }

func (b *ComeBets) Name() string   { return "come" }
func (b *ComeBets) Kind() Kind     { return KindCome }
func (b *ComeBets) IsProp() bool   { return false }
func (b *ComeBets) Increment() int { return 1 }

// Stake returns the pending stake for NoPoint or the established stake on a
// point number.
func (b *ComeBets) Stake(target Point) (int, error) {
	if target == NoPoint {
		return b.pending, nil
	}
	if !target.Valid() {
		return 0, targetf("%d is not a come point", target)
	}
	return b.stake[target.index()], nil
}

func (b *ComeBets) Odds(target Point) (int, error) {
	if !target.Valid() {
		return 0, targetf("come odds need a come point")
	}
	return b.odds[target.index()], nil
}

func (b *ComeBets) Exposure() int {
	total := b.pending
	for i := range b.stake {
		total += b.stake[i] + b.odds[i]
	}
	return total
}

func (b *ComeBets) stakeSettable(phase Phase, target Point) error {
	if target != NoPoint {
		if !target.Valid() {
			return targetf("%d is not a come point", target)
		}
		return illegalf("established come bets are moved by the table, not set directly")
	}
	if !phase.On() {
		return illegalf("come bets need an established point")
	}
	return nil
}

func (b *ComeBets) checkStake(int, Point) error { return nil }

func (b *ComeBets) setStake(amount int, _ Point) { b.pending = amount }

func (b *ComeBets) oddsBase(_ Phase, target Point) (int, error) {
	if !target.Valid() {
		return 0, targetf("come odds need a come point")
	}
	stake := b.stake[target.index()]
	if stake == 0 {
		return 0, illegalf("no come bet established on %d", target)
	}
	return stake, nil
}

func (b *ComeBets) setOdds(amount int, target Point) { b.odds[target.index()] = amount }

// settle checks the seven before the natural: a seven pays the pending bet
// and loses every established bucket, so it must not fall through to 11.
func (b *ComeBets) settle(_ Phase, roll dice.Roll) BetResult {
	total := roll.Total()
	var payout int
	switch {
	case total == 7:
		payout = 2 * b.pending
		b.reset()
	case total == 11:
		payout = 2 * b.pending
		b.pending = 0
	case isCraps(total):
		b.pending = 0
	case isPointTotal(total):
		p := Point(total)
		i := p.index()
		payout = 2*b.stake[i] + b.odds[i] + TrueOdds(p).Of(b.odds[i])
		b.stake[i] = b.pending
		b.odds[i] = 0
		b.pending = 0
	}
	return BetResult{BankrollDelta: payout, RemainingStake: b.Exposure()}
}

func (b *ComeBets) reset() {
	*b = ComeBets{}
}
