package craps

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/crapsforbots/internal/dice"
)

var pointRolls = map[Point]dice.Roll{
	Four:  dice.MustRoll(1, 3),
	Five:  dice.MustRoll(2, 3),
	Six:   dice.MustRoll(2, 4),
	Eight: dice.MustRoll(2, 6),
	Nine:  dice.MustRoll(4, 5),
	Ten:   dice.MustRoll(4, 6),
}

func TestPassLineComeOut(t *testing.T) {
	tests := []struct {
		name string
		roll dice.Roll
		want BetResult
	}{
		{"natural 7 pays even money", dice.MustRoll(3, 4), BetResult{BankrollDelta: 20}},
		{"natural 11 pays even money", dice.MustRoll(5, 6), BetResult{BankrollDelta: 20}},
		{"craps 2 loses", dice.MustRoll(1, 1), BetResult{}},
		{"craps 3 loses", dice.MustRoll(1, 2), BetResult{}},
		{"craps 12 loses", dice.MustRoll(6, 6), BetResult{}},
		{"point number rides", dice.MustRoll(2, 2), BetResult{RemainingStake: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewPassLine()
			b.setStake(10, NoPoint)
			assert.Equal(t, tt.want, b.settle(ComeOut, tt.roll))
			assert.Equal(t, tt.want.RemainingStake, b.Exposure())
		})
	}
}

func TestPassLinePointOn(t *testing.T) {
	for _, p := range Points {
		t.Run("point "+p.String(), func(t *testing.T) {
			b := NewPassLine()
			b.setStake(10, NoPoint)
			b.setOdds(20, NoPoint)

			res := b.settle(PointOn(p), pointRolls[p])
			want := 20 + 20 + TrueOdds(p).Of(20)
			assert.Equal(t, BetResult{BankrollDelta: want}, res)
			assert.Equal(t, 0, b.Exposure())
		})
	}

	t.Run("seven out clears stake and odds", func(t *testing.T) {
		b := NewPassLine()
		b.setStake(10, NoPoint)
		b.setOdds(30, NoPoint)
		assert.Equal(t, BetResult{}, b.settle(PointOn(Nine), dice.MustRoll(6, 1)))
		assert.Equal(t, 0, b.Exposure())
	})

	t.Run("other numbers keep stake and odds", func(t *testing.T) {
		b := NewPassLine()
		b.setStake(10, NoPoint)
		b.setOdds(30, NoPoint)
		assert.Equal(t, BetResult{RemainingStake: 40}, b.settle(PointOn(Nine), dice.MustRoll(6, 6)))
		assert.Equal(t, 40, b.Exposure())
	})
}

func TestComeBetsSevenOutPaysPendingAndClearsBuckets(t *testing.T) {
	b := NewComeBets()
	b.setStake(15, NoPoint)
	b.settle(PointOn(Six), dice.MustRoll(2, 2)) // pending travels to 4
	b.setOdds(30, Four)
	b.setStake(30, NoPoint)

	res := b.settle(PointOn(Six), dice.MustRoll(3, 4))
	assert.Equal(t, BetResult{BankrollDelta: 60}, res)

	stake, _ := b.Stake(Four)
	odds, _ := b.Odds(Four)
	assert.Zero(t, stake)
	assert.Zero(t, odds)
	assert.Zero(t, b.Exposure())
}

func TestComeBetsPendingOutcomes(t *testing.T) {
	t.Run("eleven pays pending", func(t *testing.T) {
		b := NewComeBets()
		b.setStake(10, NoPoint)
		assert.Equal(t, BetResult{BankrollDelta: 20}, b.settle(PointOn(Six), dice.MustRoll(5, 6)))
	})

	t.Run("craps loses pending only", func(t *testing.T) {
		b := NewComeBets()
		b.setStake(10, NoPoint)
		b.settle(PointOn(Six), dice.MustRoll(4, 4)) // to 8
		b.setStake(10, NoPoint)

		res := b.settle(PointOn(Six), dice.MustRoll(1, 2))
		assert.Equal(t, BetResult{RemainingStake: 10}, res)
		stake, _ := b.Stake(Eight)
		assert.Equal(t, 10, stake)
		pending, _ := b.Stake(NoPoint)
		assert.Zero(t, pending)
	})

	t.Run("point number moves pending", func(t *testing.T) {
		for _, p := range Points {
			b := NewComeBets()
			b.setStake(10, NoPoint)
			res := b.settle(PointOn(Six), pointRolls[p])
			assert.Equal(t, BetResult{RemainingStake: 10}, res)
			stake, _ := b.Stake(p)
			assert.Equal(t, 10, stake, "point %d", p)
		}
	})
}

func TestComeBetsBucketWinsAndReloads(t *testing.T) {
	b := NewComeBets()
	b.setStake(15, NoPoint)
	b.settle(PointOn(Four), dice.MustRoll(4, 5)) // to 9
	b.setOdds(30, Nine)
	b.setStake(20, NoPoint)

	res := b.settle(PointOn(Four), dice.MustRoll(3, 6))
	// 2x15 on the flat, 30 + 45 on the odds; the new pending lands on 9.
	assert.Equal(t, BetResult{BankrollDelta: 105, RemainingStake: 20}, res)
	stake, _ := b.Stake(Nine)
	odds, _ := b.Odds(Nine)
	assert.Equal(t, 20, stake)
	assert.Zero(t, odds)
}

func TestComeBetsStayOnOtherNumbers(t *testing.T) {
	b := NewComeBets()
	b.setStake(10, NoPoint)
	b.settle(PointOn(Six), dice.MustRoll(5, 5))
	res := b.settle(PointOn(Six), dice.MustRoll(6, 6))
	assert.Equal(t, BetResult{RemainingStake: 10}, res)
}

func TestPlace(t *testing.T) {
	for _, p := range Points {
		t.Run("wins and stays on "+p.String(), func(t *testing.T) {
			b := NewPlace(p)
			b.setStake(30, NoPoint)
			res := b.settle(PointOn(Six), pointRolls[p])
			assert.Equal(t, BetResult{BankrollDelta: PlaceOdds(p).Of(30), RemainingStake: 30}, res)
			assert.Equal(t, 30, b.Exposure())
		})
	}

	t.Run("six pays 7 for 6", func(t *testing.T) {
		b := NewPlace(Six)
		b.setStake(6, NoPoint)
		assert.Equal(t, BetResult{BankrollDelta: 7, RemainingStake: 6}, b.settle(PointOn(Four), dice.MustRoll(3, 3)))
	})

	t.Run("off on the come-out", func(t *testing.T) {
		b := NewPlace(Four)
		b.setStake(30, NoPoint)
		assert.Equal(t, BetResult{RemainingStake: 30}, b.settle(ComeOut, dice.MustRoll(3, 4)))
		assert.Equal(t, BetResult{RemainingStake: 30}, b.settle(ComeOut, dice.MustRoll(3, 1)))
	})

	t.Run("seven out loses", func(t *testing.T) {
		b := NewPlace(Four)
		b.setStake(30, NoPoint)
		assert.Equal(t, BetResult{}, b.settle(PointOn(Five), dice.MustRoll(3, 4)))
		assert.Zero(t, b.Exposure())
	})
}

func TestBuy(t *testing.T) {
	t.Run("buy 4 pays true odds less commission", func(t *testing.T) {
		b := NewBuy(Four)
		b.setStake(15, NoPoint)
		res := b.settle(PointOn(Six), dice.MustRoll(2, 2))
		assert.Equal(t, BetResult{BankrollDelta: 29, RemainingStake: 15}, res)
	})

	t.Run("buy 5 pays 3:2", func(t *testing.T) {
		b := NewBuy(Five)
		b.setStake(20, NoPoint)
		res := b.settle(PointOn(Six), dice.MustRoll(1, 4))
		assert.Equal(t, BetResult{BankrollDelta: 29, RemainingStake: 20}, res)
	})

	t.Run("buy 8 pays 6:5", func(t *testing.T) {
		b := NewBuy(Eight)
		b.setStake(25, NoPoint)
		res := b.settle(PointOn(Six), dice.MustRoll(5, 3))
		assert.Equal(t, BetResult{BankrollDelta: 28, RemainingStake: 25}, res)
	})

	t.Run("no commission on a loss", func(t *testing.T) {
		b := NewBuy(Ten)
		b.setStake(20, NoPoint)
		assert.Equal(t, BetResult{}, b.settle(PointOn(Six), dice.MustRoll(1, 6)))
	})

	t.Run("off on the come-out", func(t *testing.T) {
		b := NewBuy(Ten)
		b.setStake(20, NoPoint)
		assert.Equal(t, BetResult{RemainingStake: 20}, b.settle(ComeOut, dice.MustRoll(5, 5)))
	})
}

func TestHardway(t *testing.T) {
	tests := []struct {
		name   string
		number Point
		phase  Phase
		roll   dice.Roll
		want   BetResult
	}{
		{"hard 4 pays 7:1", Four, PointOn(Six), dice.MustRoll(2, 2), BetResult{BankrollDelta: 80}},
		{"hard 10 pays 7:1", Ten, PointOn(Six), dice.MustRoll(5, 5), BetResult{BankrollDelta: 80}},
		{"hard 6 pays 9:1", Six, PointOn(Four), dice.MustRoll(3, 3), BetResult{BankrollDelta: 100}},
		{"hard 8 pays 9:1", Eight, PointOn(Four), dice.MustRoll(4, 4), BetResult{BankrollDelta: 100}},
		{"easy way loses", Six, PointOn(Four), dice.MustRoll(1, 5), BetResult{}},
		{"seven loses", Eight, PointOn(Four), dice.MustRoll(1, 6), BetResult{}},
		{"other numbers ride", Eight, PointOn(Four), dice.MustRoll(3, 3), BetResult{RemainingStake: 10}},
		{"off on the come-out", Eight, ComeOut, dice.MustRoll(4, 4), BetResult{RemainingStake: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewHardway(tt.number)
			b.setStake(10, NoPoint)
			assert.Equal(t, tt.want, b.settle(tt.phase, tt.roll))
			assert.Equal(t, tt.want.RemainingStake, b.Exposure())
		})
	}
}

func TestField(t *testing.T) {
	want := map[int]int{2: 30, 3: 20, 4: 20, 5: 0, 6: 0, 7: 0, 8: 0, 9: 20, 10: 20, 11: 20, 12: 40}
	rolls := map[int]dice.Roll{
		2: dice.MustRoll(1, 1), 3: dice.MustRoll(1, 2), 4: dice.MustRoll(1, 3),
		5: dice.MustRoll(1, 4), 6: dice.MustRoll(1, 5), 7: dice.MustRoll(1, 6),
		8: dice.MustRoll(2, 6), 9: dice.MustRoll(3, 6), 10: dice.MustRoll(4, 6),
		11: dice.MustRoll(5, 6), 12: dice.MustRoll(6, 6),
	}
	for _, phase := range []Phase{ComeOut, PointOn(Eight)} {
		for total, payout := range want {
			b := NewField()
			b.setStake(10, NoPoint)
			res := b.settle(phase, rolls[total])
			assert.Equal(t, BetResult{BankrollDelta: payout}, res, "total %d in %s", total, phase)
			assert.Zero(t, b.Exposure())
		}
	}
}

func TestProps(t *testing.T) {
	tests := []struct {
		kind  PropKind
		stake int
		roll  dice.Roll
		want  int
	}{
		{AnySeven, 10, dice.MustRoll(3, 4), 50},
		{AnySeven, 10, dice.MustRoll(3, 3), 0},
		{AnyCraps, 10, dice.MustRoll(6, 6), 80},
		{AnyCraps, 10, dice.MustRoll(1, 2), 80},
		{AnyCraps, 10, dice.MustRoll(5, 6), 0},
		{AceDeuce, 2, dice.MustRoll(1, 2), 32},
		{Aces, 1, dice.MustRoll(1, 1), 31},
		{Boxcars, 1, dice.MustRoll(6, 6), 31},
		{Boxcars, 1, dice.MustRoll(1, 1), 0},
		{YoLeven, 5, dice.MustRoll(5, 6), 80},
		{Horn, 20, dice.MustRoll(1, 1), 155},
		{Horn, 20, dice.MustRoll(1, 2), 80},
		{Horn, 20, dice.MustRoll(5, 6), 80},
		{Horn, 20, dice.MustRoll(6, 6), 155},
		{Horn, 20, dice.MustRoll(3, 4), 0},
		{CAndE, 10, dice.MustRoll(1, 1), 40},
		{CAndE, 10, dice.MustRoll(5, 6), 80},
		{CAndE, 10, dice.MustRoll(2, 2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+" "+tt.roll.String(), func(t *testing.T) {
			for _, phase := range []Phase{ComeOut, PointOn(Five)} {
				b := NewProp(tt.kind)
				b.setStake(tt.stake, NoPoint)
				assert.Equal(t, BetResult{BankrollDelta: tt.want}, b.settle(phase, tt.roll))
				assert.Zero(t, b.Exposure())
			}
		})
	}
}

func TestZeroStakeSettlesToNothing(t *testing.T) {
	for _, b := range NewStandardBets() {
		for total := 2; total <= 12; total++ {
			d1 := 1
			if total > 7 {
				d1 = 6
			}
			roll := dice.MustRoll(d1, total-d1)
			for _, phase := range []Phase{ComeOut, PointOn(Six)} {
				assert.Equal(t, BetResult{}, b.settle(phase, roll), "%s on %d in %s", b.Name(), total, phase)
			}
		}
	}
}

func TestStandardBetNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range NewStandardBets() {
		assert.False(t, seen[b.Name()], "duplicate %s", b.Name())
		seen[b.Name()] = true
	}
	assert.Len(t, seen, 27)
	assert.True(t, seen["place_6"])
	assert.True(t, seen["buy_10"])
	assert.True(t, seen["hard_8"])
	assert.True(t, seen["c_and_e"])
}
