package craps

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/crapsforbots/internal/dice"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
		roll  dice.Roll
		want  Phase
	}{
		{"come-out natural 7 stays", ComeOut, dice.MustRoll(3, 4), ComeOut},
		{"come-out natural 11 stays", ComeOut, dice.MustRoll(5, 6), ComeOut},
		{"come-out craps 2 stays", ComeOut, dice.MustRoll(1, 1), ComeOut},
		{"come-out craps 3 stays", ComeOut, dice.MustRoll(1, 2), ComeOut},
		{"come-out craps 12 stays", ComeOut, dice.MustRoll(6, 6), ComeOut},
		{"come-out 4 sets point", ComeOut, dice.MustRoll(1, 3), PointOn(Four)},
		{"come-out 5 sets point", ComeOut, dice.MustRoll(2, 3), PointOn(Five)},
		{"come-out 6 sets point", ComeOut, dice.MustRoll(3, 3), PointOn(Six)},
		{"come-out 8 sets point", ComeOut, dice.MustRoll(2, 6), PointOn(Eight)},
		{"come-out 9 sets point", ComeOut, dice.MustRoll(4, 5), PointOn(Nine)},
		{"come-out 10 sets point", ComeOut, dice.MustRoll(4, 6), PointOn(Ten)},
		{"point made", PointOn(Six), dice.MustRoll(5, 1), ComeOut},
		{"seven out", PointOn(Six), dice.MustRoll(5, 2), ComeOut},
		{"other number no change", PointOn(Six), dice.MustRoll(4, 4), PointOn(Six)},
		{"craps no change", PointOn(Six), dice.MustRoll(1, 1), PointOn(Six)},
		{"eleven no change", PointOn(Ten), dice.MustRoll(5, 6), PointOn(Ten)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transition(tt.phase, tt.roll))
		})
	}
}

func TestTransitionIsPure(t *testing.T) {
	before := PointOn(Eight)
	_ = Transition(before, dice.MustRoll(3, 4))
	assert.Equal(t, PointOn(Eight), before)
}

func TestParsePoint(t *testing.T) {
	for _, n := range []int{0, 4, 5, 6, 8, 9, 10} {
		p, err := ParsePoint(n)
		assert.NoError(t, err)
		assert.Equal(t, Point(n), p)
	}
	for _, n := range []int{1, 2, 3, 7, 11, 12, -4} {
		_, err := ParsePoint(n)
		assert.ErrorIs(t, err, ErrInvalidTarget)
		assert.ErrorIs(t, err, ErrIllegalAction)
	}
}

func TestPayoutRatios(t *testing.T) {
	assert.Equal(t, 20, TrueOdds(Four).Of(10))
	assert.Equal(t, 15, TrueOdds(Nine).Of(10))
	assert.Equal(t, 12, TrueOdds(Eight).Of(10))
	assert.Equal(t, 27, PlaceOdds(Ten).Of(15))
	assert.Equal(t, 21, PlaceOdds(Five).Of(15))
	assert.Equal(t, 7, PlaceOdds(Six).Of(6))
	assert.Equal(t, "7:6", PlaceOdds(Eight).String())
}

func TestCommissionRoundsUp(t *testing.T) {
	assert.Equal(t, 1, Commission(15))
	assert.Equal(t, 1, Commission(20))
	assert.Equal(t, 2, Commission(21))
	assert.Equal(t, 5, Commission(100))
	assert.Equal(t, 0, Commission(0))
}
