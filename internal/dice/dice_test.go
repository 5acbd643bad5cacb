package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoll(t *testing.T) {
	r, err := NewRoll(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 7, r.Total())
	assert.False(t, r.IsHard())

	for _, faces := range [][2]int{{0, 1}, {1, 7}, {-1, 3}, {6, 0}} {
		_, err := NewRoll(faces[0], faces[1])
		assert.ErrorIs(t, err, ErrInvalidFace, "faces %v", faces)
	}
}

func TestRollIsHard(t *testing.T) {
	assert.True(t, MustRoll(2, 2).IsHard())
	assert.False(t, MustRoll(1, 3).IsHard())
	assert.False(t, Roll{}.IsHard())
}

func TestRollString(t *testing.T) {
	assert.Equal(t, "5+6=11", MustRoll(5, 6).String())
	assert.Equal(t, "-", Roll{}.String())
}

func TestRollerDeterministic(t *testing.T) {
	a := NewRoller(42)
	b := NewRoller(42)
	for i := 0; i < 100; i++ {
		ra, rb := a.Next(), b.Next()
		require.Equal(t, ra, rb)
		d1, d2 := ra.Dice()
		assert.True(t, d1 >= 1 && d1 <= 6)
		assert.True(t, d2 >= 1 && d2 <= 6)
	}
}

func TestRollerCoversAllTotals(t *testing.T) {
	r := NewRoller(7)
	seen := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		seen[r.Next().Total()] = true
	}
	for total := 2; total <= 12; total++ {
		assert.True(t, seen[total], "total %d never rolled", total)
	}
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(MustRoll(1, 1), MustRoll(6, 6))
	assert.Equal(t, 2, s.Next().Total())
	assert.Equal(t, 12, s.Next().Total())
	assert.Equal(t, 2, s.Next().Total())

	assert.True(t, NewSequence().Next().IsZero())
}
