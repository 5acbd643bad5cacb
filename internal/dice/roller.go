package dice

import (
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Source produces rolls. Tables never roll for themselves; callers pick a
// Source so that a session can be replayed from its seed or script.
type Source interface {
	Next() Roll
}

// Roller is a seeded uniform Source.
type Roller struct {
	rng *rand.Rand
}

// NewRoller returns a Roller whose sequence is fully determined by seed.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: NewRand(seed)}
}

// NewRand returns a *rand.Rand seeded deterministically from seed. Both PCG
// words are derived from the one int64 so every caller gets the same stream.
func NewRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Next rolls two fair dice.
func (r *Roller) Next() Roll {
	return Roll{d1: r.rng.IntN(6) + 1, d2: r.rng.IntN(6) + 1}
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Sequence replays a fixed list of rolls and then wraps around.
type Sequence struct {
	rolls []Roll
	next  int
}

// NewSequence returns a Source that yields rolls in order.
func NewSequence(rolls ...Roll) *Sequence {
	return &Sequence{rolls: rolls}
}

// Next returns the next scripted roll. An empty sequence yields the zero Roll.
func (s *Sequence) Next() Roll {
	if len(s.rolls) == 0 {
		return Roll{}
	}
	r := s.rolls[s.next%len(s.rolls)]
	s.next++
	return r
}
