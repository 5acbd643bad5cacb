// Package codec maps table stakes to and from fixed-size integer vectors, one
// entry per bet slot. Value 0 is no bet, 1 the slot minimum, 2 the minimum
// plus one increment, and so on up to the table maximum. Come buckets are not
// encoded; the come slot carries the pending stake only.
package codec

import (
	"errors"
	"fmt"

	"github.com/lox/crapsforbots/internal/craps"
)

// ErrVectorShape indicates a vector whose length or values do not fit the codec.
var ErrVectorShape = errors.New("codec: vector does not match slots")

// Slot is the discretization of one bet slot.
type Slot struct {
	Name      string
	Increment int
	Min       int
	Max       int
	Values    int // Including the 0 (no bet) value
}

// Stake converts an encoded value to dollars.
func (s Slot) Stake(v int) int {
	if v == 0 {
		return 0
	}
	return (v-1)*s.Increment + s.Min
}

// Value converts dollars to the encoded value, rounding down onto the grid.
func (s Slot) Value(stake int) int {
	if stake <= 0 {
		return 0
	}
	if stake < s.Min {
		return 1
	}
	v := (stake-s.Min)/s.Increment + 1
	if v >= s.Values {
		v = s.Values - 1
	}
	return v
}

// Codec encodes the stake slots of one table layout.
type Codec struct {
	slots []Slot
}

// New builds slots from the bet layout and limits of t.
func New(t *craps.Table) (*Codec, error) {
	cfg := t.Config()
	c := &Codec{}
	for _, name := range t.Names() {
		b, err := t.Bet(name)
		if err != nil {
			return nil, err
		}
		inc := b.Increment()
		floor := cfg.MinimumFor(b)
		min := (floor + inc - 1) / inc * inc
		n := 0
		if min <= cfg.TableMax {
			n = (cfg.TableMax-min)/inc + 1
		}
		c.slots = append(c.slots, Slot{
			Name:      name,
			Increment: inc,
			Min:       min,
			Max:       cfg.TableMax,
			Values:    n + 1,
		})
	}
	return c, nil
}

// Slots returns the slot layout in table order.
func (c *Codec) Slots() []Slot {
	return append([]Slot(nil), c.slots...)
}

// Sizes returns the number of discrete values per slot.
func (c *Codec) Sizes() []int {
	sizes := make([]int, len(c.slots))
	for i, s := range c.slots {
		sizes[i] = s.Values
	}
	return sizes
}

// Encode reads the current stakes off t.
func (c *Codec) Encode(t *craps.Table) ([]int, error) {
	vec := make([]int, len(c.slots))
	for i, s := range c.slots {
		stake, err := t.BetStake(s.Name, craps.NoPoint)
		if err != nil {
			return nil, err
		}
		vec[i] = s.Value(stake)
	}
	return vec, nil
}

// Decode converts vec into dollar stakes, one per slot.
func (c *Codec) Decode(vec []int) ([]int, error) {
	if len(vec) != len(c.slots) {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrVectorShape, len(vec), len(c.slots))
	}
	stakes := make([]int, len(vec))
	for i, v := range vec {
		s := c.slots[i]
		if v < 0 || v >= s.Values {
			return nil, fmt.Errorf("%w: %s value %d outside [0,%d)", ErrVectorShape, s.Name, v, s.Values)
		}
		stakes[i] = s.Stake(v)
	}
	return stakes, nil
}

// Apply decodes vec and sets every slot on t. Illegal changes are skipped and
// reported together; legal ones still take effect.
func (c *Codec) Apply(t *craps.Table, vec []int) error {
	stakes, err := c.Decode(vec)
	if err != nil {
		return err
	}
	var errs []error
	for i, stake := range stakes {
		if err := t.SetBetStake(c.slots[i].Name, stake, craps.NoPoint); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Mask reports, per slot and value, whether setting that stake on t right now
// would be accepted.
func (c *Codec) Mask(t *craps.Table) [][]bool {
	mask := make([][]bool, len(c.slots))
	for i, s := range c.slots {
		mask[i] = make([]bool, s.Values)
		settable := t.CanSetStake(s.Name, craps.NoPoint)
		for v := range s.Values {
			if v > 0 && !settable {
				current, _ := t.BetStake(s.Name, craps.NoPoint)
				mask[i][v] = s.Stake(v) == current
				continue
			}
			mask[i][v] = t.ValidateStake(s.Name, s.Stake(v), craps.NoPoint) == nil
		}
	}
	return mask
}
