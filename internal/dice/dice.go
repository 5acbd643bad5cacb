// Package dice provides the two-die roll value used by the craps engine and
// the roll sources that feed it.
package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidFace is returned when a die face is outside 1-6.
var ErrInvalidFace = errors.New("dice: face must be between 1 and 6")

// Roll is an immutable pair of die faces.
type Roll struct {
	d1, d2 int
}

// NewRoll validates the faces and returns the roll.
func NewRoll(d1, d2 int) (Roll, error) {
	if d1 < 1 || d1 > 6 || d2 < 1 || d2 > 6 {
		return Roll{}, fmt.Errorf("%w: got %d,%d", ErrInvalidFace, d1, d2)
	}
	return Roll{d1: d1, d2: d2}, nil
}

// MustRoll is like NewRoll but panics on invalid faces. Intended for literals.
func MustRoll(d1, d2 int) Roll {
	r, err := NewRoll(d1, d2)
	if err != nil {
		panic(err)
	}
	return r
}

// Dice returns both faces.
func (r Roll) Dice() (int, int) {
	return r.d1, r.d2
}

// Total returns the sum of both faces (2-12). The zero Roll totals 0.
func (r Roll) Total() int {
	return r.d1 + r.d2
}

// IsHard reports whether both faces match.
func (r Roll) IsHard() bool {
	return r.d1 != 0 && r.d1 == r.d2
}

// IsZero reports whether r is the zero value (no roll).
func (r Roll) IsZero() bool {
	return r.d1 == 0 && r.d2 == 0
}

func (r Roll) String() string {
	if r.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d+%d=%d", r.d1, r.d2, r.Total())
}
