package craps

import (
	"fmt"

	"github.com/lox/crapsforbots/internal/dice"
)

// Point is a wager target: NoPoint, or one of the six point numbers.
type Point int

const (
	NoPoint Point = 0
	Four    Point = 4
	Five    Point = 5
	Six     Point = 6
	Eight   Point = 8
	Nine    Point = 9
	Ten     Point = 10
)

// Points lists the point numbers in table order.
var Points = [...]Point{Four, Five, Six, Eight, Nine, Ten}

// ParsePoint converts an integer to a Point. Zero maps to NoPoint.
func ParsePoint(n int) (Point, error) {
	p := Point(n)
	if p == NoPoint || p.Valid() {
		return p, nil
	}
	return NoPoint, fmt.Errorf("%w: %d is not a point number", ErrInvalidTarget, n)
}

// Valid reports whether p is one of the six point numbers.
func (p Point) Valid() bool {
	switch p {
	case Four, Five, Six, Eight, Nine, Ten:
		return true
	}
	return false
}

func (p Point) String() string {
	if p == NoPoint {
		return "OFF"
	}
	return fmt.Sprintf("%d", int(p))
}

// index maps a point to its bucket slot. Callers must pass a valid point.
func (p Point) index() int {
	switch p {
	case Four:
		return 0
	case Five:
		return 1
	case Six:
		return 2
	case Eight:
		return 3
	case Nine:
		return 4
	default:
		return 5
	}
}

func isPointTotal(total int) bool {
	return Point(total).Valid()
}

func isCraps(total int) bool {
	return total == 2 || total == 3 || total == 12
}

func isNatural(total int) bool {
	return total == 7 || total == 11
}

// Ratio is a payout ratio Num:Den.
type Ratio struct {
	Num, Den int
}

// Of applies the ratio to amount, rounding down.
func (r Ratio) Of(amount int) int {
	return amount * r.Num / r.Den
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Num, r.Den)
}

// TrueOdds returns the fair payout for p repeating before a seven.
func TrueOdds(p Point) Ratio {
	switch p {
	case Four, Ten:
		return Ratio{2, 1}
	case Five, Nine:
		return Ratio{3, 2}
	default:
		return Ratio{6, 5}
	}
}

// PlaceOdds returns the house payout for a place bet on p.
func PlaceOdds(p Point) Ratio {
	switch p {
	case Four, Ten:
		return Ratio{9, 5}
	case Five, Nine:
		return Ratio{7, 5}
	default:
		return Ratio{7, 6}
	}
}

// OddsIncrement is the smallest odds unit on p that pays true odds in whole
// dollars.
func OddsIncrement(p Point) int {
	switch p {
	case Five, Nine:
		return 2
	case Six, Eight:
		return 5
	default:
		return 1
	}
}

// Phase is the table's come-out/point state.
type Phase struct {
	Point Point
}

// ComeOut is the phase before a point is established.
var ComeOut = Phase{}

// PointOn returns the phase with point p established.
func PointOn(p Point) Phase {
	return Phase{Point: p}
}

// On reports whether a point is established.
func (ph Phase) On() bool {
	return ph.Point != NoPoint
}

func (ph Phase) String() string {
	if !ph.On() {
		return "come-out"
	}
	return fmt.Sprintf("point %d", ph.Point)
}

// Transition applies one roll to the phase machine.
func Transition(ph Phase, roll dice.Roll) Phase {
	total := roll.Total()
	if !ph.On() {
		if isPointTotal(total) {
			return PointOn(Point(total))
		}
		return ph
	}
	if total == int(ph.Point) || total == 7 {
		return ComeOut
	}
	return ph
}
