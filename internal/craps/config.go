package craps

import "errors"

// Config holds the static table limits.
type Config struct {
	TableMin int // Minimum for line, come, place, buy and field wagers
	TableMax int // Maximum for any single stake
	MaxOdds  int // Odds cap as a multiple of the backing stake
	PropMin  int // Minimum for proposition and hardway wagers
}

// DefaultConfig returns a $5-$500 table with 3x odds and $1 props.
func DefaultConfig() Config {
	return Config{
		TableMin: 5,
		TableMax: 500,
		MaxOdds:  3,
		PropMin:  1,
	}
}

// Validate checks the limits are coherent.
func (c Config) Validate() error {
	if c.TableMin < 1 {
		return errors.New("table minimum must be > 0")
	}
	if c.TableMax < c.TableMin {
		return errors.New("table maximum must be >= table minimum")
	}
	if c.PropMin < 1 {
		return errors.New("prop minimum must be > 0")
	}
	if c.PropMin > c.TableMax {
		return errors.New("prop minimum must be <= table maximum")
	}
	if c.MaxOdds < 0 {
		return errors.New("max odds cannot be negative")
	}
	return nil
}

// MinimumFor returns the stake floor that applies to b.
func (c Config) MinimumFor(b Bet) int {
	if b.IsProp() {
		return c.PropMin
	}
	return c.TableMin
}
