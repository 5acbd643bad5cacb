package craps

import (
	"errors"
	"fmt"
)

// Bankroll is a non-negative ledger of the player's money off the table.
type Bankroll struct {
	size int
}

// NewBankroll creates a bankroll holding initial.
func NewBankroll(initial int) (*Bankroll, error) {
	if initial < 0 {
		return nil, errors.New("cannot initialize bankroll to a negative value")
	}
	return &Bankroll{size: initial}, nil
}

// Size returns the current balance.
func (b *Bankroll) Size() int {
	return b.size
}

// Deposit adds amount to the balance.
func (b *Bankroll) Deposit(amount int) error {
	if amount < 0 {
		return fmt.Errorf("cannot deposit a negative amount: %d", amount)
	}
	b.size += amount
	return nil
}

// Withdraw removes amount, failing with ErrInsufficientFunds if the balance
// is too small.
func (b *Bankroll) Withdraw(amount int) error {
	if amount < 0 {
		return fmt.Errorf("cannot withdraw a negative amount: %d", amount)
	}
	if amount > b.size {
		return fmt.Errorf("%w: need $%d, have $%d", ErrInsufficientFunds, amount, b.size)
	}
	b.size -= amount
	return nil
}

// Update deposits a positive delta and withdraws a negative one.
func (b *Bankroll) Update(delta int) error {
	switch {
	case delta < 0:
		return b.Withdraw(-delta)
	case delta > 0:
		return b.Deposit(delta)
	}
	return nil
}

// Covers reports whether the balance is at least amount.
func (b *Bankroll) Covers(amount int) bool {
	return amount <= b.size
}
