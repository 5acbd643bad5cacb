package craps

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction indicates a stake or odds change that breaks a table rule.
	ErrIllegalAction = errors.New("craps: illegal action")

	// ErrInsufficientFunds indicates the bankroll cannot cover an amount.
	ErrInsufficientFunds = errors.New("craps: insufficient funds")

	// ErrUnknownBet indicates a bet name that is not on the table.
	ErrUnknownBet = errors.New("craps: unknown bet")

	// ErrInvalidTarget indicates a target the bet does not accept.
	ErrInvalidTarget = fmt.Errorf("%w: invalid target", ErrIllegalAction)

	// ErrNoOdds indicates an odds operation on a bet that never takes odds.
	ErrNoOdds = fmt.Errorf("%w: bet does not take odds", ErrIllegalAction)
)

// ActionError describes a rejected stake or odds change. It unwraps to one of
// the sentinel errors above.
type ActionError struct {
	Bet    string
	Target Point
	Amount int
	Odds   bool
	Reason string
	Err    error
}

func (e *ActionError) Error() string {
	what := "stake"
	if e.Odds {
		what = "odds"
	}
	subject := e.Bet
	if e.Target != NoPoint {
		subject = fmt.Sprintf("%s[%d]", e.Bet, e.Target)
	}
	if subject == "" {
		return fmt.Sprintf("%s: %s", e.Err, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s $%d: %s", e.Err, subject, what, e.Amount, e.Reason)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func illegalf(format string, args ...any) error {
	return &ActionError{Reason: fmt.Sprintf(format, args...), Err: ErrIllegalAction}
}

func insufficientf(format string, args ...any) error {
	return &ActionError{Reason: fmt.Sprintf(format, args...), Err: ErrInsufficientFunds}
}

func targetf(format string, args ...any) error {
	return &ActionError{Reason: fmt.Sprintf(format, args...), Err: ErrInvalidTarget}
}

// annotate fills in the wager coordinates on an ActionError produced deeper
// in the call stack.
func annotate(err error, name string, target Point, amount int, odds bool) error {
	var ae *ActionError
	if errors.As(err, &ae) {
		ae.Bet = name
		ae.Target = target
		ae.Amount = amount
		ae.Odds = odds
	}
	return err
}
