// Package craps implements the craps table engine: the come-out/point phase
// machine, the wager variants and their settlement arithmetic, and the
// bankroll ledger that backs them.
//
// The main type is Table, which owns the phase, the bankroll and one instance
// of every wager slot. Callers mutate wagers through SetBetStake/SetBetOdds and
// advance the game with Step. Dice are always supplied by the caller so that a
// session replays exactly from a recorded roll sequence.
//
// # Basic Usage
//
//	t, err := craps.NewTable(craps.DefaultConfig(), 1000)
//	if err != nil {
//	    return err
//	}
//	if err := t.SetBetStake("pass_line", 10, craps.NoPoint); err != nil {
//	    // errors.Is(err, craps.ErrIllegalAction) or craps.ErrInsufficientFunds
//	}
//	res := t.Step(dice.MustRoll(3, 4)) // natural: pays 20
//
// # Money
//
// A stake is withdrawn from the bankroll at the moment it is placed, so a
// settlement payout always includes any returned stake. At every point
// bankroll + Exposure() equals the starting bankroll plus net winnings.
//
// # Concurrency
//
// A Table is not safe for concurrent use. Run independent tables in parallel
// instead of sharing one.
package craps
