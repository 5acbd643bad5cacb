package craps

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/crapsforbots/internal/dice"
)

// TableOption configures a Table during creation.
type TableOption func(*tableOptions)

type tableOptions struct {
	logger *log.Logger
	bets   []Bet
}

// WithLogger sets the logger used for roll and rejection traces.
func WithLogger(logger *log.Logger) TableOption {
	return func(o *tableOptions) {
		o.logger = logger
	}
}

// WithBets replaces the standard wager slots. Names must be unique.
func WithBets(bets ...Bet) TableOption {
	return func(o *tableOptions) {
		o.bets = bets
	}
}

// RollResult summarises one Step. Payout is the total returned to the
// bankroll; Lost names the bets that left the table without paying.
type RollResult struct {
	Roll    dice.Roll
	Before  Phase
	After   Phase
	Payout  int
	Settled map[string]BetResult
	Lost    []string
}

// Table is the craps table state: phase, bankroll, wager slots and roll
// counters. It is not safe for concurrent use.
type Table struct {
	cfg       Config
	phase     Phase
	bankroll  *Bankroll
	initial   int
	bets      []Bet
	byName    map[string]Bet
	rollCount int
	lastRoll  dice.Roll
	wagered   int
	logger    *log.Logger
}

// NewTable creates a come-out table holding bankroll with every standard bet
// slot empty.
func NewTable(cfg Config, bankroll int, opts ...TableOption) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table config: %w", err)
	}
	br, err := NewBankroll(bankroll)
	if err != nil {
		return nil, err
	}

	o := &tableOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.bets == nil {
		o.bets = NewStandardBets()
	}

	t := &Table{
		cfg:      cfg,
		bankroll: br,
		initial:  bankroll,
		bets:     o.bets,
		byName:   make(map[string]Bet, len(o.bets)),
		logger:   o.logger.WithPrefix("table"),
	}
	for _, b := range o.bets {
		if _, dup := t.byName[b.Name()]; dup {
			return nil, fmt.Errorf("duplicate bet name: %s", b.Name())
		}
		t.byName[b.Name()] = b
	}
	return t, nil
}

// Reset clears every wager, returns to the come-out and restarts the ledger
// at bankroll.
func (t *Table) Reset(bankroll int) error {
	br, err := NewBankroll(bankroll)
	if err != nil {
		return err
	}
	for _, b := range t.bets {
		b.reset()
	}
	t.bankroll = br
	t.initial = bankroll
	t.phase = ComeOut
	t.rollCount = 0
	t.lastRoll = dice.Roll{}
	t.wagered = 0
	return nil
}

func (t *Table) Config() Config       { return t.cfg }
func (t *Table) Phase() Phase         { return t.phase }
func (t *Table) Bankroll() int        { return t.bankroll.Size() }
func (t *Table) InitialBankroll() int { return t.initial }
func (t *Table) RollCount() int       { return t.rollCount }
func (t *Table) Wagered() int         { return t.wagered }

// LastRoll returns the most recent roll; ok is false before the first Step.
func (t *Table) LastRoll() (roll dice.Roll, ok bool) {
	return t.lastRoll, t.rollCount > 0
}

// Names returns the bet slot names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.bets))
	for i, b := range t.bets {
		names[i] = b.Name()
	}
	return names
}

// Bet returns the named slot for read-only inspection.
func (t *Table) Bet(name string) (Bet, error) {
	b, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBet, name)
	}
	return b, nil
}

// Exposure is the total money currently at risk on the table.
func (t *Table) Exposure() int {
	total := 0
	for _, b := range t.bets {
		total += b.Exposure()
	}
	return total
}

// Net is the session result so far: bankroll plus exposure minus the
// starting bankroll.
func (t *Table) Net() int {
	return t.bankroll.Size() + t.Exposure() - t.initial
}

// BetStake returns the stake on name at target.
func (t *Table) BetStake(name string, target Point) (int, error) {
	b, err := t.Bet(name)
	if err != nil {
		return 0, err
	}
	return b.Stake(target)
}

// BetOdds returns the odds on name at target.
func (t *Table) BetOdds(name string, target Point) (int, error) {
	b, err := t.Bet(name)
	if err != nil {
		return 0, err
	}
	return b.Odds(target)
}

// SetBetStake changes the stake on name at target to amount. The exposure
// difference is withdrawn from or returned to the bankroll together with the
// change; a rejected change leaves table and bankroll untouched.
func (t *Table) SetBetStake(name string, amount int, target Point) error {
	b, err := t.Bet(name)
	if err != nil {
		return err
	}
	if err := t.validateStake(b, amount, target); err != nil {
		t.logger.Debug("Rejected stake", "bet", name, "target", target, "amount", amount, "error", err)
		return annotate(err, name, target, amount, false)
	}
	return t.apply(b, func() { b.setStake(amount, target) })
}

// SetBetOdds changes the odds on name at target to amount, with the same
// all-or-nothing bankroll handling as SetBetStake.
func (t *Table) SetBetOdds(name string, amount int, target Point) error {
	b, err := t.Bet(name)
	if err != nil {
		return err
	}
	if err := t.validateOdds(b, amount, target); err != nil {
		t.logger.Debug("Rejected odds", "bet", name, "target", target, "amount", amount, "error", err)
		return annotate(err, name, target, amount, true)
	}
	return t.apply(b, func() { b.setOdds(amount, target) })
}

// ValidateStake reports whether SetBetStake would succeed without applying it.
func (t *Table) ValidateStake(name string, amount int, target Point) error {
	b, err := t.Bet(name)
	if err != nil {
		return err
	}
	return annotate(t.validateStake(b, amount, target), name, target, amount, false)
}

// ValidateOdds reports whether SetBetOdds would succeed without applying it.
func (t *Table) ValidateOdds(name string, amount int, target Point) error {
	b, err := t.Bet(name)
	if err != nil {
		return err
	}
	return annotate(t.validateOdds(b, amount, target), name, target, amount, true)
}

// CanSetStake reports whether the player may currently place or change the
// stake on name at target, independent of amount.
func (t *Table) CanSetStake(name string, target Point) bool {
	b, ok := t.byName[name]
	if !ok {
		return false
	}
	return b.stakeSettable(t.phase, target) == nil
}

// CanSetOdds reports whether odds may currently be taken on name at target,
// independent of amount.
func (t *Table) CanSetOdds(name string, target Point) bool {
	b, ok := t.byName[name]
	if !ok {
		return false
	}
	base, err := b.oddsBase(t.phase, target)
	return err == nil && base > 0 && t.cfg.MaxOdds > 0
}

// apply runs mutate and moves the exposure difference through the bankroll.
// Validation has already proven the bankroll covers any increase. Increases
// count towards Wagered.
func (t *Table) apply(b Bet, mutate func()) error {
	before := b.Exposure()
	mutate()
	delta := before - b.Exposure()
	if err := t.bankroll.Update(delta); err != nil {
		return fmt.Errorf("bankroll out of sync with validation: %w", err)
	}
	if delta < 0 {
		t.wagered -= delta
	}
	return nil
}

// validateStake runs the stake checks in order: sign, idempotence, target
// and phase, removal, bankroll, limits, increments.
func (t *Table) validateStake(b Bet, amount int, target Point) error {
	current, err := b.Stake(target)
	if err != nil {
		return err
	}
	if amount < 0 {
		return illegalf("amount cannot be negative")
	}
	if amount == current {
		return nil
	}
	settable := b.stakeSettable(t.phase, target)
	if amount == 0 {
		// Removal is always allowed, except for buckets the table owns.
		if target != NoPoint {
			return settable
		}
		return nil
	}
	if !t.bankroll.Covers(amount - current) {
		return insufficientf("need $%d more, bankroll has $%d", amount-current, t.bankroll.Size())
	}
	if min := t.cfg.MinimumFor(b); amount < min {
		return illegalf("below minimum of $%d", min)
	}
	if amount > t.cfg.TableMax {
		return illegalf("exceeds table maximum of $%d", t.cfg.TableMax)
	}
	if err := b.checkStake(amount, target); err != nil {
		return err
	}
	return settable
}

// validateOdds mirrors validateStake for odds: the cap is MaxOdds times the
// backing stake and the increment keeps true odds whole.
func (t *Table) validateOdds(b Bet, amount int, target Point) error {
	current, err := b.Odds(target)
	if err != nil {
		return err
	}
	if amount < 0 {
		return illegalf("amount cannot be negative")
	}
	if amount == current || amount == 0 {
		return nil
	}
	if !t.bankroll.Covers(amount - current) {
		return insufficientf("need $%d more, bankroll has $%d", amount-current, t.bankroll.Size())
	}
	base, err := b.oddsBase(t.phase, target)
	if err != nil {
		return err
	}
	if limit := t.cfg.MaxOdds * base; amount > limit {
		return illegalf("odds cannot exceed %dx the bet ($%d)", t.cfg.MaxOdds, limit)
	}
	point := target
	if point == NoPoint {
		point = t.phase.Point
	}
	return checkMultiple(amount, OddsIncrement(point), fmt.Sprintf("odds on %d", point))
}

// Step settles every active wager against roll using the pre-roll phase,
// pays the bankroll, then advances the phase and the roll counters. The zero
// Roll is not a roll: nothing settles and the table is left as it was.
func (t *Table) Step(roll dice.Roll) RollResult {
	res := RollResult{
		Roll:    roll,
		Before:  t.phase,
		After:   t.phase,
		Settled: make(map[string]BetResult),
	}
	if roll.IsZero() {
		t.logger.Warn("Ignoring zero roll", "roll_count", t.rollCount)
		return res
	}

	for _, b := range t.bets {
		if b.Exposure() == 0 {
			continue
		}
		r := b.settle(t.phase, roll)
		res.Settled[b.Name()] = r
		res.Payout += r.BankrollDelta
		if r.BankrollDelta == 0 && r.RemainingStake == 0 {
			res.Lost = append(res.Lost, b.Name())
		}
	}
	if err := t.bankroll.Deposit(res.Payout); err != nil {
		t.logger.Error("Failed to pay out roll", "payout", res.Payout, "error", err)
	}

	t.phase = Transition(t.phase, roll)
	t.rollCount++
	t.lastRoll = roll
	res.After = t.phase

	t.logger.Debug("Roll settled",
		"roll", roll.String(),
		"before", res.Before.String(),
		"after", res.After.String(),
		"payout", res.Payout,
		"bankroll", t.bankroll.Size(),
	)
	return res
}

// Wager is one nonzero stake or odds position on the table.
type Wager struct {
	Bet    string
	Kind   Kind
	Target Point
	Stake  int
	Odds   int
}

// Bets returns every nonzero position in table order.
func (t *Table) Bets() []Wager {
	var out []Wager
	for _, b := range t.bets {
		switch v := b.(type) {
		case *ComeBets:
			if v.pending > 0 {
				out = append(out, Wager{Bet: v.Name(), Kind: KindCome, Stake: v.pending})
			}
			for _, p := range Points {
				i := p.index()
				if v.stake[i] > 0 || v.odds[i] > 0 {
					out = append(out, Wager{Bet: v.Name(), Kind: KindCome, Target: p, Stake: v.stake[i], Odds: v.odds[i]})
				}
			}
		case *PassLine:
			if v.stake > 0 {
				out = append(out, Wager{Bet: v.Name(), Kind: KindPassLine, Stake: v.stake, Odds: v.odds})
			}
		default:
			if s, _ := b.Stake(NoPoint); s > 0 {
				out = append(out, Wager{Bet: b.Name(), Kind: b.Kind(), Stake: s})
			}
		}
	}
	return out
}
