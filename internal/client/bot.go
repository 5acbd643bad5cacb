package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/dice"
	"github.com/lox/crapsforbots/internal/strategy"
)

// ErrOutOfSync is returned when the server's table no longer matches the
// bot's local copy.
var ErrOutOfSync = errors.New("client: table out of sync with server")

// Bot drives a remote table with a strategy. The strategy runs against a
// local shadow table; every change it makes is replayed on the server and
// the server's dice are stepped through the shadow.
type Bot struct {
	client *Client
	strat  strategy.Strategy
	shadow *craps.Table
	logger *log.Logger
}

// Summary reports how a bot session ended
type Summary struct {
	Rolls    int
	Net      int
	Wagered  int
	Bankroll int
	Reason   string
}

// NewBot creates a bot that plays name on the table c is connected to
func NewBot(c *Client, name string, logger *log.Logger) (*Bot, error) {
	welcome := c.Welcome()
	cfg := craps.Config{
		TableMin: welcome.Table.Min,
		TableMax: welcome.Table.Max,
		MaxOdds:  welcome.Table.MaxOdds,
		PropMin:  welcome.Table.PropMin,
	}
	shadow, err := craps.NewTable(cfg, welcome.State.Bankroll, craps.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to mirror server table: %w", err)
	}
	strat, err := strategy.New(name, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Bot{
		client: c,
		strat:  strat,
		shadow: shadow,
		logger: logger.WithPrefix("bot").With("strategy", name),
	}, nil
}

// Table returns the local shadow table
func (b *Bot) Table() *craps.Table {
	return b.shadow
}

// Play runs up to rolls rounds, stopping early when the strategy walks
// away or the bankroll can no longer cover a minimum bet.
func (b *Bot) Play(ctx context.Context, rolls int) (Summary, error) {
	reason := "roll limit"
	for b.shadow.RollCount() < rolls {
		if err := ctx.Err(); err != nil {
			return b.summary("cancelled"), err
		}

		before := b.shadow.Bets()
		err := b.strat.Bet(b.shadow)
		if errors.Is(err, strategy.ErrWalkAway) {
			reason = "walked away"
			break
		}
		if err != nil {
			return b.summary("strategy error"), err
		}
		if err := b.sync(ctx, before, b.shadow.Bets()); err != nil {
			return b.summary("rejected"), err
		}
		if b.shadow.Exposure() == 0 && b.shadow.Bankroll() < b.shadow.Config().TableMin {
			reason = "broke"
			break
		}

		rolled, err := b.client.Roll(ctx)
		if IsCode(err, "session_over") {
			reason = "server roll limit"
			break
		}
		if err != nil {
			return b.summary("roll failed"), err
		}
		roll, err := dice.NewRoll(rolled.Dice[0], rolled.Dice[1])
		if err != nil {
			return b.summary("bad dice"), fmt.Errorf("server sent invalid dice: %w", err)
		}
		res := b.shadow.Step(roll)
		b.strat.Observe(res)

		if rolled.State.Bankroll != b.shadow.Bankroll() || rolled.State.Exposure != b.shadow.Exposure() {
			return b.summary("out of sync"), fmt.Errorf("%w: server bankroll $%d exposure $%d, local $%d exposure $%d",
				ErrOutOfSync, rolled.State.Bankroll, rolled.State.Exposure, b.shadow.Bankroll(), b.shadow.Exposure())
		}
		b.logger.Debug("Rolled", "roll", roll.String(), "payout", res.Payout, "bankroll", b.shadow.Bankroll())
	}

	s := b.summary(reason)
	b.logger.Info("Session finished", "reason", s.Reason, "rolls", s.Rolls, "net", s.Net)
	return s, nil
}

func (b *Bot) summary(reason string) Summary {
	return Summary{
		Rolls:    b.shadow.RollCount(),
		Net:      b.shadow.Net(),
		Wagered:  b.shadow.Wagered(),
		Bankroll: b.shadow.Bankroll(),
		Reason:   reason,
	}
}

type position struct {
	bet    string
	target craps.Point
}

type change struct {
	position
	odds   bool
	amount int
	delta  int
}

// diff lists the stake and odds changes that turn before into after.
// Decreases come first so the freed money covers the increases; odds come
// down before their stake and go up after it.
func diff(before, after []craps.Wager) []change {
	type amounts struct{ stake, odds int }
	was := make(map[position]amounts, len(before))
	now := make(map[position]amounts, len(after))
	var order []position
	seen := make(map[position]bool)
	add := func(ws []craps.Wager, into map[position]amounts) {
		for _, w := range ws {
			p := position{bet: w.Bet, target: w.Target}
			into[p] = amounts{stake: w.Stake, odds: w.Odds}
			if !seen[p] {
				seen[p] = true
				order = append(order, p)
			}
		}
	}
	add(before, was)
	add(after, now)

	var down, up []change
	for _, p := range order {
		a, b := was[p], now[p]
		if b.odds < a.odds {
			down = append(down, change{position: p, odds: true, amount: b.odds, delta: b.odds - a.odds})
		}
		if b.stake < a.stake {
			down = append(down, change{position: p, amount: b.stake, delta: b.stake - a.stake})
		}
		if b.stake > a.stake {
			up = append(up, change{position: p, amount: b.stake, delta: b.stake - a.stake})
		}
		if b.odds > a.odds {
			up = append(up, change{position: p, odds: true, amount: b.odds, delta: b.odds - a.odds})
		}
	}
	return append(down, up...)
}

// sync replays the strategy's changes on the server
func (b *Bot) sync(ctx context.Context, before, after []craps.Wager) error {
	for _, ch := range diff(before, after) {
		var err error
		if ch.odds {
			_, err = b.client.SetOdds(ctx, ch.bet, ch.amount, int(ch.target))
		} else {
			_, err = b.client.SetStake(ctx, ch.bet, ch.amount, int(ch.target))
		}
		if err != nil {
			return fmt.Errorf("%s %d on %s: %w", kindOf(ch.odds), ch.amount, ch.bet, err)
		}
		b.logger.Debug("Synced bet", "bet", ch.bet, "target", ch.target, "odds", ch.odds, "amount", ch.amount)
	}
	return nil
}

func kindOf(odds bool) string {
	if odds {
		return "odds"
	}
	return "stake"
}
