package client

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/server"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func startServer(t *testing.T, mutate func(*server.Options)) string {
	t.Helper()
	opts := server.DefaultOptions()
	opts.Seed = 7
	opts.Clock = quartz.NewMock(t)
	if mutate != nil {
		mutate(&opts)
	}
	srv, err := server.NewServer("", opts, testLogger())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		_ = srv.Stop()
		ts.Close()
	})
	return ts.URL
}

func dial(t *testing.T, url string) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, url, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestDialReadsWelcome(t *testing.T) {
	c := dial(t, startServer(t, nil))

	welcome := c.Welcome()
	assert.Len(t, welcome.SessionID, 26)
	assert.Equal(t, 1000, welcome.State.Bankroll)
	assert.Equal(t, craps.DefaultConfig().TableMin, welcome.Table.Min)
	assert.Contains(t, welcome.Bets, "pass_line")
}

func TestDialInvalidURL(t *testing.T) {
	_, err := Dial(context.Background(), "://nope", testLogger())
	assert.Error(t, err)
}

func TestFixedDiceRound(t *testing.T) {
	c := dial(t, startServer(t, func(o *server.Options) { o.FixedDice = true }))
	ctx := testContext(t)

	state, err := c.SetStake(ctx, "pass_line", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 990, state.Bankroll)
	assert.Equal(t, 10, state.Exposure)

	rolled, err := c.Roll(ctx, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 7, rolled.Total)
	assert.Equal(t, 20, rolled.Payout)
	assert.Equal(t, 1010, rolled.State.Bankroll)
	assert.Equal(t, 0, rolled.State.Exposure)

	state, err = c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.RollCount)
	assert.Equal(t, 10, state.Net)
}

func TestServerErrors(t *testing.T) {
	c := dial(t, startServer(t, nil))
	ctx := testContext(t)

	_, err := c.SetStake(ctx, "lay_4", 10, 0)
	assert.True(t, IsCode(err, server.ErrorCodeUnknownBet), "got %v", err)

	_, err = c.SetStake(ctx, "pass_line", 5000, 0)
	assert.True(t, IsCode(err, server.ErrorCodeInsufficientFunds), "got %v", err)

	_, err = c.SetOdds(ctx, "pass_line", 10, 0)
	assert.True(t, IsCode(err, server.ErrorCodeIllegalAction), "got %v", err)

	_, err = c.Roll(ctx, 1, 1)
	assert.True(t, IsCode(err, server.ErrorCodeFixedDice), "got %v", err)

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "fixed_dice_disabled")
}

func TestResetAndObserve(t *testing.T) {
	c := dial(t, startServer(t, nil))
	ctx := testContext(t)

	state, err := c.Reset(ctx, 250)
	require.NoError(t, err)
	assert.Equal(t, 250, state.Bankroll)

	obs, err := c.Observe(ctx)
	require.NoError(t, err)
	assert.Len(t, obs.Sizes, len(c.Welcome().Bets))
	assert.Len(t, obs.Vector, len(obs.Sizes))
	assert.Len(t, obs.Mask, len(obs.Sizes))
}

func TestCallAfterClose(t *testing.T) {
	c := dial(t, startServer(t, nil))
	require.NoError(t, c.Close())

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("client not done after close")
	}
	_, err := c.State(testContext(t))
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestBotStaysInSync(t *testing.T) {
	for _, name := range []string{"pass-odds", "iron-cross", "68-explosion", "3-point-molly"} {
		t.Run(name, func(t *testing.T) {
			c := dial(t, startServer(t, nil))
			bot, err := NewBot(c, name, testLogger())
			require.NoError(t, err)

			summary, err := bot.Play(testContext(t), 60)
			require.NoError(t, err)
			assert.LessOrEqual(t, summary.Rolls, 60)

			state, err := c.State(testContext(t))
			require.NoError(t, err)
			assert.Equal(t, state.Bankroll, summary.Bankroll)
			assert.Equal(t, state.Net, summary.Net)
			assert.Equal(t, state.RollCount, summary.Rolls)
		})
	}
}

func TestBotStopsAtServerLimit(t *testing.T) {
	c := dial(t, startServer(t, func(o *server.Options) { o.MaxRolls = 5 }))
	bot, err := NewBot(c, "pass-odds", testLogger())
	require.NoError(t, err)

	summary, err := bot.Play(testContext(t), 100)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Rolls)
	assert.Equal(t, "server roll limit", summary.Reason)
}

func TestNewBotUnknownStrategy(t *testing.T) {
	c := dial(t, startServer(t, nil))
	_, err := NewBot(c, "martingale", testLogger())
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestDiffOrdersDecreasesFirst(t *testing.T) {
	before := []craps.Wager{
		{Bet: "pass_line", Kind: craps.KindPassLine, Stake: 10, Odds: 20},
		{Bet: "field", Kind: craps.KindField, Stake: 5},
	}
	after := []craps.Wager{
		{Bet: "pass_line", Kind: craps.KindPassLine, Stake: 10, Odds: 10},
		{Bet: "place_6", Kind: craps.KindPlace, Stake: 12},
		{Bet: "come", Kind: craps.KindCome, Target: craps.Point(8), Stake: 10, Odds: 10},
	}

	got := diff(before, after)
	require.Len(t, got, 5)
	assert.Equal(t, change{position: position{bet: "pass_line"}, odds: true, amount: 10, delta: -10}, got[0])
	assert.Equal(t, change{position: position{bet: "field"}, amount: 0, delta: -5}, got[1])
	assert.Equal(t, change{position: position{bet: "place_6"}, amount: 12, delta: 12}, got[2])
	assert.Equal(t, change{position: position{bet: "come", target: 8}, amount: 10, delta: 10}, got[3])
	assert.Equal(t, change{position: position{bet: "come", target: 8}, odds: true, amount: 10, delta: 10}, got[4])
}

func TestDiffNoChange(t *testing.T) {
	ws := []craps.Wager{{Bet: "field", Kind: craps.KindField, Stake: 5}}
	assert.Empty(t, diff(ws, ws))
}
