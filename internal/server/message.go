package server

import (
	"encoding/json"
	"time"

	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/dice"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type SetStakeData struct {
	Bet    string `json:"bet"`
	Amount int    `json:"amount"`
	Target int    `json:"target,omitempty"`
}

type RollRequestData struct {
	Dice []int `json:"dice,omitempty"` // Fixed dice, only when the server allows it
}

type ResetData struct {
	Bankroll int `json:"bankroll,omitempty"`
}

// Server → Client Messages

type WelcomeData struct {
	SessionID string         `json:"sessionId"`
	Seed      int64          `json:"seed"`
	Table     TableLimits    `json:"table"`
	Bets      []string       `json:"bets"`
	MaxRolls  int            `json:"maxRolls,omitempty"`
	State     TableStateData `json:"state"`
}

type TableLimits struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	MaxOdds int `json:"maxOdds"`
	PropMin int `json:"propMin"`
}

type WagerData struct {
	Bet    string `json:"bet"`
	Kind   string `json:"kind"`
	Target int    `json:"target,omitempty"`
	Stake  int    `json:"stake"`
	Odds   int    `json:"odds,omitempty"`
}

type TableStateData struct {
	Bankroll  int         `json:"bankroll"`
	Exposure  int         `json:"exposure"`
	Net       int         `json:"net"`
	Point     int         `json:"point"`
	RollCount int         `json:"rollCount"`
	LastRoll  []int       `json:"lastRoll,omitempty"`
	Bets      []WagerData `json:"bets"`
}

type BetResultData struct {
	BankrollDelta  int `json:"bankrollDelta"`
	RemainingStake int `json:"remainingStake"`
}

type RolledData struct {
	Dice    []int                    `json:"dice"`
	Total   int                      `json:"total"`
	Before  int                      `json:"pointBefore"`
	After   int                      `json:"pointAfter"`
	Payout  int                      `json:"payout"`
	Settled map[string]BetResultData `json:"settled"`
	Lost    []string                 `json:"lost,omitempty"`
	State   TableStateData           `json:"state"`
}

type ObservationData struct {
	Sizes  []int    `json:"sizes"`
	Vector []int    `json:"vector"`
	Mask   [][]bool `json:"mask"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func limitsFrom(cfg craps.Config) TableLimits {
	return TableLimits{Min: cfg.TableMin, Max: cfg.TableMax, MaxOdds: cfg.MaxOdds, PropMin: cfg.PropMin}
}

func rollDice(r dice.Roll) []int {
	d1, d2 := r.Dice()
	return []int{d1, d2}
}

func stateFrom(t *craps.Table) TableStateData {
	state := TableStateData{
		Bankroll:  t.Bankroll(),
		Exposure:  t.Exposure(),
		Net:       t.Net(),
		Point:     int(t.Phase().Point),
		RollCount: t.RollCount(),
		Bets:      []WagerData{},
	}
	if last, ok := t.LastRoll(); ok {
		state.LastRoll = rollDice(last)
	}
	for _, w := range t.Bets() {
		state.Bets = append(state.Bets, WagerData{
			Bet:    w.Bet,
			Kind:   w.Kind.String(),
			Target: int(w.Target),
			Stake:  w.Stake,
			Odds:   w.Odds,
		})
	}
	return state
}

func rolledFrom(res craps.RollResult, t *craps.Table) RolledData {
	data := RolledData{
		Dice:    rollDice(res.Roll),
		Total:   res.Roll.Total(),
		Before:  int(res.Before.Point),
		After:   int(res.After.Point),
		Payout:  res.Payout,
		Settled: make(map[string]BetResultData, len(res.Settled)),
		Lost:    res.Lost,
		State:   stateFrom(t),
	}
	for name, r := range res.Settled {
		data.Settled[name] = BetResultData{BankrollDelta: r.BankrollDelta, RemainingStake: r.RemainingStake}
	}
	return data
}
