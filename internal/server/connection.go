package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/crapsforbots/internal/codec"
	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/dice"
)

// Connection is one websocket client driving its own craps table. Only the
// read pump touches the table.
type Connection struct {
	id        string
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	clock     quartz.Clock
	idle      *quartz.Timer
	opts      Options

	table  *craps.Table
	codec  *codec.Codec
	roller dice.Source
	seed   int64
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// ErrConnectionClosed is returned when sending on a closed connection.
var ErrConnectionClosed = websocket.ErrCloseSent

func newConnection(id string, conn *websocket.Conn, seed int64, opts Options, logger *log.Logger) (*Connection, error) {
	table, err := craps.NewTable(opts.Table, opts.Bankroll, craps.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	cdc, err := codec.New(table)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		id:     id,
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn").With("session", id),
		ctx:    ctx,
		cancel: cancel,
		clock:  opts.Clock,
		opts:   opts,
		table:  table,
		codec:  cdc,
		roller: dice.NewRoller(seed),
		seed:   seed,
	}, nil
}

// Start arms the idle timer, greets the client and begins pumping messages.
func (c *Connection) Start() {
	c.idle = c.clock.AfterFunc(c.opts.IdleTimeout, c.expire, "idle")
	c.reply(MessageTypeWelcome, "", WelcomeData{
		SessionID: c.id,
		Seed:      c.seed,
		Table:     limitsFrom(c.opts.Table),
		Bets:      c.table.Names(),
		MaxRolls:  c.opts.MaxRolls,
		State:     stateFrom(c.table),
	})
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection shuts down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.idle != nil {
			c.idle.Stop()
		}
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) expire() {
	c.logger.Info("Closing idle connection", "timeout", c.opts.IdleTimeout)
	c.sendError("", ErrorCodeIdleTimeout, fmt.Sprintf("no message for %s", c.opts.IdleTimeout))
	// Let the write pump flush the error before the socket goes away.
	c.clock.AfterFunc(writeWait/10, func() { _ = c.Close() }, "idle", "close")
}

// SendMessage queues msg for the write pump
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.idle.Reset(c.opts.IdleTimeout, "idle", "reset")
		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := c.clock.NewTicker(pingPeriod, "ping")
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Debug("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeSetStake, MessageTypeSetOdds:
		var data SetStakeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, ErrorCodeInvalidMessage, "Failed to parse bet data")
			return
		}
		c.handleSetBet(msg, data)

	case MessageTypeRoll:
		var data RollRequestData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError(msg.RequestID, ErrorCodeInvalidMessage, "Failed to parse roll data")
				return
			}
		}
		c.handleRoll(msg.RequestID, data)

	case MessageTypeState:
		c.reply(MessageTypeTableState, msg.RequestID, stateFrom(c.table))

	case MessageTypeReset:
		var data ResetData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError(msg.RequestID, ErrorCodeInvalidMessage, "Failed to parse reset data")
				return
			}
		}
		c.handleReset(msg.RequestID, data)

	case MessageTypeObserve:
		c.handleObserve(msg.RequestID)

	default:
		c.sendError(msg.RequestID, ErrorCodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleSetBet(msg *Message, data SetStakeData) {
	target := craps.Point(data.Target)
	var err error
	if msg.Type == MessageTypeSetOdds {
		err = c.table.SetBetOdds(data.Bet, data.Amount, target)
	} else {
		err = c.table.SetBetStake(data.Bet, data.Amount, target)
	}
	if err != nil {
		c.sendTableError(msg.RequestID, err)
		return
	}
	c.reply(MessageTypeTableState, msg.RequestID, stateFrom(c.table))
}

func (c *Connection) handleRoll(requestID string, data RollRequestData) {
	if c.opts.MaxRolls > 0 && c.table.RollCount() >= c.opts.MaxRolls {
		c.sendError(requestID, ErrorCodeSessionOver, fmt.Sprintf("session limit of %d rolls reached", c.opts.MaxRolls))
		return
	}

	var roll dice.Roll
	switch {
	case len(data.Dice) == 0:
		roll = c.roller.Next()
	case !c.opts.FixedDice:
		c.sendError(requestID, ErrorCodeFixedDice, "server does not accept fixed dice")
		return
	case len(data.Dice) != 2:
		c.sendError(requestID, ErrorCodeInvalidMessage, "dice must hold exactly two faces")
		return
	default:
		r, err := dice.NewRoll(data.Dice[0], data.Dice[1])
		if err != nil {
			c.sendError(requestID, ErrorCodeInvalidMessage, err.Error())
			return
		}
		roll = r
	}

	res := c.table.Step(roll)
	c.reply(MessageTypeRolled, requestID, rolledFrom(res, c.table))
}

func (c *Connection) handleReset(requestID string, data ResetData) {
	bankroll := data.Bankroll
	if bankroll == 0 {
		bankroll = c.opts.Bankroll
	}
	if err := c.table.Reset(bankroll); err != nil {
		c.sendError(requestID, ErrorCodeInvalidMessage, err.Error())
		return
	}
	c.reply(MessageTypeTableState, requestID, stateFrom(c.table))
}

func (c *Connection) handleObserve(requestID string) {
	vec, err := c.codec.Encode(c.table)
	if err != nil {
		c.sendError(requestID, ErrorCodeInvalidMessage, err.Error())
		return
	}
	c.reply(MessageTypeObservation, requestID, ObservationData{
		Sizes:  c.codec.Sizes(),
		Vector: vec,
		Mask:   c.codec.Mask(c.table),
	})
}

func (c *Connection) reply(messageType MessageType, requestID string, data any) {
	msg, err := NewMessage(messageType, data, c.clock.Now())
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	msg.RequestID = requestID
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Dropped message", "type", messageType, "error", err)
	}
}

// sendTableError maps table errors onto protocol error codes
func (c *Connection) sendTableError(requestID string, err error) {
	code := ErrorCodeIllegalAction
	switch {
	case errors.Is(err, craps.ErrUnknownBet):
		code = ErrorCodeUnknownBet
	case errors.Is(err, craps.ErrInsufficientFunds):
		code = ErrorCodeInsufficientFunds
	}
	c.sendError(requestID, code, err.Error())
}

// sendError sends an error message to the client
func (c *Connection) sendError(requestID, code, message string) {
	c.reply(MessageTypeError, requestID, ErrorData{Code: code, Message: message})
}
