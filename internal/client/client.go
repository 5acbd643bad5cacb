// Package client talks to a craps server over websockets.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/crapsforbots/internal/server"
)

// ErrDisconnected is returned by calls made after the connection dropped.
var ErrDisconnected = errors.New("client: disconnected")

// ServerError is an error message the server sent in reply to a request.
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %s: %s", e.Code, e.Message)
}

// IsCode reports whether err is a ServerError with code.
func IsCode(err error, code string) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Code == code
}

// Client represents a WebSocket client for one craps session. Calls are
// matched to replies by request ID.
type Client struct {
	serverURL string
	conn      *websocket.Conn
	send      chan *server.Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	welcome   server.WelcomeData

	mu      sync.Mutex
	pending map[string]chan *server.Message
	nextID  atomic.Uint64
	notice  *server.ErrorData
}

// Dial connects to serverURL, waits for the welcome and starts the pumps.
// http and https URLs are mapped to ws and wss, and an empty path becomes /ws.
func Dial(ctx context.Context, serverURL string, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}

	logger = logger.WithPrefix("client")
	logger.Debug("Connecting to server", "url", u.String())
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	var hello server.Message
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	if err := conn.ReadJSON(&hello); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to read welcome: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})
	if hello.Type != server.MessageTypeWelcome {
		_ = conn.Close()
		return nil, fmt.Errorf("expected welcome, got %s", hello.Type)
	}

	cctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		serverURL: u.String(),
		conn:      conn,
		send:      make(chan *server.Message, 256),
		logger:    logger,
		ctx:       cctx,
		cancel:    cancel,
		pending:   make(map[string]chan *server.Message),
	}
	if err := json.Unmarshal(hello.Data, &c.welcome); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to decode welcome: %w", err)
	}

	go c.readPump()
	go c.writePump()

	logger.Info("Connected to server", "session", c.welcome.SessionID, "seed", c.welcome.Seed)
	return c, nil
}

// Welcome returns the greeting the server sent on connect
func (c *Client) Welcome() server.WelcomeData {
	return c.welcome
}

// Done is closed once the connection is gone
func (c *Client) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Notice returns the last unsolicited error from the server, such as an
// idle timeout.
func (c *Client) Notice() *server.ErrorData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// Close closes the WebSocket connection
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		err = c.conn.Close()
		c.logger.Debug("Disconnected from server")
	})
	return err
}

// SetStake sets the stake on bet for target
func (c *Client) SetStake(ctx context.Context, bet string, amount, target int) (server.TableStateData, error) {
	var state server.TableStateData
	err := c.call(ctx, server.MessageTypeSetStake, server.SetStakeData{Bet: bet, Amount: amount, Target: target}, &state)
	return state, err
}

// SetOdds sets the odds behind bet for target
func (c *Client) SetOdds(ctx context.Context, bet string, amount, target int) (server.TableStateData, error) {
	var state server.TableStateData
	err := c.call(ctx, server.MessageTypeSetOdds, server.SetStakeData{Bet: bet, Amount: amount, Target: target}, &state)
	return state, err
}

// Roll asks the server to roll. Passing two faces requests fixed dice.
func (c *Client) Roll(ctx context.Context, faces ...int) (server.RolledData, error) {
	var rolled server.RolledData
	err := c.call(ctx, server.MessageTypeRoll, server.RollRequestData{Dice: faces}, &rolled)
	return rolled, err
}

// State fetches the current table state
func (c *Client) State(ctx context.Context) (server.TableStateData, error) {
	var state server.TableStateData
	err := c.call(ctx, server.MessageTypeState, nil, &state)
	return state, err
}

// Reset clears the table. A zero bankroll uses the server default.
func (c *Client) Reset(ctx context.Context, bankroll int) (server.TableStateData, error) {
	var state server.TableStateData
	err := c.call(ctx, server.MessageTypeReset, server.ResetData{Bankroll: bankroll}, &state)
	return state, err
}

// Observe fetches the encoded stake vector and action mask
func (c *Client) Observe(ctx context.Context) (server.ObservationData, error) {
	var obs server.ObservationData
	err := c.call(ctx, server.MessageTypeObserve, nil, &obs)
	return obs, err
}

func (c *Client) call(ctx context.Context, messageType server.MessageType, data, out any) error {
	if c.ctx.Err() != nil {
		return ErrDisconnected
	}
	msg, err := server.NewMessage(messageType, data, time.Now())
	if err != nil {
		return err
	}
	msg.RequestID = strconv.FormatUint(c.nextID.Add(1), 10)

	reply := make(chan *server.Message, 1)
	c.mu.Lock()
	c.pending[msg.RequestID] = reply
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, msg.RequestID)
		c.mu.Unlock()
	}()

	select {
	case c.send <- msg:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return ErrDisconnected
	}

	select {
	case resp := <-reply:
		if resp.Type == server.MessageTypeError {
			var e server.ErrorData
			if err := json.Unmarshal(resp.Data, &e); err != nil {
				return fmt.Errorf("failed to decode error: %w", err)
			}
			return &ServerError{Code: e.Code, Message: e.Message}
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return fmt.Errorf("failed to decode %s: %w", resp.Type, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return ErrDisconnected
	}
}

// readPump routes replies to waiting calls
func (c *Client) readPump() {
	defer c.cancel()

	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

		c.mu.Lock()
		reply, ok := c.pending[msg.RequestID]
		if !ok && msg.Type == server.MessageTypeError {
			var e server.ErrorData
			if json.Unmarshal(msg.Data, &e) == nil {
				c.notice = &e
			}
		}
		c.mu.Unlock()

		if ok {
			reply <- &msg
		} else {
			c.logger.Warn("Unsolicited message", "type", msg.Type, "data", string(msg.Data))
		}
	}
}

// writePump handles outgoing messages to the server
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second) // Ping interval
	defer ticker.Stop()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				c.cancel()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
