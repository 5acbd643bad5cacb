package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeSetStake MessageType = "set_stake"
	MessageTypeSetOdds  MessageType = "set_odds"
	MessageTypeRoll     MessageType = "roll"
	MessageTypeState    MessageType = "state"
	MessageTypeReset    MessageType = "reset"
	MessageTypeObserve  MessageType = "observe"

	// Server to client messages
	MessageTypeWelcome     MessageType = "welcome"
	MessageTypeTableState  MessageType = "table_state"
	MessageTypeRolled      MessageType = "rolled"
	MessageTypeObservation MessageType = "observation"
	MessageTypeError       MessageType = "error"
)

// Error codes sent in ErrorData
const (
	ErrorCodeInvalidMessage    = "invalid_message"
	ErrorCodeUnknownType       = "unknown_message_type"
	ErrorCodeIllegalAction     = "illegal_action"
	ErrorCodeInsufficientFunds = "insufficient_funds"
	ErrorCodeUnknownBet        = "unknown_bet"
	ErrorCodeFixedDice         = "fixed_dice_disabled"
	ErrorCodeSessionOver       = "session_over"
	ErrorCodeIdleTimeout       = "idle_timeout"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
