package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages a game socket carries
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeSelect     MessageType = "select"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SelectPayload asks for the legal moves of the piece on Square.
type SelectPayload struct {
	Square string `json:"square"`
}

// MovePayload names squares in algebraic form, e.g. "e2" to "e4".
type MovePayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage marshals payload into a Message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
