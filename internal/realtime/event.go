package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// client -> server
	EventJoinChat    EventType = "joinChat"
	EventSendMessage EventType = "sendMessage"

	// server -> client
	EventReceiveMessage EventType = "receiveMessage"
	EventUserStatus     EventType = "userStatus"
	EventError          EventType = "error"
)

// Event is the wire envelope for both directions of the websocket.
type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type JoinChatData struct {
	ChatID uuid.UUID `json:"chatId"`
}

type SendMessageData struct {
	ChatID     uuid.UUID `json:"chatId"`
	Content    string    `json:"content,omitempty"`
	Nonce      []byte    `json:"nonce,omitempty"`
	Ciphertext []byte    `json:"data,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
}

// ErrorData is acked back to a sender whose event failed, so a client
// can retry or surface the failure instead of silently losing a message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewEvent(eventType EventType, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: eventType, Data: raw, Timestamp: time.Now().UTC()})
}
