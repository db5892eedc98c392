package realtime

import (
	"time"

	"mentorin/server/internal/models"
)

// EventType represents different WebSocket event types
type EventType string

const (
	// Message events
	EventMessageNew EventType = "message_new"
	EventThreadRead EventType = "thread_read"

	// Typing events
	EventTypingStart EventType = "typing_start"
	EventTypingStop  EventType = "typing_stop"

	// Error events
	EventError EventType = "error"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// MessagePayload carries a freshly stored message to its receiver,
// together with the receiver's new unread total for the badge.
type MessagePayload struct {
	Message     *models.Message `json:"message"`
	UnreadCount int             `json:"unreadCount"`
}

// ThreadReadPayload tells a sender their messages were just read.
type ThreadReadPayload struct {
	ReaderID string `json:"readerId"`
	SenderID string `json:"senderId"`
}

// TypingPayload represents typing indicator payload
type TypingPayload struct {
	UserID        string `json:"userId"`
	CounterpartID string `json:"counterpartId"`
	UserName      string `json:"userName,omitempty"`
}

// ErrorPayload represents error event payload
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IncomingMessage represents messages received from clients
type IncomingMessage struct {
	Type    EventType              `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}
