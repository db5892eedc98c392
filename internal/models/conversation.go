package models

import "time"

// Conversation is the derived view of all messages between the current
// user and one counterpart. It is never stored; the index recomputes it
// from messages on every request.
type Conversation struct {
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName"`
	UserRole        string    `json:"userRole"`
	ProfilePhoto    *string   `json:"profilePhoto,omitempty"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount"`
}
