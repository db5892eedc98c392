package models

import "time"

// Message represents a single direct message between two users.
// Sender and receiver name/role are snapshotted at send time so message
// history keeps showing what the counterpart was called back then, even
// if the profile is renamed later.
type Message struct {
	ID           string    `json:"id" db:"id"`
	Seq          int64     `json:"-" db:"seq"` // insertion order, tie-break for equal timestamps
	SenderID     string    `json:"senderId" db:"sender_id"`
	SenderName   string    `json:"senderName" db:"sender_name"`
	SenderRole   string    `json:"senderRole" db:"sender_role"`
	ReceiverID   string    `json:"receiverId" db:"receiver_id"`
	ReceiverName string    `json:"receiverName" db:"receiver_name"`
	ReceiverRole string    `json:"receiverRole" db:"receiver_role"`
	Content      string    `json:"content" db:"content"`
	IsRead       bool      `json:"isRead" db:"is_read"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// CounterpartID returns the other participant's ID relative to userID.
func (m *Message) CounterpartID(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// CounterpartIdentity returns the snapshotted name and role of the other
// participant relative to userID.
func (m *Message) CounterpartIdentity(userID string) (name, role string) {
	if m.SenderID == userID {
		return m.ReceiverName, m.ReceiverRole
	}
	return m.SenderName, m.SenderRole
}
