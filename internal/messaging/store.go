package messaging

import (
	"context"
	"strings"
	"time"

	"mentorin/server/internal/models"

	"github.com/google/uuid"
)

// Store is the durable record of messages and their read state.
type Store struct {
	repo Repository
	now  func() time.Time
}

// NewStore creates a message store on top of the given repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// SendInput carries everything needed to append one message. Receiver
// name and role may be left empty; they are then snapshotted from the
// directory entry looked up for the existence check.
type SendInput struct {
	SenderID     string
	SenderName   string
	SenderRole   string
	ReceiverID   string
	ReceiverName string
	ReceiverRole string
	Content      string
}

// Send validates and appends a new unread message.
func (s *Store) Send(ctx context.Context, in SendInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, &ValidationError{Reason: "message content is required"}
	}
	if in.SenderID == "" || in.ReceiverID == "" {
		return nil, &ValidationError{Reason: "sender and receiver are required"}
	}
	if in.SenderID == in.ReceiverID {
		return nil, &ValidationError{Reason: "cannot send a message to yourself"}
	}

	receiver, err := s.repo.GetUser(ctx, in.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, &NotFoundError{Resource: "user", ID: in.ReceiverID}
	}
	if in.ReceiverName == "" {
		in.ReceiverName = receiver.Name
	}
	if in.ReceiverRole == "" {
		in.ReceiverRole = receiver.Role
	}

	msg := &models.Message{
		ID:           uuid.NewString(),
		SenderID:     in.SenderID,
		SenderName:   in.SenderName,
		SenderRole:   in.SenderRole,
		ReceiverID:   in.ReceiverID,
		ReceiverName: in.ReceiverName,
		ReceiverRole: in.ReceiverRole,
		Content:      content,
		IsRead:       false,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ThreadBetween returns the full message history between two users,
// ascending by creation time with insertion order breaking ties. It is a
// pure read; read-marking is the separate MarkThreadRead step.
func (s *Store) ThreadBetween(ctx context.Context, userA, userB string) ([]models.Message, error) {
	if userA == "" || userB == "" {
		return nil, &ValidationError{Reason: "both participants are required"}
	}
	return s.repo.MessagesBetween(ctx, userA, userB)
}

// MarkThreadRead marks every unread message from senderID to receiverID
// as read and returns how many messages changed. Safe to call
// concurrently and repeatedly.
func (s *Store) MarkThreadRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	if receiverID == "" || senderID == "" {
		return 0, &ValidationError{Reason: "both participants are required"}
	}
	return s.repo.MarkThreadRead(ctx, receiverID, senderID)
}

// CountUnread counts unread messages addressed to the user across all
// counterparts.
func (s *Store) CountUnread(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, &ValidationError{Reason: "user is required"}
	}
	return s.repo.CountUnread(ctx, userID)
}
