package messaging

import (
	"context"

	"mentorin/server/internal/models"
)

// Notifier receives messaging events for realtime delivery. Delivery is
// best-effort; implementations must not block and must not fail the
// operation that produced the event.
type Notifier interface {
	// MessageCreated fires after a message is stored. receiverUnread is
	// the receiver's fresh unread total, for badge updates.
	MessageCreated(msg *models.Message, receiverUnread int)

	// ThreadRead fires after readerID marked senderID's messages read.
	ThreadRead(readerID, senderID string)
}

// Service is the messaging facade: the single entry point request
// handlers call. It composes the store, the conversation index, and the
// directory search. Every operation fails independently; a failed unread
// count says nothing about the conversation list.
type Service struct {
	store     *Store
	index     *Index
	directory *Directory
	notifier  Notifier
}

// NewService wires the messaging subsystem on top of a repository.
// notifier may be nil when no realtime channel is configured.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		store:     NewStore(repo),
		index:     NewIndex(repo),
		directory: NewDirectory(repo),
		notifier:  notifier,
	}
}

// OpenConversation returns the full thread between the user and the
// counterpart. Opening a thread marks the user's inbound messages read
// first, so the returned messages reflect their post-view state.
func (s *Service) OpenConversation(ctx context.Context, userID, counterpartID string) ([]models.Message, error) {
	marked, err := s.store.MarkThreadRead(ctx, userID, counterpartID)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.ThreadBetween(ctx, userID, counterpartID)
	if err != nil {
		return nil, err
	}
	if marked > 0 && s.notifier != nil {
		s.notifier.ThreadRead(userID, counterpartID)
	}
	return messages, nil
}

// Send stores a new message and notifies the realtime channel. Callers
// re-fetch Conversations and UnreadBadge to refresh derived views; the
// facade pushes nothing into its own responses.
func (s *Service) Send(ctx context.Context, in SendInput) (*models.Message, error) {
	msg, err := s.store.Send(ctx, in)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		unread, err := s.store.CountUnread(ctx, msg.ReceiverID)
		if err != nil {
			// The message is stored; a stale badge is the lesser failure.
			unread = 0
		}
		s.notifier.MessageCreated(msg, unread)
	}
	return msg, nil
}

// Conversations returns the user's conversation list, most recent first.
func (s *Service) Conversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.index.ListConversations(ctx, userID)
}

// UnreadBadge returns the user's total unread message count.
func (s *Service) UnreadBadge(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnread(ctx, userID)
}

// SearchRecipients finds candidate recipients for a new conversation.
func (s *Service) SearchRecipients(ctx context.Context, query, excludeUserID string) ([]models.UserSearchResult, error) {
	return s.directory.Search(ctx, query, excludeUserID)
}
