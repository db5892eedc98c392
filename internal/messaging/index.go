package messaging

import (
	"context"
	"sort"

	"mentorin/server/internal/models"
)

// Index derives per-user conversation lists from the message store.
// Conversations are recomputed on every call; nothing here is cached or
// persisted, so the list can never drift from the messages themselves.
type Index struct {
	repo Repository
}

// NewIndex creates a conversation index over the given repository.
func NewIndex(repo Repository) *Index {
	return &Index{repo: repo}
}

type conversationGroup struct {
	last   *models.Message
	unread int
}

// ListConversations groups all of the user's messages by counterpart and
// returns one Conversation per counterpart: latest message as preview,
// per-counterpart unread count, sorted by most recent activity first.
// Equal timestamps fall back to counterpart ID so the order is stable.
func (ix *Index) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	if userID == "" {
		return nil, &ValidationError{Reason: "user is required"}
	}

	messages, err := ix.repo.MessagesInvolving(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*conversationGroup)
	for i := range messages {
		m := &messages[i]
		counterpartID := m.CounterpartID(userID)

		group, ok := groups[counterpartID]
		if !ok {
			group = &conversationGroup{}
			groups[counterpartID] = group
		}
		if group.last == nil || m.CreatedAt.After(group.last.CreatedAt) ||
			(m.CreatedAt.Equal(group.last.CreatedAt) && m.Seq > group.last.Seq) {
			group.last = m
		}
		if m.ReceiverID == userID && !m.IsRead {
			group.unread++
		}
	}

	counterpartIDs := make([]string, 0, len(groups))
	for id := range groups {
		counterpartIDs = append(counterpartIDs, id)
	}
	users, err := ix.repo.UsersByID(ctx, counterpartIDs)
	if err != nil {
		return nil, err
	}

	conversations := make([]models.Conversation, 0, len(groups))
	for counterpartID, group := range groups {
		conv := models.Conversation{
			UserID:          counterpartID,
			LastMessage:     group.last.Content,
			LastMessageTime: group.last.CreatedAt,
			UnreadCount:     group.unread,
		}
		if user, ok := users[counterpartID]; ok {
			conv.UserName = user.Name
			conv.UserRole = user.Role
			conv.ProfilePhoto = user.ProfilePhoto
		} else {
			// Directory entry gone; fall back to the send-time snapshot.
			conv.UserName, conv.UserRole = group.last.CounterpartIdentity(userID)
		}
		conversations = append(conversations, conv)
	}

	sort.Slice(conversations, func(i, j int) bool {
		if conversations[i].LastMessageTime.Equal(conversations[j].LastMessageTime) {
			return conversations[i].UserID < conversations[j].UserID
		}
		return conversations[i].LastMessageTime.After(conversations[j].LastMessageTime)
	})
	return conversations, nil
}
