package messaging

import (
	"context"
	"sort"
	"strings"
	"sync"

	"mentorin/server/internal/models"
)

// MemoryRepository is an in-memory Repository used by tests and local
// development. It mirrors the Postgres implementation's semantics:
// ascending (createdAt, seq) ordering and idempotent read-marking.
type MemoryRepository struct {
	mu       sync.RWMutex
	users    map[string]models.User
	messages []models.Message
	seq      int64
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

// AddUser seeds a directory entry. Not part of the Repository contract.
func (r *MemoryRepository) AddUser(user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

func (r *MemoryRepository) InsertMessage(ctx context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	msg.Seq = r.seq
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *MemoryRepository) MessagesBetween(ctx context.Context, userA, userB string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := []models.Message{}
	for _, m := range r.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			matches = append(matches, m)
		}
	}
	sortMessages(matches)
	return matches, nil
}

func (r *MemoryRepository) MessagesInvolving(ctx context.Context, userID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := []models.Message{}
	for _, m := range r.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			matches = append(matches, m)
		}
	}
	sortMessages(matches)
	return matches, nil
}

func sortMessages(messages []models.Message) {
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].Seq < messages[j].Seq
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}

func (r *MemoryRepository) MarkThreadRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changed int64
	for i := range r.messages {
		m := &r.messages[i]
		if m.ReceiverID == receiverID && m.SenderID == senderID && !m.IsRead {
			m.IsRead = true
			changed++
		}
	}
	return changed, nil
}

func (r *MemoryRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.messages {
		if m.ReceiverID == userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *MemoryRepository) UsersByID(ctx context.Context, ids []string) (map[string]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users[id] = user
		}
	}
	return users, nil
}

func (r *MemoryRepository) SearchUsers(ctx context.Context, query, excludeUserID string, limit int) ([]models.UserSearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	results := []models.UserSearchResult{}
	for _, user := range r.users {
		if user.ID == excludeUserID {
			continue
		}
		if strings.Contains(strings.ToLower(user.Name), needle) ||
			strings.Contains(strings.ToLower(user.Email), needle) {
			results = append(results, user.ToSearchResult())
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Name == results[j].Name {
			return results[i].ID < results[j].ID
		}
		return results[i].Name < results[j].Name
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
