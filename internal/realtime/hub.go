package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"mentorin/server/internal/models"
)

// Hub maintains the set of active clients and routes events to them.
// It also implements messaging.Notifier so the facade can push
// message_new and thread_read events as they happen.
type Hub struct {
	// Registered clients mapped by user ID
	Clients map[string]*Client

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Optional cross-instance fanout. When set, events go through NATS
	// and come back via the per-user subscription.
	bridge *Bridge

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// AttachBridge enables NATS fanout for multi-instance deployments.
// Must be called before Run.
func (h *Hub) AttachBridge(b *Bridge) {
	h.bridge = b
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// One connection per user; a newer login wins.
	if existing, ok := h.Clients[client.ID]; ok {
		close(existing.Send)
	}
	h.Clients[client.ID] = client

	if h.bridge != nil {
		if err := h.bridge.Subscribe(client.ID); err != nil {
			log.Printf("Failed to subscribe %s: %v", client.ID, err)
		}
	}

	log.Printf("Client connected: %s", client.ID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Only drop the mapping if this client still owns it; a replacement
	// connection may have taken over already.
	if current, ok := h.Clients[client.ID]; ok && current == client {
		delete(h.Clients, client.ID)
		close(client.Send)

		if h.bridge != nil {
			h.bridge.Unsubscribe(client.ID)
		}

		log.Printf("Client disconnected: %s", client.ID)
	}
}

// MessageCreated implements messaging.Notifier.
func (h *Hub) MessageCreated(msg *models.Message, receiverUnread int) {
	h.send(msg.ReceiverID, WSMessage{
		Type:      EventMessageNew,
		Payload:   MessagePayload{Message: msg, UnreadCount: receiverUnread},
		Timestamp: time.Now(),
	})
}

// ThreadRead implements messaging.Notifier.
func (h *Hub) ThreadRead(readerID, senderID string) {
	h.send(senderID, WSMessage{
		Type:      EventThreadRead,
		Payload:   ThreadReadPayload{ReaderID: readerID, SenderID: senderID},
		Timestamp: time.Now(),
	})
}

// send routes an event to a user: through NATS when bridged (the
// instance holding the user's connection delivers it), directly when not.
func (h *Hub) send(userID string, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal event: %v", err)
		return
	}

	if h.bridge != nil {
		if err := h.bridge.Publish(userID, data); err != nil {
			log.Printf("Failed to publish event for %s: %v", userID, err)
		}
		return
	}
	h.deliverLocal(userID, data)
}

// deliverLocal hands raw event bytes to the user's connection on this
// instance, if any. Best-effort: a full send buffer drops the event.
func (h *Hub) deliverLocal(userID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.Clients[userID]; ok {
		select {
		case client.Send <- data:
		default:
			log.Printf("Failed to send event to client: %s", userID)
		}
	}
}

// IsUserOnline checks if a user is currently connected
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.Clients[userID]
	return ok
}

// GetOnlineUsers returns a list of currently online user IDs
func (h *Hub) GetOnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userIDs := make([]string, 0, len(h.Clients))
	for userID := range h.Clients {
		userIDs = append(userIDs, userID)
	}
	return userIDs
}

// GetOnlineCount returns the number of currently connected clients
func (h *Hub) GetOnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.Clients)
}
