package realtime

import (
	"fmt"
	"log"
	"sync"

	"github.com/nats-io/nats.go"
)

// Bridge fans events out across instances over NATS. Each instance
// subscribes to the per-user subjects of its connected users, so an event
// published anywhere reaches whichever instance holds the connection.
type Bridge struct {
	nc  *nats.Conn
	hub *Hub

	mu   sync.Mutex
	subs map[string]*nats.Subscription
}

// NewBridge connects to NATS and prepares per-user fanout for the hub.
func NewBridge(url string, hub *Hub) (*Bridge, error) {
	nc, err := nats.Connect(url, nats.Name("mentorin-dm"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Bridge{
		nc:   nc,
		hub:  hub,
		subs: make(map[string]*nats.Subscription),
	}, nil
}

// Close drains the NATS connection.
func (b *Bridge) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}

// userSubject generates the NATS subject for a user's event stream.
func userSubject(userID string) string {
	return "dm.user." + userID
}

// Publish sends raw event bytes to the user's subject.
func (b *Bridge) Publish(userID string, data []byte) error {
	return b.nc.Publish(userSubject(userID), data)
}

// Subscribe starts delivering the user's subject to the local hub.
// Subscribing twice for the same user is a no-op.
func (b *Bridge) Subscribe(userID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[userID]; ok {
		return nil
	}

	sub, err := b.nc.Subscribe(userSubject(userID), func(msg *nats.Msg) {
		b.hub.deliverLocal(userID, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", userSubject(userID), err)
	}

	b.subs[userID] = sub
	return nil
}

// Unsubscribe stops delivery for a disconnected user.
func (b *Bridge) Unsubscribe(userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[userID]; ok {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe %s: %v", userID, err)
		}
		delete(b.subs, userID)
	}
}
