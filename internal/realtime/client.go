package realtime

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// Client represents a WebSocket client connection
type Client struct {
	ID   string // User ID
	Name string
	Conn *websocket.Conn
	Hub  *Hub
	Send chan []byte
}

// NewClient creates a new WebSocket client
func NewClient(userID, name string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:   userID,
		Name: name,
		Conn: conn,
		Hub:  hub,
		Send: make(chan []byte, 256),
	}
}

// ReadPump handles incoming messages from the client
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var incoming IncomingMessage
		if err := json.Unmarshal(message, &incoming); err != nil {
			log.Printf("Failed to parse message: %v", err)
			continue
		}

		c.handleIncomingMessage(incoming)
	}
}

// WritePump handles outgoing messages to the client
func (c *Client) WritePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Write error: %v", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleIncomingMessage processes different types of incoming messages.
// Clients only ever push typing indicators; everything else goes through
// the HTTP API.
func (c *Client) handleIncomingMessage(msg IncomingMessage) {
	switch msg.Type {
	case EventTypingStart, EventTypingStop:
		c.relayTyping(msg.Type, msg.Payload)
	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}

// relayTyping forwards a typing indicator to the counterpart.
func (c *Client) relayTyping(event EventType, payload map[string]interface{}) {
	counterpartID, _ := payload["counterpartId"].(string)
	if counterpartID == "" || counterpartID == c.ID {
		return
	}

	c.Hub.send(counterpartID, WSMessage{
		Type: event,
		Payload: TypingPayload{
			UserID:        c.ID,
			CounterpartID: counterpartID,
			UserName:      c.Name,
		},
		Timestamp: time.Now(),
	})
}
