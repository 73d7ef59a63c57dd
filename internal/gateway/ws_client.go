package gateway

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"bedmatch/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements Client over a gorilla/websocket connection.
type WebSocketClient struct {
	ConnID   string
	User     string
	UserRole string
	Socket   *websocket.Conn
	Hub      *Hub
	Router   *Router
	Send     chan models.OutboundMessage

	Kind string // endpoint purpose: interest, appointments, chat, dashboard

	mu     sync.Mutex
	groups []string
}

func (c *WebSocketClient) ChannelID() string { return c.ConnID }
func (c *WebSocketClient) UserID() string    { return c.User }
func (c *WebSocketClient) Role() string      { return c.UserRole }
func (c *WebSocketClient) Purpose() string   { return c.Kind }

func (c *WebSocketClient) SendChannel() chan<- models.OutboundMessage { return c.Send }

func (c *WebSocketClient) Groups() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.groups...)
}

func (c *WebSocketClient) AddGroup(group string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range c.groups {
		if g == group {
			return false
		}
	}
	c.groups = append(c.groups, group)
	return true
}

// Run starts the pumps for this connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the Send channel, which stops writePump.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

func (c *WebSocketClient) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		c.Hub.UnregisterCh <- c
		c.Socket.Close()
	}()

	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		// The pong doubles as the liveness beat for every joined group.
		c.Hub.Registry.Touch(ctx, c.Groups())
		return nil
	})

	for {
		_, raw, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var msg models.InboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(models.Error("", "invalid JSON message"))
			continue
		}

		// Every inbound message gets exactly one direct reply; side-band
		// notifications to other parties go through the dispatcher.
		c.reply(c.Router.HandleMessage(ctx, c, msg))
	}
}

func (c *WebSocketClient) reply(msg models.OutboundMessage) {
	select {
	case c.Send <- msg:
	default:
		log.Printf("WARNING: reply dropped for slow connection %s", c.ConnID)
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Socket.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Socket.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("Error encoding JSON for connection %s: %v", c.ConnID, err)
				continue
			}

			w, err := c.Socket.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)
			w.Write([]byte{'\n'})

			// Drain whatever else is queued into the same frame batch.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				extra, _ := json.Marshal(next)
				w.Write(extra)
				w.Write([]byte{'\n'})
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
