package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"bizmatch/internal/domain/entity"
	"bizmatch/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
	eventBuffer    = 64
)

// Client represents one WebSocket connection of a user
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
	}
}

// Manager routes lifecycle events to the connections of their recipients.
// A user may hold several connections at once.
type Manager struct {
	clients map[string]map[*Client]struct{}
	mutex   sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (m *Manager) Register(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.clients[client.UserID] == nil {
		m.clients[client.UserID] = make(map[*Client]struct{})
	}
	m.clients[client.UserID][client] = struct{}{}
	logger.Debug("Client registered: %s", client.UserID)
}

// Unregister removes the client and closes its send channel. Unknown clients are ignored.
func (m *Manager) Unregister(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	conns, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}
	delete(conns, client)
	close(client.Send)
	if len(conns) == 0 {
		delete(m.clients, client.UserID)
	}
	logger.Debug("Client unregistered: %s", client.UserID)
}

// SendToUser queues message on every connection of userID and returns how many accepted it.
// A connection whose buffer is full is dropped.
func (m *Manager) SendToUser(userID string, message []byte) int {
	m.mutex.RLock()
	conns := make([]*Client, 0, len(m.clients[userID]))
	for c := range m.clients[userID] {
		conns = append(conns, c)
	}
	m.mutex.RUnlock()

	delivered := 0
	for _, c := range conns {
		select {
		case c.Send <- message:
			delivered++
		default:
			logger.Warn("Dropping slow websocket client for user %s", userID)
			m.Unregister(c)
		}
	}
	return delivered
}

func (m *Manager) ConnectedUsers() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// Run forwards events from the bus until ctx is cancelled. subscribe registers a fresh channel;
// when the bus drops it, Run subscribes again.
func (m *Manager) Run(ctx context.Context, subscribe func(chan<- entity.Event)) error {
	for {
		events := make(chan entity.Event, eventBuffer)
		subscribe(events)

		if done := m.forward(ctx, events); done {
			m.closeAll()
			return nil
		}
		logger.Warn("Websocket manager was unsubscribed from the event bus, resubscribing")
	}
}

func (m *Manager) forward(ctx context.Context, events <-chan entity.Event) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case e, ok := <-events:
			if !ok {
				return ctx.Err() != nil
			}
			m.deliver(e)
		}
	}
}

func (m *Manager) deliver(e entity.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		logger.Error("Failed to encode %s event: %v", e.Type, err)
		return
	}
	for _, userID := range e.Recipients {
		m.SendToUser(userID, payload)
	}
}

func (m *Manager) closeAll() {
	m.mutex.RLock()
	var all []*Client
	for _, conns := range m.clients {
		for c := range conns {
			all = append(all, c)
		}
	}
	m.mutex.RUnlock()

	for _, c := range all {
		m.Unregister(c)
	}
}

// ReadPump drains the connection so pongs and close frames are processed. Client payloads are ignored.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error for %s: %v", c.UserID, err)
			}
			return
		}
	}
}

// WritePump writes queued events and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("Websocket write error for %s: %v", c.UserID, err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
