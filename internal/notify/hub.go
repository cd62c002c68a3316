package notify

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub fans session updates out to websocket observers grouped into
// per-session rooms. It implements Notifier.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]struct{}
	log   *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
	}
}

// Join registers a client as an observer of one session.
func (h *Hub) Join(sessionID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[sessionID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[sessionID] = room
	}
	room[c] = struct{}{}
}

// Leave removes a client from a session's room, dropping the room when it
// empties.
func (h *Hub) Leave(sessionID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[sessionID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, sessionID)
	}
}

// Observers reports the number of clients watching a session.
func (h *Hub) Observers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[sessionID])
}

// Publish sends the payload to every observer of the session. Send errors
// are logged and the failing client is dropped from the room.
func (h *Hub) Publish(sessionID string, payload []byte) {
	h.mu.Lock()
	room := h.rooms[sessionID]
	clients := make([]*Client, 0, len(room))
	for c := range room {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.Send(payload); err != nil {
			h.log.Warn("dropping unreachable observer",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			h.Leave(sessionID, c)
			c.Close()
		}
	}
}

// Client wraps one observer connection. Writes are serialized; tests can
// replace the websocket with a send hook.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
	hook func([]byte) error
}

// NewClient wraps a websocket connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// NewClientWithHook builds a client that delivers through fn instead of a
// socket (used in tests).
func NewClientWithHook(fn func([]byte) error) *Client {
	return &Client{hook: fn}
}

// Send delivers one payload to the observer.
func (c *Client) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hook != nil {
		return c.hook(payload)
	}
	if c.conn == nil {
		return nil
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Close closes the underlying connection, if any.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
