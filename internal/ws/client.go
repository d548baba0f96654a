package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lukemay/quizroom-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Ping interval; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size
	maxMessageSize = 64 * 1024

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one websocket connection. Its ID is the connection identity
// used as the player key everywhere in the engine.
type Client struct {
	ID   model.PlayerID
	conn *websocket.Conn
	send chan []byte

	// hubs this client has joined; only touched from the client's own
	// read loop
	hubs map[*Hub]struct{}

	logger *slog.Logger
}

// NewClient creates a client for an upgraded connection
func NewClient(id model.PlayerID, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		ID:     id,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		hubs:   make(map[*Hub]struct{}),
		logger: logger.With(slog.String("conn_id", string(id))),
	}
}

// joinHub registers the client with a hub, once
func (c *Client) joinHub(hub *Hub) {
	if _, ok := c.hubs[hub]; ok {
		return
	}
	hub.Register(c)
	c.hubs[hub] = struct{}{}
}

// leaveHubs unregisters the client from every hub it joined
func (c *Client) leaveHubs() {
	for hub := range c.hubs {
		hub.Unregister(c)
	}
	c.hubs = make(map[*Hub]struct{})
}

// writePump forwards queued messages to the peer and keeps the connection
// alive with pings. One writePump runs per connection; it exits when the
// send channel is closed or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
