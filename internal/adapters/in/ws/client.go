package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"planboard/internal/core/domain/model/kernel"
)

const (
	// writeWait bounds a single frame write to a peer.
	writeWait = 10 * time.Second

	// pongWait is how long a connection may stay silent before it is
	// considered dead.
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait so pings keep the read
	// deadline alive.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps inbound frames; viewers only send pings and
	// small acks.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection of one board viewer. A user may hold
// several connections (multiple tabs); each gets its own Client.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	userID      kernel.UUID
	displayName string
	logger      *slog.Logger
}

// Serve upgrades the request to a websocket, registers the connection with
// the hub and starts its pumps. The caller resolves the viewer identity
// before calling.
func Serve(hub *Hub, w http.ResponseWriter, r *http.Request, userID kernel.UUID, displayName string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		userID:      userID,
		displayName: displayName,
		logger:      hub.logger.With("user_id", userID.String()),
	}

	hub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}

// readPump drains the connection until it closes. Viewers do not issue
// commands over the socket; reading only services control frames and detects
// disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("viewer connection closed unexpectedly", "error", err)
			}
			return
		}
	}
}

// writePump pushes hub events to the peer and keeps the connection alive
// with pings. A closed send channel means the hub dropped this connection.
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
