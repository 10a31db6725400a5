// internal/app/realtime/client.go
package realtime

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Join message types clients send after connecting. Joins are not
// authenticated; see the deployment notes before exposing the endpoint
// beyond trusted origins.
const (
	joinAdminType    = "join_admin"
	joinEmployeeType = "join_employee"
	joinUserType     = "join_user"
)

type joinRequest struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// Client is the middleman between one websocket connection and the hub.
// The id ties together the log lines for one connection's lifetime.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request and starts the client's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &Client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan Message, 256),
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

// readPump consumes join requests from the connection until it closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req joinRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("unexpected websocket close", zap.Error(err))
			}
			return
		}

		switch req.Type {
		case joinAdminType:
			c.hub.joinRoom(c, AdminRoom)
		case joinEmployeeType:
			if req.ID != "" {
				c.hub.joinRoom(c, EmployeeRoom(req.ID))
			}
		case joinUserType:
			if req.ID != "" {
				c.hub.joinRoom(c, UserRoom(req.ID))
			}
		}
	}
}

// writePump delivers hub messages and keepalive pings to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
