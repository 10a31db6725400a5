// Package realtime pushes small notification messages to connected
// clients over websockets. Clients join named rooms after connecting;
// admin mutations publish to the shared admin room while employee and
// user rooms are per-identity.
package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// AdminRoom is the shared room every admin dashboard joins.
const AdminRoom = "admin-room"

// EmployeeRoom names the private room for one employee.
func EmployeeRoom(empID string) string { return "employee:" + empID }

// UserRoom names the private room for one user.
func UserRoom(userID string) string { return "user:" + userID }

// Message is one notification on the wire.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub tracks connected clients and their room memberships. Constructed
// once at startup and injected into the features that publish.
type Hub struct {
	log *zap.Logger

	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	clients map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:     log,
		rooms:   make(map[string]map[*Client]struct{}),
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.log.Info("websocket client connected",
		zap.String("client", c.id),
		zap.Int("total_clients", total))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	total := len(h.clients)
	// Closed under the write lock; BroadcastRoom sends under the read
	// lock, so a send can never overlap the close.
	close(c.send)
	h.mu.Unlock()

	h.log.Info("websocket client disconnected",
		zap.String("client", c.id),
		zap.Int("total_clients", total))
}

func (h *Hub) joinRoom(c *Client, room string) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	h.mu.Unlock()
	h.log.Info("websocket client joined room",
		zap.String("client", c.id),
		zap.String("room", room))
}

// BroadcastRoom delivers a message to every client in the room. Clients
// whose send buffer is full are skipped rather than blocking the caller.
// Sends happen under the read lock: unregister closes the send channel
// under the write lock, so no send can hit a closed channel.
func (h *Hub) BroadcastRoom(room string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("dropping message for slow websocket client",
				zap.String("room", room),
				zap.String("type", msg.Type))
		}
	}
}

// RoomSize reports the number of clients in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
