package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// dial connects a test websocket client to a hub-backed server.
func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForRoom(t *testing.T, h *Hub, room string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.RoomSize(room) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room %q size = %d, want %d", room, h.RoomSize(room), want)
}

func TestJoinAndBroadcastRoom(t *testing.T) {
	h := NewHub(zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()

	admin := dial(t, srv)
	user := dial(t, srv)

	if err := admin.WriteJSON(joinRequest{Type: "join_admin"}); err != nil {
		t.Fatalf("join admin: %v", err)
	}
	if err := user.WriteJSON(joinRequest{Type: "join_user", ID: "u42"}); err != nil {
		t.Fatalf("join user: %v", err)
	}

	waitForRoom(t, h, AdminRoom, 1)
	waitForRoom(t, h, UserRoom("u42"), 1)

	h.BroadcastRoom(AdminRoom, Message{Type: "movie_added", Data: map[string]string{"title": "Dune"}})

	admin.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Message
	if err := admin.ReadJSON(&got); err != nil {
		t.Fatalf("admin read: %v", err)
	}
	if got.Type != "movie_added" {
		t.Errorf("admin received type %q, want movie_added", got.Type)
	}

	// The user room must not receive admin-room traffic.
	user.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var leak Message
	if err := user.ReadJSON(&leak); err == nil {
		t.Errorf("user received admin-room message: %+v", leak)
	}
}

func TestDisconnectLeavesRooms(t *testing.T) {
	h := NewHub(zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()

	emp := dial(t, srv)
	if err := emp.WriteJSON(joinRequest{Type: "join_employee", ID: "EMP00000042"}); err != nil {
		t.Fatalf("join employee: %v", err)
	}
	waitForRoom(t, h, EmployeeRoom("EMP00000042"), 1)

	emp.Close()
	waitForRoom(t, h, EmployeeRoom("EMP00000042"), 0)
}

func TestBroadcastDuringDisconnect(t *testing.T) {
	h := NewHub(zap.NewNop())

	// Standing members with full buffers so every broadcast walks the room.
	for i := 0; i < 50; i++ {
		c := &Client{id: "standing", hub: h, send: make(chan Message)}
		h.register(c)
		h.joinRoom(c, AdminRoom)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			c := &Client{id: "churn", hub: h, send: make(chan Message, 1)}
			h.register(c)
			h.joinRoom(c, AdminRoom)
			h.unregister(c)
		}
	}()

	// A send racing a disconnect must never hit a closed channel.
	for broadcasting := true; broadcasting; {
		select {
		case <-done:
			broadcasting = false
		default:
			h.BroadcastRoom(AdminRoom, Message{Type: "movie_added"})
		}
	}
}
