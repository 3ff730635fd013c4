package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newWSTestServer(t *testing.T) (*WSHandler, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewWSHandler()
	router := gin.New()
	// Stand-in for AuthMiddleware: the user comes from the query string
	router.GET("/ws", func(c *gin.Context) {
		c.Set("user_id", c.Query("user"))
		h.HandleWS(c)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return h, srv
}

func dialWS(t *testing.T, srv *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial for %s failed: %v", user, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSessions(t *testing.T, h *WSHandler, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.M.Len() < want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d sessions, have %d", want, h.M.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readSignal(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var signal struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &signal); err != nil {
		t.Fatalf("signal is not JSON: %s", msg)
	}
	return signal.Type
}

// Sessions upgraded at the same instant must each keep their own user tag;
// a broadcast for one user must never reach another user's connection.
func TestBroadcastUpdateIsolatesConcurrentUsers(t *testing.T) {
	h, srv := newWSTestServer(t)

	var wg sync.WaitGroup
	conns := make(map[string]*websocket.Conn)
	var mu sync.Mutex
	for _, user := range []string{"user-a", "user-b"} {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			conn := dialWS(t, srv, user)
			mu.Lock()
			conns[user] = conn
			mu.Unlock()
		}(user)
	}
	wg.Wait()
	waitForSessions(t, h, 2)

	h.BroadcastUpdate("user-a", "transaction_created")
	h.BroadcastUpdate("user-b", "budget_updated")

	if got := readSignal(t, conns["user-a"]); got != "transaction_created" {
		t.Fatalf("user-a received %q, want transaction_created", got)
	}
	if got := readSignal(t, conns["user-b"]); got != "budget_updated" {
		t.Fatalf("user-b received %q, want budget_updated", got)
	}

	// Neither connection may carry the other's signal
	for user, conn := range conns {
		conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		if _, msg, err := conn.ReadMessage(); err == nil {
			t.Fatalf("%s received an extra signal: %s", user, msg)
		}
	}
}

func TestBroadcastUpdateReachesAllSessionsOfOneUser(t *testing.T) {
	h, srv := newWSTestServer(t)

	first := dialWS(t, srv, "user-a")
	second := dialWS(t, srv, "user-a")
	waitForSessions(t, h, 2)

	h.BroadcastUpdate("user-a", "chat_message")

	if got := readSignal(t, first); got != "chat_message" {
		t.Fatalf("first session received %q, want chat_message", got)
	}
	if got := readSignal(t, second); got != "chat_message" {
		t.Fatalf("second session received %q, want chat_message", got)
	}
}
