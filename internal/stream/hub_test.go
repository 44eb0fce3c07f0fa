package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"wavefloat/internal/sims/floating"
)

func dial(t *testing.T, h *Hub) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(h)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
		_ = h.Close()
		srv.Close()
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestInteractRequestsReachDriver(t *testing.T) {
	h := NewHub(4)
	conn, done := dial(t, h)
	defer done()

	if err := conn.WriteJSON(map[string]string{"type": "interact", "zone": "ne"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.WriteJSON(map[string]string{"type": "reset"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := []Request{{Type: TypeInteract, Zone: floating.NorthEast}, {Type: TypeReset}}
	for i, w := range want {
		select {
		case got := <-h.Requests():
			if got != w {
				t.Fatalf("request %d = %+v, want %+v", i, got, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("request %d not delivered", i)
		}
	}
}

func TestBadRequestGetsErrorReply(t *testing.T) {
	h := NewHub(4)
	conn, done := dial(t, h)
	defer done()

	if err := conn.WriteJSON(map[string]string{"type": "interact", "zone": "middle"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Type != TypeError || !strings.Contains(env.Error, "middle") {
		t.Fatalf("reply = %+v", env)
	}
	select {
	case req := <-h.Requests():
		t.Fatalf("invalid request forwarded: %+v", req)
	default:
	}
}

func TestBroadcastDeliversSnapshot(t *testing.T) {
	w, err := floating.New(floating.DefaultConfig())
	if err != nil {
		t.Fatalf("floating.New: %v", err)
	}
	w.Step(1.0 / 60)

	h := NewHub(4)
	conn, done := dial(t, h)
	defer done()
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	if err := h.Broadcast(w.Snapshot(false)); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Type != TypeSnapshot || env.Snapshot == nil {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Snapshot.Tick != 1 || env.Snapshot.Scene != "beachball" || len(env.Snapshot.Bodies) != 1 {
		t.Fatalf("snapshot = %+v", env.Snapshot)
	}
}

func TestLateClientReceivesLatestSnapshot(t *testing.T) {
	w, err := floating.New(floating.DefaultConfig())
	if err != nil {
		t.Fatalf("floating.New: %v", err)
	}
	h := NewHub(4)
	if err := h.Broadcast(w.Snapshot(false)); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	conn, done := dial(t, h)
	defer done()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Type != TypeSnapshot {
		t.Fatalf("first message = %+v", env)
	}
}

func TestCloseDisconnectsClients(t *testing.T) {
	h := NewHub(4)
	conn, done := dial(t, h)
	defer done()
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if h.ClientCount() != 0 {
		t.Fatalf("clients = %d after close", h.ClientCount())
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected read error after hub close")
	}
	if err := h.Broadcast(floating.Snapshot{}); err != ErrClosed {
		t.Fatalf("Broadcast after close = %v, want ErrClosed", err)
	}
}
