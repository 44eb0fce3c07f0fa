// Package stream publishes world snapshots to websocket clients and collects
// their interaction requests for the simulation driver.
package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"wavefloat/internal/sims/floating"
)

// Message types exchanged with clients.
const (
	TypeSnapshot = "snapshot"
	TypeError    = "error"
	TypeInteract = "interact"
	TypeReset    = "reset"
)

// ErrClosed is returned by Broadcast after Close.
var ErrClosed = errors.New("stream: hub closed")

// Envelope is the outbound message.
type Envelope struct {
	Type     string             `json:"type"`
	Snapshot *floating.Snapshot `json:"snapshot,omitempty"`
	Error    string             `json:"error,omitempty"`
}

type inbound struct {
	Type string `json:"type"`
	Zone string `json:"zone,omitempty"`
}

// Request is a client action the driver applies between steps.
type Request struct {
	Type string
	Zone floating.Interaction
}

// Hub tracks websocket clients. Writes to one connection are serialized by
// its own mutex; the client map has a separate lock.
type Hub struct {
	upgrader websocket.Upgrader
	requests chan Request

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	latest  *websocket.PreparedMessage
	closed  bool
}

// NewHub creates a hub whose request queue holds up to queue pending requests.
func NewHub(queue int) *Hub {
	if queue <= 0 {
		queue = 16
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		requests: make(chan Request, queue),
		clients:  make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Requests delivers client requests to the driver goroutine.
func (h *Hub) Requests() <-chan Request { return h.requests }

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the connection and reads requests until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("stream: upgrade: %v", err)
		return
	}
	defer conn.Close()

	lock := &sync.Mutex{}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.clients[conn] = lock
	latest := h.latest
	h.mu.Unlock()
	defer h.remove(conn)

	if latest != nil {
		lock.Lock()
		err := conn.WritePreparedMessage(latest)
		lock.Unlock()
		if err != nil {
			return
		}
	}

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("stream: read: %v", err)
			}
			return
		}
		req, err := parseRequest(msg)
		if err != nil {
			lock.Lock()
			_ = conn.WriteJSON(Envelope{Type: TypeError, Error: err.Error()})
			lock.Unlock()
			continue
		}
		select {
		case h.requests <- req:
		default:
			log.Printf("stream: request queue full, dropping %s", req.Type)
		}
	}
}

func parseRequest(msg inbound) (Request, error) {
	switch msg.Type {
	case TypeInteract:
		zone, err := floating.ParseInteraction(msg.Zone)
		if err != nil {
			return Request{}, err
		}
		return Request{Type: TypeInteract, Zone: zone}, nil
	case TypeReset:
		return Request{Type: TypeReset}, nil
	default:
		return Request{}, fmt.Errorf("stream: unknown message type %q", msg.Type)
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Broadcast encodes s once and sends it to every client. Clients that fail
// to receive it are disconnected.
func (h *Hub) Broadcast(s floating.Snapshot) error {
	data, err := json.Marshal(Envelope{Type: TypeSnapshot, Snapshot: &s})
	if err != nil {
		return fmt.Errorf("stream: encode snapshot: %w", err)
	}
	pm, err := websocket.NewPreparedMessage(websocket.TextMessage, data)
	if err != nil {
		return fmt.Errorf("stream: prepare snapshot: %w", err)
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	h.latest = pm
	targets := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for conn, lock := range h.clients {
		targets[conn] = lock
	}
	h.mu.Unlock()

	var failed []*websocket.Conn
	for conn, lock := range targets {
		lock.Lock()
		err := conn.WritePreparedMessage(pm)
		lock.Unlock()
		if err != nil {
			failed = append(failed, conn)
		}
	}
	for _, conn := range failed {
		h.remove(conn)
		_ = conn.Close()
	}
	return nil
}

// Close disconnects every client. Later connections are refused.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.clients = map[*websocket.Conn]*sync.Mutex{}
	h.mu.Unlock()

	var errs []error
	for _, conn := range conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
