package events

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	sendBuffer    = 64
	replayDefault = 256
	writeTimeout  = 10 * time.Second
)

// Hub fans vault events out to websocket subscribers. It keeps a bounded
// replay ring of recent events so a late subscriber sees recent history
// before live traffic.
type Hub struct {
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	seq    uint64
	recent *lru.Cache[uint64, Event]
	closed bool
}

type subscriber struct {
	conn *websocket.Conn
	send chan Event
	done chan struct{}
}

// NewHub creates a hub retaining up to replaySize recent events.
func NewHub(replaySize int) (*Hub, error) {
	if replaySize <= 0 {
		replaySize = replayDefault
	}
	recent, err := lru.New[uint64, Event](replaySize)
	if err != nil {
		return nil, err
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs:   make(map[*subscriber]struct{}),
		recent: recent,
	}, nil
}

// Publish assigns the event a sequence number, stores it in the replay
// ring and delivers it to every live subscriber. Slow subscribers are
// dropped rather than allowed to block the vault.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.seq++
	ev.Seq = h.seq
	h.recent.Add(ev.Seq, ev)

	var stale []*subscriber
	for sub := range h.subs {
		select {
		case sub.send <- ev:
		default:
			stale = append(stale, sub)
		}
	}
	for _, sub := range stale {
		delete(h.subs, sub)
		close(sub.done)
	}
	h.mu.Unlock()
}

// ServeHTTP upgrades the request and streams events until the client
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("events: websocket upgrade failed: %v", err)
		return
	}

	sub := &subscriber{
		conn: conn,
		send: make(chan Event, sendBuffer),
		done: make(chan struct{}),
	}

	// Queue the replay backlog before going live.
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	for _, key := range h.recent.Keys() {
		if ev, ok := h.recent.Peek(key); ok {
			select {
			case sub.send <- ev:
			default:
			}
		}
	}
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(sub)
	go h.readLoop(sub)
}

func (h *Hub) writeLoop(sub *subscriber) {
	defer sub.conn.Close()

	for {
		select {
		case <-sub.done:
			return
		case ev := <-sub.send:
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			sub.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := sub.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.drop(sub)
				return
			}
		}
	}
}

// readLoop drains client frames so pings and close messages are handled.
func (h *Hub) readLoop(sub *subscriber) {
	defer h.drop(sub)
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.done)
	}
}

// Close disconnects all subscribers and stops accepting new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.done)
		sub.conn.Close()
	}
}

var _ Publisher = (*Hub)(nil)
