package stream

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/julianpalmerio/minivenmo/internal/logger"
	"github.com/julianpalmerio/minivenmo/internal/models"
	"github.com/julianpalmerio/minivenmo/internal/observability/metrics"
	"github.com/julianpalmerio/minivenmo/internal/service/feed"
)

// Hub fans freshly recorded feed events out to websocket subscribers.
// Push only: subscribers never send anything except control frames.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{} // subscribers by username
	log     logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		log:     log,
	}
}

// Subscribe attaches conn to the feed of username and starts its pumps.
// The hub owns the connection from here on.
func (h *Hub) Subscribe(username string, conn *websocket.Conn) *Client {
	c := &Client{
		hub:      h,
		conn:     conn,
		username: username,
		send:     make(chan []byte, sendQueueSize),
	}

	h.mu.Lock()
	if h.clients[username] == nil {
		h.clients[username] = make(map[*Client]struct{})
	}
	h.clients[username][c] = struct{}{}
	h.mu.Unlock()

	metrics.FeedStreamClients.Inc()
	h.log.Debug("feed subscriber connected", "username", username)

	c.start()
	return c
}

// Notify implements the services' Notifier: it renders the event and pushes
// it to every subscriber of username. Slow subscribers are dropped.
func (h *Hub) Notify(username string, event models.FeedEvent) {
	message := marshalEvent(event)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[username] {
		select {
		case c.send <- message:
		default:
			h.log.Warn("feed subscriber too slow, dropping", "username", username)
			go c.Close()
		}
	}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.clients[c.username]
	if !ok {
		return
	}
	if _, ok := subs[c]; !ok {
		return
	}

	delete(subs, c)
	if len(subs) == 0 {
		delete(h.clients, c.username)
	}

	metrics.FeedStreamClients.Dec()
	h.log.Debug("feed subscriber disconnected", "username", c.username)
}

func marshalEvent(e models.FeedEvent) []byte {
	amount, _ := e.Amount.Float64()

	msg := struct {
		Type      string    `json:"type"`
		Line      string    `json:"line"`
		Actor     string    `json:"actor"`
		Target    string    `json:"target"`
		Amount    float64   `json:"amount,omitempty"`
		Note      string    `json:"note,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}{
		Type:      e.Type,
		Line:      feed.RenderEvent(e),
		Actor:     e.Actor,
		Target:    e.Target,
		Amount:    amount,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}

	// Marshalling a struct of plain fields can't fail
	b, _ := json.Marshal(msg)
	return b
}
