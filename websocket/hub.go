package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matdaan/matdaan_backend/models"
)

// Message types sent over the results socket
const (
	MessageTypeConnected     = "connected"
	MessageTypeResultsUpdate = "results_update"
)

// Message is the envelope for everything sent over the results socket
type Message struct {
	Type      string      `json:"type"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ResultsSnapshot is one broadcast frame of the live counting feed
type ResultsSnapshot struct {
	ElectionID string               `json:"electionId"`
	Results    []models.PartyResult `json:"results"`
	AsOf       time.Time            `json:"asOf"`
}

// Client represents a connected results viewer
type Client struct {
	Conn *websocket.Conn
}

// Hub maintains the set of connected viewers and broadcasts result frames.
// The feed is public; no per-user routing is needed.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected viewers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastResults pushes a result snapshot to every connected viewer.
// Write failures are left for the reader goroutine to detect and unregister.
func (h *Hub) BroadcastResults(snapshot ResultsSnapshot) {
	msg := Message{
		Type:      MessageTypeResultsUpdate,
		Data:      snapshot,
		Timestamp: time.Now(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.Conn.WriteJSON(msg)
	}
}

// StartResultsFeed broadcasts a fresh snapshot on a fixed interval until the
// process exits. snapshotFn supplies the current frame.
func (h *Hub) StartResultsFeed(interval time.Duration, snapshotFn func() ResultsSnapshot) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if h.ClientCount() == 0 {
				continue
			}
			h.BroadcastResults(snapshotFn())
		}
	}()
}
