package websockets

import (
	"sync"

	"go.uber.org/zap"
)

// Hub fans console events out to connected clients. Clients may subscribe to
// a specific station to receive only that station's inventory updates.
//
// The Run loop and HTTP handler goroutines both mutate hub state, so every
// map access goes through mu.
type Hub struct {
	mu sync.Mutex

	clients map[*Client]bool

	stationChannels map[string]map[*Client]bool

	// closed marks clients whose send channel was shut after they fell
	// behind, so a late subscribe or ping reply cannot deliver into a
	// closed channel.
	closed map[*Client]bool

	register chan *Client

	unregister chan *Client

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		clients:         make(map[*Client]bool),
		stationChannels: make(map[string]map[*Client]bool),
		closed:          make(map[*Client]bool),
		log:             log,
	}
}

func (h *Hub) RegisterStationClient(client *Client, stationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed[client] {
		return
	}
	if _, ok := h.stationChannels[stationID]; !ok {
		h.stationChannels[stationID] = make(map[*Client]bool)
	}
	h.stationChannels[stationID][client] = true
}

// BroadcastToStation delivers a message to the station's subscribers only.
// Subscribers whose buffer is full are dropped.
func (h *Hub) BroadcastToStation(stationID string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.stationChannels[stationID] {
		h.deliverLocked(client, message)
	}
}

// Send queues a message for one client. A client the hub already dropped is
// skipped rather than written to.
func (h *Hub) Send(client *Client, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed[client] {
		return
	}
	h.deliverLocked(client, message)
}

// deliverLocked requires h.mu and an open client.send; anything still present
// in clients or stationChannels satisfies that.
func (h *Hub) deliverLocked(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		h.dropLocked(client)
	}
}

// dropLocked closes the client's send channel once and removes it from every
// map. The closed mark stays until the client unregisters.
func (h *Hub) dropLocked(client *Client) {
	if !h.closed[client] {
		h.closed[client] = true
		close(client.send)
	}
	delete(h.clients, client)
	for _, clients := range h.stationChannels {
		delete(clients, client)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.dropLocked(client)
			// The client's pumps have exited; forget it entirely.
			delete(h.closed, client)
			h.mu.Unlock()
		}
	}
}
