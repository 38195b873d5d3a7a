package hub

import (
	"encoding/json"
	"sync"
)

// Event types published through the hub.
const (
	EventTeamMessage = "team_message"
)

// Event is a real-time event fanned out to subscribed clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is a single subscriber connection. The SSE handler reads from
// this channel until it is closed.
type Client chan []byte

// Hub fans events out to the clients subscribed to each team channel.
type Hub struct {
	teams map[uint]map[Client]bool
	mu    sync.RWMutex
}

// GlobalHub is the process-wide Hub instance.
var GlobalHub = NewHub()

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		teams: make(map[uint]map[Client]bool),
	}
}

// Subscribe registers a client on a team channel.
func (h *Hub) Subscribe(teamID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.teams[teamID]; !ok {
		h.teams[teamID] = make(map[Client]bool)
	}
	h.teams[teamID][client] = true
}

// Unsubscribe removes a client from a team channel and closes it,
// signaling the handler to stop streaming.
func (h *Hub) Unsubscribe(teamID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.teams[teamID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client)
	if len(clients) == 0 {
		delete(h.teams, teamID)
	}
}

// Broadcast sends an event to every client on a team channel. Sends are
// non-blocking so one slow client cannot stall the rest.
func (h *Hub) Broadcast(teamID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.teams[teamID]
	if !ok {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	for client := range clients {
		select {
		case client <- payload:
		default:
			// Full channel; the client is slow or gone and will be
			// cleaned up when its handler unsubscribes.
		}
	}
}

// Subscribers reports how many clients are on a team channel.
func (h *Hub) Subscribers(teamID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.teams[teamID])
}
