package realtime

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

const (
	// EventTasksChanged tells clients the task snapshot is stale.
	EventTasksChanged = "tasks_changed"
	// EventDeckChanged tells clients a deck's slide batch is stale.
	EventDeckChanged = "deck_changed"
)

// Event is pushed to every connected client of the affected user.
// Clients refetch their snapshot on receipt; the event itself
// carries no record data, only what changed.
type Event struct {
	Type   string `json:"type"`
	DeckID string `json:"deck_id,omitempty"`
}

type envelope struct {
	userID  string
	payload []byte
}

// Hub tracks connected websocket clients per user and fans change
// events out to them. All client-map access happens on the Run
// goroutine; the exported methods only touch channels.
type Hub struct {
	logger     zerolog.Logger
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Notify queues an event for every client of the given user.
func (h *Hub) Notify(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to marshal event")
		return
	}
	h.broadcast <- envelope{userID: userID, payload: payload}
}

// Run is the hub's main loop; start it once on its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug().
				Str("user_id", client.userID).
				Msg("websocket client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug().
					Str("user_id", client.userID).
					Msg("websocket client disconnected")
			}
		case env := <-h.broadcast:
			for client := range h.clients {
				if client.userID != env.userID {
					continue
				}
				select {
				case client.send <- env.payload:
				default:
					// Send buffer full, assume the client is gone.
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn().
						Str("user_id", client.userID).
						Msg("dropped stalled websocket client")
				}
			}
		}
	}
}
