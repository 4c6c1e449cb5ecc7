package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/uniconnect/internal/app/models"
)

// Hub maintains the set of active identity-event connections. A single
// goroutine (Run) owns the client map; everything else talks to it over
// channels.
type Hub struct {
	// Registered clients organized by user ID
	clients map[string]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound events addressed to one client
	deliver chan delivery

	// Answers client count queries from inside the run loop
	counts chan countRequest

	// Closed when Run returns
	done chan struct{}

	// Logger for Hub operations
	logger zerolog.Logger
}

// Message is the frame pushed to a connected client.
type Message struct {
	Type       models.IdentityEventType `json:"type"`
	UserID     string                   `json:"userId"`
	RedirectTo string                   `json:"redirectTo,omitempty"`
	Timestamp  time.Time                `json:"timestamp"`
}

type delivery struct {
	client *Client
	data   []byte
}

type countRequest struct {
	userID string
	reply  chan int
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery),
		counts:     make(chan countRequest),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles client registration and delivery until ctx is cancelled, then
// closes every remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliver:
			h.deliverMessage(d)

		case req := <-h.counts:
			req.reply <- len(h.clients[req.userID])

		case <-ctx.Done():
			for _, clients := range h.clients {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			h.logger.Info().Msg("Identity event hub stopped")
			return
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	userID := client.userID
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true

	h.logger.Debug().
		Str("userID", userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	userID := client.userID
	if _, ok := h.clients[userID][client]; !ok {
		return
	}

	delete(h.clients[userID], client)
	close(client.send)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}

	h.logger.Debug().
		Str("userID", userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

// deliverMessage queues data on a registered client, dropping the client if
// its buffer is full.
func (h *Hub) deliverMessage(d delivery) {
	if _, ok := h.clients[d.client.userID][d.client]; !ok {
		return
	}

	select {
	case d.client.send <- d.data:
	default:
		h.logger.Warn().Str("userID", d.client.userID).Msg("Client send buffer full, dropping connection")
		h.unregisterClient(d.client)
	}
}

// Send encodes msg and queues it for client. It is a no-op once the hub has stopped.
func (h *Hub) Send(client *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("userID", client.userID).Msg("Failed to marshal identity event")
		return
	}

	select {
	case h.deliver <- delivery{client: client, data: data}:
	case <-h.done:
	}
}

// GetClientsCount returns the number of open connections for a user.
func (h *Hub) GetClientsCount(userID string) int {
	reply := make(chan int, 1)
	select {
	case h.counts <- countRequest{userID: userID, reply: reply}:
		return <-reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
