package spectate

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/game"
)

// MatchLookup finds a match by id
type MatchLookup func(id string) *game.Match

// Hub turns match events into frames and fans them out to connected
// clients. It subscribes to a game.EventBus; snapshots are taken on the
// publishing goroutine, so clients never touch a match directly.
type Hub struct {
	lookup MatchLookup
	logger *log.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	latest  *MatchSnapshot
}

// NewHub creates a hub resolving event match ids through lookup
func NewHub(lookup MatchLookup, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Hub{
		lookup:  lookup,
		logger:  logger.WithPrefix("spectate"),
		clients: make(map[*client]struct{}),
	}
}

// OnEvent implements game.EventSubscriber
func (h *Hub) OnEvent(event game.GameEvent) {
	f := Frame{
		Type:    event.EventType().String(),
		MatchID: event.MatchID(),
		Time:    event.Timestamp(),
	}

	switch e := event.(type) {
	case game.DecisionEvent:
		f.Decision = &DecisionFrame{
			Participant: e.Participant,
			Move:        e.Move.String(),
			WantsDouble: e.WantsDouble,
			WantsSplit:  e.WantsSplit,
		}
	case game.MatchEndedEvent:
		f.Result = resultFrame(e.Result)
	}

	if m := h.lookup(event.MatchID()); m != nil && event.EventType() != game.EventTypeDecision {
		snap := Snapshot(m)
		f.Match = &snap
		h.mu.Lock()
		h.latest = &snap
		h.mu.Unlock()
	}

	h.broadcast(f)
}

// Latest returns the most recent match snapshot, or nil before the first
// match starts.
func (h *Hub) Latest() *MatchSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return nil
	}
	snap := *h.latest
	return &snap
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		_ = c.Close()
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("Spectator connected", "total", total)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	total := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Info("Spectator disconnected", "total", total)
	}
}

func (h *Hub) broadcast(f Frame) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(f); err != nil {
			h.logger.Debug("Dropping spectator", "error", err)
			h.unregister(c)
		}
	}
}
