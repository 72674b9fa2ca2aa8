package game

import (
	"sync"
	"time"
)

// EventType represents a match event type with type safety
type EventType string

const (
	EventTypeMatchStarted EventType = "match_started"
	EventTypeStateChanged EventType = "state_changed"
	EventTypeDecision     EventType = "decision"
	EventTypeMatchEnded   EventType = "match_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a match
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
	MatchID() string
}

// MatchStartedEvent is published once the opening cards are dealt
type MatchStartedEvent struct {
	ID        string
	P1, P2    string
	timestamp time.Time
}

func (e MatchStartedEvent) EventType() EventType { return EventTypeMatchStarted }
func (e MatchStartedEvent) Timestamp() time.Time { return e.timestamp }
func (e MatchStartedEvent) MatchID() string { return e.ID }

// NewMatchStartedEvent creates a new match started event
func NewMatchStartedEvent(matchID, p1, p2 string) MatchStartedEvent {
	return MatchStartedEvent{ID: matchID, P1: p1, P2: p2, timestamp: time.Now()}
}

// StateChangedEvent is published after every deal, hit, stand and
// resolution. It carries no state: subscribers re-read the match.
type StateChangedEvent struct {
	ID        string
	timestamp time.Time
}

func (e StateChangedEvent) EventType() EventType { return EventTypeStateChanged }
func (e StateChangedEvent) Timestamp() time.Time { return e.timestamp }
func (e StateChangedEvent) MatchID() string { return e.ID }

// NewStateChangedEvent creates a new state changed event
func NewStateChangedEvent(matchID string) StateChangedEvent {
	return StateChangedEvent{ID: matchID, timestamp: time.Now()}
}

// DecisionEvent is published when a computer participant has decided its
// next move, before the move is applied.
type DecisionEvent struct {
	ID          string
	Participant string
	Move        Move
	WantsDouble bool
	WantsSplit  bool
	timestamp   time.Time
}

func (e DecisionEvent) EventType() EventType { return EventTypeDecision }
func (e DecisionEvent) Timestamp() time.Time { return e.timestamp }
func (e DecisionEvent) MatchID() string { return e.ID }

// NewDecisionEvent creates a new decision event
func NewDecisionEvent(matchID string, d Decision) DecisionEvent {
	return DecisionEvent{
		ID:          matchID,
		Participant: d.Participant.Name,
		Move:        d.Move,
		WantsDouble: d.WantsDouble,
		WantsSplit:  d.WantsSplit,
		timestamp:   time.Now(),
	}
}

// MatchEndedEvent is published exactly once per match on resolution
type MatchEndedEvent struct {
	Result    MatchResult
	timestamp time.Time
}

func (e MatchEndedEvent) EventType() EventType { return EventTypeMatchEnded }
func (e MatchEndedEvent) Timestamp() time.Time { return e.timestamp }
func (e MatchEndedEvent) MatchID() string { return e.Result.MatchID }

// NewMatchEndedEvent creates a new match ended event
func NewMatchEndedEvent(result MatchResult) MatchEndedEvent {
	return MatchEndedEvent{Result: result, timestamp: time.Now()}
}

// EventSubscriber can subscribe to match events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber. Function values
// are not comparable, so subscribers created this way cannot be removed.
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Events are
// delivered synchronously on the publishing goroutine.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

type nopEventBus struct{}

func (nopEventBus) Subscribe(EventSubscriber) {}
func (nopEventBus) Unsubscribe(EventSubscriber) {}
func (nopEventBus) Publish(GameEvent) {}
