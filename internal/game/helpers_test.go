package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/deck"
)

// thresholdStrategy hits while the hand value is at or below limit
type thresholdStrategy struct {
	limit    int
	double   bool
	split    bool
	outcomes []Outcome
}

func (s *thresholdStrategy) Name() string { return "Threshold" }
func (s *thresholdStrategy) Difficulty() string { return "test" }
func (s *thresholdStrategy) DecideHit(v HandView) bool { return v.Value <= s.limit }
func (s *thresholdStrategy) DecideDouble(HandView) bool { return s.double }
func (s *thresholdStrategy) DecideSplit(HandView) bool { return s.split }
func (s *thresholdStrategy) RecordOutcome(outcome Outcome) { s.outcomes = append(s.outcomes, outcome) }

func newComputer(name string, limit int) *Participant {
	return NewComputer(name, &thresholdStrategy{limit: limit})
}

// eventRecorder collects every event published on a bus
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == t {
			n++
		}
	}
	return n
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func stackedMatch(t *testing.T, p1, p2 *Participant, cards string, opts ...MatchOption) *Match {
	t.Helper()
	opts = append([]MatchOption{WithLogger(quietLogger())}, opts...)
	return NewMatch("test-match", p1, p2, deck.NewStacked(deck.MustParseCards(cards)...), opts...)
}
