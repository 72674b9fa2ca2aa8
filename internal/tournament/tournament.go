// Package tournament schedules a round-robin of blackjack matches over a
// roster and drives them to completion.
package tournament

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack-tournament/internal/deck"
	"github.com/lox/blackjack-tournament/internal/game"
	"github.com/lox/blackjack-tournament/internal/gameid"
)

// Option configures a Tournament during creation.
type Option func(*Tournament)

// WithEventBus publishes every match's events on bus
func WithEventBus(bus game.EventBus) Option {
	return func(t *Tournament) {
		t.bus = bus
	}
}

// WithLogger sets the tournament logger
func WithLogger(logger *log.Logger) Option {
	return func(t *Tournament) {
		t.logger = logger
	}
}

// WithClock sets the clock used for identifiers
func WithClock(clock quartz.Clock) Option {
	return func(t *Tournament) {
		t.clock = clock
	}
}

// WithDeckSource sets how each match's deck is built from the
// tournament rng. The default is a freshly shuffled 52-card deck.
func WithDeckSource(fn func(rng *rand.Rand) *deck.Deck) Option {
	return func(t *Tournament) {
		t.newDeck = fn
	}
}

// Tournament owns the ordered matches of a round-robin and an index into
// the current one.
type Tournament struct {
	id      string
	roster  *Roster
	rounds  [][]Pair
	matches []*game.Match
	current int

	bus     game.EventBus
	logger  *log.Logger
	clock   quartz.Clock
	newDeck func(rng *rand.Rand) *deck.Deck
}

// New schedules every pairing in roster. Each match gets its own deck
// shuffled from rng, so a seed fixes every card of the tournament.
func New(roster *Roster, rng *rand.Rand, opts ...Option) *Tournament {
	if rng == nil {
		panic("rng is required for tournament creation")
	}

	t := &Tournament{
		roster:  roster,
		rounds:  Schedule(roster.Size()),
		current: -1,
		bus:     game.NewEventBus(),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		clock:   quartz.NewReal(),
		newDeck: deck.New,
	}
	for _, opt := range opts {
		opt(t)
	}

	ids := gameid.NewGenerator(rng, gameid.WithClock(t.clock))
	t.id = ids.Generate()
	t.logger = t.logger.WithPrefix("tournament").With("tournament", t.id)

	seats := roster.Participants()
	for _, pair := range Flatten(t.rounds) {
		t.matches = append(t.matches, game.NewMatch(
			ids.Generate(),
			seats[pair.A], seats[pair.B],
			t.newDeck(rng),
			game.WithEventBus(t.bus),
			game.WithLogger(t.logger),
		))
	}

	t.logger.Debug("Scheduled tournament", "participants", roster.Size(),
		"rounds", len(t.rounds), "matches", len(t.matches))
	return t
}

// ID returns the tournament identifier
func (t *Tournament) ID() string { return t.id }

// Roster returns the participants
func (t *Tournament) Roster() *Roster { return t.roster }

// Rounds returns the schedule grouped by round
func (t *Tournament) Rounds() [][]Pair { return t.rounds }

// Matches returns every scheduled match in play order
func (t *Tournament) Matches() []*game.Match { return t.matches }

// EventBus returns the bus every match publishes on
func (t *Tournament) EventBus() game.EventBus { return t.bus }

// NextMatch advances to and starts the next match. It returns
// ErrScheduleExhausted once every match has been handed out.
func (t *Tournament) NextMatch() (*game.Match, error) {
	if t.current+1 >= len(t.matches) {
		return nil, ErrScheduleExhausted
	}
	t.current++
	m := t.matches[t.current]

	t.logger.Debug("Starting match", "match", m.ID(), "index", t.current,
		"p1", m.P1().Name, "p2", m.P2().Name)
	if err := m.Start(); err != nil {
		return m, fmt.Errorf("starting match %d: %w", t.current+1, err)
	}
	return m, nil
}

// Current returns the match in play, or nil before the first
func (t *Tournament) Current() *game.Match {
	if t.current < 0 {
		return nil
	}
	return t.matches[t.current]
}

// MatchByID returns the scheduled match with id, or nil
func (t *Tournament) MatchByID(id string) *game.Match {
	for _, m := range t.matches {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// Aborted returns how many matches ended without a result because the
// deck ran out
func (t *Tournament) Aborted() int {
	n := 0
	for _, m := range t.matches[:t.current+1] {
		if m.IsResolved() && m.Result().Aborted {
			n++
		}
	}
	return n
}

// Progress returns how many matches are resolved, aborted ones included,
// and how many exist
func (t *Tournament) Progress() (played, total int) {
	for _, m := range t.matches[:t.current+1] {
		if m.IsResolved() {
			played++
		}
	}
	return played, len(t.matches)
}

// Round returns the 1-based round of the current match, or 0 before the
// first match.
func (t *Tournament) Round() int {
	if t.current < 0 {
		return 0
	}
	idx := t.current
	for r, round := range t.rounds {
		if idx < len(round) {
			return r + 1
		}
		idx -= len(round)
	}
	return len(t.rounds)
}
