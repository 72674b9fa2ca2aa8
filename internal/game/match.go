package game

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/deck"
)

// State is the lifecycle state of a match
type State int

const (
	NotStarted State = iota
	InProgress
	Resolved
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// MatchResult is the outcome of a resolved match
type MatchResult struct {
	MatchID string
	P1, P2  *Participant
	Winner  *Participant // nil on a tie or abort
	P1Value int
	P2Value int
	P1Hand  []deck.Card
	P2Hand  []deck.Card
	Natural bool // Winner held a two-card 21
	Aborted bool // Deck ran out; no winner was determined
}

// HandOf returns the final hand p held in the match
func (r MatchResult) HandOf(p *Participant) []deck.Card {
	switch p {
	case r.P1:
		return slices.Clone(r.P1Hand)
	case r.P2:
		return slices.Clone(r.P2Hand)
	default:
		return nil
	}
}

// IsTie returns true when the match resolved without a winner
func (r MatchResult) IsTie() bool {
	return r.Winner == nil && !r.Aborted
}

// Loser returns the losing participant, or nil on a tie or abort
func (r MatchResult) Loser() *Participant {
	switch r.Winner {
	case nil:
		return nil
	case r.P1:
		return r.P2
	default:
		return r.P1
	}
}

// WinnerValue returns the winner's final hand value, or 0 without a winner
func (r MatchResult) WinnerValue() int {
	return r.valueOf(r.Winner)
}

// LoserValue returns the loser's final hand value, or 0 without a winner
func (r MatchResult) LoserValue() int {
	return r.valueOf(r.Loser())
}

func (r MatchResult) valueOf(p *Participant) int {
	switch p {
	case nil:
		return 0
	case r.P1:
		return r.P1Value
	default:
		return r.P2Value
	}
}

// OutcomeFor returns the result from p's point of view
func (r MatchResult) OutcomeFor(p *Participant) Outcome {
	switch r.Winner {
	case nil:
		return OutcomeTie
	case p:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}

// MatchOption configures a Match during creation.
type MatchOption func(*Match)

// WithEventBus publishes match events on bus
func WithEventBus(bus EventBus) MatchOption {
	return func(m *Match) {
		m.eventBus = bus
	}
}

// WithLogger sets the logger used for match debug output
func WithLogger(logger *log.Logger) MatchOption {
	return func(m *Match) {
		m.logger = logger
	}
}

// Match resolves a single game between two participants
type Match struct {
	id       string
	seats    [2]*Participant
	deck     *deck.Deck
	state    State
	turn     int
	winner   *Participant
	revealed bool
	aborted  bool

	// Participants are shared across matches, so their final hands are
	// copied here on resolution.
	final  [2]Seat
	result *MatchResult

	eventBus EventBus
	logger   *log.Logger
}

// NewMatch creates a match between p1 and p2 drawing from d. The deck must
// be fresh for every match.
func NewMatch(id string, p1, p2 *Participant, d *deck.Deck, opts ...MatchOption) *Match {
	if p1 == nil || p2 == nil {
		panic("two participants are required")
	}
	if p1 == p2 {
		panic("a participant cannot play itself")
	}
	if d == nil {
		panic("deck is required for match creation")
	}

	m := &Match{
		id:       id,
		seats:    [2]*Participant{p1, p2},
		deck:     d,
		eventBus: nopEventBus{},
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithPrefix("match").With("match", id)
	return m
}

// ID returns the match identifier
func (m *Match) ID() string { return m.id }

// P1 returns the first seated participant
func (m *Match) P1() *Participant { return m.seats[0] }

// P2 returns the second seated participant
func (m *Match) P2() *Participant { return m.seats[1] }

// State returns the current lifecycle state
func (m *Match) State() State { return m.state }

// IsResolved returns true once the match has a result
func (m *Match) IsResolved() bool { return m.state == Resolved }

// Turn returns the participant to act, or nil outside InProgress
func (m *Match) Turn() *Participant {
	if m.state != InProgress {
		return nil
	}
	return m.seats[m.turn]
}

// Opponent returns the other participant in the match
func (m *Match) Opponent(p *Participant) *Participant {
	if p == m.seats[0] {
		return m.seats[1]
	}
	return m.seats[0]
}

// Has returns true if p is seated in this match
func (m *Match) Has(p *Participant) bool {
	return p == m.seats[0] || p == m.seats[1]
}

// Seat is one participant's hand within a match
type Seat struct {
	Cards    []deck.Card
	Value    int
	Standing bool
	Bust     bool
}

// Seat returns the hand p holds in this match. Once resolved it is the
// final hand, whatever p has played since. Before the deal it is empty.
func (m *Match) Seat(p *Participant) Seat {
	i := slices.Index(m.seats[:], p)
	switch {
	case i < 0 || m.state == NotStarted:
		return Seat{}
	case m.state == Resolved:
		s := m.final[i]
		s.Cards = slices.Clone(s.Cards)
		return s
	default:
		return seatOf(p)
	}
}

func seatOf(p *Participant) Seat {
	return Seat{
		Cards:    p.Hand(),
		Value:    p.value,
		Standing: p.standing,
		Bust:     p.IsBust(),
	}
}

// Start clears both hands and deals two cards each in P1, P2, P1, P2 order
func (m *Match) Start() error {
	if m.state != NotStarted {
		return fmt.Errorf("%w: start while %s", ErrInvalidTransition, m.state)
	}

	for _, p := range m.seats {
		p.ClearHand()
	}
	for range 2 {
		for _, p := range m.seats {
			card, err := m.deck.Draw()
			if err != nil {
				return m.abort(err)
			}
			p.AddCard(card)
		}
	}

	m.turn = 0
	m.state = InProgress
	m.logger.Debug("Dealt opening hands",
		"p1", m.seats[0].Name, "p1Hand", m.seats[0].hand,
		"p2", m.seats[1].Name, "p2Hand", m.seats[1].hand)

	m.eventBus.Publish(NewMatchStartedEvent(m.id, m.seats[0].Name, m.seats[1].Name))
	m.changed()
	return nil
}

// Hit draws a card for the participant whose turn it is. A bust resolves
// the match in favour of the opponent.
func (m *Match) Hit() error {
	if err := m.checkActive("hit"); err != nil {
		return err
	}
	p := m.seats[m.turn]

	card, err := m.deck.Draw()
	if err != nil {
		return m.abort(err)
	}
	p.AddCard(card)
	m.logger.Debug("Hit", "participant", p.Name, "card", card, "value", p.value)

	if p.IsBust() {
		m.revealed = true
		m.resolve()
		return nil
	}
	m.changed()
	return nil
}

// Stand marks the active participant standing. When both have stood the
// match resolves, otherwise the turn passes.
func (m *Match) Stand() error {
	if err := m.checkActive("stand"); err != nil {
		return err
	}
	p := m.seats[m.turn]
	p.Stand()
	m.revealed = true
	m.logger.Debug("Stand", "participant", p.Name, "value", p.value)

	if m.seats[0].standing && m.seats[1].standing {
		m.resolve()
		return nil
	}
	m.turn = 1 - m.turn
	m.changed()
	return nil
}

// Decide asks the active computer participant's strategy for its next move
// without applying it. Intent to double or split is only asked for on the
// opening two cards.
func (m *Match) Decide() (Decision, error) {
	if err := m.checkActive("decide"); err != nil {
		return Decision{}, err
	}
	p := m.seats[m.turn]
	if p.Kind != Computer || p.Strategy == nil {
		return Decision{}, fmt.Errorf("%w: %s is not computer controlled", ErrInvalidTransition, p.Name)
	}

	view := p.View()
	if up := m.Opponent(p).hand; len(up) > 0 {
		view.OpponentUpCard = up[0].Value()
	}

	d := Decision{Participant: p, Move: MoveStand}
	if p.Strategy.DecideHit(view) {
		d.Move = MoveHit
	}
	if view.CardCount() == 2 {
		d.WantsDouble = p.Strategy.DecideDouble(view)
		if view.Pair {
			d.WantsSplit = p.Strategy.DecideSplit(view)
		}
	}

	m.logger.Debug("Decision", "participant", p.Name, "strategy", p.Strategy.Name(),
		"value", view.Value, "soft", view.Soft, "move", d.Move,
		"double", d.WantsDouble, "split", d.WantsSplit)
	m.eventBus.Publish(NewDecisionEvent(m.id, d))
	return d, nil
}

// Apply performs a previously decided move for the active participant
func (m *Match) Apply(d Decision) error {
	if m.state == InProgress && d.Participant != m.seats[m.turn] {
		return fmt.Errorf("%w: not %s's turn", ErrInvalidTransition, d.Participant.Name)
	}
	if d.Move == MoveHit {
		return m.Hit()
	}
	return m.Stand()
}

// Step advances one computer turn: one decision and one move
func (m *Match) Step() (Move, error) {
	d, err := m.Decide()
	if err != nil {
		return MoveStand, err
	}
	return d.Move, m.Apply(d)
}

// PlayComputerTurn steps the active computer participant until it stands,
// busts or the match resolves.
func (m *Match) PlayComputerTurn() error {
	p := m.Turn()
	if p == nil {
		return fmt.Errorf("%w: no active turn while %s", ErrInvalidTransition, m.state)
	}
	for m.Turn() == p {
		if _, err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// IsHandRevealed reports whether a computer's hidden card may be shown.
// Without a human seated nothing is ever hidden.
func (m *Match) IsHandRevealed() bool {
	if m.revealed || m.state == Resolved {
		return true
	}
	return !m.seats[0].IsHuman() && !m.seats[1].IsHuman()
}

// VisibleCards returns the cards of p an observer may see and how many are
// face down. Only a computer's second card is ever hidden.
func (m *Match) VisibleCards(p *Participant) (shown []deck.Card, hidden int) {
	cards := m.Seat(p).Cards
	if p.IsHuman() || m.IsHandRevealed() || len(cards) < 2 {
		return cards, 0
	}
	return append(cards[:1], cards[2:]...), 1
}

// VisibleValue returns the value of the visible cards of p and whether it
// is partial because a card is hidden.
func (m *Match) VisibleValue(p *Participant) (value int, partial bool) {
	shown, hidden := m.VisibleCards(p)
	if hidden == 0 {
		return m.Seat(p).Value, false
	}
	return HandValue(shown), true
}

// Result returns the outcome. It is only meaningful once resolved, and
// does not change afterwards.
func (m *Match) Result() MatchResult {
	if m.result != nil {
		res := *m.result
		res.P1Hand = slices.Clone(res.P1Hand)
		res.P2Hand = slices.Clone(res.P2Hand)
		return res
	}
	return MatchResult{
		MatchID: m.id,
		P1:      m.seats[0],
		P2:      m.seats[1],
		Winner:  m.winner,
		P1Value: m.seats[0].value,
		P2Value: m.seats[1].value,
		P1Hand:  m.seats[0].Hand(),
		P2Hand:  m.seats[1].Hand(),
		Natural: m.winner != nil && m.winner.HasNaturalMax(),
		Aborted: m.aborted,
	}
}

// freeze copies both hands and the result so later matches cannot alter them
func (m *Match) freeze() {
	for i, p := range m.seats {
		m.final[i] = seatOf(p)
	}
	res := m.Result()
	m.result = &res
}

func (m *Match) checkActive(op string) error {
	if m.state != InProgress {
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, op, m.state)
	}
	p := m.seats[m.turn]
	if p.standing || p.IsBust() {
		return fmt.Errorf("%w: %s by %s who is finished", ErrInvalidTransition, op, p.Name)
	}
	return nil
}

// determineWinner applies bust before value comparison
func (m *Match) determineWinner() *Participant {
	p1, p2 := m.seats[0], m.seats[1]
	switch {
	case p1.IsBust() && p2.IsBust():
		return nil
	case p1.IsBust():
		return p2
	case p2.IsBust():
		return p1
	case p1.value > p2.value:
		return p1
	case p2.value > p1.value:
		return p2
	default:
		return nil
	}
}

func (m *Match) resolve() {
	m.winner = m.determineWinner()
	m.state = Resolved
	m.revealed = true
	m.freeze()

	res := m.Result()
	if res.Winner != nil {
		m.logger.Debug("Match resolved", "winner", res.Winner.Name,
			"p1Value", res.P1Value, "p2Value", res.P2Value, "natural", res.Natural)
	} else {
		m.logger.Debug("Match tied", "p1Value", res.P1Value, "p2Value", res.P2Value)
	}

	m.changed()
	m.eventBus.Publish(NewMatchEndedEvent(res))
}

func (m *Match) abort(cause error) error {
	m.aborted = true
	m.winner = nil
	m.state = Resolved
	m.revealed = true
	m.freeze()
	m.logger.Error("Match aborted", "error", cause)

	m.changed()
	m.eventBus.Publish(NewMatchEndedEvent(m.Result()))

	return fmt.Errorf("match %s aborted: %w", m.id, cause)
}

func (m *Match) changed() {
	m.eventBus.Publish(NewStateChangedEvent(m.id))
}
