package game

import (
	"slices"

	"github.com/lox/blackjack-tournament/internal/deck"
)

// MaxValue is the best possible hand value
const MaxValue = 21

// Kind distinguishes human-driven from strategy-driven participants
type Kind int

const (
	Human Kind = iota
	Computer
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		return "unknown"
	}
}

// Participant is a seat in the tournament. Identity is the Name, which must
// be unique within a roster. Hand state is reset at the start of every match.
type Participant struct {
	Name       string
	Kind       Kind
	Difficulty string
	Strategy   Strategy

	hand     []deck.Card
	value    int
	soft     bool
	standing bool
}

// NewHuman creates a human participant
func NewHuman(name string) *Participant {
	return &Participant{Name: name, Kind: Human}
}

// NewComputer creates a computer participant driven by strategy
func NewComputer(name string, strategy Strategy) *Participant {
	if strategy == nil {
		panic("strategy is required for computer participants")
	}
	return &Participant{
		Name:       name,
		Kind:       Computer,
		Difficulty: strategy.Difficulty(),
		Strategy:   strategy,
	}
}

// IsHuman returns true for human participants
func (p *Participant) IsHuman() bool {
	return p.Kind == Human
}

// AddCard appends a card and recomputes the hand value from scratch
func (p *Participant) AddCard(card deck.Card) {
	p.hand = append(p.hand, card)
	p.value, p.soft = handTotals(p.hand)
}

// Hand returns a copy of the cards held
func (p *Participant) Hand() []deck.Card {
	return slices.Clone(p.hand)
}

// Value returns the current hand value
func (p *Participant) Value() int {
	return p.value
}

// IsBust returns true when the hand value exceeds 21
func (p *Participant) IsBust() bool {
	return p.value > MaxValue
}

// HasNaturalMax returns true for a two-card 21
func (p *Participant) HasNaturalMax() bool {
	return len(p.hand) == 2 && p.value == MaxValue
}

// IsSoft returns true while at least one Ace still counts as 11
func (p *Participant) IsSoft() bool {
	return p.soft
}

// IsPair returns true for exactly two cards of the same rank
func (p *Participant) IsPair() bool {
	return len(p.hand) == 2 && p.hand[0].Rank == p.hand[1].Rank
}

// Stand marks the participant as standing. Calling it twice is harmless.
func (p *Participant) Stand() {
	p.standing = true
}

// IsStanding reports whether the participant has stood this match
func (p *Participant) IsStanding() bool {
	return p.standing
}

// ClearHand resets hand, value and standing for a new match
func (p *Participant) ClearHand() {
	p.hand = nil
	p.value = 0
	p.soft = false
	p.standing = false
}

// View returns the read-only hand summary handed to strategies
func (p *Participant) View() HandView {
	v := HandView{
		Cards: p.Hand(),
		Value: p.value,
		Soft:  p.soft,
		Pair:  p.IsPair(),
	}
	if v.Pair {
		v.PairRank = p.hand[0].Rank
	}
	return v
}

// HandValue computes the blackjack value of cards. Aces count 11 until the
// total would exceed 21, then drop to 1 one at a time.
func HandValue(cards []deck.Card) int {
	v, _ := handTotals(cards)
	return v
}

func handTotals(cards []deck.Card) (value int, soft bool) {
	aces := 0
	for _, c := range cards {
		value += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for value > MaxValue && aces > 0 {
		value -= 10
		aces--
	}
	return value, aces > 0
}
