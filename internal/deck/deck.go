package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrExhausted is returned when drawing from an empty deck
var ErrExhausted = errors.New("deck exhausted")

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a standard 52-card deck. Cards are drawn from the end of
// the shuffled sequence.
type Deck struct {
	cards []Card
}

// New creates a full 52-card deck shuffled once with the provided RNG.
// The RNG is required so that every shuffle is reproducible from a seed.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}

	d := &Deck{cards: make([]Card, 0, Size)}
	for _, suit := range Suits() {
		for _, rank := range Ranks() {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}

	// Fisher-Yates, tail to head
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// NewStacked creates a deck that deals exactly the given cards in order:
// the first argument is the first card drawn. It performs no shuffle and
// no completeness check, so it is meant for tests and replays.
func NewStacked(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Draw removes and returns the last card of the deck
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrExhausted
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
