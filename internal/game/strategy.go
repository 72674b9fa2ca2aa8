package game

import "github.com/lox/blackjack-tournament/internal/deck"

// HandView is the read-only state of a hand for decision making
type HandView struct {
	Cards    []deck.Card
	Value    int
	Soft     bool
	Pair     bool
	PairRank deck.Rank // Only set when Pair is true

	// OpponentUpCard is the value of the opponent's first card, or 0 when
	// it is not known.
	OpponentUpCard int
}

// CardCount returns the number of cards in the hand
func (v HandView) CardCount() int {
	return len(v.Cards)
}

// Strategy decides moves for a computer participant. DecideHit drives the
// match; DecideDouble and DecideSplit report intent only.
type Strategy interface {
	Name() string
	Difficulty() string
	DecideHit(view HandView) bool
	DecideDouble(view HandView) bool
	DecideSplit(view HandView) bool
}

// Outcome is a single match result from one participant's point of view
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeTie
	OutcomeWin
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeTie:
		return "tie"
	default:
		return "unknown"
	}
}

// OutcomeRecorder is implemented by strategies that learn from results
type OutcomeRecorder interface {
	RecordOutcome(outcome Outcome)
}

// Move is a hit or stand applied to the match
type Move int

const (
	MoveStand Move = iota
	MoveHit
)

// String returns the string representation of a move
func (m Move) String() string {
	switch m {
	case MoveStand:
		return "stand"
	case MoveHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Decision is what a computer participant chose on its turn. WantsDouble
// and WantsSplit are only consulted on the opening two cards.
type Decision struct {
	Participant *Participant
	Move        Move
	WantsDouble bool
	WantsSplit  bool
}
