package bot

import (
	"github.com/lox/blackjack-tournament/internal/deck"
	"github.com/lox/blackjack-tournament/internal/game"
)

// Intermediate plays a soft-aware threshold, doubles on 10 or 11 and
// splits Aces and eights.
type Intermediate struct{}

// NewIntermediate creates an Intermediate strategy
func NewIntermediate() *Intermediate {
	return &Intermediate{}
}

func (s *Intermediate) Name() string { return "Intermediate" }
func (s *Intermediate) Difficulty() string { return string(Medium) }

func (s *Intermediate) DecideHit(v game.HandView) bool {
	if v.Soft {
		return v.Value <= 17
	}
	return v.Value <= 16
}

func (s *Intermediate) DecideDouble(v game.HandView) bool {
	return v.Value == 10 || v.Value == 11
}

func (s *Intermediate) DecideSplit(v game.HandView) bool {
	return v.Pair && (v.PairRank == deck.Ace || v.PairRank == deck.Eight)
}
