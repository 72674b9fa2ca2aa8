package bot

import "github.com/lox/blackjack-tournament/internal/game"

// Beginner hits on 15 or less and never doubles or splits
type Beginner struct{}

// NewBeginner creates a Beginner strategy
func NewBeginner() *Beginner {
	return &Beginner{}
}

func (b *Beginner) Name() string { return "Beginner" }
func (b *Beginner) Difficulty() string { return string(Easy) }

func (b *Beginner) DecideHit(v game.HandView) bool {
	return v.Value <= 15
}

func (b *Beginner) DecideDouble(game.HandView) bool { return false }
func (b *Beginner) DecideSplit(game.HandView) bool { return false }
