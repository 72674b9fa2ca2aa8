package bot

import (
	rand "math/rand/v2"

	"github.com/lox/blackjack-tournament/internal/game"
)

// RandomBot hits with a probability that falls as the hand grows and never
// hits above 18.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandom creates a RandomBot drawing from rng
func NewRandom(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

func (r *RandomBot) Name() string { return "Random" }
func (r *RandomBot) Difficulty() string { return string(Random) }

func (r *RandomBot) DecideHit(v game.HandView) bool {
	switch {
	case v.Value <= 12:
		return r.rng.Float64() < 0.8
	case v.Value <= 16:
		return r.rng.Float64() < 0.5
	case v.Value <= 18:
		return r.rng.Float64() < 0.2
	default:
		return false
	}
}

func (r *RandomBot) DecideDouble(game.HandView) bool {
	return r.rng.Float64() < 0.3
}

func (r *RandomBot) DecideSplit(v game.HandView) bool {
	if !v.Pair {
		return false
	}
	return r.rng.Float64() < 0.5
}
