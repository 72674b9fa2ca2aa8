package bot

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/game"
)

// Difficulty names a computer strategy
type Difficulty string

const (
	Easy     Difficulty = "easy"
	Medium   Difficulty = "medium"
	Hard     Difficulty = "hard"
	Random   Difficulty = "random"
	Adaptive Difficulty = "adaptive"

	// Mixed is not a strategy: it assigns the five difficulties round-robin
	// across the opponents of a tournament.
	Mixed Difficulty = "mixed"
)

// Difficulties returns the five strategy difficulties in canonical order
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Random, Adaptive}
}

// ParseDifficulty parses a difficulty name. Strategy class names such as
// "expert" are accepted as aliases.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "beginner":
		return Easy, nil
	case "medium", "intermediate":
		return Medium, nil
	case "hard", "expert":
		return Hard, nil
	case "random", "wild":
		return Random, nil
	case "adaptive":
		return Adaptive, nil
	case "mixed":
		return Mixed, nil
	default:
		return "", fmt.Errorf("unknown difficulty: %q", s)
	}
}

// String returns the difficulty name
func (d Difficulty) String() string {
	return string(d)
}

// Title returns the capitalised difficulty used in opponent names
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Description returns a one-line summary of how the difficulty plays
func (d Difficulty) Description() string {
	switch d {
	case Easy:
		return "Beginner - Hits until 16"
	case Medium:
		return "Intermediate - Balanced play"
	case Hard:
		return "Expert - Uses strategy tables"
	case Random:
		return "Wild - Unpredictable"
	case Adaptive:
		return "Custom - Learns from you"
	case Mixed:
		return "Mixed - One of each in turn"
	default:
		return "Unknown"
	}
}

// New creates the strategy for a difficulty. Random and Adaptive draw only
// from rng, which must not be shared with another goroutine.
func New(difficulty Difficulty, rng *rand.Rand, logger *log.Logger) (game.Strategy, error) {
	logger = logger.WithPrefix("bot").With("difficulty", difficulty)

	switch difficulty {
	case Easy:
		return NewBeginner(), nil
	case Medium:
		return NewIntermediate(), nil
	case Hard:
		return NewExpert(), nil
	case Random:
		if rng == nil {
			return nil, fmt.Errorf("rng is required for %s strategy", difficulty)
		}
		return NewRandom(rng), nil
	case Adaptive:
		if rng == nil {
			return nil, fmt.Errorf("rng is required for %s strategy", difficulty)
		}
		return NewAdaptive(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown difficulty: %q", difficulty)
	}
}
