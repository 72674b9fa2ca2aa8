package tournament

import (
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/bot"
	"github.com/lox/blackjack-tournament/internal/game"
	"github.com/lox/blackjack-tournament/internal/randutil"
)

const (
	MinOpponents = 1
	MaxOpponents = 8
)

// Opponent is an explicitly named computer seat
type Opponent struct {
	Name       string
	Difficulty string
}

// Config describes the roster and pacing of a tournament
type Config struct {
	// Human is the name of the human seat. Empty runs computers only.
	Human string

	// Difficulty applies to generated opponents: one of the five strategy
	// difficulties or "mixed".
	Difficulty string

	// Opponents is how many computer opponents to generate. Ignored when
	// Named is not empty.
	Opponents int

	// Named lists opponents explicitly instead of generating them
	Named []Opponent

	Seed      int64
	PaceDelay time.Duration
}

// DefaultConfig returns a single human against three medium opponents
func DefaultConfig() Config {
	return Config{
		Human:      "You",
		Difficulty: string(bot.Medium),
		Opponents:  3,
		PaceDelay:  time.Second,
	}
}

// opponents resolves the computer seats the config asks for
func (c Config) opponents() ([]Opponent, error) {
	if len(c.Named) > 0 {
		return c.Named, nil
	}

	d, err := bot.ParseDifficulty(c.Difficulty)
	if err != nil {
		return nil, invalidRoster("%v", err)
	}
	if c.Opponents < MinOpponents || c.Opponents > MaxOpponents {
		return nil, invalidRoster("opponent count %d outside %d..%d", c.Opponents, MinOpponents, MaxOpponents)
	}
	return GenerateOpponents(d, c.Opponents), nil
}

// Validate checks the config without building strategies
func (c Config) Validate() error {
	opps, err := c.opponents()
	if err != nil {
		return err
	}
	size := len(opps)
	if c.Human != "" {
		size++
	}
	if size < 2 {
		return invalidRoster("need at least 2 participants, got %d", size)
	}
	if len(opps) > MaxOpponents {
		return invalidRoster("at most %d opponents allowed, got %d", MaxOpponents, len(opps))
	}

	seen := make(map[string]bool, size)
	if c.Human != "" {
		seen[c.Human] = true
	}
	for _, o := range opps {
		if o.Name == "" {
			return invalidRoster("opponent with empty name")
		}
		if seen[o.Name] {
			return invalidRoster("duplicate participant name %q", o.Name)
		}
		seen[o.Name] = true

		d, err := bot.ParseDifficulty(o.Difficulty)
		if err != nil {
			return invalidRoster("opponent %q: %v", o.Name, err)
		}
		if d == bot.Mixed {
			return invalidRoster("opponent %q: mixed is not a strategy", o.Name)
		}
	}
	return nil
}

// Distribution assigns a difficulty to each of count opponents. Mixed
// cycles through the five difficulties in order.
func Distribution(d bot.Difficulty, count int) []bot.Difficulty {
	out := make([]bot.Difficulty, count)
	all := bot.Difficulties()
	for i := range out {
		if d == bot.Mixed {
			out[i] = all[i%len(all)]
		} else {
			out[i] = d
		}
	}
	return out
}

// GenerateOpponents names opponents "<Difficulty> AI <n>", numbering each
// difficulty separately.
func GenerateOpponents(d bot.Difficulty, count int) []Opponent {
	numbers := make(map[bot.Difficulty]int)
	out := make([]Opponent, 0, count)
	for _, diff := range Distribution(d, count) {
		numbers[diff]++
		out = append(out, Opponent{
			Name:       fmt.Sprintf("%s AI %d", diff.Title(), numbers[diff]),
			Difficulty: string(diff),
		})
	}
	return out
}

// Roster is the validated, ordered list of participants. The human, if
// any, is seated first.
type Roster struct {
	participants []*game.Participant
	human        *game.Participant
}

// NewRoster validates cfg and builds participants. Each probabilistic
// strategy gets its own generator derived from rng.
func NewRoster(cfg Config, rng *rand.Rand, logger *log.Logger) (*Roster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opps, _ := cfg.opponents()

	r := &Roster{}
	if cfg.Human != "" {
		r.human = game.NewHuman(cfg.Human)
		r.participants = append(r.participants, r.human)
	}
	for _, o := range opps {
		d, _ := bot.ParseDifficulty(o.Difficulty)
		strategy, err := bot.New(d, randutil.Child(rng), logger.With("participant", o.Name))
		if err != nil {
			return nil, invalidRoster("opponent %q: %v", o.Name, err)
		}
		r.participants = append(r.participants, game.NewComputer(o.Name, strategy))
	}
	return r, nil
}

// Participants returns the seats in roster order
func (r *Roster) Participants() []*game.Participant {
	return r.participants
}

// Names returns participant names in roster order
func (r *Roster) Names() []string {
	names := make([]string, len(r.participants))
	for i, p := range r.participants {
		names[i] = p.Name
	}
	return names
}

// Human returns the human participant or nil
func (r *Roster) Human() *game.Participant {
	return r.human
}

// Size returns the number of participants
func (r *Roster) Size() int {
	return len(r.participants)
}

// Get returns the participant named name, or nil
func (r *Roster) Get(name string) *game.Participant {
	for _, p := range r.participants {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// TotalMatches is the round-robin match count for n participants
func TotalMatches(n int) int {
	return n * (n - 1) / 2
}

// EstimateDuration guesses how long a human takes to play totalMatches
// at roughly two minutes a match.
func EstimateDuration(totalMatches int) string {
	if totalMatches > 1000 {
		return "Very long - consider fewer players"
	}
	minutes := totalMatches * 2
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
