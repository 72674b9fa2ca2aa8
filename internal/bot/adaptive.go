package bot

import (
	"math"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/deck"
	"github.com/lox/blackjack-tournament/internal/game"
)

const (
	adaptiveHistory    = 5
	adaptiveStart      = 0.5
	adaptiveAdjustment = 0.1
)

// AdaptiveBot tracks its last few results and plays more aggressively
// while it is losing.
type AdaptiveBot struct {
	rng        *rand.Rand
	logger     *log.Logger
	aggression float64
	history    []game.Outcome
}

// NewAdaptive creates an AdaptiveBot with aggression 0.5
func NewAdaptive(rng *rand.Rand, logger *log.Logger) *AdaptiveBot {
	return &AdaptiveBot{
		rng:        rng,
		logger:     logger,
		aggression: adaptiveStart,
		history:    make([]game.Outcome, 0, adaptiveHistory),
	}
}

func (a *AdaptiveBot) Name() string { return "Adaptive" }
func (a *AdaptiveBot) Difficulty() string { return string(Adaptive) }

// Aggression returns the current aggression level in [0, 1]
func (a *AdaptiveBot) Aggression() float64 {
	return a.aggression
}

// History returns the recorded outcomes, oldest first
func (a *AdaptiveBot) History() []game.Outcome {
	out := make([]game.Outcome, len(a.history))
	copy(out, a.history)
	return out
}

// RecordOutcome appends a result, dropping the oldest beyond five, then
// nudges aggression towards whichever of wins or losses dominates.
func (a *AdaptiveBot) RecordOutcome(outcome game.Outcome) {
	if len(a.history) == adaptiveHistory {
		a.history = append(a.history[:0], a.history[1:]...)
	}
	a.history = append(a.history, outcome)

	var wins, losses int
	for _, o := range a.history {
		switch o {
		case game.OutcomeWin:
			wins++
		case game.OutcomeLoss:
			losses++
		}
	}

	switch {
	case losses > wins:
		a.aggression = min(1, a.aggression+adaptiveAdjustment)
	case wins > losses:
		a.aggression = max(0, a.aggression-adaptiveAdjustment)
	}
	// keep whole tenths so the band thresholds compare exactly
	a.aggression = math.Round(a.aggression*10) / 10
	a.logger.Debug("Recorded outcome", "outcome", outcome,
		"wins", wins, "losses", losses, "aggression", a.aggression)
}

// threshold is the value the bot hits below
func (a *AdaptiveBot) threshold() int {
	switch {
	case a.aggression > 0.7:
		return 18
	case a.aggression > 0.3:
		return 17
	default:
		return 16
	}
}

func (a *AdaptiveBot) DecideHit(v game.HandView) bool {
	return v.Value < a.threshold()
}

func (a *AdaptiveBot) DecideDouble(v game.HandView) bool {
	base := 0.3
	if v.Value == 10 || v.Value == 11 {
		base = 0.7
	}
	return a.rng.Float64() < base*a.aggression
}

func (a *AdaptiveBot) DecideSplit(v game.HandView) bool {
	if !v.Pair {
		return false
	}
	chance := 0.4
	if v.PairRank == deck.Ace || v.PairRank == deck.Eight {
		chance = 0.8
	}
	return a.rng.Float64() < chance*a.aggression
}
