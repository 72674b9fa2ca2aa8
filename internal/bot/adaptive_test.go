package bot

import (
	"testing"

	"github.com/lox/blackjack-tournament/internal/game"
	"github.com/lox/blackjack-tournament/internal/randutil"
	"github.com/stretchr/testify/assert"
)

func newAdaptive() *AdaptiveBot {
	return NewAdaptive(randutil.New(9), quietLogger())
}

func TestAdaptiveStartsBalanced(t *testing.T) {
	a := newAdaptive()
	assert.Equal(t, 0.5, a.Aggression())
	assert.True(t, a.DecideHit(view(t, "Tc6d")))
	assert.False(t, a.DecideHit(view(t, "Tc7d")), "threshold 17 at 0.5")
}

func TestAdaptiveLosingRaisesAggression(t *testing.T) {
	a := newAdaptive()
	a.RecordOutcome(game.OutcomeLoss)
	a.RecordOutcome(game.OutcomeLoss)
	a.RecordOutcome(game.OutcomeLoss)

	assert.Equal(t, 0.8, a.Aggression())
	assert.True(t, a.DecideHit(view(t, "Tc7d")), "threshold 18 above 0.7")
	assert.False(t, a.DecideHit(view(t, "Tc8d")))
}

func TestAdaptiveWinningLowersAggression(t *testing.T) {
	a := newAdaptive()
	for range 3 {
		a.RecordOutcome(game.OutcomeWin)
	}

	assert.Equal(t, 0.2, a.Aggression())
	assert.False(t, a.DecideHit(view(t, "Tc6d")), "threshold 16 at 0.3 or below")
	assert.True(t, a.DecideHit(view(t, "Tc5d")))
}

func TestAdaptiveAggressionIsClamped(t *testing.T) {
	a := newAdaptive()
	for range 20 {
		a.RecordOutcome(game.OutcomeLoss)
	}
	assert.Equal(t, 1.0, a.Aggression())

	for range 30 {
		a.RecordOutcome(game.OutcomeWin)
	}
	assert.Equal(t, 0.0, a.Aggression())
	assert.False(t, a.DecideDouble(view(t, "6c5d")), "no aggression never doubles")
	assert.False(t, a.DecideSplit(view(t, "AcAd")))
}

func TestAdaptiveHistoryKeepsLastFive(t *testing.T) {
	a := newAdaptive()
	seq := []game.Outcome{
		game.OutcomeWin, game.OutcomeLoss, game.OutcomeTie,
		game.OutcomeLoss, game.OutcomeLoss, game.OutcomeWin, game.OutcomeTie,
	}
	for _, o := range seq {
		a.RecordOutcome(o)
	}
	assert.Equal(t, seq[2:], a.History())
}

func TestAdaptiveBalancedHistoryHoldsSteady(t *testing.T) {
	a := newAdaptive()
	a.RecordOutcome(game.OutcomeLoss) // 0.6
	a.RecordOutcome(game.OutcomeWin)  // balanced
	a.RecordOutcome(game.OutcomeTie)  // balanced
	assert.Equal(t, 0.6, a.Aggression())
}
