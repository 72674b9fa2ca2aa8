package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjack-tournament/internal/game"
	"github.com/lox/blackjack-tournament/internal/randutil"
	"github.com/lox/blackjack-tournament/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// autoPlayer feeds every message straight into the model, the way a
// running program would, and answers prompts with scripted actions.
type autoPlayer struct {
	t       *testing.T
	model   *TUIModel
	onMove  func() string
	onNext  string
	prompts map[promptKind]int
	msgs    []tea.Msg
}

func (p *autoPlayer) Send(msg tea.Msg) {
	p.msgs = append(p.msgs, msg)
	p.model.Update(msg)

	if pm, ok := msg.(promptMsg); ok {
		p.prompts[pm.kind]++
		switch pm.kind {
		case promptMove:
			require.NoError(p.t, p.model.InjectAction(p.onMove()))
		case promptContinue:
			require.NoError(p.t, p.model.InjectAction(p.onNext))
		}
	}
}

func newTournament(t *testing.T, seed int64) *tournament.Tournament {
	t.Helper()
	rng := randutil.New(seed)
	cfg := tournament.Config{Human: "You", Difficulty: "medium", Opponents: 2}
	roster, err := tournament.NewRoster(cfg, rng, quietLogger())
	require.NoError(t, err)
	return tournament.New(roster, rng, tournament.WithLogger(quietLogger()))
}

func runWithBridge(t *testing.T, player *autoPlayer) (tournament.Summary, error) {
	t.Helper()
	tour := newTournament(t, 9)
	b := NewBridge(player, player.model, tour, quietLogger())
	r := tournament.NewRunner(tour, append(b.RunnerOptions(), tournament.WithRunnerLogger(quietLogger()))...)
	b.SetRanking(r)

	s, err := r.Run(context.Background())
	b.Finish(s, err)
	return s, err
}

func TestBridgePlaysTournament(t *testing.T) {
	model := NewTUIModelWithOptions(quietLogger(), "Blackjack", true)
	player := &autoPlayer{
		t:       t,
		model:   model,
		onMove:  func() string { return ActionStand },
		onNext:  ActionContinue,
		prompts: map[promptKind]int{},
	}

	s, err := runWithBridge(t, player)
	require.NoError(t, err)
	assert.False(t, s.Abandoned)
	assert.Equal(t, 3, s.MatchesPlayed)

	// The human plays two of three matches and the pause after the last
	// match is skipped.
	assert.Positive(t, player.prompts[promptMove])
	assert.LessOrEqual(t, player.prompts[promptContinue], 2)
	assert.Positive(t, player.prompts[promptContinue])

	logged := strings.Join(model.GetCapturedLog(), "\n")
	assert.Contains(t, logged, "*** MATCH 1 OF 3 (ROUND 1) ***")
	assert.Contains(t, logged, "*** MATCH 3 OF 3")
	assert.Contains(t, logged, "You: stand")

	require.NotNil(t, model.finished)
	assert.Equal(t, s.Ranking, model.ranking)
	assert.Equal(t, 3, model.played)

	var tables int
	for _, msg := range player.msgs {
		tm, ok := msg.(tableMsg)
		if !ok {
			continue
		}
		tables++
		tv := tm.table
		if tv.P1.Human && !tv.Resolved && !tv.P1.Standing {
			assert.Equal(t, 1, tv.P2.Hidden, "hole card stays hidden until the human stands")
		}
	}
	assert.Positive(t, tables)
}

func TestBridgeQuit(t *testing.T) {
	model := NewTUIModelWithOptions(quietLogger(), "Blackjack", true)
	player := &autoPlayer{
		t:       t,
		model:   model,
		onMove:  func() string { return ActionQuit },
		prompts: map[promptKind]int{},
	}

	s, err := runWithBridge(t, player)
	assert.ErrorIs(t, err, tournament.ErrQuit)
	assert.True(t, s.Abandoned)
	assert.Equal(t, 1, player.prompts[promptMove])
	require.NotNil(t, model.finished)
	assert.True(t, model.finished.Summary.Abandoned)
}

type discard struct{}

func (discard) Send(tea.Msg) {}

func TestBridgeCancelledWhileWaiting(t *testing.T) {
	model := NewTUIModelWithOptions(quietLogger(), "Blackjack", true)
	tour := newTournament(t, 9)
	b := NewBridge(discard{}, model, tour, nil)

	var played *game.Match
	for _, m := range tour.Matches() {
		if m.P1().IsHuman() {
			played = m
			break
		}
	}
	require.NotNil(t, played, "the human is always seated first")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.AfterMatch(ctx, played.Result()), context.Canceled)
	_, err := b.Decide(ctx, played, played.P1())
	assert.ErrorIs(t, err, context.Canceled)
}
