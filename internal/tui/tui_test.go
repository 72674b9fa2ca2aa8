package tui

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/bot"
	"github.com/lox/blackjack-tournament/internal/deck"
	"github.com/lox/blackjack-tournament/internal/game"
	"github.com/lox/blackjack-tournament/internal/scoring"
	"github.com/lox/blackjack-tournament/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func shortCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	t.Cleanup(cancel)
	return ctx
}

func openingMatch(t *testing.T) *game.Match {
	t.Helper()
	m := game.NewMatch("m1",
		game.NewHuman("You"),
		game.NewComputer("Easy AI 1", bot.NewBeginner()),
		deck.NewStacked(deck.MustParseCards("Ts 9h 7c 8d")...),
		game.WithLogger(quietLogger()),
	)
	require.NoError(t, m.Start())
	return m
}

func TestTUITestMode(t *testing.T) {
	logger := quietLogger()

	t.Run("test mode captures log entries", func(t *testing.T) {
		tui := NewTUIModelWithOptions(logger, "Blackjack", true)

		assert.True(t, tui.IsTestMode())
		assert.Empty(t, tui.GetCapturedLog())

		tui.Update(logMsg{lines: []string{"*** MATCH 1 OF 3 ***", "You vs Easy AI 1"}})
		assert.Equal(t, []string{"*** MATCH 1 OF 3 ***", "You vs Easy AI 1"}, tui.GetCapturedLog())
	})

	t.Run("production mode does not capture logs", func(t *testing.T) {
		tui := NewTUIModel(logger, "Blackjack")
		assert.False(t, tui.IsTestMode())

		tui.AddLogEntry("Some log entry")
		assert.Nil(t, tui.GetCapturedLog())
	})

	t.Run("action injection works in test mode", func(t *testing.T) {
		tui := NewTUIModelWithOptions(logger, "Blackjack", true)
		require.NoError(t, tui.InjectAction(ActionHit))

		result, err := tui.WaitForAction(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ActionHit, result.Action)
	})

	t.Run("action injection fails in production mode", func(t *testing.T) {
		err := NewTUIModel(logger, "Blackjack").InjectAction(ActionHit)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "test mode")
	})
}

func TestKeysOnlyActWhenPrompted(t *testing.T) {
	tui := NewTUIModelWithOptions(quietLogger(), "Blackjack", true)

	tui.Update(runes("h"))
	_, err := tui.WaitForAction(shortCtx(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded, "hit without a prompt is ignored")

	tui.Update(promptMsg{kind: promptMove})
	tui.Update(runes("s"))
	result, err := tui.WaitForAction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionStand, result.Action)

	tui.Update(runes("h"))
	_, err = tui.WaitForAction(shortCtx(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded, "the prompt is consumed by the first move")

	tui.Update(promptMsg{kind: promptContinue})
	tui.Update(runes("h"))
	tui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result, err = tui.WaitForAction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionContinue, result.Action)
}

func TestQuitKey(t *testing.T) {
	tui := NewTUIModelWithOptions(quietLogger(), "Blackjack", true)

	_, cmd := tui.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, tui.View())

	result, err := tui.WaitForAction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionQuit, result.Action)
}

func TestQuitSignal(t *testing.T) {
	tui := NewTUIModelWithOptions(quietLogger(), "Blackjack", true)
	tui.SendQuitSignal()
	tui.SendQuitSignal()

	msg := tui.Init()()
	assert.Equal(t, QuitMsg{}, msg)
}

func TestViewHidesHoleCard(t *testing.T) {
	tui := NewTUIModelWithOptions(quietLogger(), "Blackjack Tournament", true)
	assert.Equal(t, "Loading...", tui.View())

	tui.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	tui.Update(tableMsg{table: newTableView(openingMatch(t))})
	tui.Update(rankingMsg{
		ranking: []scoring.Standing{{Name: "You", Points: 1.2, Wins: 1}, {Name: "Easy AI 1"}},
		played:  1, total: 3, round: 2,
	})
	tui.Update(promptMsg{kind: promptMove})

	view := tui.View()
	assert.Contains(t, view, "Blackjack Tournament")
	assert.Contains(t, view, "Match 2 of 3 · Round 2")
	assert.Contains(t, view, "[9♥ ??]")
	assert.Contains(t, view, "9 + ?")
	assert.Contains(t, view, "17")
	assert.Contains(t, view, "Your turn! Choose to Hit or Stand.")
	assert.Contains(t, view, "[h] Hit  [s] Stand")
	assert.Contains(t, view, "Standings")
	assert.Contains(t, view, "1.20")
	assert.NotContains(t, view, "8♦")
}

func TestViewFinished(t *testing.T) {
	tui := NewTUIModelWithOptions(quietLogger(), "Blackjack", true)
	tui.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	tui.Update(FinishedMsg{Summary: tournament.Summary{
		RosterSize:    3,
		Ranking:       []scoring.Standing{{Name: "Hard AI 1", Points: 2.5}, {Name: "You", Points: 1.1, Wins: 1}},
		Human:         "You",
		HumanWins:     1,
		HumanPoints:   1.1,
		MatchesPlayed: 3,
		TotalMatches:  3,
	}})

	view := tui.View()
	assert.Contains(t, view, "Tournament complete! Hard AI 1 wins.")
	assert.Contains(t, view, "You finished 2nd of 3 with 1.10 points and 1 wins.")
	assert.Contains(t, view, "Finished 3 of 3 matches")

	_, cmd := tui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestOrdinal(t *testing.T) {
	for n, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd"} {
		assert.Equal(t, want, ordinal(n))
	}
}

func TestFormatCards(t *testing.T) {
	cards := deck.MustParseCards("As Kh 5d")
	assert.Equal(t, "[A♠ K♥ 5♦]", formatCards(cards, 0))
	assert.Equal(t, "[A♠ ?? K♥ 5♦]", formatCards(cards, 1))
	assert.Equal(t, "", formatCards(nil, 0))
	assert.True(t, strings.HasPrefix(truncate("Intermediate AI 12", 14), "Intermediate "))
	assert.Len(t, []rune(truncate("Intermediate AI 12", 14)), 14)
}
