package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/game"
	"github.com/lox/blackjack-tournament/internal/scoring"
	"github.com/lox/blackjack-tournament/internal/tournament"
)

// Sender delivers messages to a running program. *tea.Program is one.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge connects a running tournament to the TUI. It turns match events
// into UI messages and answers the runner's requests for human moves with
// keys pressed in the UI.
type Bridge struct {
	sender  Sender
	tui     *TUIModel
	t       *tournament.Tournament
	ranking RankingSource
	logger  *log.Logger
}

// RankingSource reports the current standings. *tournament.Runner is one.
type RankingSource interface {
	Ranking() []scoring.Standing
}

// NewBridge creates a bridge and subscribes it to the tournament's events
func NewBridge(sender Sender, model *TUIModel, t *tournament.Tournament, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	b := &Bridge{
		sender: sender,
		tui:    model,
		t:      t,
		logger: logger.WithPrefix("bridge"),
	}
	t.EventBus().Subscribe(b)
	return b
}

// RunnerOptions wires the bridge into a runner as its human input and
// after-match pause.
func (b *Bridge) RunnerOptions() []tournament.RunnerOption {
	return []tournament.RunnerOption{
		tournament.WithHumanInput(b),
		tournament.WithAfterMatch(b.AfterMatch),
	}
}

// SetRanking sets where standings come from, usually the runner
func (b *Bridge) SetRanking(r RankingSource) {
	b.ranking = r
}

// OnEvent implements game.EventSubscriber. It runs on the runner's
// goroutine, so match state is read here and copied into messages.
func (b *Bridge) OnEvent(event game.GameEvent) {
	t := b.t

	switch e := event.(type) {
	case game.MatchStartedEvent:
		played, total := t.Progress()
		b.sendRanking()
		b.log("",
			fmt.Sprintf("*** MATCH %d OF %d (ROUND %d) ***", played+1, total, t.Round()),
			fmt.Sprintf("%s vs %s", e.P1, e.P2))

	case game.StateChangedEvent:
		if m := t.MatchByID(e.ID); m != nil {
			b.sender.Send(tableMsg{table: newTableView(m)})
		}

	case game.DecisionEvent:
		line := fmt.Sprintf("%s: %s", e.Participant, e.Move)
		if e.WantsDouble {
			line += " (would double)"
		}
		if e.WantsSplit {
			line += " (would split)"
		}
		b.log(line)

	case game.MatchEndedEvent:
		b.log(resultLines(e.Result)...)
	}
}

func resultLines(res game.MatchResult) []string {
	if res.Aborted {
		return []string{"Match aborted: the deck ran out."}
	}

	lines := make([]string, 0, 3)
	for _, p := range []*game.Participant{res.P1, res.P2} {
		value := res.P1Value
		if p == res.P2 {
			value = res.P2Value
		}
		line := fmt.Sprintf("%s shows %s (%d)", p.Name, formatCards(res.HandOf(p), 0), value)
		if value > game.MaxValue {
			line += " and busts"
		}
		lines = append(lines, line)
	}

	switch {
	case res.Winner == nil:
		lines = append(lines, "It's a tie!")
	case res.Natural:
		lines = append(lines, fmt.Sprintf("%s wins with a natural %d!", res.Winner.Name, res.WinnerValue()))
	default:
		lines = append(lines, fmt.Sprintf("%s wins with %d!", res.Winner.Name, res.WinnerValue()))
	}
	return lines
}

// Decide implements tournament.HumanInput
func (b *Bridge) Decide(ctx context.Context, m *game.Match, p *game.Participant) (game.Move, error) {
	b.sender.Send(tableMsg{table: newTableView(m)})
	b.sender.Send(promptMsg{kind: promptMove})

	for {
		result, err := b.tui.WaitForAction(ctx)
		if err != nil {
			return game.MoveStand, err
		}

		switch result.Action {
		case ActionHit:
			b.log(fmt.Sprintf("%s: hit", p.Name))
			return game.MoveHit, nil
		case ActionStand:
			b.log(fmt.Sprintf("%s: stand", p.Name))
			return game.MoveStand, nil
		case ActionQuit:
			return game.MoveStand, tournament.ErrQuit
		default:
			b.logger.Debug("Ignoring action while waiting for a move", "action", result.Action)
		}
	}
}

// AfterMatch pauses on the result of a match the human played in until
// they ask for the next one. Use it with tournament.WithAfterMatch.
func (b *Bridge) AfterMatch(ctx context.Context, res game.MatchResult) error {
	b.sendRanking()

	played, total := b.t.Progress()
	if played >= total || !(res.P1.IsHuman() || res.P2.IsHuman()) {
		return nil
	}

	b.sender.Send(promptMsg{kind: promptContinue})
	for {
		result, err := b.tui.WaitForAction(ctx)
		if err != nil {
			return err
		}
		switch result.Action {
		case ActionContinue:
			return nil
		case ActionQuit:
			return tournament.ErrQuit
		}
	}
}

// Finish shows the final summary
func (b *Bridge) Finish(s tournament.Summary, err error) {
	b.sender.Send(FinishedMsg{Summary: s, Err: err})
}

func (b *Bridge) sendRanking() {
	msg := rankingMsg{round: b.t.Round()}
	msg.played, msg.total = b.t.Progress()
	if b.ranking != nil {
		msg.ranking = b.ranking.Ranking()
	}
	b.sender.Send(msg)
}

func (b *Bridge) log(lines ...string) {
	b.sender.Send(logMsg{lines: lines})
}
