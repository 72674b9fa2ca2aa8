package tui

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack-tournament/internal/deck"
	"github.com/lox/blackjack-tournament/internal/game"
	"github.com/lox/blackjack-tournament/internal/scoring"
	"github.com/lox/blackjack-tournament/internal/tournament"
)

// seatView is one participant as the human at the table sees them
type seatView struct {
	Name     string
	Human    bool
	Cards    []deck.Card
	Hidden   int
	Display  string
	Standing bool
	Bust     bool
}

// tableView is a copy of the observable match state. It is built on the
// goroutine driving the match and handed to the UI as a message.
type tableView struct {
	MatchID  string
	P1, P2   seatView
	Status   string
	Resolved bool
}

func newTableView(m *game.Match) tableView {
	return tableView{
		MatchID:  m.ID(),
		P1:       newSeatView(m, m.P1()),
		P2:       newSeatView(m, m.P2()),
		Status:   m.StatusLine(),
		Resolved: m.IsResolved(),
	}
}

func newSeatView(m *game.Match, p *game.Participant) seatView {
	shown, hidden := m.VisibleCards(p)
	seat := m.Seat(p)
	return seatView{
		Name:     p.Name,
		Human:    p.IsHuman(),
		Cards:    shown,
		Hidden:   hidden,
		Display:  m.DisplayValue(p),
		Standing: seat.Standing,
		Bust:     hidden == 0 && seat.Bust,
	}
}

type promptKind int

const (
	promptNone promptKind = iota
	promptMove
	promptContinue
)

type (
	tableMsg  struct{ table tableView }
	logMsg    struct{ lines []string }
	promptMsg struct{ kind promptKind }

	rankingMsg struct {
		ranking       []scoring.Standing
		played, total int
		round         int
	}
)

// FinishedMsg tells the UI the tournament is over
type FinishedMsg struct {
	Summary tournament.Summary
	Err     error
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// formatCards formats cards with colors, a face-down card after the first
// for each hidden one.
func formatCards(cards []deck.Card, hidden int) string {
	if len(cards) == 0 && hidden == 0 {
		return ""
	}

	formatted := make([]string, 0, len(cards)+hidden)
	for i, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
		if i == 0 {
			for range hidden {
				formatted = append(formatted, HiddenCardStyle.Render("??"))
			}
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
