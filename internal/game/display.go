package game

import (
	"fmt"
	"strings"
)

// DisplayValue formats the value of p as an observer sees it. A hidden card
// renders as "7 + ?".
func (m *Match) DisplayValue(p *Participant) string {
	v, partial := m.VisibleValue(p)
	if partial {
		return fmt.Sprintf("%d + ?", v)
	}
	return fmt.Sprintf("%d", v)
}

// DisplayHand formats the visible cards of p with "??" for hidden cards
func (m *Match) DisplayHand(p *Participant) string {
	shown, hidden := m.VisibleCards(p)
	parts := make([]string, 0, len(shown)+hidden)
	for i, c := range shown {
		parts = append(parts, c.String())
		if i == 0 {
			for range hidden {
				parts = append(parts, "??")
			}
		}
	}
	return strings.Join(parts, " ")
}

// StatusLine describes the state of the match in one sentence
func (m *Match) StatusLine() string {
	switch m.state {
	case NotStarted:
		return "Waiting for the deal..."
	case Resolved:
		res := m.Result()
		switch {
		case res.Aborted:
			return "Match aborted: the deck ran out."
		case res.Winner == nil:
			return "It's a tie!"
		default:
			return fmt.Sprintf("%s wins with %d!", res.Winner.Name, res.WinnerValue())
		}
	default:
		p := m.seats[m.turn]
		if p.IsHuman() {
			if m.seats[0].IsHuman() && m.seats[1].IsHuman() {
				return fmt.Sprintf("%s's turn! Choose to Hit or Stand.", p.Name)
			}
			return "Your turn! Choose to Hit or Stand."
		}
		return fmt.Sprintf("%s is thinking...", p.Name)
	}
}
