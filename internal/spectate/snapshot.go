// Package spectate streams a running tournament to HTTP and websocket
// clients. Everything it exposes goes through the match's visibility
// rules, so a spectator never sees a computer's hidden card before the
// human at the table does.
package spectate

import (
	"time"

	"github.com/lox/blackjack-tournament/internal/game"
)

// SeatView is one participant as an observer sees them
type SeatView struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Strategy string   `json:"strategy,omitempty"`
	Cards    []string `json:"cards"`
	Hidden   int      `json:"hidden"`
	Value    int      `json:"value"`
	Partial  bool     `json:"partial"`
	Display  string   `json:"display"`
	Standing bool     `json:"standing"`
	Bust     bool     `json:"bust"`
}

// MatchSnapshot is the observable state of one match
type MatchSnapshot struct {
	ID      string   `json:"id"`
	State   string   `json:"state"`
	Turn    string   `json:"turn,omitempty"`
	Status  string   `json:"status"`
	Winner  string   `json:"winner,omitempty"`
	Aborted bool     `json:"aborted,omitempty"`
	P1      SeatView `json:"p1"`
	P2      SeatView `json:"p2"`
}

// Snapshot captures m. It reads match state, so call it from the
// goroutine driving the match.
func Snapshot(m *game.Match) MatchSnapshot {
	s := MatchSnapshot{
		ID:     m.ID(),
		State:  m.State().String(),
		Status: m.StatusLine(),
		P1:     seatView(m, m.P1()),
		P2:     seatView(m, m.P2()),
	}
	if p := m.Turn(); p != nil {
		s.Turn = p.Name
	}
	if m.IsResolved() {
		res := m.Result()
		s.Aborted = res.Aborted
		if res.Winner != nil {
			s.Winner = res.Winner.Name
		}
	}
	return s
}

func seatView(m *game.Match, p *game.Participant) SeatView {
	shown, hidden := m.VisibleCards(p)
	value, partial := m.VisibleValue(p)
	seat := m.Seat(p)

	v := SeatView{
		Name:     p.Name,
		Kind:     p.Kind.String(),
		Cards:    make([]string, len(shown)),
		Hidden:   hidden,
		Value:    value,
		Partial:  partial,
		Display:  m.DisplayValue(p),
		Standing: seat.Standing,
		Bust:     !partial && seat.Bust,
	}
	if p.Strategy != nil {
		v.Strategy = p.Strategy.Name()
	}
	for i, c := range shown {
		v.Cards[i] = c.String()
	}
	return v
}

// Frame types sent over the websocket
const (
	FrameSnapshot     = "snapshot"
	FrameMatchStarted = string(game.EventTypeMatchStarted)
	FrameStateChanged = string(game.EventTypeStateChanged)
	FrameDecision     = string(game.EventTypeDecision)
	FrameMatchEnded   = string(game.EventTypeMatchEnded)
)

// DecisionFrame describes a computer's chosen move
type DecisionFrame struct {
	Participant string `json:"participant"`
	Move        string `json:"move"`
	WantsDouble bool   `json:"wants_double,omitempty"`
	WantsSplit  bool   `json:"wants_split,omitempty"`
}

// ResultFrame describes a resolved match
type ResultFrame struct {
	Winner  string `json:"winner,omitempty"`
	Loser   string `json:"loser,omitempty"`
	P1Value int    `json:"p1_value"`
	P2Value int    `json:"p2_value"`
	Natural bool   `json:"natural,omitempty"`
	Tie     bool   `json:"tie,omitempty"`
	Aborted bool   `json:"aborted,omitempty"`
}

// Frame is one websocket message
type Frame struct {
	Type     string         `json:"type"`
	MatchID  string         `json:"match_id,omitempty"`
	Time     time.Time      `json:"time"`
	Match    *MatchSnapshot `json:"match,omitempty"`
	Decision *DecisionFrame `json:"decision,omitempty"`
	Result   *ResultFrame   `json:"result,omitempty"`
}

func resultFrame(res game.MatchResult) *ResultFrame {
	f := &ResultFrame{
		P1Value: res.P1Value,
		P2Value: res.P2Value,
		Natural: res.Natural,
		Tie:     res.IsTie(),
		Aborted: res.Aborted,
	}
	if res.Winner != nil {
		f.Winner = res.Winner.Name
		f.Loser = res.Loser().Name
	}
	return f
}
