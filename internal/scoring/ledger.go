// Package scoring converts match results into tournament points.
package scoring

import (
	"fmt"
	"slices"
)

const (
	tiePoints       = 0.5
	marginDivisor   = 5.0
	naturalBonus    = 1.5
	streakIncrement = 0.05
)

// Outcome is a resolved match as the ledger sees it. Winner and Loser are
// empty on a tie, in which case P1 and P2 name the two participants.
type Outcome struct {
	P1, P2      string
	Winner      string
	Loser       string
	WinnerValue int
	LoserValue  int
	Natural     bool
}

// IsTie returns true when nobody won
func (o Outcome) IsTie() bool {
	return o.Winner == ""
}

// Standing is one row of the ranking
type Standing struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Wins   int     `json:"wins"`
	Streak int     `json:"streak"`
}

type entry struct {
	points float64
	streak int
	wins   int
	played int
}

// Ledger accumulates points and win streaks keyed by participant name.
// Names must be unique; the roster guarantees that.
type Ledger struct {
	order   []string
	entries map[string]*entry
}

// NewLedger creates a ledger for names. Ranking ties keep this order.
func NewLedger(names ...string) *Ledger {
	l := &Ledger{entries: make(map[string]*entry, len(names))}
	for _, n := range names {
		l.add(n)
	}
	return l
}

func (l *Ledger) add(name string) *entry {
	if e, ok := l.entries[name]; ok {
		return e
	}
	e := &entry{}
	l.entries[name] = e
	l.order = append(l.order, name)
	return e
}

// Award returns the points a decisive win is worth given the winner's
// streak before the match.
func Award(winnerValue, loserValue int, natural bool, priorStreak int) float64 {
	margin := float64(max(0, winnerValue-loserValue))
	bonus := 1.0
	if natural {
		bonus = naturalBonus
	}
	multiplier := 1 + streakIncrement*float64(priorStreak+1)
	return (1 + margin/marginDivisor) * bonus * multiplier
}

// Record applies one match outcome and returns the points awarded to the
// winner, or the tie share.
func (l *Ledger) Record(o Outcome) (float64, error) {
	if o.IsTie() {
		if o.P1 == "" || o.P2 == "" || o.P1 == o.P2 {
			return 0, fmt.Errorf("tie needs two distinct participants, got %q and %q", o.P1, o.P2)
		}
		for _, name := range []string{o.P1, o.P2} {
			e := l.add(name)
			e.points += tiePoints
			e.streak = 0
			e.played++
		}
		return tiePoints, nil
	}

	if o.Loser == "" || o.Loser == o.Winner {
		return 0, fmt.Errorf("win by %q needs a distinct loser, got %q", o.Winner, o.Loser)
	}
	w, lo := l.add(o.Winner), l.add(o.Loser)
	award := Award(o.WinnerValue, o.LoserValue, o.Natural, w.streak)
	w.points += award
	w.streak++
	w.wins++
	w.played++
	lo.streak = 0
	lo.played++
	return award, nil
}

// Points returns the cumulative points for name
func (l *Ledger) Points(name string) float64 {
	if e, ok := l.entries[name]; ok {
		return e.points
	}
	return 0
}

// Streak returns the current consecutive-win count for name
func (l *Ledger) Streak(name string) int {
	if e, ok := l.entries[name]; ok {
		return e.streak
	}
	return 0
}

// Wins returns the number of decisive wins for name
func (l *Ledger) Wins(name string) int {
	if e, ok := l.entries[name]; ok {
		return e.wins
	}
	return 0
}

// Played returns the number of recorded matches for name
func (l *Ledger) Played(name string) int {
	if e, ok := l.entries[name]; ok {
		return e.played
	}
	return 0
}

// Ranking returns everyone by descending points. Equal points keep the
// order names were first added.
func (l *Ledger) Ranking() []Standing {
	out := make([]Standing, 0, len(l.order))
	for _, name := range l.order {
		e := l.entries[name]
		out = append(out, Standing{Name: name, Points: e.points, Wins: e.wins, Streak: e.streak})
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		switch {
		case a.Points > b.Points:
			return -1
		case a.Points < b.Points:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Reset zeroes every participant's points, wins and streak
func (l *Ledger) Reset() {
	for _, e := range l.entries {
		*e = entry{}
	}
}

// Replay records outcomes into a fresh ledger for names
func Replay(names []string, outcomes []Outcome) (*Ledger, error) {
	l := NewLedger(names...)
	for i, o := range outcomes {
		if _, err := l.Record(o); err != nil {
			return nil, fmt.Errorf("outcome %d: %w", i, err)
		}
	}
	return l, nil
}
