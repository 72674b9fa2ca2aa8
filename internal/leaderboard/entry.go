// Package leaderboard records finished tournaments and answers filtered
// queries over them.
package leaderboard

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/lox/blackjack-tournament/internal/tournament"
)

// Entry is one finished tournament from the point of view of the player it
// was recorded for: the human, or the winner of a computer-only run.
type Entry struct {
	ID          string        `json:"id"`
	PlayerName  string        `json:"player_name"`
	Score       float64       `json:"score"`
	Difficulty  string        `json:"difficulty"`
	PlayerCount int           `json:"player_count"`
	Date        time.Time     `json:"date"`
	Duration    time.Duration `json:"duration"`
	Wins        int           `json:"wins"`
	TotalGames  int           `json:"total_games"`
	Place       int           `json:"place"`
}

// WinRate returns wins over games played, or 0 without games
func (e Entry) WinRate() float64 {
	if e.TotalGames <= 0 {
		return 0
	}
	return float64(e.Wins) / float64(e.TotalGames)
}

// FromSummary builds the entry for a finished tournament
func FromSummary(s tournament.Summary) Entry {
	e := Entry{
		ID:          s.ID,
		Difficulty:  s.Difficulty,
		PlayerCount: s.RosterSize,
		Date:        s.FinishedAt.UTC(),
		Duration:    s.Elapsed.Round(time.Second),
		TotalGames:  s.RosterSize - 1,
	}

	if s.Human != "" {
		e.PlayerName = s.Human
		e.Score = s.HumanPoints
		e.Wins = s.HumanWins
		e.Place = s.HumanPlace()
		return e
	}
	if len(s.Ranking) > 0 {
		top := s.Ranking[0]
		e.PlayerName = top.Name
		e.Score = top.Points
		e.Wins = top.Wins
		e.Place = 1
	}
	return e
}

// Store persists leaderboard entries
type Store interface {
	Add(ctx context.Context, e Entry) error
	List(ctx context.Context, f Filter) ([]Entry, error)
	Clear(ctx context.Context) error
	Close() error
}

// Filter selects entries. Empty fields and "all" match everything.
type Filter struct {
	Difficulty  string
	PlayerCount string // "all", "2".."4" or "5+"
}

// Validate checks the player count syntax
func (f Filter) Validate() error {
	switch f.PlayerCount {
	case "", "all", "5+":
		return nil
	}
	n, err := strconv.Atoi(f.PlayerCount)
	if err != nil || n < 2 {
		return fmt.Errorf("invalid player count filter %q", f.PlayerCount)
	}
	return nil
}

// Match reports whether e passes the filter
func (f Filter) Match(e Entry) bool {
	if f.Difficulty != "" && f.Difficulty != "all" && e.Difficulty != f.Difficulty {
		return false
	}
	switch f.PlayerCount {
	case "", "all":
		return true
	case "5+":
		return e.PlayerCount >= 5
	default:
		n, err := strconv.Atoi(f.PlayerCount)
		return err == nil && e.PlayerCount == n
	}
}

// Apply returns the entries passing f, highest score first
func (f Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	sortByScore(out)
	return out
}

func sortByScore(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
}

// Stats summarises a set of entries
type Stats struct {
	TotalTournaments int     `json:"total_tournaments"`
	BestScore        float64 `json:"best_score"`
	WinRate          int     `json:"win_rate"` // percent, mean of per-entry rates
}

// ComputeStats summarises entries
func ComputeStats(entries []Entry) Stats {
	s := Stats{TotalTournaments: len(entries)}
	if len(entries) == 0 {
		return s
	}

	var rates float64
	for i, e := range entries {
		if i == 0 || e.Score > s.BestScore {
			s.BestScore = e.Score
		}
		rates += e.WinRate()
	}
	s.WinRate = int(math.Round(rates / float64(len(entries)) * 100))
	return s
}
