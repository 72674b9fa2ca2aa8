package tournament

import (
	"time"

	"github.com/lox/blackjack-tournament/internal/scoring"
)

// Summary is the record of a finished tournament handed to persistence
type Summary struct {
	ID            string             `json:"id"`
	RosterSize    int                `json:"roster_size"`
	Ranking       []scoring.Standing `json:"ranking"`
	Human         string             `json:"human,omitempty"`
	HumanWins     int                `json:"human_wins"`
	HumanPoints   float64            `json:"human_points"`
	MatchesPlayed int                `json:"matches_played"` // scored matches
	Aborted       int                `json:"aborted,omitempty"`
	TotalMatches  int                `json:"total_matches"`
	Difficulty    string             `json:"difficulty"`
	Seed          int64              `json:"seed"`
	Elapsed       time.Duration      `json:"elapsed"`
	FinishedAt    time.Time          `json:"finished_at"`
	Abandoned     bool               `json:"abandoned,omitempty"`
}

// Winner returns the top of the ranking, or "" when empty
func (s Summary) Winner() string {
	if len(s.Ranking) == 0 {
		return ""
	}
	return s.Ranking[0].Name
}

// HumanPlace returns the human's 1-based rank, or 0 without a human
func (s Summary) HumanPlace() int {
	if s.Human == "" {
		return 0
	}
	for i, st := range s.Ranking {
		if st.Name == s.Human {
			return i + 1
		}
	}
	return 0
}
