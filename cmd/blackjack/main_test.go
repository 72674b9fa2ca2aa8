package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/leaderboard"
	"github.com/lox/blackjack-tournament/internal/scoring"
	"github.com/lox/blackjack-tournament/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) *Globals {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return &Globals{Config: path}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	g := writeConfig(t, `
tournament {
  difficulty = "hard"
  seed       = 42
  pace_ms    = 250
}

opponent "Card Shark" {
  difficulty = "expert"
}
`)

	file, err := loadConfig(g, TournamentFlags{})
	require.NoError(t, err)
	cfg := file.TournamentConfig()
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.PaceDelay)
	require.Len(t, cfg.Named, 1)
	assert.Equal(t, "Card Shark", cfg.Named[0].Name)

	seed, pace := int64(7), 0
	file, err = loadConfig(g, TournamentFlags{Difficulty: "easy", Seed: &seed, PaceMs: &pace, Spectate: ":0"})
	require.NoError(t, err)
	cfg = file.TournamentConfig()
	assert.Empty(t, cfg.Named, "flags replace named opponents")
	assert.Equal(t, "easy", cfg.Difficulty)
	assert.Equal(t, 3, cfg.Opponents)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Zero(t, cfg.PaceDelay)
	assert.Equal(t, ":0", file.Spectate.Address)
}

func TestLoadConfigPicksSeed(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl")}
	file, err := loadConfig(g, TournamentFlags{})
	require.NoError(t, err)
	assert.NotZero(t, file.Tournament.Seed)
	assert.Equal(t, "You", file.Tournament.Human)
}

func TestSaveResultSkipsAbandoned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl")}
	flags := StoreFlags{LeaderboardPath: path}
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})

	s := tournament.Summary{
		ID:         "t1",
		RosterSize: 2,
		Ranking:    []scoring.Standing{{Name: "You", Points: 1.2, Wins: 1}, {Name: "Easy AI 1"}},
		Human:      "You",
		HumanWins:  1,
	}
	require.NoError(t, saveResult(context.Background(), g, flags, tournament.Summary{Abandoned: true}, logger))
	require.NoError(t, saveResult(context.Background(), g, flags, s, logger))

	entries, err := leaderboard.NewFileStore(path).List(context.Background(), leaderboard.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "t1", entries[0].ID)
	assert.Equal(t, 1, entries[0].Place)
}

func TestNewTournamentRejectsBadRoster(t *testing.T) {
	_, err := newTournament(tournament.Config{Human: "You", Difficulty: "mixed", Opponents: 9}, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	assert.ErrorIs(t, err, tournament.ErrInvalidRoster)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, tournament.Summary{
		ID:            "t1",
		RosterSize:    2,
		Ranking:       []scoring.Standing{{Name: "Hard AI 1", Points: 1.5, Wins: 1}, {Name: "You"}},
		Human:         "You",
		MatchesPlayed: 1,
		TotalMatches:  1,
	})
	out := buf.String()
	assert.Contains(t, out, "Hard AI 1")
	assert.Contains(t, out, "You finished #2 of 2 with 0.00 points.")
	assert.Contains(t, out, "1 of 1 matches")
	assert.NotContains(t, out, "aborted")

	buf.Reset()
	printSummary(&buf, tournament.Summary{ID: "t2", RosterSize: 3, MatchesPlayed: 2, Aborted: 1, TotalMatches: 3})
	assert.Contains(t, buf.String(), "2 of 3 matches (1 aborted)")
}

func TestPrintEntries(t *testing.T) {
	var buf bytes.Buffer
	printEntries(&buf, nil)
	assert.Contains(t, buf.String(), "No tournaments recorded yet.")

	buf.Reset()
	printEntries(&buf, []leaderboard.Entry{{PlayerName: "You", Score: 2.25, Difficulty: "hard", PlayerCount: 4, Wins: 2, TotalGames: 3, Place: 1}})
	assert.Contains(t, buf.String(), "2.25")
	assert.Contains(t, buf.String(), "2/3")
}
