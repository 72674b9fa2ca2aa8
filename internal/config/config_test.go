package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blackjack-tournament/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "You", cfg.Tournament.Human)
	assert.Equal(t, "medium", cfg.Tournament.Difficulty)
	assert.Equal(t, 3, cfg.Tournament.Opponents)
	assert.Equal(t, time.Second, cfg.PaceDelay())
	assert.Equal(t, "leaderboard.json", cfg.Leaderboard.Path)
	assert.Nil(t, cfg.Spectate)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
tournament {
  human      = "Ada"
  difficulty = "mixed"
  seed       = 42
  pace_ms    = 250
}

opponent "Card Shark" {
  difficulty = "hard"
}

opponent "Lucky" {
  difficulty = "random"
}

leaderboard {
  dsn = "postgres://localhost/blackjack"
}

spectate {
  address = ":8080"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	tc := cfg.TournamentConfig()
	assert.Equal(t, "Ada", tc.Human)
	assert.Equal(t, int64(42), tc.Seed)
	assert.Equal(t, 250*time.Millisecond, tc.PaceDelay)
	assert.Equal(t, []tournament.Opponent{
		{Name: "Card Shark", Difficulty: "hard"},
		{Name: "Lucky", Difficulty: "random"},
	}, tc.Named)
	assert.Equal(t, "postgres://localhost/blackjack", cfg.Leaderboard.DSN)
	assert.Empty(t, cfg.Leaderboard.Path)
	require.NotNil(t, cfg.Spectate)
	assert.Equal(t, ":8080", cfg.Spectate.Address)
}

func TestLoadComputersOnly(t *testing.T) {
	path := writeConfig(t, `
tournament {
  no_human   = true
  difficulty = "easy"
  opponents  = 4
  pace_ms    = -1
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	tc := cfg.TournamentConfig()
	assert.Empty(t, tc.Human)
	assert.Equal(t, 4, tc.Opponents)
	assert.Zero(t, tc.PaceDelay)
	assert.NoError(t, cfg.Validate())
}

func TestPaceZeroDisablesPacing(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
tournament {
  pace_ms = 0
}
`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Tournament.PaceMillis)
	assert.Equal(t, 0, *cfg.Tournament.PaceMillis)
	assert.Zero(t, cfg.PaceDelay())
	assert.Zero(t, cfg.TournamentConfig().PaceDelay)

	cfg, err = Load(writeConfig(t, `tournament {}`))
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.PaceDelay())
}

func TestValidateRejectsDuplicates(t *testing.T) {
	path := writeConfig(t, `
tournament {}
opponent "Twin" { difficulty = "easy" }
opponent "Twin" { difficulty = "hard" }
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), tournament.ErrInvalidRoster)
}

func TestLoadInvalidHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `tournament {`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `opponent "X" {}`))
	assert.Error(t, err, "difficulty is required and tournament block is missing")
}
