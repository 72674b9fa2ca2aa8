// Package config loads tournament settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack-tournament/internal/tournament"
)

// File is the complete configuration file
type File struct {
	Tournament  TournamentSettings  `hcl:"tournament,block"`
	Opponents   []OpponentConfig    `hcl:"opponent,block"`
	Leaderboard *LeaderboardSetting `hcl:"leaderboard,block"`
	Spectate    *SpectateSettings   `hcl:"spectate,block"`
}

// TournamentSettings contains roster and pacing configuration
type TournamentSettings struct {
	Human      string `hcl:"human,optional"`
	Difficulty string `hcl:"difficulty,optional"`
	Opponents  int    `hcl:"opponents,optional"`
	Seed       int64  `hcl:"seed,optional"`
	PaceMillis *int   `hcl:"pace_ms,optional"`
	NoHuman    bool   `hcl:"no_human,optional"`
}

// OpponentConfig defines a named computer opponent
type OpponentConfig struct {
	Name       string `hcl:"name,label"`
	Difficulty string `hcl:"difficulty"`
}

// LeaderboardSetting selects where results are stored. A DSN wins over a
// path.
type LeaderboardSetting struct {
	Path string `hcl:"path,optional"`
	DSN  string `hcl:"dsn,optional"`
}

// SpectateSettings enables the spectator server
type SpectateSettings struct {
	Address string `hcl:"address"`
}

const (
	DefaultHuman      = "You"
	DefaultDifficulty = "medium"
	DefaultOpponents  = 3
	DefaultPaceMillis = 1000
	DefaultBoardPath  = "leaderboard.json"
)

// Default returns the configuration used when no file exists
func Default() *File {
	return &File{
		Tournament: TournamentSettings{
			Human:      DefaultHuman,
			Difficulty: DefaultDifficulty,
			Opponents:  DefaultOpponents,
			PaceMillis: ptr(DefaultPaceMillis),
		},
		Leaderboard: &LeaderboardSetting{Path: DefaultBoardPath},
	}
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*File, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg File
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *File) applyDefaults() {
	t := &c.Tournament
	if t.Human == "" && !t.NoHuman {
		t.Human = DefaultHuman
	}
	if t.NoHuman {
		t.Human = ""
	}
	if t.Difficulty == "" {
		t.Difficulty = DefaultDifficulty
	}
	if t.Opponents == 0 && len(c.Opponents) == 0 {
		t.Opponents = DefaultOpponents
	}
	if t.PaceMillis == nil {
		t.PaceMillis = ptr(DefaultPaceMillis)
	}
	if c.Leaderboard == nil {
		c.Leaderboard = &LeaderboardSetting{}
	}
	if c.Leaderboard.Path == "" && c.Leaderboard.DSN == "" {
		c.Leaderboard.Path = DefaultBoardPath
	}
}

// PaceDelay returns the pacing delay. An unset pace_ms uses the default;
// zero or a negative value disables pacing.
func (c *File) PaceDelay() time.Duration {
	ms := DefaultPaceMillis
	if c.Tournament.PaceMillis != nil {
		ms = *c.Tournament.PaceMillis
	}
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func ptr[T any](v T) *T { return &v }

// TournamentConfig converts the file into a tournament configuration
func (c *File) TournamentConfig() tournament.Config {
	cfg := tournament.Config{
		Human:      c.Tournament.Human,
		Difficulty: c.Tournament.Difficulty,
		Opponents:  c.Tournament.Opponents,
		Seed:       c.Tournament.Seed,
		PaceDelay:  c.PaceDelay(),
	}
	for _, o := range c.Opponents {
		cfg.Named = append(cfg.Named, tournament.Opponent{Name: o.Name, Difficulty: o.Difficulty})
	}
	return cfg
}

// Validate checks the roster the file describes
func (c *File) Validate() error {
	return c.TournamentConfig().Validate()
}
